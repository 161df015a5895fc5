package conversation

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
)

func turn(role domain.Role, i int) domain.ConversationTurn {
	return domain.ConversationTurn{Role: role, Content: fmt.Sprintf("message %d", i)}
}

func TestMemoryStoreKeepsLastWindow(t *testing.T) {
	ctx := context.Background()
	store, err := NewMemoryStore(domain.ConversationWindow, 10)
	require.NoError(t, err)

	for i := 0; i < 8; i++ {
		require.NoError(t, store.Append(ctx, "ops@acme.test", turn(domain.RoleUser, 2*i), turn(domain.RoleAssistant, 2*i+1)))
	}

	history, err := store.History(ctx, "ops@acme.test")
	require.NoError(t, err)
	require.Len(t, history, domain.ConversationWindow)
	assert.Equal(t, "message 6", history[0].Content)
	assert.Equal(t, "message 15", history[9].Content)
}

func TestMemoryStoreIdentityIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	store, err := NewMemoryStore(0, 0)
	require.NoError(t, err)

	require.NoError(t, store.Append(ctx, "Ops@Acme.test", turn(domain.RoleUser, 1)))

	history, err := store.History(ctx, " ops@acme.test")
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestMemoryStoreIsolatesIdentities(t *testing.T) {
	ctx := context.Background()
	store, err := NewMemoryStore(0, 0)
	require.NoError(t, err)

	require.NoError(t, store.Append(ctx, "a@x.test", turn(domain.RoleUser, 1)))

	history, err := store.History(ctx, "b@x.test")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestMemoryStoreHistoryIsACopy(t *testing.T) {
	ctx := context.Background()
	store, err := NewMemoryStore(0, 0)
	require.NoError(t, err)
	require.NoError(t, store.Append(ctx, "a@x.test", turn(domain.RoleUser, 1)))

	history, _ := store.History(ctx, "a@x.test")
	history[0].Content = "changed"

	again, _ := store.History(ctx, "a@x.test")
	assert.Equal(t, "message 1", again[0].Content)
}

func TestMemoryStoreEvictsLeastRecentIdentity(t *testing.T) {
	ctx := context.Background()
	store, err := NewMemoryStore(0, 2)
	require.NoError(t, err)

	require.NoError(t, store.Append(ctx, "a@x.test", turn(domain.RoleUser, 1)))
	require.NoError(t, store.Append(ctx, "b@x.test", turn(domain.RoleUser, 2)))
	require.NoError(t, store.Append(ctx, "c@x.test", turn(domain.RoleUser, 3)))

	history, _ := store.History(ctx, "a@x.test")
	assert.Empty(t, history)
}

func TestMemoryStoreReset(t *testing.T) {
	ctx := context.Background()
	store, err := NewMemoryStore(0, 0)
	require.NoError(t, err)
	require.NoError(t, store.Append(ctx, "a@x.test", turn(domain.RoleUser, 1)))

	require.NoError(t, store.Reset(ctx, "a@x.test"))

	history, _ := store.History(ctx, "a@x.test")
	assert.Empty(t, history)
}

func TestTurnsRoundTripThroughRedisEncoding(t *testing.T) {
	values, err := encodeTurns([]domain.ConversationTurn{turn(domain.RoleUser, 1), turn(domain.RoleAssistant, 2)})
	require.NoError(t, err)

	raw := make([]string, 0, len(values))
	for _, v := range values {
		raw = append(raw, v.(string))
	}

	turns, err := decodeTurns(raw)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAssistant, turns[1].Role)
	assert.Equal(t, "conversation:ops@acme.test", redisKey("OPS@acme.test"))

	_, err = decodeTurns([]string{"{"})
	assert.ErrorIs(t, err, ErrDecode)
}
