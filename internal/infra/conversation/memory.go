package conversation

import (
	"context"
	"fmt"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
)

const defaultMaxIdentities = 10000

// MemoryStore хранит окно последних реплик в памяти процесса.
// Число собеседников ограничено LRU, самые давние вытесняются.
type MemoryStore struct {
	mu     sync.Mutex
	cache  *lru.Cache[string, []domain.ConversationTurn]
	window int
}

// NewMemoryStore создает хранилище истории в памяти
func NewMemoryStore(window, maxIdentities int) (*MemoryStore, error) {
	if window <= 0 {
		window = domain.ConversationWindow
	}
	if maxIdentities <= 0 {
		maxIdentities = defaultMaxIdentities
	}

	cache, err := lru.New[string, []domain.ConversationTurn](maxIdentities)
	if err != nil {
		return nil, fmt.Errorf("%w: create lru cache: %v", ErrStorage, err)
	}

	return &MemoryStore{cache: cache, window: window}, nil
}

// History возвращает копию окна истории собеседника
func (s *MemoryStore) History(_ context.Context, identity string) ([]domain.ConversationTurn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	turns, ok := s.cache.Get(key(identity))
	if !ok {
		return nil, nil
	}

	out := make([]domain.ConversationTurn, len(turns))
	copy(out, turns)
	return out, nil
}

// Append дописывает реплики и обрезает историю до окна
func (s *MemoryStore) Append(_ context.Context, identity string, turns ...domain.ConversationTurn) error {
	if len(turns) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(identity)
	existing, _ := s.cache.Get(k)

	merged := make([]domain.ConversationTurn, 0, len(existing)+len(turns))
	merged = append(merged, existing...)
	merged = append(merged, turns...)

	s.cache.Add(k, domain.TrimTurns(merged, s.window))
	return nil
}

// Reset удаляет историю собеседника
func (s *MemoryStore) Reset(_ context.Context, identity string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Remove(key(identity))
	return nil
}

func key(identity string) string {
	return strings.ToLower(strings.TrimSpace(identity))
}
