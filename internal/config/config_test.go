package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[database]
dbname = "appointments"
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "Asia/Kolkata", cfg.Timezone)
	assert.Equal(t, ConversationMemory, cfg.Conversation.Backend)
	assert.Equal(t, 10, cfg.Conversation.Window)
	assert.Equal(t, NotificationsAsync, cfg.Notifications.Mode)
	assert.Equal(t, "Appointment Desk", cfg.Brevo.SenderName)
	assert.False(t, cfg.Gemini.ModelEnabled())
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, `
[database]
dbname = "appointments"
password = "from-file"

[gemini]
api_key = ""
`)
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("NOTIFICATIONS_MODE", "queue")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.True(t, cfg.Gemini.ModelEnabled())
	assert.Equal(t, NotificationsQueue, cfg.Notifications.Mode)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing dbname", body: `timezone = "Asia/Kolkata"`},
		{name: "bad timezone", body: "timezone = \"Mars/Olympus\"\n[database]\ndbname = \"a\""},
		{name: "bad conversation backend", body: "[database]\ndbname = \"a\"\n[conversation]\nbackend = \"disk\""},
		{name: "bad notifications mode", body: "[database]\ndbname = \"a\"\n[notifications]\nmode = \"sms\""},
		{name: "bad port", body: "[server]\nhttp_port = 70000\n[database]\ndbname = \"a\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.ErrorIs(t, err, ErrInvalidValue)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.ErrorIs(t, err, ErrReadFile)
}

func TestLocationAndDSN(t *testing.T) {
	cfg := defaults()
	cfg.Database.DBName = "appointments"
	cfg.Database.User = "desk"

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Kolkata", loc.String())
	assert.Equal(t, "host=localhost port=5432 user=desk password= dbname=appointments sslmode=disable", cfg.Database.DSN())
}
