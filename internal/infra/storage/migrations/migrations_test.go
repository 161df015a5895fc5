package migrations

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsAreEmbedded(t *testing.T) {
	names, err := fs.Glob(files, "*.sql")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"00001_create_appointments.sql",
		"00002_create_blocked_slots.sql",
	}, names)
}

func TestAppointmentsMigrationDeclaresConstraints(t *testing.T) {
	body, err := fs.ReadFile(files, "00001_create_appointments.sql")
	require.NoError(t, err)

	// имена ограничений используются репозиторием для разбора ошибок уникальности
	assert.Contains(t, string(body), "appointments_tracking_code_key")
	assert.Contains(t, string(body), "appointments_vendor_slot_key")
	assert.Contains(t, string(body), "appointments_live_slot_idx")
}
