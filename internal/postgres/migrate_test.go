package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingMigrations(t *testing.T) {
	pending, err := PendingMigrations(0)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, uint(1), pending[0].Version)
	assert.Equal(t, "init", pending[0].Identifier)
	assert.Contains(t, pending[0].SQL, "CREATE TABLE IF NOT EXISTS sequence_counters")
	assert.NotContains(t, pending[0].SQL, "schema_migrations")
}

func TestPendingMigrations_UpToDate(t *testing.T) {
	pending, err := PendingMigrations(1)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestMigrations_HaveDownFiles(t *testing.T) {
	up, err := migrationFiles.ReadFile("migrations/0001_init.up.sql")
	require.NoError(t, err)
	down, err := migrationFiles.ReadFile("migrations/0001_init.down.sql")
	require.NoError(t, err)

	assert.Contains(t, string(up), "CREATE TABLE IF NOT EXISTS agreement_assigned_users")
	assert.Contains(t, string(down), "DROP TABLE IF EXISTS agreement_assigned_users")
}
