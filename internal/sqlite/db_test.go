package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tallyhq/tally/internal/domain/user"
)

func demoUsersFixture() []user.User {
	return []user.User{
		{ID: "u1", Name: "User 1"},
		{ID: "u2", Name: "User 2"},
	}
}

// NewTestDB creates a new in-memory SQLite database for testing
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err, "failed to create test database")

	err = db.RunMigrations()
	require.NoError(t, err, "failed to run migrations")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func insertUser(t *testing.T, db *DB, id, name string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO users (id, name) VALUES (?, ?)`, id, name)
	require.NoError(t, err)
}

func insertProject(t *testing.T, db *DB, id, name string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO projects (id, name) VALUES (?, ?)`, id, name)
	require.NoError(t, err)
}

// TestMigrations verifies that migrations run successfully
func TestMigrations(t *testing.T) {
	db := NewTestDB(t)

	tables := []string{"users", "projects", "timesheet_entries"}
	for _, table := range tables {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		require.NoError(t, err, "failed to query table %s", table)
		require.Equal(t, 1, count, "table %s not found", table)
	}
}

// TestForeignKeys verifies that foreign key constraints are enabled
func TestForeignKeys(t *testing.T) {
	db := NewTestDB(t)

	var enabled int
	err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled)
	require.NoError(t, err)
	require.Equal(t, 1, enabled, "foreign keys not enabled")
}

// TestMigrations_Idempotent verifies the schema can be applied twice
func TestMigrations_Idempotent(t *testing.T) {
	db := NewTestDB(t)
	require.NoError(t, db.RunMigrations())
}

func TestSeed(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	repo := NewUserRepository(db)
	require.NoError(t, db.SeedUsers(ctx, demoUsersFixture()))
	require.NoError(t, db.SeedUsers(ctx, demoUsersFixture()))

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
}
