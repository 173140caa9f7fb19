package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/tallyhq/tally/internal/domain/project"
	"github.com/tallyhq/tally/internal/domain/user"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema. Entry dates are stored as YYYY-MM-DD text
// and hours as canonical decimal strings, so comparisons and sums stay exact.
func (db *DB) RunMigrations() error {
	migration := `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS projects (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS timesheet_entries (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    project_id TEXT NOT NULL,
    entry_date TEXT NOT NULL,
    hours TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (user_id) REFERENCES users(id),
    FOREIGN KEY (project_id) REFERENCES projects(id)
);
CREATE INDEX IF NOT EXISTS idx_entries_user_date ON timesheet_entries(user_id, entry_date);
CREATE INDEX IF NOT EXISTS idx_entries_user_project_date ON timesheet_entries(user_id, project_id, entry_date);
`

	if _, err := db.Exec(migration); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// SeedUsers inserts users, skipping ids that already exist.
func (db *DB) SeedUsers(ctx context.Context, users []user.User) error {
	for _, u := range users {
		if _, err := db.ExecContext(ctx,
			`INSERT OR IGNORE INTO users (id, name) VALUES (?, ?)`, u.ID, u.Name); err != nil {
			return fmt.Errorf("seeding user %s: %w", u.ID, err)
		}
	}
	return nil
}

// SeedProjects inserts projects, skipping ids that already exist.
func (db *DB) SeedProjects(ctx context.Context, projects []project.Project) error {
	for _, p := range projects {
		if _, err := db.ExecContext(ctx,
			`INSERT OR IGNORE INTO projects (id, name) VALUES (?, ?)`, p.ID, p.Name); err != nil {
			return fmt.Errorf("seeding project %s: %w", p.ID, err)
		}
	}
	return nil
}
