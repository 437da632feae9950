package bunstore

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/uptrace/bun"
)

// migrations are idempotent DDL statements applied in order by the
// migrate command at process bootstrap.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		login TEXT NOT NULL DEFAULT '',
		rights_level INTEGER NOT NULL DEFAULT 0,
		pending_action INTEGER NOT NULL DEFAULT 0,
		active BOOLEAN NOT NULL DEFAULT true,
		disabled_chat BOOLEAN NOT NULL DEFAULT false,
		locale TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS groups (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL DEFAULT '',
		locale TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS activities (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		owner_id TEXT NOT NULL REFERENCES users (id),
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_activities_name ON activities (name)`,
	`CREATE TABLE IF NOT EXISTS subscriptions (
		user_id TEXT NOT NULL REFERENCES users (id),
		activity_id INTEGER NOT NULL REFERENCES activities (id) ON DELETE CASCADE,
		created_at TIMESTAMP NOT NULL,
		PRIMARY KEY (user_id, activity_id)
	)`,
	`CREATE TABLE IF NOT EXISTS participants (
		user_id TEXT NOT NULL REFERENCES users (id),
		activity_id INTEGER NOT NULL REFERENCES activities (id) ON DELETE CASCADE,
		reported_at TIMESTAMP NOT NULL,
		accepted BOOLEAN NOT NULL DEFAULT true,
		PRIMARY KEY (user_id, activity_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_participants_reported_at ON participants (reported_at)`,
}

// Migrate applies the schema to the given database
func Migrate(ctx context.Context, db *bun.DB) error {
	for _, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return goerr.Wrap(err, "failed to apply migration", goerr.V("stmt", stmt))
		}
	}
	return nil
}

// MigrateStore applies the schema through an opened store
func (s *Store) Migrate(ctx context.Context) error {
	if s.root == nil {
		return goerr.New("cannot migrate inside a transaction")
	}
	return Migrate(ctx, s.root)
}
