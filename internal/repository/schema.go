package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGSERIAL PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS projects (
		id           BIGSERIAL PRIMARY KEY,
		owner_id     BIGINT NOT NULL REFERENCES users(id),
		project_name VARCHAR(255) NOT NULL,
		start_date   DATE,
		end_date     DATE,
		description  TEXT,
		technologies JSONB NOT NULL DEFAULT '[]'::jsonb,
		image        BYTEA,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		deleted_at   TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_owner ON projects (owner_id)`,
}

// Migrate creates the schema if it does not exist yet.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
