package db

import (
	"context"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		avatar TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL,
		date TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS posts (
		id TEXT PRIMARY KEY,
		text TEXT NOT NULL,
		author_name TEXT NOT NULL DEFAULT '',
		author_avatar TEXT NOT NULL DEFAULT '',
		author_id TEXT NOT NULL,
		date TIMESTAMPTZ NOT NULL DEFAULT now(),
		likes JSONB NOT NULL DEFAULT '[]',
		comments JSONB NOT NULL DEFAULT '[]',
		version BIGINT NOT NULL DEFAULT 1
	)`,
	`CREATE INDEX IF NOT EXISTS posts_date_idx ON posts (date DESC)`,
	`CREATE INDEX IF NOT EXISTS posts_author_idx ON posts (author_id)`,
	`CREATE TABLE IF NOT EXISTS profiles (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL DEFAULT '',
		avatar TEXT NOT NULL DEFAULT '',
		company TEXT NOT NULL DEFAULT '',
		website TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		skills JSONB NOT NULL DEFAULT '[]',
		bio TEXT NOT NULL DEFAULT '',
		github_username TEXT NOT NULL DEFAULT '',
		social JSONB NOT NULL DEFAULT '{}',
		date TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// EnsureSchema creates the tables used by the postgres stores when they are
// missing. Existing tables are left untouched.
func EnsureSchema(ctx context.Context, q Querier) error {
	for _, stmt := range schema {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
