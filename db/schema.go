// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Open connects to the configured database. DatabaseType selects the driver:
// "postgres" (lib/pq) or "sqlite" (modernc.org/sqlite, cgo-free).
func Open(databaseType, databaseURL string) (*sql.DB, error) {
	switch databaseType {
	case "postgres":
		return sql.Open("postgres", databaseURL)
	case "sqlite":
		conn, err := sql.Open("sqlite", databaseURL)
		if err != nil {
			return nil, err
		}
		// sqlite serializes writers anyway; a single connection avoids
		// table-lock errors under concurrent requests.
		conn.SetMaxOpenConns(1)
		return conn, nil
	default:
		return nil, fmt.Errorf("unsupported database type %q (want sqlite or postgres)", databaseType)
	}
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS. The DDL sticks to the
// dialect intersection so the same schema runs on postgres and sqlite.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Accounts
CREATE TABLE IF NOT EXISTS user_account (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('user', 'admin')),
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_user_account_username ON user_account(username);

-- Sessions
CREATE TABLE IF NOT EXISTS session (
    token TEXT PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES user_account(id) ON DELETE CASCADE,
    created_at TIMESTAMP NOT NULL,
    expires_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_session_user_id ON session(user_id);

-- Polls; options is a JSON array of option text, position = option index
CREATE TABLE IF NOT EXISTS poll (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL REFERENCES user_account(id),
    question TEXT NOT NULL,
    options TEXT NOT NULL,
    visibility TEXT NOT NULL DEFAULT 'private' CHECK (visibility IN ('public', 'private')),
    require_auth BOOLEAN NOT NULL DEFAULT FALSE,
    allow_multiple_votes BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_poll_owner_id ON poll(owner_id);
CREATE INDEX IF NOT EXISTS idx_poll_visibility ON poll(visibility);

-- Votes are append-only. dedup_key is poll_id:voter_id when the poll
-- disallows multiple votes, NULL otherwise; the unique index is the
-- one-vote-per-voter guarantee (NULLs never collide).
CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    voter_id TEXT REFERENCES user_account(id),
    option_index INTEGER NOT NULL CHECK (option_index >= 0),
    dedup_key TEXT UNIQUE,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_vote_poll_id ON vote(poll_id);
CREATE INDEX IF NOT EXISTS idx_vote_voter ON vote(poll_id, voter_id);
`
