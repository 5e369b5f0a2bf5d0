// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/openballot/auth"
	"github.com/danielhkuo/openballot/identity"
	"github.com/danielhkuo/openballot/models"
)

// CreateUser persists a new account. The username is unique; a duplicate
// surfaces as ErrUsernameTaken. passwordHash must already be a bcrypt hash.
func (s *Store) CreateUser(ctx context.Context, username, passwordHash, role string) (models.User, error) {
	user := models.User{
		ID:        uuid.New().String(),
		Username:  username,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_account (id, username, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, user.ID, user.Username, passwordHash, user.Role, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, models.ErrUsernameTaken
		}
		return models.User{}, mapError("insert user", err)
	}

	slog.Info("user registered", "user_id", user.ID, "username", username)
	return user, nil
}

// GetUser loads an account by id.
func (s *Store) GetUser(ctx context.Context, id string) (models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, role, created_at FROM user_account WHERE id = $1
	`, id).Scan(&user.ID, &user.Username, &user.Role, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return models.User{}, models.ErrNotFound
	}
	if err != nil {
		return models.User{}, mapError("get user", err)
	}
	return user, nil
}

// GetUserByUsername loads an account and its password hash for credential
// verification. The hash never travels further than the login handler.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (models.User, string, error) {
	var user models.User
	var hash string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, role, created_at
		FROM user_account WHERE username = $1
	`, username).Scan(&user.ID, &user.Username, &hash, &user.Role, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return models.User{}, "", models.ErrNotFound
	}
	if err != nil {
		return models.User{}, "", mapError("get user by username", err)
	}
	return user, hash, nil
}

// CreateSession opens a new bearer-token session for the user.
func (s *Store) CreateSession(ctx context.Context, userID string, ttl time.Duration) (models.Session, error) {
	token, err := auth.GenerateSessionToken()
	if err != nil {
		return models.Session{}, mapError("generate session token", err)
	}

	now := time.Now().UTC()
	session := models.Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO session (token, user_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
	`, session.Token, session.UserID, session.CreatedAt, session.ExpiresAt)
	if err != nil {
		return models.Session{}, mapError("insert session", err)
	}

	return session, nil
}

// GetSession loads a session by token. Expired sessions are deleted lazily
// and reported as ErrSessionExpired.
func (s *Store) GetSession(ctx context.Context, token string) (models.Session, error) {
	var session models.Session
	err := s.db.QueryRowContext(ctx, `
		SELECT token, user_id, created_at, expires_at FROM session WHERE token = $1
	`, token).Scan(&session.Token, &session.UserID, &session.CreatedAt, &session.ExpiresAt)
	if err == sql.ErrNoRows {
		return models.Session{}, models.ErrNotFound
	}
	if err != nil {
		return models.Session{}, mapError("get session", err)
	}

	if time.Now().After(session.ExpiresAt) {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM session WHERE token = $1", token); err != nil {
			slog.Warn("failed to delete expired session", "error", err)
		}
		return models.Session{}, models.ErrSessionExpired
	}
	return session, nil
}

// DeleteSession removes a session (logout). Deleting an unknown token is
// not an error.
func (s *Store) DeleteSession(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM session WHERE token = $1", token)
	return mapError("delete session", err)
}

// PrincipalByToken resolves a session token into a Principal, parsing the
// stored role claim into the closed Role enum exactly once. Implements
// identity.SessionSource.
func (s *Store) PrincipalByToken(ctx context.Context, token string) (identity.Principal, error) {
	session, err := s.GetSession(ctx, token)
	if err != nil {
		return identity.Principal{}, err
	}
	user, err := s.GetUser(ctx, session.UserID)
	if err != nil {
		return identity.Principal{}, err
	}
	return identity.Principal{ID: user.ID, Role: identity.ParseRole(user.Role)}, nil
}
