// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/openballot/auth"
	"github.com/danielhkuo/openballot/cliparse"
	"github.com/danielhkuo/openballot/db"
	"github.com/danielhkuo/openballot/models"
)

// SetupTestDB creates a fresh in-memory sqlite database with the full
// schema. Each test gets its own database; nothing leaks between tests.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseType: "sqlite",
		DatabaseURL:  ":memory:",
		SessionTTL:   time.Hour,
	}
}

// CreateTestUser inserts an account and returns it. The password hash is a
// real bcrypt hash of password so login flows work against it.
func CreateTestUser(t *testing.T, conn *sql.DB, username, password, role string) models.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	user := models.User{
		ID:        uuid.New().String(),
		Username:  username,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	_, err = conn.Exec(`
		INSERT INTO user_account (id, username, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, user.ID, user.Username, hash, user.Role, user.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// CreateTestSession opens a session for the user and returns the token
func CreateTestSession(t *testing.T, conn *sql.DB, userID string) string {
	t.Helper()

	token, err := auth.GenerateSessionToken()
	if err != nil {
		t.Fatalf("Failed to generate session token: %v", err)
	}

	now := time.Now().UTC()
	_, err = conn.Exec(`
		INSERT INTO session (token, user_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
	`, token, userID, now, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}

	return token
}

// CreateTestPoll inserts a poll owned by ownerID and returns its ID
func CreateTestPoll(t *testing.T, conn *sql.DB, ownerID, visibility string, options []string, settings models.PollSettings) string {
	t.Helper()

	optionsJSON, err := json.Marshal(options)
	if err != nil {
		t.Fatalf("Failed to marshal options: %v", err)
	}

	pollID := uuid.New().String()
	_, err = conn.Exec(`
		INSERT INTO poll (id, owner_id, question, options, visibility, require_auth, allow_multiple_votes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, pollID, ownerID, "Test Poll?", string(optionsJSON), visibility,
		settings.RequireAuth, settings.AllowMultipleVotes, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	return pollID
}

// CountVotes returns the number of stored votes for a poll
func CountVotes(t *testing.T, conn *sql.DB, pollID string) int {
	t.Helper()

	var n int
	if err := conn.QueryRow("SELECT COUNT(*) FROM vote WHERE poll_id = $1", pollID).Scan(&n); err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
