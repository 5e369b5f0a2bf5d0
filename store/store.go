// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/danielhkuo/openballot/models"
)

// Store is the poll store gateway: the only component that touches the
// database. Every disclosing or mutating method takes the caller's
// principal and runs the matching policy check before touching a row, so
// an unchecked path to the store does not exist.
type Store struct {
	db *sql.DB

	mu        sync.RWMutex
	listeners []func(pollID string)
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// OnPollsChanged registers a listener invoked after a poll is created,
// updated, or deleted. Collaborators use it to invalidate cached listings.
// Listeners run synchronously after the write commits.
func (s *Store) OnPollsChanged(fn func(pollID string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) pollsChanged(pollID string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, fn := range s.listeners {
		fn(pollID)
	}
}

// mapError collapses driver errors into the taxonomy. Connection-class
// failures become ErrStoreUnavailable (retryable); everything else is
// logged and surfaced as ErrInternal with no driver detail attached.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrConnDone) || errors.Is(err, driver.ErrBadConn) {
		return models.ErrStoreUnavailable
	}
	msg := err.Error()
	if strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database is closed") {
		return models.ErrStoreUnavailable
	}
	slog.Error("store error", "op", op, "error", err)
	return models.ErrInternal
}

// isUniqueViolation detects a uniqueness-constraint rejection from either
// driver by message shape (pq and sqlite spell it differently).
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
