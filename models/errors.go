// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "errors"

// Sentinel errors for every expected failure. Handlers map these to HTTP
// status codes; nothing else ever reaches a response body.
var (
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrInvalidOption      = errors.New("option index out of range")
	ErrDuplicateVote      = errors.New("vote already cast for this poll")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSessionExpired     = errors.New("session expired")

	// ErrStoreUnavailable marks a transient backing-store failure. Callers
	// may retry with backoff; the server itself never retries.
	ErrStoreUnavailable = errors.New("store temporarily unavailable")

	// ErrInternal covers unexpected store errors. The driver text is logged
	// server-side and never surfaced.
	ErrInternal = errors.New("internal error")
)

// Validation error kinds
const (
	KindEmptyQuestion       = "empty_question"
	KindQuestionTooLong     = "question_too_long"
	KindInsufficientOptions = "insufficient_options"
	KindOptionTooLong       = "option_too_long"
	KindInvalidCharacters   = "invalid_characters"
	KindInvalidVisibility   = "invalid_visibility"
	KindPasswordTooWeak     = "password_too_weak"
	KindInvalidUsername     = "invalid_username"
	KindOptionOutOfRange    = "option_out_of_range"
)

// ValidationError is a terminal, non-retryable input rejection. Kind is a
// stable machine-readable tag; Message is safe for UI display.
type ValidationError struct {
	Kind    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err is a ValidationError, returning it if so.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
