// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package validation

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/danielhkuo/openballot/models"
)

const (
	// MaxQuestionLen and MaxOptionLen bound stored text. Rendering
	// collaborators still treat all stored text as untrusted.
	MaxQuestionLen = 500
	MaxOptionLen   = 500

	MinOptions = 2

	MinUsernameLen = 2
	MaxUsernameLen = 50

	MinPasswordLen = 8
)

// PollInput validates and normalizes poll creation/update input. Options are
// trimmed and blank entries dropped before the minimum-count check. The
// returned input is the canonical form to persist.
func PollInput(in models.PollInput) (models.PollInput, error) {
	question := strings.TrimSpace(in.Question)
	if question == "" {
		return models.PollInput{}, &models.ValidationError{
			Kind:    models.KindEmptyQuestion,
			Message: "question is required",
		}
	}
	// Limits count characters, not bytes; multibyte text is not penalized.
	if utf8.RuneCountInString(question) > MaxQuestionLen {
		return models.PollInput{}, &models.ValidationError{
			Kind:    models.KindQuestionTooLong,
			Message: fmt.Sprintf("question must be at most %d characters", MaxQuestionLen),
		}
	}
	if hasControlChars(question) {
		return models.PollInput{}, &models.ValidationError{
			Kind:    models.KindInvalidCharacters,
			Message: "question contains control characters",
		}
	}

	options := make([]string, 0, len(in.Options))
	for _, opt := range in.Options {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			continue
		}
		if utf8.RuneCountInString(opt) > MaxOptionLen {
			return models.PollInput{}, &models.ValidationError{
				Kind:    models.KindOptionTooLong,
				Message: fmt.Sprintf("options must be at most %d characters", MaxOptionLen),
			}
		}
		if hasControlChars(opt) {
			return models.PollInput{}, &models.ValidationError{
				Kind:    models.KindInvalidCharacters,
				Message: "option contains control characters",
			}
		}
		options = append(options, opt)
	}
	if len(options) < MinOptions {
		return models.PollInput{}, &models.ValidationError{
			Kind:    models.KindInsufficientOptions,
			Message: fmt.Sprintf("poll needs at least %d non-blank options", MinOptions),
		}
	}

	visibility := in.Visibility
	switch visibility {
	case models.VisibilityPublic, models.VisibilityPrivate:
	case "":
		// Not explicitly public means owner-only.
		visibility = models.VisibilityPrivate
	default:
		return models.PollInput{}, &models.ValidationError{
			Kind:    models.KindInvalidVisibility,
			Message: "visibility must be public or private",
		}
	}

	return models.PollInput{
		Question:           question,
		Options:            options,
		Visibility:         visibility,
		RequireAuth:        in.RequireAuth,
		AllowMultipleVotes: in.AllowMultipleVotes,
	}, nil
}

// Password enforces the registration password policy. Rules are checked in a
// fixed order (length, lowercase, uppercase, digit, special) and the first
// failing rule's message is returned.
func Password(candidate string) error {
	if len(candidate) < MinPasswordLen {
		return weak(fmt.Sprintf("password must be at least %d characters", MinPasswordLen))
	}
	var lower, upper, digit, special bool
	for _, r := range candidate {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}
	if !lower {
		return weak("password must contain a lowercase letter")
	}
	if !upper {
		return weak("password must contain an uppercase letter")
	}
	if !digit {
		return weak("password must contain a digit")
	}
	if !special {
		return weak("password must contain a special character")
	}
	return nil
}

// Username checks the claimable username shape.
func Username(username string) error {
	if n := utf8.RuneCountInString(username); n < MinUsernameLen || n > MaxUsernameLen {
		return &models.ValidationError{
			Kind:    models.KindInvalidUsername,
			Message: fmt.Sprintf("username must be %d-%d characters", MinUsernameLen, MaxUsernameLen),
		}
	}
	if hasControlChars(username) || strings.ContainsAny(username, " \t") {
		return &models.ValidationError{
			Kind:    models.KindInvalidUsername,
			Message: "username must not contain whitespace or control characters",
		}
	}
	return nil
}

// OptionIndex checks that index is a valid position into the poll's options.
func OptionIndex(poll models.Poll, index int) error {
	if index < 0 || index >= len(poll.Options) {
		return &models.ValidationError{
			Kind:    models.KindOptionOutOfRange,
			Message: fmt.Sprintf("option index %d out of range [0, %d)", index, len(poll.Options)),
		}
	}
	return nil
}

func weak(message string) error {
	return &models.ValidationError{Kind: models.KindPasswordTooWeak, Message: message}
}

func hasControlChars(s string) bool {
	return strings.ContainsFunc(s, unicode.IsControl)
}
