// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Poll visibility constants
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// User role constants as stored in user_account.role
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Request types

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type PollInput struct {
	Question           string   `json:"question"`
	Options            []string `json:"options"`
	Visibility         string   `json:"visibility"`
	RequireAuth        bool     `json:"require_authentication"`
	AllowMultipleVotes bool     `json:"allow_multiple_votes"`
}

type SubmitVoteRequest struct {
	OptionIndex int `json:"option_index"`
}

// Response types

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type SessionResponse struct {
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

type AdminRouteResponse struct {
	Authorized bool   `json:"authorized"`
	RedirectTo string `json:"redirect_to,omitempty"`
}

type ResultsResponse struct {
	PollID  string        `json:"poll_id"`
	Tallies []OptionTally `json:"tallies"`
	Total   int           `json:"total"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// Domain types

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type Session struct {
	Token     string    `json:"-"` // Never expose in JSON
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PollSettings are the per-poll voting rules persisted with the poll.
type PollSettings struct {
	RequireAuth        bool `json:"require_authentication"`
	AllowMultipleVotes bool `json:"allow_multiple_votes"`
}

type Poll struct {
	ID         string       `json:"id"`
	OwnerID    string       `json:"owner_id"`
	Question   string       `json:"question"`
	Options    []string     `json:"options"`
	Visibility string       `json:"visibility"`
	Settings   PollSettings `json:"settings"`
	CreatedAt  time.Time    `json:"created_at"`
}

// Vote is append-only; VoterID is nil for anonymous votes on polls that
// allow them.
type Vote struct {
	ID          string    `json:"id"`
	PollID      string    `json:"poll_id"`
	VoterID     *string   `json:"voter_id,omitempty"`
	OptionIndex int       `json:"option_index"`
	CastAt      time.Time `json:"cast_at"`
}

type OptionTally struct {
	OptionIndex int    `json:"option_index"`
	Text        string `json:"text"`
	Votes       int    `json:"votes"`
}
