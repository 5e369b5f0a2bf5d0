// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API,
plus the error taxonomy shared by every layer.

# Request Types

Types for parsing incoming JSON:

  - RegisterRequest / LoginRequest: username, password
  - PollInput: question, options, visibility, voting settings
  - SubmitVoteRequest: option_index

# Response Types

Types for JSON responses:

  - AuthResponse: session token plus the user record
  - SessionResponse: user_id, expires_at
  - AdminRouteResponse: authorized or a redirect target
  - ResultsResponse: per-option tallies
  - ErrorResponse: error, code, message

# Domain Types

Internal data structures:

  - User: account record (password hash never leaves the store)
  - Session: bearer-token session
  - Poll: question, ordered options, visibility, settings
  - Vote: append-only cast choice; voter_id nil for anonymous votes
  - OptionTally: vote count for one option

# Errors

Every expected failure is a sentinel error (ErrForbidden, ErrNotFound,
ErrDuplicateVote, ...) or a ValidationError with a stable Kind tag.
Handlers translate these into HTTP statuses; unexpected store errors are
collapsed into ErrInternal so driver internals never leak to callers.
ErrStoreUnavailable is the one retryable kind.
*/
package models
