// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/openballot/identity"
	"github.com/danielhkuo/openballot/models"
	"github.com/danielhkuo/openballot/policy"
	"github.com/danielhkuo/openballot/validation"
)

const pollColumns = "id, owner_id, question, options, visibility, require_auth, allow_multiple_votes, created_at"

// CreatePoll validates input and persists a new poll owned by the caller.
func (s *Store) CreatePoll(ctx context.Context, p identity.Principal, input models.PollInput) (models.Poll, error) {
	if p.IsAnonymous() {
		return models.Poll{}, models.ErrUnauthenticated
	}

	input, err := validation.PollInput(input)
	if err != nil {
		return models.Poll{}, err
	}

	poll := models.Poll{
		ID:         uuid.New().String(),
		OwnerID:    p.ID,
		Question:   input.Question,
		Options:    input.Options,
		Visibility: input.Visibility,
		Settings: models.PollSettings{
			RequireAuth:        input.RequireAuth,
			AllowMultipleVotes: input.AllowMultipleVotes,
		},
		CreatedAt: time.Now().UTC(),
	}

	options, err := json.Marshal(poll.Options)
	if err != nil {
		return models.Poll{}, mapError("marshal options", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO poll (id, owner_id, question, options, visibility, require_auth, allow_multiple_votes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, poll.ID, poll.OwnerID, poll.Question, string(options), poll.Visibility,
		poll.Settings.RequireAuth, poll.Settings.AllowMultipleVotes, poll.CreatedAt)
	if err != nil {
		return models.Poll{}, mapError("insert poll", err)
	}

	slog.Info("poll created", "poll_id", poll.ID, "owner_id", poll.OwnerID)
	s.pollsChanged(poll.ID)

	return poll, nil
}

// GetPoll loads a poll and discloses it only if the caller may read it.
func (s *Store) GetPoll(ctx context.Context, p identity.Principal, id string) (models.Poll, error) {
	poll, err := s.LookupPoll(ctx, id)
	if err != nil {
		return models.Poll{}, err
	}
	if !policy.CanRead(p, poll) {
		return models.Poll{}, models.ErrForbidden
	}
	return poll, nil
}

// LookupPoll loads a poll without a read-policy check. Callers must run
// their own policy check before disclosing anything derived from the
// result; the voting engine uses this with CanVote.
func (s *Store) LookupPoll(ctx context.Context, id string) (models.Poll, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+pollColumns+" FROM poll WHERE id = $1", id)
	return scanPoll(row)
}

// ListOwnedPolls returns the caller's polls, newest first. Anonymous
// principals own nothing, which is an empty result, not an error.
func (s *Store) ListOwnedPolls(ctx context.Context, p identity.Principal) ([]models.Poll, error) {
	if p.IsAnonymous() {
		return []models.Poll{}, nil
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+pollColumns+" FROM poll WHERE owner_id = $1 ORDER BY created_at DESC", p.ID)
	if err != nil {
		return nil, mapError("list owned polls", err)
	}
	defer rows.Close()

	return collectPolls(rows)
}

// ListPublicPolls returns publicly visible polls, newest first.
func (s *Store) ListPublicPolls(ctx context.Context) ([]models.Poll, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+pollColumns+" FROM poll WHERE visibility = $1 ORDER BY created_at DESC",
		models.VisibilityPublic)
	if err != nil {
		return nil, mapError("list public polls", err)
	}
	defer rows.Close()

	return collectPolls(rows)
}

// UpdatePoll replaces the poll's question, options, visibility, and
// settings. ID, owner, and creation time never change.
func (s *Store) UpdatePoll(ctx context.Context, p identity.Principal, id string, input models.PollInput) (models.Poll, error) {
	poll, err := s.LookupPoll(ctx, id)
	if err != nil {
		return models.Poll{}, err
	}
	if !policy.CanMutate(p, poll) {
		return models.Poll{}, models.ErrForbidden
	}

	input, err = validation.PollInput(input)
	if err != nil {
		return models.Poll{}, err
	}

	options, err := json.Marshal(input.Options)
	if err != nil {
		return models.Poll{}, mapError("marshal options", err)
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE poll
		SET question = $1, options = $2, visibility = $3, require_auth = $4, allow_multiple_votes = $5
		WHERE id = $6
	`, input.Question, string(options), input.Visibility, input.RequireAuth, input.AllowMultipleVotes, id)
	if err != nil {
		return models.Poll{}, mapError("update poll", err)
	}

	poll.Question = input.Question
	poll.Options = input.Options
	poll.Visibility = input.Visibility
	poll.Settings = models.PollSettings{
		RequireAuth:        input.RequireAuth,
		AllowMultipleVotes: input.AllowMultipleVotes,
	}

	slog.Info("poll updated", "poll_id", id)
	s.pollsChanged(id)

	return poll, nil
}

// DeletePoll removes a poll and its votes in one transaction, so a failure
// leaves both intact and success orphans nothing.
func (s *Store) DeletePoll(ctx context.Context, p identity.Principal, id string) error {
	poll, err := s.LookupPoll(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanMutate(p, poll) {
		return models.ErrForbidden
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return mapError("begin delete poll", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM vote WHERE poll_id = $1", id); err != nil {
		return mapError("delete votes", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM poll WHERE id = $1", id); err != nil {
		return mapError("delete poll", err)
	}
	if err := tx.Commit(); err != nil {
		return mapError("commit delete poll", err)
	}

	slog.Info("poll deleted", "poll_id", id, "owner_id", poll.OwnerID)
	s.pollsChanged(id)

	return nil
}

// InsertVote appends a vote. When dedupKey is non-empty the unique index on
// it makes this a conditional insert: a concurrent duplicate loses the race
// inside the database and surfaces as ErrDuplicateVote. No read precedes
// the write.
func (s *Store) InsertVote(ctx context.Context, vote models.Vote, dedupKey string) error {
	var key *string
	if dedupKey != "" {
		key = &dedupKey
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO vote (id, poll_id, voter_id, option_index, dedup_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, vote.ID, vote.PollID, vote.VoterID, vote.OptionIndex, key, vote.CastAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.ErrDuplicateVote
		}
		return mapError("insert vote", err)
	}
	return nil
}

// ListVotes returns a poll's votes, oldest first. Read access to the poll
// is required; votes are never disclosed past a poll the caller cannot see.
func (s *Store) ListVotes(ctx context.Context, p identity.Principal, pollID string) ([]models.Vote, error) {
	if _, err := s.GetPoll(ctx, p, pollID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, poll_id, voter_id, option_index, created_at
		FROM vote WHERE poll_id = $1 ORDER BY created_at
	`, pollID)
	if err != nil {
		return nil, mapError("list votes", err)
	}
	defer rows.Close()

	var votes []models.Vote
	for rows.Next() {
		var v models.Vote
		if err := rows.Scan(&v.ID, &v.PollID, &v.VoterID, &v.OptionIndex, &v.CastAt); err != nil {
			return nil, mapError("scan vote", err)
		}
		votes = append(votes, v)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("iterate votes", err)
	}
	return votes, nil
}

// Results tallies votes per option for a poll the caller may read. Options
// with no votes appear with a zero count.
func (s *Store) Results(ctx context.Context, p identity.Principal, pollID string) (models.ResultsResponse, error) {
	poll, err := s.GetPoll(ctx, p, pollID)
	if err != nil {
		return models.ResultsResponse{}, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT option_index, COUNT(*)
		FROM vote WHERE poll_id = $1
		GROUP BY option_index
	`, pollID)
	if err != nil {
		return models.ResultsResponse{}, mapError("tally votes", err)
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var idx, n int
		if err := rows.Scan(&idx, &n); err != nil {
			return models.ResultsResponse{}, mapError("scan tally", err)
		}
		counts[idx] = n
	}
	if err := rows.Err(); err != nil {
		return models.ResultsResponse{}, mapError("iterate tallies", err)
	}

	result := models.ResultsResponse{PollID: pollID, Tallies: make([]models.OptionTally, len(poll.Options))}
	for i, text := range poll.Options {
		result.Tallies[i] = models.OptionTally{OptionIndex: i, Text: text, Votes: counts[i]}
		result.Total += counts[i]
	}
	return result, nil
}

func scanPoll(row *sql.Row) (models.Poll, error) {
	var poll models.Poll
	var options string
	err := row.Scan(&poll.ID, &poll.OwnerID, &poll.Question, &options, &poll.Visibility,
		&poll.Settings.RequireAuth, &poll.Settings.AllowMultipleVotes, &poll.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Poll{}, models.ErrNotFound
	}
	if err != nil {
		return models.Poll{}, mapError("scan poll", err)
	}
	if err := json.Unmarshal([]byte(options), &poll.Options); err != nil {
		return models.Poll{}, mapError("unmarshal options", err)
	}
	return poll, nil
}

func collectPolls(rows *sql.Rows) ([]models.Poll, error) {
	polls := []models.Poll{}
	for rows.Next() {
		var poll models.Poll
		var options string
		err := rows.Scan(&poll.ID, &poll.OwnerID, &poll.Question, &options, &poll.Visibility,
			&poll.Settings.RequireAuth, &poll.Settings.AllowMultipleVotes, &poll.CreatedAt)
		if err != nil {
			return nil, mapError("scan poll", err)
		}
		if err := json.Unmarshal([]byte(options), &poll.Options); err != nil {
			return nil, mapError("unmarshal options", err)
		}
		polls = append(polls, poll)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("iterate polls", err)
	}
	return polls, nil
}
