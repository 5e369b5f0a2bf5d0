// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/openballot/identity"
	"github.com/danielhkuo/openballot/models"
	"github.com/danielhkuo/openballot/policy"
	"github.com/danielhkuo/openballot/store"
	"github.com/danielhkuo/openballot/validation"
)

// Engine orchestrates vote submission against the store gateway.
type Engine struct {
	store *store.Store
}

func NewEngine(s *store.Store) *Engine {
	return &Engine{store: s}
}

// SubmitVote records one vote for the principal on the given poll.
//
// Order of checks: poll existence, CanVote policy, option index. The
// duplicate-vote rule is enforced by the store's uniqueness constraint in
// the same insert that records the vote, so two concurrent submissions by
// the same voter can never both land; the loser gets ErrDuplicateVote.
//
// Anonymous votes (permitted only when the poll does not require
// authentication) carry no voter identity, so no duplicate suppression is
// possible for them. That is an accepted, documented property of anonymous
// polls, not a defect.
func (e *Engine) SubmitVote(ctx context.Context, p identity.Principal, pollID string, optionIndex int) (models.Vote, error) {
	poll, err := e.store.LookupPoll(ctx, pollID)
	if err != nil {
		return models.Vote{}, err
	}

	if !policy.CanVote(p, poll) {
		return models.Vote{}, models.ErrForbidden
	}

	if err := validation.OptionIndex(poll, optionIndex); err != nil {
		return models.Vote{}, models.ErrInvalidOption
	}

	vote := models.Vote{
		ID:          uuid.New().String(),
		PollID:      poll.ID,
		OptionIndex: optionIndex,
		CastAt:      time.Now().UTC(),
	}
	if !p.IsAnonymous() {
		voterID := p.ID
		vote.VoterID = &voterID
	}

	// One vote per voter unless the poll allows more; dedup key only when
	// the rule applies, so multi-vote polls and anonymous votes never
	// collide on the unique index.
	var dedupKey string
	if !poll.Settings.AllowMultipleVotes && vote.VoterID != nil {
		dedupKey = poll.ID + ":" + *vote.VoterID
	}

	if err := e.store.InsertVote(ctx, vote, dedupKey); err != nil {
		return models.Vote{}, err
	}

	slog.Info("vote cast", "poll_id", poll.ID, "option_index", optionIndex, "anonymous", vote.VoterID == nil)
	return vote, nil
}
