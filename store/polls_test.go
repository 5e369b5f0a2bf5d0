// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/danielhkuo/openballot/identity"
	"github.com/danielhkuo/openballot/models"
	"github.com/danielhkuo/openballot/testutil"
)

func principalFor(user models.User) identity.Principal {
	return identity.Principal{ID: user.ID, Role: identity.ParseRole(user.Role)}
}

func TestCreateAndGetPollRoundTrip(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := New(conn)
	ctx := context.Background()

	owner := testutil.CreateTestUser(t, conn, "alice", "Strong1Pass!", models.RoleUser)
	p := principalFor(owner)

	created, err := s.CreatePoll(ctx, p, models.PollInput{
		Question:   "Best color?",
		Options:    []string{"Red", "Blue"},
		Visibility: models.VisibilityPublic,
	})
	if err != nil {
		t.Fatalf("CreatePoll() error = %v", err)
	}
	if created.OwnerID != owner.ID {
		t.Errorf("OwnerID = %q, want %q", created.OwnerID, owner.ID)
	}

	got, err := s.GetPoll(ctx, p, created.ID)
	if err != nil {
		t.Fatalf("GetPoll() error = %v", err)
	}
	if got.Question != "Best color?" {
		t.Errorf("Question = %q", got.Question)
	}
	if len(got.Options) != 2 || got.Options[0] != "Red" || got.Options[1] != "Blue" {
		t.Errorf("Options = %v", got.Options)
	}

	// Reads have no side effects: a second read returns the same poll.
	again, err := s.GetPoll(ctx, p, created.ID)
	if err != nil {
		t.Fatalf("second GetPoll() error = %v", err)
	}
	if again.ID != got.ID || again.Question != got.Question {
		t.Error("GetPoll() is not idempotent")
	}
}

func TestCreatePollRequiresAuthentication(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := New(conn)

	_, err := s.CreatePoll(context.Background(), identity.Anonymous(), models.PollInput{
		Question: "Q?", Options: []string{"A", "B"},
	})
	if !errors.Is(err, models.ErrUnauthenticated) {
		t.Errorf("CreatePoll(anonymous) error = %v, want ErrUnauthenticated", err)
	}
}

func TestCreatePollValidatesInput(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := New(conn)

	owner := testutil.CreateTestUser(t, conn, "alice", "Strong1Pass!", models.RoleUser)
	_, err := s.CreatePoll(context.Background(), principalFor(owner), models.PollInput{
		Question: "Q?", Options: []string{"Only one"},
	})
	ve, ok := models.IsValidation(err)
	if !ok || ve.Kind != models.KindInsufficientOptions {
		t.Errorf("CreatePoll() error = %v, want insufficient_options", err)
	}
}

func TestGetPollVisibility(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := New(conn)
	ctx := context.Background()

	owner := testutil.CreateTestUser(t, conn, "alice", "Strong1Pass!", models.RoleUser)
	stranger := testutil.CreateTestUser(t, conn, "bob", "Strong1Pass!", models.RoleUser)

	private := testutil.CreateTestPoll(t, conn, owner.ID, models.VisibilityPrivate, []string{"A", "B"}, models.PollSettings{})
	public := testutil.CreateTestPoll(t, conn, owner.ID, models.VisibilityPublic, []string{"A", "B"}, models.PollSettings{})

	// Owner reads both
	if _, err := s.GetPoll(ctx, principalFor(owner), private); err != nil {
		t.Errorf("owner read private: %v", err)
	}

	// Stranger and anonymous read public only
	if _, err := s.GetPoll(ctx, principalFor(stranger), public); err != nil {
		t.Errorf("stranger read public: %v", err)
	}
	if _, err := s.GetPoll(ctx, principalFor(stranger), private); !errors.Is(err, models.ErrForbidden) {
		t.Errorf("stranger read private = %v, want ErrForbidden", err)
	}
	if _, err := s.GetPoll(ctx, identity.Anonymous(), private); !errors.Is(err, models.ErrForbidden) {
		t.Errorf("anonymous read private = %v, want ErrForbidden", err)
	}

	// Unknown id is NotFound, not Forbidden
	if _, err := s.GetPoll(ctx, principalFor(owner), "missing"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("missing poll = %v, want ErrNotFound", err)
	}
}

func TestUpdatePollOwnershipScoped(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := New(conn)
	ctx := context.Background()

	owner := testutil.CreateTestUser(t, conn, "alice", "Strong1Pass!", models.RoleUser)
	stranger := testutil.CreateTestUser(t, conn, "bob", "Strong1Pass!", models.RoleUser)
	pollID := testutil.CreateTestPoll(t, conn, owner.ID, models.VisibilityPublic, []string{"A", "B"}, models.PollSettings{})

	input := models.PollInput{Question: "Changed?", Options: []string{"X", "Y", "Z"}, Visibility: models.VisibilityPublic}

	// Non-owner is rejected and the poll is unchanged
	if _, err := s.UpdatePoll(ctx, principalFor(stranger), pollID, input); !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("stranger update = %v, want ErrForbidden", err)
	}
	unchanged, err := s.GetPoll(ctx, principalFor(owner), pollID)
	if err != nil {
		t.Fatal(err)
	}
	if unchanged.Question != "Test Poll?" {
		t.Errorf("poll mutated by forbidden update: %q", unchanged.Question)
	}

	// Owner update goes through; id and owner are preserved
	updated, err := s.UpdatePoll(ctx, principalFor(owner), pollID, input)
	if err != nil {
		t.Fatalf("owner update error = %v", err)
	}
	if updated.ID != pollID || updated.OwnerID != owner.ID {
		t.Error("update changed id or owner")
	}
	if updated.Question != "Changed?" || len(updated.Options) != 3 {
		t.Errorf("update not applied: %+v", updated)
	}

	// Anonymous never mutates
	if _, err := s.UpdatePoll(ctx, identity.Anonymous(), pollID, input); !errors.Is(err, models.ErrForbidden) {
		t.Errorf("anonymous update = %v, want ErrForbidden", err)
	}
}

func TestDeletePollCascades(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := New(conn)
	ctx := context.Background()

	owner := testutil.CreateTestUser(t, conn, "alice", "Strong1Pass!", models.RoleUser)
	voter := testutil.CreateTestUser(t, conn, "bob", "Strong1Pass!", models.RoleUser)
	stranger := testutil.CreateTestUser(t, conn, "carol", "Strong1Pass!", models.RoleUser)
	pollID := testutil.CreateTestPoll(t, conn, owner.ID, models.VisibilityPublic, []string{"A", "B"}, models.PollSettings{})

	voterID := voter.ID
	vote := models.Vote{ID: "v1", PollID: pollID, VoterID: &voterID, OptionIndex: 0}
	if err := s.InsertVote(ctx, vote, pollID+":"+voterID); err != nil {
		t.Fatalf("InsertVote() error = %v", err)
	}

	// Non-owner delete is rejected and nothing is removed
	if err := s.DeletePoll(ctx, principalFor(stranger), pollID); !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("stranger delete = %v, want ErrForbidden", err)
	}
	if _, err := s.GetPoll(ctx, principalFor(owner), pollID); err != nil {
		t.Errorf("poll gone after forbidden delete: %v", err)
	}

	// Owner delete removes the poll and its votes together
	if err := s.DeletePoll(ctx, principalFor(owner), pollID); err != nil {
		t.Fatalf("owner delete error = %v", err)
	}
	if _, err := s.GetPoll(ctx, principalFor(owner), pollID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("deleted poll still readable: %v", err)
	}
	if n := testutil.CountVotes(t, conn, pollID); n != 0 {
		t.Errorf("cascade left %d orphaned votes", n)
	}
}

func TestListOwnedPolls(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := New(conn)
	ctx := context.Background()

	alice := testutil.CreateTestUser(t, conn, "alice", "Strong1Pass!", models.RoleUser)
	bob := testutil.CreateTestUser(t, conn, "bob", "Strong1Pass!", models.RoleUser)

	first := testutil.CreateTestPoll(t, conn, alice.ID, models.VisibilityPrivate, []string{"A", "B"}, models.PollSettings{})
	second := testutil.CreateTestPoll(t, conn, alice.ID, models.VisibilityPublic, []string{"A", "B"}, models.PollSettings{})
	testutil.CreateTestPoll(t, conn, bob.ID, models.VisibilityPublic, []string{"A", "B"}, models.PollSettings{})

	polls, err := s.ListOwnedPolls(ctx, principalFor(alice))
	if err != nil {
		t.Fatalf("ListOwnedPolls() error = %v", err)
	}
	if len(polls) != 2 {
		t.Fatalf("got %d polls, want 2", len(polls))
	}
	// Newest first
	if polls[0].ID != second || polls[1].ID != first {
		t.Errorf("polls not ordered by created_at DESC: %s, %s", polls[0].ID, polls[1].ID)
	}

	// Anonymous owns nothing - empty, not an error
	anonPolls, err := s.ListOwnedPolls(ctx, identity.Anonymous())
	if err != nil {
		t.Fatalf("ListOwnedPolls(anonymous) error = %v", err)
	}
	if len(anonPolls) != 0 {
		t.Errorf("anonymous owns %d polls, want 0", len(anonPolls))
	}
}

func TestListPublicPolls(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := New(conn)

	alice := testutil.CreateTestUser(t, conn, "alice", "Strong1Pass!", models.RoleUser)
	testutil.CreateTestPoll(t, conn, alice.ID, models.VisibilityPrivate, []string{"A", "B"}, models.PollSettings{})
	public := testutil.CreateTestPoll(t, conn, alice.ID, models.VisibilityPublic, []string{"A", "B"}, models.PollSettings{})

	polls, err := s.ListPublicPolls(context.Background())
	if err != nil {
		t.Fatalf("ListPublicPolls() error = %v", err)
	}
	if len(polls) != 1 || polls[0].ID != public {
		t.Errorf("public listing = %v", polls)
	}
}

func TestListVotesGatedByReadPolicy(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := New(conn)
	ctx := context.Background()

	owner := testutil.CreateTestUser(t, conn, "alice", "Strong1Pass!", models.RoleUser)
	voter := testutil.CreateTestUser(t, conn, "bob", "Strong1Pass!", models.RoleUser)
	pollID := testutil.CreateTestPoll(t, conn, owner.ID, models.VisibilityPrivate, []string{"A", "B"}, models.PollSettings{})

	voterID := voter.ID
	if err := s.InsertVote(ctx, models.Vote{ID: "v1", PollID: pollID, VoterID: &voterID, OptionIndex: 1}, pollID+":"+voterID); err != nil {
		t.Fatalf("InsertVote() error = %v", err)
	}

	votes, err := s.ListVotes(ctx, principalFor(owner), pollID)
	if err != nil {
		t.Fatalf("ListVotes() error = %v", err)
	}
	if len(votes) != 1 || votes[0].OptionIndex != 1 {
		t.Errorf("votes = %+v", votes)
	}
	if votes[0].VoterID == nil || *votes[0].VoterID != voterID {
		t.Error("vote missing voter id")
	}

	// Votes are never disclosed past a poll the caller cannot read
	if _, err := s.ListVotes(ctx, identity.Anonymous(), pollID); !errors.Is(err, models.ErrForbidden) {
		t.Errorf("anonymous ListVotes = %v, want ErrForbidden", err)
	}
}

func TestResultsTally(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := New(conn)
	ctx := context.Background()

	owner := testutil.CreateTestUser(t, conn, "alice", "Strong1Pass!", models.RoleUser)
	pollID := testutil.CreateTestPoll(t, conn, owner.ID, models.VisibilityPublic, []string{"Red", "Blue", "Green"}, models.PollSettings{})

	for i, voter := range []string{"v1", "v2", "v3"} {
		u := testutil.CreateTestUser(t, conn, voter, "Strong1Pass!", models.RoleUser)
		idx := 0
		if i == 2 {
			idx = 1
		}
		uid := u.ID
		if err := s.InsertVote(ctx, models.Vote{ID: voter, PollID: pollID, VoterID: &uid, OptionIndex: idx}, pollID+":"+uid); err != nil {
			t.Fatalf("InsertVote() error = %v", err)
		}
	}

	results, err := s.Results(ctx, identity.Anonymous(), pollID)
	if err != nil {
		t.Fatalf("Results() error = %v", err)
	}
	if results.Total != 3 {
		t.Errorf("Total = %d, want 3", results.Total)
	}
	if len(results.Tallies) != 3 {
		t.Fatalf("tallies for %d options, want 3", len(results.Tallies))
	}
	if results.Tallies[0].Votes != 2 || results.Tallies[1].Votes != 1 || results.Tallies[2].Votes != 0 {
		t.Errorf("tallies = %+v", results.Tallies)
	}
	if results.Tallies[2].Text != "Green" {
		t.Errorf("tally text = %q, want Green", results.Tallies[2].Text)
	}
}

func TestPollsChangedListener(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := New(conn)
	ctx := context.Background()

	var changed []string
	s.OnPollsChanged(func(pollID string) { changed = append(changed, pollID) })

	owner := testutil.CreateTestUser(t, conn, "alice", "Strong1Pass!", models.RoleUser)
	p := principalFor(owner)

	poll, err := s.CreatePoll(ctx, p, models.PollInput{Question: "Q?", Options: []string{"A", "B"}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.UpdatePoll(ctx, p, poll.ID, models.PollInput{Question: "Q2?", Options: []string{"A", "B"}}); err != nil {
		t.Fatal(err)
	}
	if err := s.DeletePoll(ctx, p, poll.ID); err != nil {
		t.Fatal(err)
	}

	if len(changed) != 3 {
		t.Fatalf("listener fired %d times, want 3", len(changed))
	}
	for _, id := range changed {
		if id != poll.ID {
			t.Errorf("listener got poll id %q, want %q", id, poll.ID)
		}
	}

	// Forbidden mutations never fire the listener
	stranger := testutil.CreateTestUser(t, conn, "bob", "Strong1Pass!", models.RoleUser)
	other := testutil.CreateTestPoll(t, conn, owner.ID, models.VisibilityPublic, []string{"A", "B"}, models.PollSettings{})
	changed = changed[:0]
	if err := s.DeletePoll(ctx, principalFor(stranger), other); !errors.Is(err, models.ErrForbidden) {
		t.Fatal(err)
	}
	if len(changed) != 0 {
		t.Error("listener fired for a forbidden delete")
	}
}
