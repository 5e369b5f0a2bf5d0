// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the poll store gateway: the single component with access
to the database.

# Checked By Construction

Disclosing and mutating methods take the caller's identity.Principal and
run the matching policy check internally (CanRead for reads, CanMutate for
update/delete). There is no exported method that writes poll data without
a check; "checked" is the only code path. LookupPoll is the one policy-free
read, documented for the voting engine which applies CanVote itself.

# Vote Integrity

InsertVote is a single conditional insert: the unique index on
vote.dedup_key enforces one vote per (poll, voter) when the poll disallows
multiple votes. There is no check-then-insert window; concurrent
duplicates lose inside the database and come back as ErrDuplicateVote,
which also makes submit retries idempotent in effect.

# Cascade Delete

DeletePoll removes the poll and its votes in one transaction and then
notifies OnPollsChanged listeners, so cached listings can be invalidated.

# Error Mapping

Driver errors never escape: connection-class failures map to
ErrStoreUnavailable (retryable), uniqueness violations to their business
error, and everything else to ErrInternal with details only in the log.
*/
package store
