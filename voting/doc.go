// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package voting is the vote-submission engine.

SubmitVote runs the fixed pipeline: load poll, CanVote policy check,
option-index validation, then a single conditional insert. Duplicate
suppression lives in the database (unique index on the vote's dedup key),
never in application-level read-then-write, so concurrent submissions by
the same voter resolve to exactly one recorded vote and one
ErrDuplicateVote.

Anonymous voting is allowed only on polls that do not require
authentication, and anonymous votes cannot be deduplicated - they carry no
voter identity by design.
*/
package voting
