// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package identity resolves the authenticated principal for a request.

A Principal is {ID, Role} where Role is a closed enum (user, admin,
anonymous) parsed once from the stored claim at this boundary. The rest of
the codebase only ever sees the parsed Role; nothing downstream interprets
raw claim strings.

The Provider contract never fails: a missing, malformed, expired, or
unresolvable session token yields the anonymous principal, and the caller's
policy checks take it from there.
*/
package identity
