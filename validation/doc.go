// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package validation holds the pure input checks: poll input, passwords,
usernames, and option indexes. No I/O.

Every failure is a models.ValidationError with a stable Kind. Poll input is
also normalized here (trimmed question, blank options dropped, default
visibility private), so the store persists exactly what this package
returns.

Password rules run in a fixed order and report the first failure:
length, lowercase, uppercase, digit, special.
*/
package validation
