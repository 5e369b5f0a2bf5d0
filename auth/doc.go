// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides credential hashing and token generation utilities.

# Session Tokens

Session tokens are random 24-byte (192-bit) secrets:

	token, err := auth.GenerateSessionToken()

Tokens are URL-safe base64 encoded without padding and presented as bearer
tokens. The token itself carries no claims; it is only a lookup key into
the session table.

# Passwords

Passwords are hashed with bcrypt at the default cost:

	hash, err := auth.HashPassword(password)
	ok := auth.CheckPassword(hash, candidate)

CheckPassword reports only success or failure; wrong-password and
malformed-hash cases are indistinguishable to callers.
*/
package auth
