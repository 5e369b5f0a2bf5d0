// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"strings"
	"testing"
)

func TestGenerateSessionToken(t *testing.T) {
	token, err := GenerateSessionToken()
	if err != nil {
		t.Fatalf("GenerateSessionToken() error = %v", err)
	}
	if token == "" {
		t.Fatal("GenerateSessionToken() returned empty token")
	}
	if strings.ContainsAny(token, "=+/") {
		t.Errorf("token should be URL-safe without padding: %q", token)
	}

	token2, _ := GenerateSessionToken()
	if token == token2 {
		t.Error("GenerateSessionToken() produced duplicate tokens (extremely unlikely)")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("Strong1Pass!")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "Strong1Pass!" {
		t.Error("HashPassword() must not store plaintext")
	}

	if !CheckPassword(hash, "Strong1Pass!") {
		t.Error("CheckPassword() rejected the correct password")
	}
	if CheckPassword(hash, "Wrong1Pass!") {
		t.Error("CheckPassword() accepted a wrong password")
	}
	if CheckPassword("not-a-bcrypt-hash", "Strong1Pass!") {
		t.Error("CheckPassword() accepted a malformed hash")
	}

	// Same password twice must produce different hashes (random salt)
	hash2, _ := HashPassword("Strong1Pass!")
	if hash == hash2 {
		t.Error("HashPassword() should salt: identical hashes for same input")
	}
}
