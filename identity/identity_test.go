// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package identity

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
)

type fakeSessions struct {
	principals map[string]Principal
}

func (f *fakeSessions) PrincipalByToken(_ context.Context, token string) (Principal, error) {
	p, ok := f.principals[token]
	if !ok {
		return Principal{}, errors.New("unknown token")
	}
	return p, nil
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		claim string
		want  Role
	}{
		{"admin", RoleAdmin},
		{"user", RoleUser},
		{"", RoleUser},
		{"superuser", RoleUser}, // unknown claims degrade to user
	}
	for _, tt := range tests {
		if got := ParseRole(tt.claim); got != tt.want {
			t.Errorf("ParseRole(%q) = %q, want %q", tt.claim, got, tt.want)
		}
	}
}

func TestCurrentPrincipal(t *testing.T) {
	provider := NewProvider(&fakeSessions{principals: map[string]Principal{
		"good-token":  {ID: "u1", Role: RoleUser},
		"admin-token": {ID: "u2", Role: RoleAdmin},
	}})

	tests := []struct {
		name    string
		headers map[string]string
		want    Principal
	}{
		{"no token", nil, Anonymous()},
		{"bearer token", map[string]string{"Authorization": "Bearer good-token"}, Principal{ID: "u1", Role: RoleUser}},
		{"session header", map[string]string{"X-Session-Token": "admin-token"}, Principal{ID: "u2", Role: RoleAdmin}},
		{"unknown token", map[string]string{"Authorization": "Bearer bogus"}, Anonymous()},
		{"malformed authorization", map[string]string{"Authorization": "Basic abc"}, Anonymous()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			got := provider.CurrentPrincipal(r)
			if got != tt.want {
				t.Errorf("CurrentPrincipal() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestAnonymousPrincipal(t *testing.T) {
	p := Anonymous()
	if !p.IsAnonymous() {
		t.Error("Anonymous() should be anonymous")
	}
	if (Principal{ID: "u1", Role: RoleUser}).IsAnonymous() {
		t.Error("principal with an ID should not be anonymous")
	}
}
