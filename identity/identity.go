// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package identity

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

// Role is the closed set of role claims a Principal can carry. The stored
// role string is parsed exactly once, here at the boundary; downstream code
// never re-interprets raw claim text.
type Role string

const (
	RoleAnonymous Role = "anonymous"
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
)

// ParseRole maps a stored role claim onto the closed Role set. Unknown
// claims degrade to RoleUser rather than failing the request.
func ParseRole(claim string) Role {
	switch claim {
	case string(RoleAdmin):
		return RoleAdmin
	default:
		return RoleUser
	}
}

// Principal is the resolved identity making a request. Immutable after
// construction; the zero ID marks the anonymous principal.
type Principal struct {
	ID   string
	Role Role
}

// Anonymous returns the principal used when no valid session exists.
func Anonymous() Principal {
	return Principal{Role: RoleAnonymous}
}

// IsAnonymous reports whether p carries no authenticated identity.
func (p Principal) IsAnonymous() bool {
	return p.ID == ""
}

// SessionSource resolves a bearer token into a Principal. Implemented by the
// store; expired or unknown tokens return an error.
type SessionSource interface {
	PrincipalByToken(ctx context.Context, token string) (Principal, error)
}

// Provider is the identity-provider adapter: it turns an incoming request
// into a Principal. It never fails - any resolution problem yields the
// anonymous principal.
type Provider struct {
	Sessions SessionSource
}

func NewProvider(sessions SessionSource) *Provider {
	return &Provider{Sessions: sessions}
}

// CurrentPrincipal resolves the request's principal from its bearer token.
func (p *Provider) CurrentPrincipal(r *http.Request) Principal {
	token := BearerToken(r)
	if token == "" {
		return Anonymous()
	}
	principal, err := p.Sessions.PrincipalByToken(r.Context(), token)
	if err != nil {
		slog.Debug("session resolution failed", "error", err)
		return Anonymous()
	}
	return principal
}

// BearerToken extracts the session token from the Authorization header
// ("Bearer <token>") or the X-Session-Token header.
func BearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	return r.Header.Get("X-Session-Token")
}
