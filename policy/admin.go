// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package policy

import "github.com/danielhkuo/openballot/identity"

// Redirect targets for the admin gate.
const (
	LoginTarget   = "/login"
	DefaultTarget = "/"
)

// AdminDecision is the result of routing a principal toward the
// administrative view.
type AdminDecision struct {
	Authorized bool
	RedirectTo string // set only when not authorized
}

// RouteAdmin decides whether p reaches the administrative view. Anonymous
// principals are sent to login, authenticated non-admins to the default
// view. Deterministic, no side effects.
func RouteAdmin(p identity.Principal) AdminDecision {
	if p.IsAnonymous() {
		return AdminDecision{RedirectTo: LoginTarget}
	}
	if !IsAdmin(p) {
		return AdminDecision{RedirectTo: DefaultTarget}
	}
	return AdminDecision{Authorized: true}
}
