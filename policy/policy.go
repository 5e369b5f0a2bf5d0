// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package policy

import (
	"github.com/danielhkuo/openballot/identity"
	"github.com/danielhkuo/openballot/models"
)

// CanRead reports whether p may see the poll: public polls are readable by
// everyone including anonymous principals, private polls only by the owner.
func CanRead(p identity.Principal, poll models.Poll) bool {
	if poll.Visibility == models.VisibilityPublic {
		return true
	}
	return !p.IsAnonymous() && p.ID == poll.OwnerID
}

// CanMutate reports whether p may update or delete the poll. Only the owner
// may; anonymous principals never mutate. Admin role does not override
// ownership.
func CanMutate(p identity.Principal, poll models.Poll) bool {
	return !p.IsAnonymous() && p.ID == poll.OwnerID
}

// CanVote reports whether p may cast a vote on the poll. Polls that require
// authentication reject anonymous principals; everything else is open.
func CanVote(p identity.Principal, poll models.Poll) bool {
	if poll.Settings.RequireAuth {
		return !p.IsAnonymous()
	}
	return true
}

// IsAdmin reports whether p carries the admin role. It gates only the
// administrative view; it grants no read or mutate rights over user data.
func IsAdmin(p identity.Principal) bool {
	return p.Role == identity.RoleAdmin
}
