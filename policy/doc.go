// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package policy is the authorization layer, written as code so the full set
of access rules lives in one auditable place.

Every function is pure and total: given a principal and (where relevant) a
poll, it returns a decision and never errors. The store gateway calls these
before any disclosure or mutation, so there is no unchecked path to the
database.

Rules:

  - CanRead: public poll, or caller owns it
  - CanMutate: caller owns it (anonymous never)
  - CanVote: poll does not require auth, or caller is authenticated
  - IsAdmin: role claim is admin; gates navigation only
  - RouteAdmin: admin-view routing decision (authorized / redirect)

IsAdmin deliberately grants nothing beyond the administrative view; an
admin editing someone's poll goes through CanMutate like anyone else.
*/
package policy
