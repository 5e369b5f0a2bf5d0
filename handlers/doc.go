// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the HTTP invocation surface.

Handlers are thin adapters: parse the request, resolve the principal via
the identity provider, call the core (store gateway or voting engine), and
map the returned taxonomy error to a status code. No authorization or
storage logic lives here.

  - AuthHandler: register, login, logout, me, session
  - PollHandler: poll CRUD, listings, results
  - VotingHandler: vote submission
  - AdminHandler: admin-view routing decision
*/
package handlers
