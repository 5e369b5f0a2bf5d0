// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the openballot API server.

openballot is a multi-user polling service: users register and log in,
create polls with ordered options, and cast votes. Owners edit and delete
their own polls; an admin role gates the administrative view. One vote per
authenticated voter per poll is enforced by the database, not by
application-level checks.

# Starting the Server

The server runs on sqlite out of the box:

	go run .

Or against PostgreSQL:

	DATABASE_TYPE=postgres DATABASE_URL=postgres://... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..."

# Configuration

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - DATABASE_URL (-d): connection string (required for postgres)
  - SESSION_TTL_HOURS (-session-ttl): session lifetime (default: 720)

A .env file in the working directory is loaded first.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (auth, polls, voting, admin)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response/domain types and the error taxonomy
  - identity: Principal resolution with a closed role enum
  - policy: Authorization decisions (read, mutate, vote, admin gate)
  - store: Policy-checked store gateway (the only DB access)
  - voting: Vote submission engine
  - validation: Pure input checks
  - auth: Token generation and password hashing
  - db: Connection and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
