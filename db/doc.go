// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the backing database and creates the schema.

Two drivers are supported, selected by DATABASE_TYPE:

  - postgres: github.com/lib/pq
  - sqlite: modernc.org/sqlite (cgo-free; default for local dev and tests)

The DDL is written against the intersection of the two dialects: TEXT keys,
dollar placeholders, CURRENT-less timestamp columns filled by the
application in UTC, and a plain UNIQUE index on vote.dedup_key as the
duplicate-vote constraint.
*/
package db
