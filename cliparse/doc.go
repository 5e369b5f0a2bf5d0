// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse resolves server configuration.

Resolution order: CLI flags, then environment variables (with a .env file
loaded first via godotenv), then defaults.

	-p / PORT                  server port (default 3318)
	-d / DATABASE_URL          database connection string
	-t / DATABASE_TYPE         sqlite (default) or postgres
	-session-ttl / SESSION_TTL_HOURS  session lifetime (default 720h)

sqlite needs no DATABASE_URL (defaults to file:openballot.db); postgres
requires one.
*/
package cliparse
