// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const defaultSessionTTL = 720 * time.Hour // 30 days

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	SessionTTL   time.Duration
}

// ParseFlags resolves configuration from CLI flags, falling back to
// environment variables (a .env file is loaded first if present).
func ParseFlags(args []string) (Config, error) {
	// Missing .env is fine; env vars and flags still apply.
	_ = godotenv.Load()

	var cfg Config
	var ttlHours int

	fs := flag.NewFlagSet("openballot", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.IntVar(&ttlHours, "session-ttl", 0, "Session lifetime in hours")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == "sqlite" {
			cfg.DatabaseURL = "file:openballot.db"
		} else {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
	}

	if ttlHours == 0 {
		if ttlStr := os.Getenv("SESSION_TTL_HOURS"); ttlStr != "" {
			var err error
			ttlHours, err = strconv.Atoi(ttlStr)
			if err != nil {
				return Config{}, errors.New("invalid SESSION_TTL_HOURS env variable")
			}
		}
	}
	if ttlHours < 0 {
		return Config{}, errors.New("session TTL must be positive")
	}
	if ttlHours == 0 {
		cfg.SessionTTL = defaultSessionTTL
	} else {
		cfg.SessionTTL = time.Duration(ttlHours) * time.Hour
	}

	return cfg, nil
}
