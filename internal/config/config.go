// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ListenAddr string
	DBPath     string
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

// Load reads configuration from environment variables and returns a validated
// Config. A .env file in the working directory is loaded first when present.
// STAFFDESK_JWT_SECRET is required; the server refuses to start without it
// rather than falling back to a guessable signing key.
// Optional variables with defaults: STAFFDESK_LISTEN_ADDR (127.0.0.1:8080),
// STAFFDESK_DB_PATH (staffdesk.db), STAFFDESK_TOKEN_TTL (1h),
// STAFFDESK_BCRYPT_COST (10).
func Load() (*Config, error) {
	// Ignore a missing .env; real deployments set the environment directly.
	_ = godotenv.Load()

	secret := os.Getenv("STAFFDESK_JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("STAFFDESK_JWT_SECRET is required")
	}

	listenAddr := "127.0.0.1:8080"
	if v, ok := os.LookupEnv("STAFFDESK_LISTEN_ADDR"); ok {
		listenAddr = v
	}

	dbPath := "staffdesk.db"
	if v, ok := os.LookupEnv("STAFFDESK_DB_PATH"); ok {
		dbPath = v
	}

	tokenTTL := time.Hour
	if v, ok := os.LookupEnv("STAFFDESK_TOKEN_TTL"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("STAFFDESK_TOKEN_TTL has invalid duration %q: %w", v, err)
		}
		tokenTTL = parsed
	}

	bcryptCost := 10
	if v, ok := os.LookupEnv("STAFFDESK_BCRYPT_COST"); ok {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("STAFFDESK_BCRYPT_COST has invalid value %q: %w", v, err)
		}
		bcryptCost = parsed
	}

	return &Config{
		ListenAddr: listenAddr,
		DBPath:     dbPath,
		JWTSecret:  secret,
		TokenTTL:   tokenTTL,
		BcryptCost: bcryptCost,
	}, nil
}
