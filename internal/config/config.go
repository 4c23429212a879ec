// Package config loads and validates environment variables at startup.
// Fail-fast: if a variable required by the selected backend is missing,
// Load returns an error and the process exits.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Backend names accepted by STORE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
)

// Config holds all runtime configuration for the jobboard service.
type Config struct {
	Backend       string
	StorePath     string // file backend only
	StorageKey    string
	DatabaseURL   string
	RedisURL      string // also enables event publication when set
	MongoURI      string
	MongoDatabase string

	AlertDigestIntervalHours int
}

// Load reads an optional .env file, then environment variables, and returns
// a validated Config. Variables already set in the environment win over
// the .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	backend := strings.ToLower(os.Getenv("STORE_BACKEND"))
	if backend == "" {
		backend = BackendFile
	}

	cfg := &Config{
		Backend:       backend,
		StorePath:     os.Getenv("STORE_PATH"),
		StorageKey:    os.Getenv("STORAGE_KEY"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisURL:      os.Getenv("REDIS_URL"),
		MongoURI:      os.Getenv("MONGODB_URI"),
		MongoDatabase: os.Getenv("MONGODB_DATABASE"),
	}
	if cfg.StorageKey == "" {
		cfg.StorageKey = "jobPortalData"
	}
	if cfg.StorePath == "" {
		cfg.StorePath = "jobboard.json"
	}
	if cfg.MongoDatabase == "" {
		cfg.MongoDatabase = "jobboard"
	}

	switch backend {
	case BackendMemory, BackendFile:
	case BackendRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("REDIS_URL is required for STORE_BACKEND=redis")
		}
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for STORE_BACKEND=postgres")
		}
	case BackendMongo:
		if cfg.MongoURI == "" {
			return nil, fmt.Errorf("MONGODB_URI is required for STORE_BACKEND=mongo")
		}
	default:
		return nil, fmt.Errorf("STORE_BACKEND must be one of memory, file, redis, postgres, mongo, got %q", backend)
	}

	interval := 6
	if s := os.Getenv("ALERT_DIGEST_INTERVAL_HOURS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("ALERT_DIGEST_INTERVAL_HOURS must be a positive integer, got %q", s)
		}
		interval = v
	}
	cfg.AlertDigestIntervalHours = interval

	return cfg, nil
}
