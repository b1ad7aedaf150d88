// Package app holds runtime configuration shared by the CLI commands.
package app

import (
	"os"
	"strconv"
	"strings"

	"blogapi/internal/model"
)

// Config is the runtime configuration, populated from the environment with
// optional flag overrides applied by the CLI.
type Config struct {
	Port       string // HTTP listen port
	MongoURI   string // mongo connection string
	Database   string // mongo database name
	BcryptCost int    // password hashing work factor
}

// FromEnv loads configuration from PORT, MONGO_URI, MONGO_DATABASE, and
// BCRYPT_COST, falling back to local-development defaults.
func FromEnv() Config {
	cfg := Config{
		Port:       "3000",
		MongoURI:   "mongodb://localhost:27017",
		Database:   "blogapi",
		BcryptCost: model.DefaultBcryptCost,
	}

	if v, ok := lookupNonEmptyEnv("PORT"); ok {
		cfg.Port = v
	}
	if v, ok := lookupNonEmptyEnv("MONGO_URI"); ok {
		cfg.MongoURI = v
	}
	if v, ok := lookupNonEmptyEnv("MONGO_DATABASE"); ok {
		cfg.Database = v
	}
	if v, ok := lookupNonEmptyEnv("BCRYPT_COST"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.BcryptCost = n
		}
	}

	return cfg
}

func lookupNonEmptyEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return "", false
	}
	return trimmed, true
}
