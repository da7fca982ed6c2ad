package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"eventnet/backend/internal/constants"
	apperrors "eventnet/backend/pkg/errors"
)

// Config holds all application configuration
type Config struct {
	// App
	Port string
	Env  string

	// Neo4j
	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string
	Neo4jDatabase string

	// Redis pub/sub (empty URL disables publishing)
	RedisURL           string
	UserCreatedChannel string
	UserEventsStream   string
}

// envFiles are tried in order; missing files are ignored
var envFiles = []string{"config/.env", ".env"}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	for _, f := range envFiles {
		// godotenv never overrides variables that are already set
		_ = godotenv.Load(f)
	}

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		Neo4jURI:           getEnvAny([]string{"AURA_DB_URI", "NEO4J_URI"}, "bolt://localhost:7687"),
		Neo4jUser:          getEnvAny([]string{"AURA_DB_USER", "NEO4J_USER"}, "neo4j"),
		Neo4jPassword:      getEnvAny([]string{"AURA_DB_PASS", "NEO4J_PASSWORD"}, "password"),
		Neo4jDatabase:      getEnv("NEO4J_DATABASE", ""),
		RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		UserCreatedChannel: getEnv("USER_CREATED_CHANNEL", constants.DefaultUserCreatedChannel),
		UserEventsStream:   getEnv("USER_EVENTS_STREAM", constants.DefaultUserEventsStream),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration values are set. Values are
// not checked beyond presence.
func (c *Config) Validate() error {
	if c.Port == "" {
		return apperrors.NewConfigMissingRequired("PORT")
	}
	if c.Neo4jURI == "" {
		return apperrors.NewConfigMissingRequired("NEO4J_URI")
	}
	if c.Neo4jUser == "" {
		return apperrors.NewConfigMissingRequired("NEO4J_USER")
	}
	if c.Neo4jPassword == "" {
		return apperrors.NewConfigMissingRequired("NEO4J_PASSWORD")
	}
	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// PublishingEnabled reports whether a Redis endpoint is configured
func (c *Config) PublishingEnabled() bool {
	return c.RedisURL != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAny returns the first non-empty value among keys
func getEnvAny(keys []string, defaultValue string) string {
	for _, key := range keys {
		if value := os.Getenv(key); value != "" {
			return value
		}
	}
	return defaultValue
}
