package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Import   ImportConfig
	Snapshot SnapshotConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// ImportConfig holds configuration for the internal import API.
// The parser microservice authenticates with this key plus a time token.
type ImportConfig struct {
	APIKey string
}

// SnapshotConfig holds configuration for the materialized tax snapshot job.
type SnapshotConfig struct {
	// Schedule is a cron expression; the default refreshes nightly.
	Schedule string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/graham_ledger.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: strings.Split(
				getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost"),
				",",
			),
		},
		Import: ImportConfig{
			APIKey: os.Getenv("INTERNAL_API_KEY"),
		},
		Snapshot: SnapshotConfig{
			Schedule: getEnv("SNAPSHOT_CRON", "0 3 * * *"),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
