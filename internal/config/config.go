package config

import (
	"os"
	"time"
)

// Config holds application configuration
type Config struct {
	DatabaseType   string
	DatabaseURL    string
	DatabasePath   string
	MigrationsPath string

	AWSRegion    string
	SESFromEmail string
	SESFromName  string
	AppBaseURL   string

	InviteTokenSecret string
	InviteTTL         time.Duration

	Debug bool
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		DatabaseType:   getEnv("DB_TYPE", "sqlite"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		DatabasePath:   getEnv("DB_PATH", "./familyhub.db"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),

		AWSRegion:    getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail: getEnv("SES_FROM_EMAIL", ""),
		SESFromName:  getEnv("SES_FROM_NAME", "Family Hub"),
		AppBaseURL:   getEnv("APP_BASE_URL", "http://localhost:8080"),

		InviteTokenSecret: getEnv("INVITE_TOKEN_SECRET", ""),
		InviteTTL:         getDurationEnv("INVITE_TTL", 7*24*time.Hour),

		Debug: getEnv("DEBUG", "") != "",
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv reads a duration environment variable or returns a default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
