package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort        string
	DatabaseType      string
	DatabaseURL       string
	DatabasePath      string
	MigrationsPath    string
	AbbreviationsPath string

	// JWTSecret is read once here and injected where needed; it is
	// never mutated after startup.
	JWTSecret     string
	TokenLifetime time.Duration

	AWSRegion    string
	SESFromEmail string
	SESFromName  string
	AppBaseURL   string
}

// Load reads configuration from the environment (and an optional .env
// file) with sensible defaults.
func Load() *Config {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:        getEnv("PORT", "5000"),
		DatabaseType:      getEnv("DB_TYPE", "sqlite"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		DatabasePath:      getEnv("DB_PATH", "./cluetrainer.db"),
		MigrationsPath:    getEnv("MIGRATIONS_PATH", "./migrations"),
		AbbreviationsPath: getEnv("ABBREVIATIONS_PATH", "./data/abbreviations.json"),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		TokenLifetime:     30 * 24 * time.Hour,
		AWSRegion:         getEnv("AWS_REGION", "eu-west-1"),
		SESFromEmail:      getEnv("SES_FROM_EMAIL", ""),
		SESFromName:       getEnv("SES_FROM_NAME", "Clue Trainer"),
		AppBaseURL:        getEnv("APP_BASE_URL", "http://localhost:5173"),
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-secret-change-in-production"
		log.Println("Warning: JWT_SECRET not set, using development default")
	}

	return cfg
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
