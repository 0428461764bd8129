// Package config loads server settings from the environment, with an
// optional .env file for local development.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config carries everything the serve command needs beyond its flags.
type Config struct {
	Addr     string
	DataDir  string
	LogLevel string

	// Optional remote puzzle store; local fs storage is used when unset.
	PocketBaseURL      string
	PocketBaseEmail    string
	PocketBasePassword string
}

// Load reads the environment, after layering in a .env file when present.
// A missing .env is not an error.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		Addr:               getenv("SUDOKULAB_ADDR", ":8080"),
		DataDir:            getenv("SUDOKULAB_DATA", "./data"),
		LogLevel:           getenv("SUDOKULAB_LOG_LEVEL", "info"),
		PocketBaseURL:      os.Getenv("POCKETBASE_URL"),
		PocketBaseEmail:    os.Getenv("POCKETBASE_EMAIL"),
		PocketBasePassword: os.Getenv("POCKETBASE_PASSWORD"),
	}
}

// UsePocketBase reports whether the remote store is fully configured.
func (c Config) UsePocketBase() bool {
	return c.PocketBaseURL != "" && c.PocketBaseEmail != "" && c.PocketBasePassword != ""
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
