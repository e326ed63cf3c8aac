package config

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and an optional .env
// file. Everything has a sensible default for a purely local scorebook; only
// the remote-sync settings are truly optional.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Debug("No .env file found, reading from environment variables")
	}

	getEnv := func(key, fallback string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		return fallback
	}

	cfg := Config{
		DBName:        getEnv("BELOT_DB", "belot.db"),
		MigrationsDir: getEnv("BELOT_MIGRATIONS_DIR", "./migrations"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		Turso: TursoConfig{
			PrimaryURL: getEnv("TURSO_PRIMARY_URL", ""),
			AuthToken:  getEnv("TURSO_AUTH_TOKEN", ""),
		},
	}
	return cfg
}
