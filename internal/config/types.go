package config

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	LogLevel      string
	Turso         TursoConfig
}

// TursoConfig points at an optional remote libsql primary for sharing the
// scorebook between devices. Empty means local-only.
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
