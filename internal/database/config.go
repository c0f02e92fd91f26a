package database

// Config selects the archive backend.
type Config struct {
	// Driver is "sqlite" or "postgres".
	Driver string

	// Path is the SQLite file path.
	Path string

	// DSN is the PostgreSQL connection string.
	DSN string
}

// DefaultConfig returns a SQLite configuration rooted at the given path.
func DefaultConfig(path string) Config {
	return Config{
		Driver: "sqlite",
		Path:   path,
	}
}
