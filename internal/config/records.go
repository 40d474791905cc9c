package config

import "os"

// Postgres reports whether any Postgres connection settings are present.
func Postgres() bool {
	if _, ok := os.LookupEnv("DATABASE_URL"); ok {
		return true
	}
	_, ok := os.LookupEnv("POSTGRES_HOST")
	return ok
}

// RecordsSQLitePath is the sqlite file used for finished-game records when
// Postgres is not configured.
func RecordsSQLitePath() string {
	path, ok := os.LookupEnv("RECORDS_SQLITE_PATH")
	if !ok || path == "" {
		return "records.db"
	}
	return path
}
