package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const sqliteDriverName = "sqlite"

// InitDB opens/creates the SQLite cache file and ensures tables exist.
func InitDB(path string) (*sql.DB, error) {
	conn, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// SQLite tolerates a single writer poorly; keep the pool tiny.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
	} {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if err := ensureSchema(conn); err != nil {
		_ = conn.Close()
		return nil, err
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return conn, nil
}

const schemaRuntimeStats = `
CREATE TABLE IF NOT EXISTS runtime_stats (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    heat_minutes INTEGER NOT NULL,
    cool_minutes INTEGER NOT NULL,
    cycle_count INTEGER NOT NULL,
    current_cycle_minutes INTEGER NOT NULL,
    avg_outdoor_f REAL NOT NULL,
    forecast_outdoor_f REAL NOT NULL,
    projected_minutes INTEGER NOT NULL,
    retention_minutes REAL NOT NULL,
    loss_f_per_hour REAL NOT NULL,
    equipment TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL
);
`

const schemaCurvePoints = `
CREATE TABLE IF NOT EXISTS curve_points (
    outdoor_f REAL PRIMARY KEY,
    rate_f_per_min REAL NOT NULL
);
`

const schemaOAuthToken = `
CREATE TABLE IF NOT EXISTS oauth_token (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    access_token TEXT NOT NULL,
    refresh_token TEXT NOT NULL,
    expires_at TIMESTAMP NOT NULL
);
`

const schemaObservations = `
CREATE TABLE IF NOT EXISTS observations (
    id TEXT PRIMARY KEY,
    observed_at TIMESTAMP NOT NULL,
    type TEXT NOT NULL,
    message TEXT NOT NULL,
    meta TEXT
);
`

const schemaUsers = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL
);
`

func ensureSchema(conn *sql.DB) error {
	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for i, stmt := range []string{
		schemaRuntimeStats,
		schemaCurvePoints,
		schemaOAuthToken,
		schemaObservations,
		schemaUsers,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}
