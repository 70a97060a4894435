// Package sqlite provides SQLite-based storage for discovered sites, parser
// configurations, import attempts, and extraction pattern statistics.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection and creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit to one connection.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Wait 5 seconds before failing on lock contention rather than
	// returning "database is locked" immediately.
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// WAL mode for file-based databases: much faster writes and concurrent
	// reads during writes, at the cost of -wal and -shm sidecar files.
	// Not supported for in-memory databases.
	if db.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	db.db = conn

	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// Stats returns database statistics.
func (db *DB) Stats() sql.DBStats {
	return db.db.Stats()
}

// createSchema creates the database tables if they don't exist.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS discovered_sites (
			hostname TEXT PRIMARY KEY,
			method TEXT NOT NULL,
			discovered_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS parser_configs (
			category TEXT NOT NULL,
			version TEXT NOT NULL,
			strategies TEXT NOT NULL,
			rollout_percentage INTEGER NOT NULL DEFAULT 0,
			enabled INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (category, version)
		);

		CREATE TABLE IF NOT EXISTS import_attempts (
			id TEXT PRIMARY KEY,
			url TEXT NOT NULL,
			site_category TEXT NOT NULL,
			parser_version TEXT NOT NULL DEFAULT '',
			strategy_used TEXT NOT NULL DEFAULT '',
			success INTEGER NOT NULL,
			confidence TEXT NOT NULL DEFAULT '',
			ingredients_count INTEGER NOT NULL DEFAULT 0,
			steps_count INTEGER NOT NULL DEFAULT 0,
			raw_html_sample TEXT NOT NULL DEFAULT '',
			sample_hash TEXT NOT NULL DEFAULT '',
			error_message TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_attempts_category ON import_attempts(site_category);
		CREATE INDEX IF NOT EXISTS idx_attempts_created_at ON import_attempts(created_at);

		CREATE TABLE IF NOT EXISTS extraction_patterns (
			category TEXT NOT NULL,
			html_pattern TEXT NOT NULL,
			method TEXT NOT NULL,
			version TEXT NOT NULL,
			success_count INTEGER NOT NULL DEFAULT 0,
			total_count INTEGER NOT NULL DEFAULT 0,
			updated_at TEXT NOT NULL,
			PRIMARY KEY (category, html_pattern, method, version)
		);
	`

	_, err := db.db.Exec(schema)
	return err
}
