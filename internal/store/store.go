package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Store wraps the sqlite table plus the in-memory keyword index that backs
// the search tool. Reads and writes go through the single connection; sqlite
// does not tolerate multiple writers.
type Store struct {
	db    *sql.DB
	path  string
	index *keywordIndex
}

// Open connects to the sqlite file at path, creating the schema when it
// does not exist yet, and builds the keyword index from the table.
func Open(ctx context.Context, path string) (*Store, error) {
	dsn := path + "?_journal_mode=WAL&_busy_timeout=5000"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	// Index build failures degrade search to the LIKE fallback.
	if idx, err := newKeywordIndex(); err == nil {
		s.index = idx
		_ = s.Reindex(ctx)
	}

	return s, nil
}

// Close releases the database connection and the keyword index.
func (s *Store) Close() error {
	if s.index != nil {
		s.index.Close()
	}
	return s.db.Close()
}

// Path returns the sqlite file path the store was opened with.
func (s *Store) Path() string { return s.path }

func (s *Store) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS attractions (
		name                 TEXT PRIMARY KEY,
		city                 TEXT NOT NULL,
		ward                 TEXT NOT NULL,
		description          TEXT NOT NULL,
		address              TEXT NOT NULL DEFAULT '',
		latitude             REAL NOT NULL DEFAULT 0,
		longitude            REAL NOT NULL DEFAULT 0,
		ticket_price         TEXT NOT NULL DEFAULT '',
		opening_hours        TEXT NOT NULL DEFAULT '',
		recommended_duration TEXT NOT NULL DEFAULT '',
		categories           TEXT NOT NULL DEFAULT '',
		transportation       TEXT NOT NULL DEFAULT '{}',
		nearby_attractions   TEXT NOT NULL DEFAULT '',
		website              TEXT NOT NULL DEFAULT '',
		phone                TEXT NOT NULL DEFAULT '',
		last_updated         TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_attractions_ward ON attractions(ward);
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return err
	}
	return nil
}

// Reindex rebuilds the keyword index from the table. A store without an
// index is a no-op; Search then uses the LIKE fallback.
func (s *Store) Reindex(ctx context.Context) error {
	if s.index == nil {
		return nil
	}
	all, err := s.All(ctx)
	if err != nil {
		return fmt.Errorf("failed to load rows for reindex: %w", err)
	}
	return s.index.Rebuild(all)
}
