// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists past search strings in a small SQLite database,
// most recent first, capped at a configurable size. Re-running an old
// search moves it back to the top instead of duplicating it.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/recoll-search/pkg/types"
)

// Store manages the search-history database.
type Store struct {
	db  *sql.DB
	cap int
}

// Open opens or creates the history database at path. cap bounds the
// number of retained searches; <= 0 applies the default.
func Open(path string, cap int) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS searches (
		query     TEXT PRIMARY KEY,
		last_used INTEGER NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}

	if cap <= 0 {
		cap = types.DefaultHistorySize
	}
	return &Store{db: db, cap: cap}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add records a search as the most recent one. Blank queries are ignored;
// a repeated query is bumped to the top rather than duplicated. Entries
// beyond the cap fall off the bottom.
func (s *Store) Add(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	// last_used is a monotonic sequence rather than a wall-clock stamp, so
	// two Adds in the same instant still order deterministically.
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO searches (query, last_used)
		 VALUES (?, (SELECT COALESCE(MAX(last_used), 0) + 1 FROM searches))
		 ON CONFLICT(query) DO UPDATE SET last_used = excluded.last_used`,
		query)
	if err != nil {
		return fmt.Errorf("recording search: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`DELETE FROM searches WHERE query NOT IN (
			SELECT query FROM searches ORDER BY last_used DESC, rowid DESC LIMIT ?
		)`, s.cap)
	if err != nil {
		return fmt.Errorf("pruning history: %w", err)
	}
	return nil
}

// Recent returns up to n past searches, most recent first. n <= 0 means
// the full retained history.
func (s *Store) Recent(ctx context.Context, n int) ([]string, error) {
	if n <= 0 || n > s.cap {
		n = s.cap
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT query FROM searches ORDER BY last_used DESC, rowid DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer rows.Close()

	var queries []string
	for rows.Next() {
		var q string
		if err := rows.Scan(&q); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		queries = append(queries, q)
	}
	return queries, rows.Err()
}

// Clear wipes the history.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM searches`)
	if err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}
