// Package analytics records page views in a local SQLite database.
// It stores nothing about the visitor, only a per-day counter per slug.
package analytics

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store accumulates per-day page-view counts.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the analytics database at path, ensures the
// data directory exists, and creates the schema.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open analytics db: %w", err)
	}
	// WAL lets the async Record writers coexist with stats reads; the
	// busy timeout makes writers wait instead of failing on contention.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, fmt.Errorf("configure analytics db: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, fmt.Errorf("ensure analytics schema: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS pageviews (
    slug TEXT NOT NULL,
    day TEXT NOT NULL,
    count INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (slug, day)
);
`)
	return err
}

// Record counts one view of slug for today.
func (s *Store) Record(slug string) error {
	day := time.Now().Format("2006-01-02")
	_, err := s.db.Exec(`
INSERT INTO pageviews (slug, day, count) VALUES (?, ?, 1)
ON CONFLICT(slug, day) DO UPDATE SET count = count + 1`, slug, day)
	if err != nil {
		return fmt.Errorf("record view: %w", err)
	}
	return nil
}

// PostCount is one row of the most-viewed report.
type PostCount struct {
	Slug  string `json:"slug"`
	Views int64  `json:"views"`
}

// TopPosts returns the most-viewed slugs, all days summed, highest first.
func (s *Store) TopPosts(limit int) ([]PostCount, error) {
	rows, err := s.db.Query(`
SELECT slug, SUM(count) AS views FROM pageviews
GROUP BY slug ORDER BY views DESC, slug LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("top posts: %w", err)
	}
	defer rows.Close()

	var counts []PostCount
	for rows.Next() {
		var pc PostCount
		if err := rows.Scan(&pc.Slug, &pc.Views); err != nil {
			return nil, err
		}
		counts = append(counts, pc)
	}
	return counts, rows.Err()
}
