// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache persists upstream response pages keyed by query fingerprint.
// Implements: prd001-ingestion (Response Cache);
//
//	docs/ARCHITECTURE § Response Cache.
package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/joels-spie/photonics-trends-app/pkg/types"
)

// Entry is one cached page: the normalized records, the continuation cursor
// upstream returned with them, and when the page was fetched. Entries are
// written whole and never partially updated.
type Entry struct {
	Records    []types.RawRecord `json:"records"`
	NextCursor string            `json:"next_cursor,omitempty"`
	FetchedAt  time.Time         `json:"fetched_at"`
}

// Store is the SQLite-backed response cache. Each entry write is a single
// atomic upsert, so concurrent writers to the same fingerprint cannot leave a
// torn row; the last writer wins.
type Store struct {
	db  *sql.DB
	ttl time.Duration
}

// NewStore opens or creates the cache database at cfg.Path, creating parent
// directories and the schema as needed. A zero TTL disables staleness checks.
func NewStore(cfg types.CacheConfig) (*Store, error) {
	if dir := filepath.Dir(cfg.Path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	s := &Store{db: db, ttl: cfg.TTL}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS responses (
		fingerprint TEXT PRIMARY KEY,
		value       TEXT NOT NULL,
		fetched_at  TEXT NOT NULL,
		hits        INTEGER NOT NULL DEFAULT 0
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Get returns the fresh entry for fingerprint, if one exists. Stale entries
// are deleted and reported as misses. A non-nil error means the store itself
// misbehaved (unreadable row, corrupt payload); callers treat that as a miss
// and fall through to a live fetch.
func (s *Store) Get(fingerprint string) (Entry, bool, error) {
	var raw, fetchedAt string
	err := s.db.QueryRow(
		`SELECT value, fetched_at FROM responses WHERE fingerprint = ?`, fingerprint,
	).Scan(&raw, &fetchedAt)
	if err == sql.ErrNoRows {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("reading cache entry: %w", err)
	}

	ts, err := time.Parse(time.RFC3339Nano, fetchedAt)
	if err != nil {
		s.delete(fingerprint)
		return Entry{}, false, fmt.Errorf("corrupt cache timestamp: %w", err)
	}
	if s.ttl > 0 && time.Since(ts) > s.ttl {
		s.delete(fingerprint)
		return Entry{}, false, nil
	}

	var entry Entry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		s.delete(fingerprint)
		return Entry{}, false, fmt.Errorf("corrupt cache entry: %w", err)
	}

	// Hit accounting is best-effort; a failed UPDATE does not invalidate the read.
	s.db.Exec(`UPDATE responses SET hits = hits + 1 WHERE fingerprint = ?`, fingerprint)

	return entry, true, nil
}

// Put stores entry under fingerprint, overwriting any prior entry for the
// same key. The per-entry hit counter survives overwrites.
func (s *Store) Put(fingerprint string, entry Entry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO responses (fingerprint, value, fetched_at, hits)
		 VALUES (?, ?, ?, 0)
		 ON CONFLICT(fingerprint) DO UPDATE SET
			value = excluded.value, fetched_at = excluded.fetched_at`,
		fingerprint, string(raw), entry.FetchedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

// Clear removes all cached pages.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM responses`); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}
	return nil
}

func (s *Store) delete(fingerprint string) {
	s.db.Exec(`DELETE FROM responses WHERE fingerprint = ?`, fingerprint)
}

// StoreStats summarizes cache contents for the CLI.
type StoreStats struct {
	Entries   int       `json:"entries"`
	TotalHits int       `json:"total_hits"`
	Oldest    time.Time `json:"oldest,omitempty"`
	Newest    time.Time `json:"newest,omitempty"`
}

// Stats reports entry and hit counts plus the fetch-time range of stored pages.
func (s *Store) Stats() (StoreStats, error) {
	var st StoreStats
	var oldest, newest sql.NullString
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(hits), 0), MIN(fetched_at), MAX(fetched_at) FROM responses`,
	).Scan(&st.Entries, &st.TotalHits, &oldest, &newest)
	if err != nil {
		return StoreStats{}, fmt.Errorf("reading cache stats: %w", err)
	}
	if oldest.Valid {
		st.Oldest, _ = time.Parse(time.RFC3339Nano, oldest.String)
	}
	if newest.Valid {
		st.Newest, _ = time.Parse(time.RFC3339Nano, newest.String)
	}
	return st, nil
}
