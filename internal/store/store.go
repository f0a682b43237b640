// Package store handles persistence of tokenized participant messages.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/bibaboba/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrCorrupt is returned when a cache entry exists but its payload cannot be decoded.
var ErrCorrupt = errors.New("corrupt cache entry")

// Store wraps SQLite access for the token cache.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`PRAGMA journal_mode = WAL;`,
		`PRAGMA busy_timeout = 5000;`,
		`CREATE TABLE IF NOT EXISTS token_cache (
			cache_key TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			policy TEXT NOT NULL,
			tokens TEXT NOT NULL,
			token_count INTEGER NOT NULL,
			cached_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_token_cache_cached_at ON token_cache(cached_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the entry stored under key. The boolean is false when no entry exists.
func (s *Store) Get(ctx context.Context, key string) (model.CacheEntry, bool, error) {
	var (
		entry    model.CacheEntry
		payload  string
		cachedAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT cache_key, name, policy, tokens, cached_at FROM token_cache WHERE cache_key = ?`,
		key,
	).Scan(&entry.Key, &entry.Name, &entry.Policy, &payload, &cachedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.CacheEntry{}, false, nil
	}
	if err != nil {
		return model.CacheEntry{}, false, err
	}
	if err := json.Unmarshal([]byte(payload), &entry.Tokens); err != nil {
		return model.CacheEntry{}, false, fmt.Errorf("%w: key %s: %v", ErrCorrupt, key, err)
	}
	if entry.Tokens == nil {
		entry.Tokens = []string{}
	}
	parsed, err := time.Parse(time.RFC3339Nano, cachedAt)
	if err != nil {
		return model.CacheEntry{}, false, fmt.Errorf("%w: key %s: %v", ErrCorrupt, key, err)
	}
	entry.CachedAt = parsed
	return entry, true, nil
}

// Put stores entry, replacing any entry with the same key.
func (s *Store) Put(ctx context.Context, entry model.CacheEntry) error {
	tokens := entry.Tokens
	if tokens == nil {
		tokens = []string{}
	}
	payload, err := json.Marshal(tokens)
	if err != nil {
		return err
	}
	cachedAt := entry.CachedAt
	if cachedAt.IsZero() {
		cachedAt = time.Now()
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO token_cache (cache_key, name, policy, tokens, token_count, cached_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.Key,
		entry.Name,
		entry.Policy,
		string(payload),
		len(tokens),
		cachedAt.UTC().Format(time.RFC3339Nano),
	)
	return err
}

// Delete removes the entry stored under key. Deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM token_cache WHERE cache_key = ?`, key)
	return err
}

// Flush removes every entry and returns how many were deleted.
func (s *Store) Flush(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM token_cache`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// List returns entry summaries, newest first.
func (s *Store) List(ctx context.Context) ([]model.CacheSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT cache_key, name, policy, token_count, cached_at FROM token_cache ORDER BY cached_at DESC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.CacheSummary
	for rows.Next() {
		var sum model.CacheSummary
		var cachedAt string
		if err := rows.Scan(&sum.Key, &sum.Name, &sum.Policy, &sum.TokenCount, &cachedAt); err != nil {
			return nil, err
		}
		if parsed, err := time.Parse(time.RFC3339Nano, cachedAt); err == nil {
			sum.CachedAt = parsed
		}
		result = append(result, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
