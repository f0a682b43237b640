package store

import (
	"context"
	"sync"
	"time"

	"github.com/verte-zerg/bibaboba/internal/model"
)

// Memory is an in-process token cache. It never persists anything.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]model.CacheEntry
}

// NewMemory returns an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]model.CacheEntry)}
}

// Get returns a copy of the entry stored under key.
func (m *Memory) Get(_ context.Context, key string) (model.CacheEntry, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.entries[key]
	if !ok {
		return model.CacheEntry{}, false, nil
	}
	entry.Tokens = append([]string{}, entry.Tokens...)
	return entry, true, nil
}

// Put stores a copy of entry.
func (m *Memory) Put(_ context.Context, entry model.CacheEntry) error {
	entry.Tokens = append([]string{}, entry.Tokens...)
	if entry.CachedAt.IsZero() {
		entry.CachedAt = time.Now()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.Key] = entry
	return nil
}

// Delete removes the entry stored under key.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// Len returns the number of stored entries.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
