// Package memory provides in-memory implementations of driven port
// interfaces, used in tests and when persistence is disabled.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/quayside-labs/deckhand/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore keeps recent searches in memory.
type HistoryStore struct {
	mu      sync.RWMutex
	entries []driven.HistoryEntry
}

// NewHistoryStore creates an empty history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{}
}

// Record stores one search.
func (s *HistoryStore) Record(ctx context.Context, entry driven.HistoryEntry) error {
	if entry.SearchedAt.IsZero() {
		entry.SearchedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *HistoryStore) Recent(ctx context.Context, limit int) ([]driven.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit > len(s.entries) {
		limit = len(s.entries)
	}

	out := make([]driven.HistoryEntry, 0, limit)
	for i := len(s.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.entries[i])
	}
	return out, nil
}

// Clear removes all entries.
func (s *HistoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	return nil
}

// Close releases resources.
func (s *HistoryStore) Close() error {
	return nil
}
