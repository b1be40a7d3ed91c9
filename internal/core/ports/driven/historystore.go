package driven

import (
	"context"
	"time"
)

// HistoryEntry is one recorded search.
type HistoryEntry struct {
	// Query is the search text as entered.
	Query string

	// ResultCount is the total match count the backend reported.
	ResultCount int

	// SearchedAt is when the search ran.
	SearchedAt time.Time
}

// HistoryStore persists recent searches for recall.
type HistoryStore interface {
	// Record stores one search.
	Record(ctx context.Context, entry HistoryEntry) error

	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]HistoryEntry, error)

	// Clear removes all entries.
	Clear(ctx context.Context) error

	// Close releases resources.
	Close() error
}
