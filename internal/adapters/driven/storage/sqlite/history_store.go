package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/quayside-labs/deckhand/internal/core/ports/driven"
)

// Ensure historyStore implements the interface.
var _ driven.HistoryStore = (*historyStore)(nil)

// historyStore persists recent searches.
type historyStore struct {
	store *Store
}

// Record stores one search.
func (h *historyStore) Record(ctx context.Context, entry driven.HistoryEntry) error {
	searchedAt := entry.SearchedAt
	if searchedAt.IsZero() {
		searchedAt = time.Now()
	}

	_, err := h.store.db.ExecContext(ctx, `
		INSERT INTO search_history (query, result_count, searched_at)
		VALUES (?, ?, ?)
	`, entry.Query, entry.ResultCount, searchedAt.UTC())
	if err != nil {
		return fmt.Errorf("recording search: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (h *historyStore) Recent(ctx context.Context, limit int) ([]driven.HistoryEntry, error) {
	rows, err := h.store.db.QueryContext(ctx, `
		SELECT query, result_count, searched_at
		FROM search_history
		ORDER BY searched_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []driven.HistoryEntry
	for rows.Next() {
		var entry driven.HistoryEntry
		if err := rows.Scan(&entry.Query, &entry.ResultCount, &entry.SearchedAt); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history: %w", err)
	}
	return entries, nil
}

// Clear removes all entries.
func (h *historyStore) Clear(ctx context.Context) error {
	if _, err := h.store.db.ExecContext(ctx, "DELETE FROM search_history"); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}

// Close is a no-op; the parent Store owns the connection.
func (h *historyStore) Close() error {
	return nil
}
