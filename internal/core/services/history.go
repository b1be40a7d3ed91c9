package services

import (
	"context"
	"fmt"

	"github.com/quayside-labs/deckhand/internal/core/ports/driven"
	"github.com/quayside-labs/deckhand/internal/core/ports/driving"
	"github.com/quayside-labs/deckhand/internal/logger"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

const defaultHistoryLimit = 20

// HistoryService exposes recorded searches for recall.
type HistoryService struct {
	store driven.HistoryStore
}

// NewHistoryService creates a history service over a store.
func NewHistoryService(store driven.HistoryStore) *HistoryService {
	return &HistoryService{store: store}
}

// Recent returns up to limit recorded searches, newest first.
func (s *HistoryService) Recent(ctx context.Context, limit int) ([]driven.HistoryEntry, error) {
	if s.store == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	entries, err := s.store.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("recent searches: %w", err)
	}
	return entries, nil
}

// Clear removes the recorded history.
func (s *HistoryService) Clear(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	logger.Info("History: cleared")
	return nil
}
