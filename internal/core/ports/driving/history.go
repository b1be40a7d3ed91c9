package driving

import (
	"context"

	"github.com/quayside-labs/deckhand/internal/core/ports/driven"
)

// HistoryService exposes recent searches to external actors.
type HistoryService interface {
	// Recent returns up to limit recorded searches, newest first.
	Recent(ctx context.Context, limit int) ([]driven.HistoryEntry, error)

	// Clear removes the recorded history.
	Clear(ctx context.Context) error
}
