package driven

import (
	"context"

	"github.com/quayside-labs/deckhand/internal/core/domain"
)

// SearchBackend executes free-text queries against the platform search API.
// The backend ranks across heterogeneous record types; records arrive with
// arbitrary per-source shapes and are normalised client-side.
type SearchBackend interface {
	// Search returns one ranked page for the query.
	Search(ctx context.Context, query string, opts domain.SearchOptions) (*SearchPage, error)
}

// SearchPage is the raw response of one search call.
type SearchPage struct {
	// Records are the ranked hits, each of unknown shape.
	Records []map[string]any

	// TypeCounts reports total matches per backend type tag, when the
	// backend provides counts beyond the returned page.
	TypeCounts map[string]int

	// TotalResults is the total match count across all types.
	TotalResults int

	// HasMore reports whether matches exist beyond this page.
	HasMore bool
}
