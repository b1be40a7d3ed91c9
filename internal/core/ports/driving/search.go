package driving

import (
	"context"

	"github.com/quayside-labs/deckhand/internal/core/domain"
)

// SearchService provides grouped unified search to external actors.
//
// The service owns per-query presentation state: which buckets are expanded
// and whether the one-shot auto-expand has fired. Every method returns a
// fresh GroupedResults snapshot; callers never mutate a snapshot in place.
type SearchService interface {
	// Search runs a query and returns freshly grouped results. Expansion
	// state resets to collapsed. If a newer query supersedes this one while
	// the backend call is in flight, the stale call returns ErrSuperseded
	// and its results must be discarded.
	Search(ctx context.Context, query string, opts domain.SearchOptions) (*domain.GroupedResults, error)

	// Expand shows the expanded row cap for one domain bucket, re-filtering
	// the full result list rather than slicing the collapsed page.
	Expand(d domain.Domain) (*domain.GroupedResults, error)

	// Collapse returns one domain bucket to the collapsed row cap.
	Collapse(d domain.Domain) (*domain.GroupedResults, error)

	// AutoExpandAll expands every bucket whose total exceeds the collapsed
	// cap. It fires at most once per query; the second return reports
	// whether this call fired.
	AutoExpandAll() (*domain.GroupedResults, bool)

	// Current returns the latest grouped snapshot, or nil before any search.
	Current() *domain.GroupedResults
}
