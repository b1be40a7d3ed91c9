package platform

import (
	"context"
	"fmt"

	"github.com/quayside-labs/deckhand/internal/core/domain"
	"github.com/quayside-labs/deckhand/internal/core/ports/driven"
)

// Ensure SearchBackend implements the interface.
var _ driven.SearchBackend = (*SearchBackend)(nil)

// searchRequest is the /v1/search request format.
type searchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

// searchResponse is the /v1/search response format. Records arrive with
// arbitrary per-source shapes and are passed through untouched; the
// normaliser owns field extraction.
type searchResponse struct {
	Records      []map[string]any `json:"records"`
	TypeCounts   map[string]int   `json:"type_counts,omitempty"`
	TotalResults int              `json:"total_results"`
	HasMore      bool             `json:"has_more"`
}

// SearchBackend executes queries against the platform search endpoint.
type SearchBackend struct {
	client *Client
}

// NewSearchBackend creates a search backend over a platform client.
func NewSearchBackend(client *Client) *SearchBackend {
	return &SearchBackend{client: client}
}

// Search returns one ranked page for the query.
func (b *SearchBackend) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) (*driven.SearchPage, error) {
	var resp searchResponse
	err := b.client.postJSON(ctx, "/v1/search", searchRequest{
		Query: query,
		Limit: opts.Limit,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	return &driven.SearchPage{
		Records:      resp.Records,
		TypeCounts:   resp.TypeCounts,
		TotalResults: resp.TotalResults,
		HasMore:      resp.HasMore,
	}, nil
}
