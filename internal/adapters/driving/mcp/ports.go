package mcp

import (
	"github.com/quayside-labs/deckhand/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search provides grouped unified search.
	Search driving.SearchService

	// Surface routes opened entities. The MCP host is headless, so opens
	// always drive the situation state machine.
	Surface driving.SurfaceCoordinator

	// Filters infers quick-filter shortcuts from query text.
	Filters driving.FilterSuggester

	// History exposes recent searches.
	History driving.HistoryService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	// Surface, Filters and History are optional
	return nil
}
