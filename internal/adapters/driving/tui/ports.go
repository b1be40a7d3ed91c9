// Package tui provides an interactive terminal user interface for deckhand.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/quayside-labs/deckhand/internal/core/ports/driven"
	"github.com/quayside-labs/deckhand/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search provides grouped unified search.
	Search driving.SearchService

	// Situation owns the single focus slot.
	Situation driving.SituationService

	// Surface routes opened entities to a presentation surface.
	Surface driving.SurfaceCoordinator

	// Filters infers quick-filter shortcuts from query text.
	Filters driving.FilterSuggester

	// History exposes recent searches.
	History driving.HistoryService

	// Config provides runtime settings such as surface capability toggles.
	Config driven.ConfigStore
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	search driving.SearchService,
	situation driving.SituationService,
	surface driving.SurfaceCoordinator,
	filters driving.FilterSuggester,
) *Ports {
	return &Ports{
		Search:    search,
		Situation: situation,
		Surface:   surface,
		Filters:   filters,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Situation == nil {
		return ErrMissingSituationService
	}
	if p.Surface == nil {
		return ErrMissingSurfaceCoordinator
	}
	return nil
}
