// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/quayside-labs/deckhand/internal/core/domain"
	"github.com/quayside-labs/deckhand/internal/core/ports/driving"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewSearch is the search input and grouped results view.
	ViewSearch ViewType = iota
	// ViewContext is the inline context surface for a focused entity.
	ViewContext
	// ViewMessaging is the specialised overlay for email threads.
	ViewMessaging
	// ViewLinkError is the share-link failure screen.
	ViewLinkError
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewSearch:
		return "search"
	case ViewContext:
		return "context"
	case ViewMessaging:
		return "messaging"
	case ViewLinkError:
		return "link_error"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// SearchCompleted carries grouped search results back to the model.
// Superseded responses never arrive here; the search service discards them.
type SearchCompleted struct {
	Grouped *domain.GroupedResults
	Err     error
}

// FiltersInferred carries quick-filter suggestions for the current query.
type FiltersInferred struct {
	Query   string
	Filters []domain.InferredFilter
}

// GroupsUpdated carries a regrouped snapshot after expansion changes.
type GroupsUpdated struct {
	Grouped *domain.GroupedResults
}

// OpenRequested asks the app to route a result through the surface
// coordinator.
type OpenRequested struct {
	Result domain.SearchResult
}

// EntityOpened carries a surface routing decision back to the model.
type EntityOpened struct {
	Decision *driving.SurfaceDecision
	Err      error
}

// LinkResolved carries the outcome of a share-link open.
type LinkResolved struct {
	Decision *driving.SurfaceDecision
	Err      error
}

// SituationChanged signals the focus slot changed.
type SituationChanged struct {
	Situation *domain.Situation
}

// ActionCompleted signals a platform action finished.
type ActionCompleted struct {
	Action string
	Err    error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
