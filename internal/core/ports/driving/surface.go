package driving

import (
	"context"

	"github.com/quayside-labs/deckhand/internal/core/domain"
)

// SurfaceRoute identifies which presentation surface hosts an opened entity.
type SurfaceRoute string

const (
	// RouteOverlay hands the entity to a specialised overlay which owns its
	// own lifecycle (no situation is created).
	RouteOverlay SurfaceRoute = "overlay"

	// RouteContext hands the entity to the shell's inline context surface.
	RouteContext SurfaceRoute = "context"

	// RouteSituation drives the situation state machine directly (degraded
	// or headless host).
	RouteSituation SurfaceRoute = "situation"
)

// ShellCapabilities reports what the enclosing UI shell can present.
// The coordinator re-queries capabilities on every open; they are never
// cached from a prior resolution because host capability can change across
// navigation.
type ShellCapabilities interface {
	// SupportsOverlay reports whether a specialised overlay exists for the
	// entity type and the shell can present multiple surfaces.
	SupportsOverlay(t domain.EntityType) bool

	// SupportsContextSurface reports whether an inline context surface is
	// available.
	SupportsContextSurface() bool
}

// SurfaceDecision is the outcome of routing one open.
type SurfaceDecision struct {
	// Route is the surface tier chosen.
	Route SurfaceRoute

	// Result is the entity being opened.
	Result domain.SearchResult

	// Situation is set when Route is RouteSituation.
	Situation *domain.Situation
}

// SurfaceCoordinator routes opened entities to a presentation surface using
// the three-tier fallback: specialised overlay, inline context surface,
// direct situation drive.
type SurfaceCoordinator interface {
	// Open routes one result. shell may be nil (headless host).
	Open(ctx context.Context, shell ShellCapabilities, result domain.SearchResult) (*SurfaceDecision, error)

	// OpenLink resolves a share-link token and routes its target. An empty
	// token fails with LinkErrorNoToken without any resolve call.
	OpenLink(ctx context.Context, shell ShellCapabilities, token string) (*SurfaceDecision, error)
}
