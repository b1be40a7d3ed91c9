package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/quayside-labs/deckhand/internal/core/domain"
	"github.com/quayside-labs/deckhand/internal/core/ports/driven"
	"github.com/quayside-labs/deckhand/internal/core/ports/driving"
	"github.com/quayside-labs/deckhand/internal/logger"
)

// Ensure SurfaceService implements the interface.
var _ driving.SurfaceCoordinator = (*SurfaceService)(nil)

// SurfaceService routes opened entities to a presentation surface using the
// three-tier fallback: specialised overlay, inline context surface, direct
// situation drive. The tiers are evaluated in that order on every call;
// shell capabilities are never cached across opens.
type SurfaceService struct {
	situations driving.SituationService
	links      driven.LinkResolver
	ledger     *LedgerService
}

// NewSurfaceService creates a surface coordinator. links and ledger are
// optional (can be nil).
func NewSurfaceService(
	situations driving.SituationService,
	links driven.LinkResolver,
	ledger *LedgerService,
) *SurfaceService {
	return &SurfaceService{situations: situations, links: links, ledger: ledger}
}

// Open routes one result to a surface.
func (s *SurfaceService) Open(
	ctx context.Context, shell driving.ShellCapabilities, result domain.SearchResult,
) (*driving.SurfaceDecision, error) {
	if result.ID == "" {
		return nil, fmt.Errorf("open: empty result id: %w", domain.ErrInvalidInput)
	}

	if shell != nil && shell.SupportsOverlay(result.EntityType) {
		// The overlay owns its own lifecycle; no situation is created.
		logger.Debug("Surface: %s/%s -> overlay", result.EntityType, result.ID)
		s.emit("entity_opened", result, string(driving.RouteOverlay))
		return &driving.SurfaceDecision{Route: driving.RouteOverlay, Result: result}, nil
	}

	if shell != nil && shell.SupportsContextSurface() {
		logger.Debug("Surface: %s/%s -> context", result.EntityType, result.ID)
		s.emit("entity_opened", result, string(driving.RouteContext))
		return &driving.SurfaceDecision{Route: driving.RouteContext, Result: result}, nil
	}

	sit, err := s.driveSituation(ctx, result)
	if err != nil {
		return nil, err
	}
	s.emit("entity_opened", result, string(driving.RouteSituation))
	return &driving.SurfaceDecision{
		Route:     driving.RouteSituation,
		Result:    result,
		Situation: sit,
	}, nil
}

// driveSituation is the degraded-host tier: drive the state machine
// directly. A candidate on the same target is promoted in place; any other
// focus is replaced with a fresh active situation.
func (s *SurfaceService) driveSituation(
	ctx context.Context, result domain.SearchResult,
) (*domain.Situation, error) {
	current := s.situations.Current()
	if current != nil &&
		current.State == domain.SituationCandidate &&
		current.Matches(result.EntityType, result.ID) {
		if err := s.situations.UpdateEvidence(current.ID, map[string]any{
			"opened_title": result.Title,
		}); err != nil && !errors.Is(err, domain.ErrSituationReplaced) {
			return nil, fmt.Errorf("open %s: %w", result.ID, err)
		}
		sit, err := s.situations.TransitionTo(ctx, domain.SituationActive, "open")
		if err == nil {
			return sit, nil
		}
		logger.Debug("Surface: promote %s failed (%v), creating fresh", current.ID, err)
	}

	sit, err := s.situations.Create(ctx, result.EntityType, result.ID,
		domain.SituationActive, result.Metadata)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", result.ID, err)
	}
	return sit, nil
}

// OpenLink resolves a share-link token and routes its target. An empty
// token fails client-side with LinkErrorNoToken; no resolve call is made.
func (s *SurfaceService) OpenLink(
	ctx context.Context, shell driving.ShellCapabilities, token string,
) (*driving.SurfaceDecision, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, &domain.LinkResolveError{State: domain.LinkErrorNoToken}
	}
	if s.links == nil {
		return nil, fmt.Errorf("open link: %w", domain.ErrBackendUnavailable)
	}

	focus, err := s.links.Resolve(ctx, token)
	if err != nil {
		var linkErr *domain.LinkResolveError
		if errors.As(err, &linkErr) {
			logger.Warn("Surface: link resolve failed: %s", linkErr.State)
			return nil, linkErr
		}
		logger.Warn("Surface: link resolve failed: %v", err)
		return nil, &domain.LinkResolveError{State: domain.LinkErrorUnknown, Detail: err.Error()}
	}

	result := domain.SearchResult{
		ID:         focus.EntityID,
		TypeTag:    string(focus.EntityType),
		EntityType: focus.EntityType,
		Title:      focus.EntityType.Label(),
	}
	decision, err := s.Open(ctx, shell, result)
	if err != nil {
		return nil, err
	}
	s.emit("link_opened", result, string(decision.Route))
	return decision, nil
}

func (s *SurfaceService) emit(name string, result domain.SearchResult, route string) {
	if s.ledger == nil {
		return
	}
	s.ledger.Emit(name, map[string]any{
		"entity_type": string(result.EntityType),
		"entity_id":   result.ID,
		"route":       route,
	})
}
