package driving

import (
	"context"

	"github.com/quayside-labs/deckhand/internal/core/domain"
)

// SituationService owns the single focus slot. All focus changes go through
// its transition functions; no caller mutates a Situation directly.
type SituationService interface {
	// Create focuses a new entity, replacing any existing situation outright
	// (no queue, no stacking). The initial state must be candidate or active.
	Create(ctx context.Context, entityType domain.EntityType, entityID string,
		initialState domain.SituationState, metadata map[string]any) (*domain.Situation, error)

	// UpdateEvidence merges evidence into the situation identified by
	// situationID. If that situation has been replaced the update is
	// rejected with ErrSituationReplaced; it is never applied to the
	// replacement.
	UpdateEvidence(situationID string, evidence map[string]any) error

	// TransitionTo moves the current situation to a new state. Only
	// candidate→active and any-state→idle are defined.
	TransitionTo(ctx context.Context, target domain.SituationState, reason string) (*domain.Situation, error)

	// ResetToIdle clears the focus slot.
	ResetToIdle(ctx context.Context)

	// ExecuteAction runs a platform action in the context of the current
	// situation. A backend rejection returns an error matching
	// domain.ErrActionFailed; callers surface it as recoverable.
	ExecuteAction(ctx context.Context, action string, payload map[string]any) error

	// Current returns the focused situation, or nil when idle.
	Current() *domain.Situation
}
