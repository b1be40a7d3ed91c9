package domain

import "time"

// SituationState is the lifecycle state of a focus situation.
type SituationState string

const (
	// SituationIdle means no entity is focused.
	SituationIdle SituationState = "idle"
	// SituationCandidate means an entity is tentatively focused (preview).
	SituationCandidate SituationState = "candidate"
	// SituationActive means an entity is committed (opened).
	SituationActive SituationState = "active"
)

// Situation records which single entity is currently focused and how firmly.
// At most one non-idle Situation exists at a time. EntityType and EntityID
// are immutable after creation: changing focus means creating a replacement
// Situation, never mutating this one.
type Situation struct {
	// ID uniquely identifies this Situation instance. Asynchronous updates
	// must be checked against it before applying, so a stale update cannot
	// land on a replacement Situation.
	ID string

	// Generation is a monotonically increasing counter across Situations
	// within a session.
	Generation uint64

	// EntityType is the focused entity's navigation type.
	EntityType EntityType

	// EntityID is the focused entity's identifier.
	EntityID string

	// Domain is the focused entity's display domain.
	Domain Domain

	// State is the current lifecycle state.
	State SituationState

	// Metadata carries opaque context captured at creation.
	Metadata map[string]any

	// Evidence accumulates opaque observations gathered while focused.
	Evidence map[string]any

	// CreatedAt is when the Situation was created.
	CreatedAt time.Time

	// UpdatedAt is when the Situation last changed.
	UpdatedAt time.Time
}

// CanTransitionTo reports whether a transition to the target state is
// defined. Only candidate→active and any-state→idle are supported; in
// particular active→candidate is not a downgrade that exists.
func (s *Situation) CanTransitionTo(target SituationState) bool {
	if target == SituationIdle {
		return true
	}
	return s.State == SituationCandidate && target == SituationActive
}

// IsFocused reports whether the Situation holds a tentative or active focus.
func (s *Situation) IsFocused() bool {
	return s.State == SituationCandidate || s.State == SituationActive
}

// Matches reports whether the Situation focuses the given entity.
func (s *Situation) Matches(t EntityType, id string) bool {
	return s.EntityType == t && s.EntityID == id
}
