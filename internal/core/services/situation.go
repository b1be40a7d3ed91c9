package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quayside-labs/deckhand/internal/core/domain"
	"github.com/quayside-labs/deckhand/internal/core/ports/driven"
	"github.com/quayside-labs/deckhand/internal/core/ports/driving"
	"github.com/quayside-labs/deckhand/internal/logger"
)

// Ensure SituationService implements the interface.
var _ driving.SituationService = (*SituationService)(nil)

// SituationService owns the single focus slot. Creating a new situation
// replaces the old one outright; there is no queue and no stack. Every
// asynchronous update carries the situation ID it was issued against and
// is rejected when that situation has since been replaced.
type SituationService struct {
	actions driven.ActionExecutor
	ledger  *LedgerService

	mu         sync.Mutex
	generation uint64
	current    *domain.Situation
}

// NewSituationService creates a situation service. actions and ledger are
// optional (can be nil).
func NewSituationService(actions driven.ActionExecutor, ledger *LedgerService) *SituationService {
	return &SituationService{actions: actions, ledger: ledger}
}

// Create focuses a new entity, replacing any existing situation.
func (s *SituationService) Create(
	ctx context.Context, entityType domain.EntityType, entityID string,
	initialState domain.SituationState, metadata map[string]any,
) (*domain.Situation, error) {
	if entityID == "" {
		return nil, fmt.Errorf("create situation: empty entity id: %w", domain.ErrInvalidInput)
	}
	if initialState != domain.SituationCandidate && initialState != domain.SituationActive {
		return nil, fmt.Errorf("create situation: initial state %q: %w",
			initialState, domain.ErrInvalidTransition)
	}

	s.mu.Lock()
	replaced := s.current
	s.generation++
	now := time.Now()
	sit := &domain.Situation{
		ID:         uuid.NewString(),
		Generation: s.generation,
		EntityType: entityType,
		EntityID:   entityID,
		Domain:     entityType.Domain(),
		State:      initialState,
		Metadata:   metadata,
		Evidence:   make(map[string]any),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.current = sit
	s.mu.Unlock()

	if replaced != nil {
		logger.Debug("Situation: %s replaced by %s", replaced.ID, sit.ID)
	}
	logger.Info("Situation: created %s %s/%s state=%s", sit.ID, entityType, entityID, initialState)
	s.emit("situation_created", map[string]any{
		"situation_id": sit.ID,
		"entity_type":  string(entityType),
		"entity_id":    entityID,
		"state":        string(initialState),
	})
	return s.snapshot(sit), nil
}

// UpdateEvidence merges evidence into the identified situation. Updates
// aimed at a replaced situation are rejected and never land on the
// replacement.
func (s *SituationService) UpdateEvidence(situationID string, evidence map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return fmt.Errorf("update evidence: %w", domain.ErrNoSituation)
	}
	if s.current.ID != situationID {
		logger.Debug("Situation: evidence for %s dropped, current is %s", situationID, s.current.ID)
		return fmt.Errorf("update evidence for %s: %w", situationID, domain.ErrSituationReplaced)
	}

	for k, v := range evidence {
		s.current.Evidence[k] = v
	}
	s.current.UpdatedAt = time.Now()
	return nil
}

// TransitionTo moves the current situation into target state. Transition
// to idle clears the slot.
func (s *SituationService) TransitionTo(
	ctx context.Context, target domain.SituationState, reason string,
) (*domain.Situation, error) {
	s.mu.Lock()

	if s.current == nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("transition to %s: %w", target, domain.ErrNoSituation)
	}
	if !s.current.CanTransitionTo(target) {
		from := s.current.State
		s.mu.Unlock()
		return nil, fmt.Errorf("transition %s -> %s: %w", from, target, domain.ErrInvalidTransition)
	}

	sit := s.current
	if target == domain.SituationIdle {
		s.current = nil
	} else {
		sit.State = target
		sit.UpdatedAt = time.Now()
	}
	s.mu.Unlock()

	logger.Info("Situation: %s -> %s (%s)", sit.ID, target, reason)
	s.emit("situation_transition", map[string]any{
		"situation_id": sit.ID,
		"entity_type":  string(sit.EntityType),
		"entity_id":    sit.EntityID,
		"state":        string(target),
		"reason":       reason,
	})

	if target == domain.SituationIdle {
		return nil, nil
	}
	return s.snapshot(sit), nil
}

// ResetToIdle clears the focus slot. Idempotent.
func (s *SituationService) ResetToIdle(ctx context.Context) {
	s.mu.Lock()
	sit := s.current
	s.current = nil
	s.mu.Unlock()

	if sit == nil {
		return
	}
	logger.Debug("Situation: %s reset to idle", sit.ID)
	s.emit("situation_transition", map[string]any{
		"situation_id": sit.ID,
		"entity_type":  string(sit.EntityType),
		"entity_id":    sit.EntityID,
		"state":        string(domain.SituationIdle),
		"reason":       "reset",
	})
}

// ExecuteAction runs a platform action against the focused entity. Backend
// rejections come back as recoverable ActionErrors; the situation survives
// a failed action.
func (s *SituationService) ExecuteAction(ctx context.Context, action string, payload map[string]any) error {
	s.mu.Lock()
	sit := s.current
	s.mu.Unlock()

	if sit == nil {
		return fmt.Errorf("action %s: %w", action, domain.ErrNoSituation)
	}
	if s.actions == nil {
		return fmt.Errorf("action %s: %w", action, domain.ErrBackendUnavailable)
	}

	result, err := s.actions.Execute(ctx, action, map[string]any{
		"situation_id": sit.ID,
		"entity_type":  string(sit.EntityType),
		"entity_id":    sit.EntityID,
	}, payload)
	if err != nil {
		return fmt.Errorf("action %s: %w", action, err)
	}
	if result.Status != driven.ActionStatusOK {
		logger.Warn("Situation: action %s rejected: %s", action, result.Message)
		s.emit("action_failed", map[string]any{
			"situation_id": sit.ID,
			"action":       action,
			"message":      result.Message,
		})
		return &domain.ActionError{Action: action, Message: result.Message}
	}

	s.emit("action_executed", map[string]any{
		"situation_id": sit.ID,
		"action":       action,
	})
	return nil
}

// Current returns a copy of the focused situation, or nil when idle.
func (s *SituationService) Current() *domain.Situation {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	return s.snapshot(s.current)
}

// snapshot copies a situation so callers cannot mutate the slot.
func (s *SituationService) snapshot(sit *domain.Situation) *domain.Situation {
	cp := *sit
	cp.Evidence = make(map[string]any, len(sit.Evidence))
	for k, v := range sit.Evidence {
		cp.Evidence[k] = v
	}
	return &cp
}

func (s *SituationService) emit(name string, payload map[string]any) {
	if s.ledger == nil {
		return
	}
	s.ledger.Emit(name, payload)
}
