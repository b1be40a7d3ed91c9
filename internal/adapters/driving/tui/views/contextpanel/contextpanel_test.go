package contextpanel

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quayside-labs/deckhand/internal/adapters/driving/tui/messages"
	"github.com/quayside-labs/deckhand/internal/core/domain"
)

type stubSituationService struct {
	executed []string
	actErr   error
	resets   int
	current  *domain.Situation
}

func (s *stubSituationService) Create(_ context.Context, entityType domain.EntityType, entityID string,
	initialState domain.SituationState, _ map[string]any) (*domain.Situation, error) {
	s.current = &domain.Situation{EntityType: entityType, EntityID: entityID, State: initialState}
	return s.current, nil
}

func (s *stubSituationService) UpdateEvidence(string, map[string]any) error { return nil }

func (s *stubSituationService) TransitionTo(context.Context, domain.SituationState, string) (*domain.Situation, error) {
	return s.current, nil
}

func (s *stubSituationService) ResetToIdle(context.Context) {
	s.resets++
	s.current = nil
}

func (s *stubSituationService) ExecuteAction(_ context.Context, action string, _ map[string]any) error {
	s.executed = append(s.executed, action)
	return s.actErr
}

func (s *stubSituationService) Current() *domain.Situation { return s.current }

func workOrderResult() domain.SearchResult {
	return domain.SearchResult{
		ID:         "wo-1",
		EntityType: domain.EntityTypeWorkOrder,
		Title:      "Replace impeller",
		Subtitle:   "Due 12 Sep",
		Score:      0.9,
	}
}

func TestView_SetResult(t *testing.T) {
	v := NewView(nil, nil, &stubSituationService{})

	v.SetResult(workOrderResult())

	assert.Equal(t, "wo-1", v.Result().ID)
	assert.Equal(t, []string{"Mark complete", "Assign to me"}, v.Actions())
	assert.Equal(t, 0, v.Selected())
}

func TestView_RendersEntityDetails(t *testing.T) {
	v := NewView(nil, nil, &stubSituationService{})
	v.SetResult(workOrderResult())

	view := v.View()

	assert.Contains(t, view, "Replace impeller")
	assert.Contains(t, view, "Due 12 Sep")
	assert.Contains(t, view, "Mark complete")
}

func TestView_ActionNavigation(t *testing.T) {
	v := NewView(nil, nil, &stubSituationService{})
	v.SetResult(workOrderResult())

	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, v.Selected())

	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, v.Selected()) // clamped

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 0, v.Selected())
}

func TestView_EnterExecutesAction(t *testing.T) {
	situations := &stubSituationService{}
	v := NewView(nil, nil, situations)
	v.SetResult(workOrderResult())

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd()
	completed, ok := msg.(messages.ActionCompleted)
	require.True(t, ok)
	assert.NoError(t, completed.Err)
	assert.Equal(t, "Mark complete", completed.Action)
	assert.Equal(t, []string{"work_order.complete"}, situations.executed)
}

func TestView_ActionFailureIsRecoverable(t *testing.T) {
	situations := &stubSituationService{
		actErr: &domain.ActionError{Action: "work_order.complete", Message: "already completed"},
	}
	v := NewView(nil, nil, situations)
	v.SetResult(workOrderResult())

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	completed := cmd().(messages.ActionCompleted)
	require.Error(t, completed.Err)

	v.Update(completed)

	assert.Contains(t, v.Message(), "failed")
	assert.Contains(t, v.View(), "failed")

	// The panel stays usable after the failure
	_, cmd = v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotNil(t, cmd)
}

func TestView_ActionSuccessMessage(t *testing.T) {
	v := NewView(nil, nil, &stubSituationService{})
	v.SetResult(workOrderResult())

	v.Update(messages.ActionCompleted{Action: "Mark complete"})

	assert.Equal(t, "Mark complete done", v.Message())
}

func TestView_EscClearsFocusAndReturns(t *testing.T) {
	situations := &stubSituationService{}
	v := NewView(nil, nil, situations)
	v.SetResult(workOrderResult())

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	msg := cmd()
	changed, ok := msg.(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewSearch, changed.View)
	assert.Equal(t, 1, situations.resets)
}

func TestView_NoActionsForUnknownType(t *testing.T) {
	v := NewView(nil, nil, &stubSituationService{})
	v.SetResult(domain.SearchResult{
		ID:         "em-1",
		EntityType: domain.EntityTypeEmailThread,
		Title:      "Engine room inspection",
	})

	assert.Empty(t, v.Actions())
	assert.Contains(t, v.View(), "No actions available")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestView_SetResultResetsState(t *testing.T) {
	v := NewView(nil, nil, &stubSituationService{})
	v.SetResult(workOrderResult())
	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	v.Update(messages.ActionCompleted{Action: "Mark complete", Err: errors.New("boom")})

	v.SetResult(domain.SearchResult{
		ID:         "eq-1",
		EntityType: domain.EntityTypeEquipment,
		Title:      "Main Engine",
	})

	assert.Equal(t, 0, v.Selected())
	assert.Empty(t, v.Message())
	assert.Equal(t, []string{"Create work order", "Log reading"}, v.Actions())
}
