package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/quayside-labs/deckhand/internal/core/domain"
	"github.com/quayside-labs/deckhand/internal/core/ports/driven"
	"github.com/quayside-labs/deckhand/internal/core/ports/driving"
)

type mockSearchService struct {
	grouped  *domain.GroupedResults
	lastOpts domain.SearchOptions
}

func (m *mockSearchService) Search(_ context.Context, query string, opts domain.SearchOptions) (*domain.GroupedResults, error) {
	m.lastOpts = opts
	if m.grouped != nil {
		return m.grouped, nil
	}
	return mockGrouped(query), nil
}

func (m *mockSearchService) Expand(domain.Domain) (*domain.GroupedResults, error) {
	return m.grouped, nil
}

func (m *mockSearchService) Collapse(domain.Domain) (*domain.GroupedResults, error) {
	return m.grouped, nil
}

func (m *mockSearchService) AutoExpandAll() (*domain.GroupedResults, bool) {
	return m.grouped, true
}

func (m *mockSearchService) Current() *domain.GroupedResults { return m.grouped }

type mockSearchServiceError struct {
	mockSearchService
}

func (m *mockSearchServiceError) Search(context.Context, string, domain.SearchOptions) (*domain.GroupedResults, error) {
	return nil, errors.New("backend unavailable")
}

func mockGrouped(query string) *domain.GroupedResults {
	top := domain.SearchResult{
		ID:         "eq-1",
		EntityType: domain.EntityTypeEquipment,
		Title:      "Main Engine Cooling Pump",
		Score:      0.95,
	}
	return &domain.GroupedResults{
		Query:    query,
		TopMatch: &top,
		Domains: []domain.DomainGroup{
			{
				Domain: domain.DomainInventory,
				Results: []domain.SearchResult{
					{
						ID:         "pt-1",
						EntityType: domain.EntityTypePart,
						Title:      "Impeller Kit",
						Subtitle:   "3 in stock",
						Score:      0.7,
					},
				},
				TotalCount: 6,
			},
		},
		TotalResults: 7,
	}
}

type mockSituationService struct {
	current *domain.Situation
}

func (m *mockSituationService) Create(_ context.Context, t domain.EntityType, id string,
	st domain.SituationState, _ map[string]any) (*domain.Situation, error) {
	m.current = &domain.Situation{ID: "sit-1", EntityType: t, EntityID: id, State: st}
	return m.current, nil
}

func (m *mockSituationService) UpdateEvidence(string, map[string]any) error { return nil }

func (m *mockSituationService) TransitionTo(context.Context, domain.SituationState, string) (*domain.Situation, error) {
	return m.current, nil
}

func (m *mockSituationService) ResetToIdle(context.Context) { m.current = nil }

func (m *mockSituationService) ExecuteAction(context.Context, string, map[string]any) error {
	return nil
}

func (m *mockSituationService) Current() *domain.Situation { return m.current }

type mockSurface struct {
	linkErr error
}

func (m *mockSurface) Open(_ context.Context, _ driving.ShellCapabilities, result domain.SearchResult) (*driving.SurfaceDecision, error) {
	return &driving.SurfaceDecision{
		Route:  driving.RouteSituation,
		Result: result,
		Situation: &domain.Situation{
			EntityType: result.EntityType,
			EntityID:   result.ID,
			State:      domain.SituationActive,
		},
	}, nil
}

func (m *mockSurface) OpenLink(ctx context.Context, shell driving.ShellCapabilities, token string) (*driving.SurfaceDecision, error) {
	if m.linkErr != nil {
		return nil, m.linkErr
	}
	return m.Open(ctx, shell, domain.SearchResult{
		ID:         "wo-9",
		EntityType: domain.EntityTypeWorkOrder,
		Title:      "Work order wo-9",
	})
}

type mockFilterSuggester struct{}

func (mockFilterSuggester) Suggest(query string) []domain.InferredFilter {
	if query == "" {
		return nil
	}
	return []domain.InferredFilter{
		{
			FilterID:  "low-stock",
			Label:     "Low stock items",
			Route:     "/inventory/stock",
			Score:     1.0,
			MatchType: domain.FilterMatchPattern,
		},
	}
}

type mockHistoryService struct {
	entries []driven.HistoryEntry
	cleared bool
}

func (m *mockHistoryService) Recent(_ context.Context, limit int) ([]driven.HistoryEntry, error) {
	if limit < len(m.entries) {
		return m.entries[:limit], nil
	}
	return m.entries, nil
}

func (m *mockHistoryService) Clear(context.Context) error {
	m.cleared = true
	m.entries = nil
	return nil
}

type mockConfigStore struct {
	values map[string]any
}

func (m *mockConfigStore) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *mockConfigStore) GetString(key string) string {
	v, _ := m.values[key].(string)
	return v
}

func (m *mockConfigStore) GetInt(key string) int {
	v, _ := m.values[key].(int)
	return v
}

func (m *mockConfigStore) GetFloat(key string) float64 {
	v, _ := m.values[key].(float64)
	return v
}

func (m *mockConfigStore) GetBool(key string) bool {
	v, _ := m.values[key].(bool)
	return v
}

func (m *mockConfigStore) Set(key string, value any) error {
	m.values[key] = value
	return nil
}

func (m *mockConfigStore) Load() error { return nil }

type mockSession struct {
	token    string
	vesselID string
}

func (m *mockSession) SignIn(token, vesselID string) error {
	if token == "" {
		return fmt.Errorf("empty token")
	}
	m.token = token
	m.vesselID = vesselID
	return nil
}

func (m *mockSession) SignOut() error {
	m.token = ""
	m.vesselID = ""
	return nil
}

func (m *mockSession) IsAuthenticated() bool { return m.token != "" }

func (m *mockSession) VesselID() string { return m.vesselID }

// setupTestServices installs mock services and returns a cleanup that
// restores whatever was there before.
func setupTestServices() func() {
	oldSearch := searchService
	oldSituation := situationService
	oldSurface := surfaceCoordinator
	oldFilters := filterSuggester
	oldHistory := historyService
	oldConfig := configStore
	oldSession := session

	SetServices(&Services{
		Search:    &mockSearchService{},
		Situation: &mockSituationService{},
		Surface:   &mockSurface{},
		Filters:   mockFilterSuggester{},
		History: &mockHistoryService{entries: []driven.HistoryEntry{
			{Query: "impeller", ResultCount: 7, SearchedAt: time.Date(2025, 8, 14, 9, 30, 0, 0, time.UTC)},
			{Query: "fuel filter", ResultCount: 3, SearchedAt: time.Date(2025, 8, 13, 16, 5, 0, 0, time.UTC)},
		}},
		Config:  &mockConfigStore{values: map[string]any{"search.top_match_threshold": 0.85}},
		Session: &mockSession{},
	})

	return func() {
		searchService = oldSearch
		situationService = oldSituation
		surfaceCoordinator = oldSurface
		filterSuggester = oldFilters
		historyService = oldHistory
		configStore = oldConfig
		session = oldSession
	}
}
