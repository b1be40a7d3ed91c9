package mcp

import (
	"context"
	"time"

	"github.com/quayside-labs/deckhand/internal/core/domain"
	"github.com/quayside-labs/deckhand/internal/core/ports/driven"
	"github.com/quayside-labs/deckhand/internal/core/ports/driving"
)

// mockSearchService returns a canned grouped snapshot.
type mockSearchService struct {
	grouped   *domain.GroupedResults
	err       error
	lastQuery string
	lastOpts  domain.SearchOptions
}

var _ driving.SearchService = (*mockSearchService)(nil)

func (m *mockSearchService) Search(_ context.Context, query string, opts domain.SearchOptions) (*domain.GroupedResults, error) {
	m.lastQuery = query
	m.lastOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	if m.grouped != nil {
		return m.grouped, nil
	}
	return &domain.GroupedResults{Query: query}, nil
}

func (m *mockSearchService) Expand(domain.Domain) (*domain.GroupedResults, error) {
	return m.grouped, nil
}

func (m *mockSearchService) Collapse(domain.Domain) (*domain.GroupedResults, error) {
	return m.grouped, nil
}

func (m *mockSearchService) AutoExpandAll() (*domain.GroupedResults, bool) {
	return m.grouped, false
}

func (m *mockSearchService) Current() *domain.GroupedResults {
	return m.grouped
}

// mockSurface routes every open straight to the focus state machine.
type mockSurface struct {
	linkErr    error
	openErr    error
	lastResult domain.SearchResult
	lastToken  string
}

var _ driving.SurfaceCoordinator = (*mockSurface)(nil)

func (m *mockSurface) Open(_ context.Context, _ driving.ShellCapabilities, result domain.SearchResult) (*driving.SurfaceDecision, error) {
	m.lastResult = result
	if m.openErr != nil {
		return nil, m.openErr
	}
	return &driving.SurfaceDecision{
		Route:  driving.RouteSituation,
		Result: result,
		Situation: &domain.Situation{
			ID:         "sit-1",
			EntityType: result.EntityType,
			EntityID:   result.ID,
			State:      domain.SituationActive,
		},
	}, nil
}

func (m *mockSurface) OpenLink(_ context.Context, _ driving.ShellCapabilities, token string) (*driving.SurfaceDecision, error) {
	m.lastToken = token
	if m.linkErr != nil {
		return nil, m.linkErr
	}
	result := domain.SearchResult{
		ID:         "wo-9",
		EntityType: domain.EntityTypeWorkOrder,
		Title:      "Replace impeller",
	}
	return &driving.SurfaceDecision{
		Route:  driving.RouteSituation,
		Result: result,
		Situation: &domain.Situation{
			ID:         "sit-2",
			EntityType: result.EntityType,
			EntityID:   result.ID,
			State:      domain.SituationActive,
		},
	}, nil
}

// mockFilterSuggester returns one low-stock suggestion for any query.
type mockFilterSuggester struct {
	lastQuery string
}

var _ driving.FilterSuggester = (*mockFilterSuggester)(nil)

func (m *mockFilterSuggester) Suggest(query string) []domain.InferredFilter {
	m.lastQuery = query
	if query == "" {
		return nil
	}
	return []domain.InferredFilter{{
		FilterID:  "low-stock",
		Label:     "Low stock parts",
		Route:     "/inventory",
		Score:     0.9,
		MatchType: domain.FilterMatchPattern,
	}}
}

// mockHistoryService returns a fixed history.
type mockHistoryService struct {
	entries []driven.HistoryEntry
	err     error
}

var _ driving.HistoryService = (*mockHistoryService)(nil)

func (m *mockHistoryService) Recent(_ context.Context, limit int) ([]driven.HistoryEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	if limit > 0 && limit < len(m.entries) {
		return m.entries[:limit], nil
	}
	return m.entries, nil
}

func (m *mockHistoryService) Clear(context.Context) error {
	return nil
}

func testHistoryEntries() []driven.HistoryEntry {
	return []driven.HistoryEntry{
		{
			Query:       "impeller",
			ResultCount: 7,
			SearchedAt:  time.Date(2025, 8, 14, 9, 30, 0, 0, time.UTC),
		},
		{
			Query:       "fuel filter",
			ResultCount: 3,
			SearchedAt:  time.Date(2025, 8, 13, 16, 5, 0, 0, time.UTC),
		},
	}
}

func testGrouped() *domain.GroupedResults {
	return &domain.GroupedResults{
		Query: "impeller",
		TopMatch: &domain.SearchResult{
			ID:         "eq-1",
			EntityType: domain.EntityTypeEquipment,
			Title:      "Main Engine Cooling Pump",
			Subtitle:   "Engine Room",
			Score:      0.95,
		},
		Domains: []domain.DomainGroup{{
			Domain: domain.DomainInventory,
			Results: []domain.SearchResult{{
				ID:         "pt-2",
				EntityType: domain.EntityTypePart,
				Title:      "Impeller Kit",
				Subtitle:   "3 in stock",
				Score:      0.82,
			}},
			TotalCount: 6,
		}},
		TotalResults: 7,
		HasMore:      true,
	}
}
