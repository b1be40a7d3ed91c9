package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quayside-labs/deckhand/internal/core/domain"
	"github.com/quayside-labs/deckhand/internal/core/ports/driven"
)

func pumpPage() *driven.SearchPage {
	records := []map[string]any{
		{"id": "eq-1", "type": "equipment", "name": "Main bilge pump", "score": 0.6},
		{"id": "eq-2", "type": "equipment", "name": "Aux bilge pump", "score": 0.58},
		{"id": "eq-3", "type": "equipment", "name": "Fire pump", "score": 0.55},
	}
	for _, id := range []string{"pt-1", "pt-2", "pt-3", "pt-4", "pt-5", "pt-6"} {
		records = append(records, map[string]any{
			"id": id, "type": "part", "part_name": "Pump impeller " + id, "score": 0.5,
		})
	}
	return &driven.SearchPage{
		Records:      records,
		TypeCounts:   map[string]int{"equipment": 3, "part": 6},
		TotalResults: 9,
	}
}

func TestSearchService_Search(t *testing.T) {
	backend := newStubBackend()
	backend.pages["pump"] = pumpPage()
	svc := NewSearchService(backend, nil, nil)

	g, err := svc.Search(context.Background(), "pump", domain.SearchOptions{})
	require.NoError(t, err)

	assert.Nil(t, g.TopMatch)
	require.Len(t, g.Domains, 2)
	assert.Len(t, g.GroupFor(domain.DomainMaintenance).Results, 3)
	assert.Len(t, g.GroupFor(domain.DomainInventory).Results, 4)
	assert.Equal(t, 6, g.GroupFor(domain.DomainInventory).TotalCount)
	assert.Equal(t, g, svc.Current())
}

func TestSearchService_EmptyQuery(t *testing.T) {
	backend := newStubBackend()
	svc := NewSearchService(backend, nil, nil)

	g, err := svc.Search(context.Background(), "   ", domain.SearchOptions{})
	require.NoError(t, err)
	assert.True(t, g.IsEmpty())
	assert.Zero(t, backend.callCount())
}

func TestSearchService_DomainFilter(t *testing.T) {
	backend := newStubBackend()
	backend.pages["pump"] = pumpPage()
	svc := NewSearchService(backend, nil, nil)

	g, err := svc.Search(context.Background(), "pump", domain.SearchOptions{
		Domains: []domain.Domain{domain.DomainInventory},
	})
	require.NoError(t, err)
	require.Len(t, g.Domains, 1)
	assert.Equal(t, domain.DomainInventory, g.Domains[0].Domain)
}

func TestSearchService_CacheHit(t *testing.T) {
	backend := newStubBackend()
	backend.pages["pump"] = pumpPage()
	svc := NewSearchService(backend, nil, nil)

	_, err := svc.Search(context.Background(), "pump", domain.SearchOptions{})
	require.NoError(t, err)
	_, err = svc.Search(context.Background(), "pump", domain.SearchOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, backend.callCount())
}

func TestSearchService_StaleResponseDiscarded(t *testing.T) {
	backend := newStubBackend()
	backend.pages["alpha"] = pumpPage()
	backend.pages["beta"] = pumpPage()
	gate := make(chan struct{})
	backend.gate = gate
	svc := NewSearchService(backend, nil, nil)

	type outcome struct {
		grouped *domain.GroupedResults
		err     error
	}
	first := make(chan outcome, 1)
	go func() {
		g, err := svc.Search(context.Background(), "alpha", domain.SearchOptions{})
		first <- outcome{g, err}
	}()
	waitForCalls(t, backend, 1)

	second := make(chan outcome, 1)
	go func() {
		g, err := svc.Search(context.Background(), "beta", domain.SearchOptions{})
		second <- outcome{g, err}
	}()
	waitForCalls(t, backend, 2)

	close(gate)

	a := <-first
	b := <-second

	require.NoError(t, b.err)
	assert.Equal(t, "beta", b.grouped.Query)

	require.Error(t, a.err)
	assert.ErrorIs(t, a.err, domain.ErrSuperseded)

	// The superseded response never touched the displayed groups.
	assert.Equal(t, "beta", svc.Current().Query)
}

func waitForCalls(t *testing.T, backend *stubBackend, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for backend.callCount() < n {
		if time.Now().After(deadline) {
			t.Fatalf("backend never reached %d calls", n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestSearchService_ExpandCollapse(t *testing.T) {
	backend := newStubBackend()
	backend.pages["pump"] = pumpPage()
	svc := NewSearchService(backend, nil, nil)

	_, err := svc.Search(context.Background(), "pump", domain.SearchOptions{})
	require.NoError(t, err)

	g, err := svc.Expand(domain.DomainInventory)
	require.NoError(t, err)
	parts := g.GroupFor(domain.DomainInventory)
	assert.True(t, parts.Expanded)
	assert.Len(t, parts.Results, 6)

	g, err = svc.Collapse(domain.DomainInventory)
	require.NoError(t, err)
	parts = g.GroupFor(domain.DomainInventory)
	assert.False(t, parts.Expanded)
	assert.Len(t, parts.Results, 4)
}

func TestSearchService_ExpandWithoutSearch(t *testing.T) {
	svc := NewSearchService(newStubBackend(), nil, nil)

	_, err := svc.Expand(domain.DomainInventory)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSearchService_ExpansionResetsOnNewQuery(t *testing.T) {
	backend := newStubBackend()
	backend.pages["pump"] = pumpPage()
	backend.pages["impeller"] = pumpPage()
	svc := NewSearchService(backend, nil, nil)

	_, err := svc.Search(context.Background(), "pump", domain.SearchOptions{})
	require.NoError(t, err)
	_, err = svc.Expand(domain.DomainInventory)
	require.NoError(t, err)

	g, err := svc.Search(context.Background(), "impeller", domain.SearchOptions{})
	require.NoError(t, err)
	assert.False(t, g.GroupFor(domain.DomainInventory).Expanded)
	assert.Len(t, g.GroupFor(domain.DomainInventory).Results, 4)
}

func TestSearchService_AutoExpandOneShot(t *testing.T) {
	backend := newStubBackend()
	backend.pages["pump"] = pumpPage()
	svc := NewSearchService(backend, nil, nil)

	_, err := svc.Search(context.Background(), "pump", domain.SearchOptions{})
	require.NoError(t, err)

	g, fired := svc.AutoExpandAll()
	assert.True(t, fired)
	assert.True(t, g.GroupFor(domain.DomainInventory).Expanded)
	// The equipment bucket fits the collapsed cap and stays as-is.
	assert.False(t, g.GroupFor(domain.DomainMaintenance).Expanded)

	// Repeated scroll events within the same query never re-fire.
	_, fired = svc.AutoExpandAll()
	assert.False(t, fired)
	_, fired = svc.AutoExpandAll()
	assert.False(t, fired)
}

func TestSearchService_AutoExpandRearmsPerQuery(t *testing.T) {
	backend := newStubBackend()
	backend.pages["pump"] = pumpPage()
	backend.pages["impeller"] = pumpPage()
	svc := NewSearchService(backend, nil, nil)

	_, err := svc.Search(context.Background(), "pump", domain.SearchOptions{})
	require.NoError(t, err)
	_, fired := svc.AutoExpandAll()
	require.True(t, fired)

	_, err = svc.Search(context.Background(), "impeller", domain.SearchOptions{})
	require.NoError(t, err)
	_, fired = svc.AutoExpandAll()
	assert.True(t, fired)
}

func TestSearchService_HistoryBestEffort(t *testing.T) {
	backend := newStubBackend()
	backend.pages["pump"] = pumpPage()
	history := &stubHistory{}
	svc := NewSearchService(backend, nil, history)

	_, err := svc.Search(context.Background(), "pump", domain.SearchOptions{})
	require.NoError(t, err)

	entries := history.recorded()
	require.Len(t, entries, 1)
	assert.Equal(t, "pump", entries[0].Query)
	assert.Equal(t, 9, entries[0].ResultCount)
}

func TestSearchService_HistoryFailureIgnored(t *testing.T) {
	backend := newStubBackend()
	backend.pages["pump"] = pumpPage()
	history := &stubHistory{err: assert.AnError}
	svc := NewSearchService(backend, nil, history)

	_, err := svc.Search(context.Background(), "pump", domain.SearchOptions{})
	assert.NoError(t, err)
}

func TestSearchService_BackendError(t *testing.T) {
	backend := newStubBackend()
	backend.err = assert.AnError
	svc := NewSearchService(backend, nil, nil)

	_, err := svc.Search(context.Background(), "pump", domain.SearchOptions{})
	assert.Error(t, err)
	assert.Nil(t, svc.Current())
}

func TestSearchService_NilBackend(t *testing.T) {
	svc := NewSearchService(nil, nil, nil)

	_, err := svc.Search(context.Background(), "pump", domain.SearchOptions{})
	assert.ErrorIs(t, err, domain.ErrBackendUnavailable)
}
