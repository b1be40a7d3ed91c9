package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/quayside-labs/deckhand/internal/core/domain"
	"github.com/quayside-labs/deckhand/internal/core/ports/driven"
	"github.com/quayside-labs/deckhand/internal/core/ports/driving"
	"github.com/quayside-labs/deckhand/internal/logger"
	"github.com/quayside-labs/deckhand/internal/normaliser"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

const (
	// defaultSearchLimit is the backend page size when none is requested.
	defaultSearchLimit = 50

	// searchCacheSize bounds the per-session result cache.
	searchCacheSize = 64
)

// fetched is one backend round trip after normalisation.
type fetched struct {
	page    *driven.SearchPage
	results []domain.SearchResult
}

// SearchService orchestrates unified search: backend call, normalisation,
// grouping, and per-query presentation state (bucket expansion and the
// one-shot auto-expand flag).
//
// Concurrency discipline is latest-wins: every Search bumps a generation
// counter, and a response whose generation has been superseded is discarded
// with ErrSuperseded instead of touching the displayed groups. Identical
// concurrent queries are deduplicated with singleflight, and recent pages
// are kept in a small LRU cache.
type SearchService struct {
	backend driven.SearchBackend
	config  driven.ConfigStore
	history driven.HistoryStore

	cache  *lru.Cache[string, fetched]
	flight singleflight.Group

	mu           sync.Mutex
	generation   uint64
	query        string
	all          []domain.SearchResult
	page         *driven.SearchPage
	expanded     map[domain.Domain]bool
	autoExpanded bool
	current      *domain.GroupedResults
}

// NewSearchService creates a search service. config and history are
// optional (can be nil).
func NewSearchService(
	backend driven.SearchBackend,
	config driven.ConfigStore,
	history driven.HistoryStore,
) *SearchService {
	cache, _ := lru.New[string, fetched](searchCacheSize)
	return &SearchService{
		backend:  backend,
		config:   config,
		history:  history,
		cache:    cache,
		expanded: make(map[domain.Domain]bool),
	}
}

// Search runs a query and returns freshly grouped results.
func (s *SearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) (*domain.GroupedResults, error) {
	query = strings.TrimSpace(query)

	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	if query == "" {
		return s.install(gen, "", nil, nil)
	}

	if s.backend == nil {
		return nil, fmt.Errorf("search: %w", domain.ErrBackendUnavailable)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	logger.Debug("Search: query=%q limit=%d generation=%d", query, limit, gen)

	f, err := s.fetch(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	results := f.results
	if len(opts.Domains) > 0 {
		results = filterByDomains(results, opts.Domains)
	}

	grouped, err := s.install(gen, query, results, f.page)
	if err != nil {
		return nil, err
	}

	s.recordHistory(query, grouped.TotalResults)
	logger.Info("Search: %d results in %d buckets", grouped.TotalResults, len(grouped.Domains))
	return grouped, nil
}

// fetch performs the backend round trip through the cache and singleflight.
func (s *SearchService) fetch(ctx context.Context, query string, limit int) (fetched, error) {
	key := query + "|" + strconv.Itoa(limit)

	if hit, ok := s.cache.Get(key); ok {
		logger.Debug("Search: cache hit for %q", query)
		return hit, nil
	}

	v, err, _ := s.flight.Do(key, func() (any, error) {
		page, err := s.backend.Search(ctx, query, domain.SearchOptions{Limit: limit})
		if err != nil {
			return fetched{}, err
		}
		f := fetched{page: page, results: normaliser.NormaliseAll(page.Records)}
		s.cache.Add(key, f)
		return f, nil
	})
	if err != nil {
		return fetched{}, err
	}
	return v.(fetched), nil
}

// install makes a fetched result set the authoritative one, unless a newer
// generation has superseded it. Expansion state resets to collapsed and the
// auto-expand one-shot re-arms.
func (s *SearchService) install(
	gen uint64, query string, results []domain.SearchResult, page *driven.SearchPage,
) (*domain.GroupedResults, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		logger.Debug("Search: generation %d superseded by %d, discarding", gen, s.generation)
		return nil, fmt.Errorf("search %q: %w", query, domain.ErrSuperseded)
	}

	s.query = query
	s.all = results
	s.page = page
	s.expanded = make(map[domain.Domain]bool)
	s.autoExpanded = false
	s.current = groupResults(query, results, page, s.expanded, grouperConfigFrom(s.config))
	return s.current, nil
}

// Expand shows the expanded row cap for one bucket.
func (s *SearchService) Expand(d domain.Domain) (*domain.GroupedResults, error) {
	return s.setExpanded(d, true)
}

// Collapse returns one bucket to the collapsed row cap.
func (s *SearchService) Collapse(d domain.Domain) (*domain.GroupedResults, error) {
	return s.setExpanded(d, false)
}

func (s *SearchService) setExpanded(d domain.Domain, expanded bool) (*domain.GroupedResults, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, fmt.Errorf("expand: %w", domain.ErrNotFound)
	}
	if s.current.GroupFor(d) == nil {
		return s.current, nil
	}

	s.expanded[d] = expanded
	s.current = groupResults(s.query, s.all, s.page, s.expanded, grouperConfigFrom(s.config))
	return s.current, nil
}

// AutoExpandAll expands every bucket with more results than the collapsed
// cap. One-shot per query: repeat calls return the current snapshot with
// fired=false until the next Search re-arms the flag.
func (s *SearchService) AutoExpandAll() (*domain.GroupedResults, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil || s.autoExpanded {
		return s.current, false
	}
	s.autoExpanded = true

	cfg := grouperConfigFrom(s.config)
	fired := false
	for i := range s.current.Domains {
		g := &s.current.Domains[i]
		if g.TotalCount > cfg.CollapsedLimit {
			s.expanded[g.Domain] = true
			fired = true
		}
	}
	if !fired {
		return s.current, false
	}

	s.current = groupResults(s.query, s.all, s.page, s.expanded, cfg)
	return s.current, true
}

// Current returns the latest grouped snapshot, or nil before any search.
func (s *SearchService) Current() *domain.GroupedResults {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// recordHistory stores the search best-effort; failures are logged only.
func (s *SearchService) recordHistory(query string, resultCount int) {
	if s.history == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := s.history.Record(ctx, driven.HistoryEntry{
		Query:       query,
		ResultCount: resultCount,
		SearchedAt:  time.Now(),
	})
	if err != nil {
		logger.Warn("Search: history record failed: %v", err)
	}
}

// filterByDomains keeps results whose domain is in the allow list.
func filterByDomains(results []domain.SearchResult, domains []domain.Domain) []domain.SearchResult {
	allow := make(map[domain.Domain]bool, len(domains))
	for _, d := range domains {
		allow[d] = true
	}

	filtered := make([]domain.SearchResult, 0, len(results))
	for i := range results {
		if allow[results[i].Domain()] {
			filtered = append(filtered, results[i])
		}
	}
	return filtered
}
