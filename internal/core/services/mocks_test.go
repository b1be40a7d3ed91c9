package services

import (
	"context"
	"sync"

	"github.com/quayside-labs/deckhand/internal/core/domain"
	"github.com/quayside-labs/deckhand/internal/core/ports/driven"
)

// stubBackend returns canned pages and counts calls. An optional gate
// channel blocks Search until released, for staleness tests.
type stubBackend struct {
	mu    sync.Mutex
	pages map[string]*driven.SearchPage
	err   error
	gate  chan struct{}
	calls int
}

func newStubBackend() *stubBackend {
	return &stubBackend{pages: make(map[string]*driven.SearchPage)}
}

func (b *stubBackend) Search(ctx context.Context, query string, opts domain.SearchOptions) (*driven.SearchPage, error) {
	b.mu.Lock()
	b.calls++
	gate := b.gate
	b.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if b.err != nil {
		return nil, b.err
	}
	if page, ok := b.pages[query]; ok {
		return page, nil
	}
	return &driven.SearchPage{}, nil
}

func (b *stubBackend) callCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

// stubRecorder captures ledger events.
type stubRecorder struct {
	mu     sync.Mutex
	events []driven.LedgerEvent
	err    error
}

func (r *stubRecorder) Record(ctx context.Context, event driven.LedgerEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, event)
	return nil
}

func (r *stubRecorder) recorded() []driven.LedgerEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]driven.LedgerEvent, len(r.events))
	copy(out, r.events)
	return out
}

func (r *stubRecorder) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, len(r.events))
	for i, e := range r.events {
		names[i] = e.Name
	}
	return names
}

// stubTokens reports a fixed authentication state.
type stubTokens struct {
	token  string
	authed bool
}

func (t *stubTokens) Token(ctx context.Context) (string, error) { return t.token, nil }
func (t *stubTokens) IsAuthenticated() bool                     { return t.authed }

// stubActions returns a canned action result.
type stubActions struct {
	mu      sync.Mutex
	result  *driven.ActionResult
	err     error
	lastCtx map[string]any
	action  string
}

func (a *stubActions) Execute(ctx context.Context, action string, actionCtx, payload map[string]any) (*driven.ActionResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.action = action
	a.lastCtx = actionCtx
	if a.err != nil {
		return nil, a.err
	}
	if a.result != nil {
		return a.result, nil
	}
	return &driven.ActionResult{Status: driven.ActionStatusOK}, nil
}

// stubLinks resolves tokens from a map and counts calls.
type stubLinks struct {
	mu     sync.Mutex
	tokens map[string]*domain.FocusDescriptor
	err    error
	calls  int
}

func (l *stubLinks) Resolve(ctx context.Context, token string) (*domain.FocusDescriptor, error) {
	l.mu.Lock()
	l.calls++
	l.mu.Unlock()
	if l.err != nil {
		return nil, l.err
	}
	if fd, ok := l.tokens[token]; ok {
		return fd, nil
	}
	return nil, &domain.LinkResolveError{State: domain.LinkErrorInvalid}
}

func (l *stubLinks) callCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}

// stubHistory is an in-memory history store.
type stubHistory struct {
	mu      sync.Mutex
	entries []driven.HistoryEntry
	err     error
}

func (h *stubHistory) Record(ctx context.Context, entry driven.HistoryEntry) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err != nil {
		return h.err
	}
	h.entries = append([]driven.HistoryEntry{entry}, h.entries...)
	return nil
}

func (h *stubHistory) Recent(ctx context.Context, limit int) ([]driven.HistoryEntry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err != nil {
		return nil, h.err
	}
	if limit > len(h.entries) {
		limit = len(h.entries)
	}
	out := make([]driven.HistoryEntry, limit)
	copy(out, h.entries[:limit])
	return out, nil
}

func (h *stubHistory) Clear(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
	return nil
}

func (h *stubHistory) Close() error { return nil }

func (h *stubHistory) recorded() []driven.HistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]driven.HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// stubConfig is a map-backed config store.
type stubConfig struct {
	values map[string]any
}

func (c *stubConfig) Get(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

func (c *stubConfig) GetString(key string) string {
	if v, ok := c.values[key].(string); ok {
		return v
	}
	return ""
}

func (c *stubConfig) GetInt(key string) int {
	switch v := c.values[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

func (c *stubConfig) GetFloat(key string) float64 {
	switch v := c.values[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

func (c *stubConfig) GetBool(key string) bool {
	if v, ok := c.values[key].(bool); ok {
		return v
	}
	return false
}

func (c *stubConfig) Set(key string, value any) error {
	if c.values == nil {
		c.values = make(map[string]any)
	}
	c.values[key] = value
	return nil
}

func (c *stubConfig) Load() error { return nil }

// stubShell reports fixed surface capabilities.
type stubShell struct {
	overlayTypes map[domain.EntityType]bool
	contextPanel bool
}

func (s *stubShell) SupportsOverlay(t domain.EntityType) bool { return s.overlayTypes[t] }
func (s *stubShell) SupportsContextSurface() bool             { return s.contextPanel }
