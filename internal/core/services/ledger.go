package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/quayside-labs/deckhand/internal/core/ports/driven"
	"github.com/quayside-labs/deckhand/internal/logger"
)

// ledgerTimeout bounds each detached ledger call.
const ledgerTimeout = 5 * time.Second

// LedgerService emits audit events fire-and-forget. Emission never blocks
// the navigation it annotates and never surfaces an error: with no session
// token it silently no-ops, and any recording failure is logged locally and
// swallowed. A rate limiter keeps a burst of navigation from flooding the
// audit endpoint.
type LedgerService struct {
	recorder driven.LedgerRecorder
	tokens   driven.TokenProvider
	limiter  *rate.Limiter
	wg       sync.WaitGroup
}

// NewLedgerService creates a ledger emitter. recorder and tokens may be nil;
// emission degrades to a no-op.
func NewLedgerService(recorder driven.LedgerRecorder, tokens driven.TokenProvider) *LedgerService {
	return &LedgerService{
		recorder: recorder,
		tokens:   tokens,
		limiter:  rate.NewLimiter(rate.Every(100*time.Millisecond), 20),
	}
}

// Emit records one event detached from the caller. It returns immediately.
func (s *LedgerService) Emit(name string, payload map[string]any) {
	if s == nil || s.recorder == nil {
		return
	}
	if s.tokens != nil && !s.tokens.IsAuthenticated() {
		logger.Debug("Ledger: no session token, dropping %q", name)
		return
	}
	if !s.limiter.Allow() {
		logger.Debug("Ledger: rate limited, dropping %q", name)
		return
	}

	event := driven.LedgerEvent{
		Name:    name,
		Payload: withEventID(payload),
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), ledgerTimeout)
		defer cancel()

		if err := s.recorder.Record(ctx, event); err != nil {
			logger.Warn("Ledger: record %q failed: %v", name, err)
		}
	}()
}

// Flush waits for in-flight emissions. Used by tests and on shutdown.
func (s *LedgerService) Flush() {
	if s == nil {
		return
	}
	s.wg.Wait()
}

// withEventID stamps the payload with an event id and timestamp without
// mutating the caller's map.
func withEventID(payload map[string]any) map[string]any {
	out := make(map[string]any, len(payload)+2)
	for k, v := range payload {
		out[k] = v
	}
	out["event_id"] = uuid.New().String()
	out["emitted_at"] = time.Now().UTC().Format(time.RFC3339)
	return out
}
