package driven

import "context"

// LedgerRecorder writes audit events to the platform ledger endpoint.
// Callers treat recording as best-effort: failures are logged and swallowed
// by the emitting service, never surfaced to the user.
type LedgerRecorder interface {
	// Record posts one event. A non-2xx response is an error.
	Record(ctx context.Context, event LedgerEvent) error
}

// LedgerEvent is one audit record.
type LedgerEvent struct {
	// Name identifies the user action (e.g. "entity_opened").
	Name string

	// Payload carries arbitrary event context.
	Payload map[string]any
}
