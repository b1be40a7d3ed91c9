package platform

import (
	"context"
	"fmt"

	"github.com/quayside-labs/deckhand/internal/core/ports/driven"
)

// Ensure LedgerRecorder implements the interface.
var _ driven.LedgerRecorder = (*LedgerRecorder)(nil)

// ledgerRequest is the /v1/ledger/record request format.
type ledgerRequest struct {
	EventName string         `json:"event_name"`
	Payload   map[string]any `json:"payload"`
}

// LedgerRecorder writes audit events to the platform ledger endpoint.
type LedgerRecorder struct {
	client *Client
}

// NewLedgerRecorder creates a ledger recorder over a platform client.
func NewLedgerRecorder(client *Client) *LedgerRecorder {
	return &LedgerRecorder{client: client}
}

// Record posts one audit event. A non-2xx response is an error; the
// emitting service decides that it is swallowed, not this adapter.
func (r *LedgerRecorder) Record(ctx context.Context, event driven.LedgerEvent) error {
	err := r.client.postJSON(ctx, "/v1/ledger/record", ledgerRequest{
		EventName: event.Name,
		Payload:   event.Payload,
	}, nil)
	if err != nil {
		return fmt.Errorf("record ledger event: %w", err)
	}
	return nil
}
