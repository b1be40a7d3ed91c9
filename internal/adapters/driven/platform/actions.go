package platform

import (
	"context"
	"fmt"

	"github.com/quayside-labs/deckhand/internal/core/ports/driven"
)

// Ensure ActionExecutor implements the interface.
var _ driven.ActionExecutor = (*ActionExecutor)(nil)

// actionRequest is the /v1/actions/execute request format.
type actionRequest struct {
	Action  string         `json:"action"`
	Context map[string]any `json:"context,omitempty"`
	Payload map[string]any `json:"payload,omitempty"`
}

// actionResponse is the /v1/actions/execute response format.
type actionResponse struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
}

// ActionExecutor runs named platform actions.
type ActionExecutor struct {
	client *Client
}

// NewActionExecutor creates an action executor over a platform client.
func NewActionExecutor(client *Client) *ActionExecutor {
	return &ActionExecutor{client: client}
}

// Execute runs an action with entity context and an arbitrary payload.
// A backend rejection comes back as a result with ActionStatusError, not
// as a transport error.
func (e *ActionExecutor) Execute(
	ctx context.Context, action string, actionCtx, payload map[string]any,
) (*driven.ActionResult, error) {
	var resp actionResponse
	err := e.client.postJSON(ctx, "/v1/actions/execute", actionRequest{
		Action:  action,
		Context: actionCtx,
		Payload: payload,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("execute action: %w", err)
	}

	return &driven.ActionResult{
		Status:  resp.Status,
		Message: resp.Message,
		Data:    resp.Data,
	}, nil
}
