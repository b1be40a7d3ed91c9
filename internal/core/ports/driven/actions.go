package driven

import "context"

// Action result statuses returned by the platform.
const (
	ActionStatusOK    = "ok"
	ActionStatusError = "error"
)

// ActionExecutor runs named platform actions on behalf of the user
// (e.g. "add_to_handover"). A transport failure is an error; a backend
// rejection arrives as an ActionResult with ActionStatusError and must be
// surfaced as a recoverable failure, not a crash.
type ActionExecutor interface {
	// Execute runs an action with entity context and an arbitrary payload.
	Execute(ctx context.Context, action string, actionCtx, payload map[string]any) (*ActionResult, error)
}

// ActionResult is the platform's response to an action execution.
type ActionResult struct {
	// Status is ActionStatusOK or ActionStatusError.
	Status string

	// Message describes a failure when Status is ActionStatusError.
	Message string

	// Data carries optional action-specific response fields.
	Data map[string]any
}
