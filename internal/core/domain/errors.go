package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrBackendUnavailable indicates the platform backend is not configured
	// or not reachable.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrSuperseded indicates an asynchronous response arrived after a newer
	// request was issued. The response must be discarded, not merged.
	ErrSuperseded = errors.New("superseded by a newer request")

	// ErrNoSituation indicates an operation that needs a focused situation
	// was called while idle.
	ErrNoSituation = errors.New("no active situation")

	// ErrSituationReplaced indicates an update targeted a situation that has
	// already been replaced. The update is rejected, never applied to the
	// replacement.
	ErrSituationReplaced = errors.New("situation replaced")

	// ErrInvalidTransition indicates an undefined situation state change.
	ErrInvalidTransition = errors.New("invalid situation transition")

	// ErrNotAuthenticated indicates no platform session token is available.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrActionFailed indicates the backend reported an action execution
	// failure. Recoverable; surfaced to the user, never a crash.
	ErrActionFailed = errors.New("action failed")
)

// ActionError wraps a backend-reported action failure with its message.
type ActionError struct {
	// Action is the action name that failed.
	Action string

	// Message is the backend-supplied failure description.
	Message string
}

// Error implements the error interface.
func (e *ActionError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("action %q failed: %s", e.Action, e.Message)
	}
	return fmt.Sprintf("action %q failed", e.Action)
}

// Unwrap lets errors.Is match ErrActionFailed.
func (e *ActionError) Unwrap() error {
	return ErrActionFailed
}
