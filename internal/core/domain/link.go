package domain

import "fmt"

// LinkErrorState is the fixed taxonomy of link-open resolution failures.
// Each state maps to a distinct user-visible error screen with its own
// remediation affordance; anything outside the taxonomy collapses to
// LinkErrorUnknown.
type LinkErrorState string

const (
	// LinkErrorNoToken means no token was supplied. Detected client-side;
	// no resolve call is made.
	LinkErrorNoToken LinkErrorState = "no_token"
	// LinkErrorInvalid means the token is malformed or unrecognised.
	LinkErrorInvalid LinkErrorState = "invalid"
	// LinkErrorExpired means the token has expired.
	LinkErrorExpired LinkErrorState = "expired"
	// LinkErrorYachtMismatch means the token belongs to a different vessel
	// (tenant) than the signed-in one.
	LinkErrorYachtMismatch LinkErrorState = "yacht_mismatch"
	// LinkErrorAuthRequired means the user must sign in before resolving.
	LinkErrorAuthRequired LinkErrorState = "auth_required"
	// LinkErrorUnknown covers every failure outside the fixed taxonomy.
	LinkErrorUnknown LinkErrorState = "unknown"
)

// LinkErrorStateFromCode maps a backend error code onto the taxonomy.
func LinkErrorStateFromCode(code string) LinkErrorState {
	switch LinkErrorState(code) {
	case LinkErrorNoToken, LinkErrorInvalid, LinkErrorExpired,
		LinkErrorYachtMismatch, LinkErrorAuthRequired:
		return LinkErrorState(code)
	default:
		return LinkErrorUnknown
	}
}

// Remediation returns the affordance the error screen should offer.
func (s LinkErrorState) Remediation() string {
	switch s {
	case LinkErrorAuthRequired:
		return "Sign In"
	default:
		return "Return to App"
	}
}

// Message returns the user-facing description for the state.
func (s LinkErrorState) Message() string {
	switch s {
	case LinkErrorNoToken:
		return "This link is missing its token."
	case LinkErrorInvalid:
		return "This link is not valid."
	case LinkErrorExpired:
		return "This link has expired."
	case LinkErrorYachtMismatch:
		return "This link belongs to a different vessel."
	case LinkErrorAuthRequired:
		return "Sign in to open this link."
	default:
		return "This link could not be opened."
	}
}

// LinkResolveError is a typed link-open resolution failure.
type LinkResolveError struct {
	// State is the taxonomy entry.
	State LinkErrorState

	// Detail is an optional backend-supplied message.
	Detail string
}

// Error implements the error interface.
func (e *LinkResolveError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("link resolve: %s (%s)", e.State, e.Detail)
	}
	return fmt.Sprintf("link resolve: %s", e.State)
}

// FocusDescriptor is the successful outcome of link resolution: the entity
// the link points at.
type FocusDescriptor struct {
	// EntityType is the target's navigation type.
	EntityType EntityType

	// EntityID is the target's identifier.
	EntityID string
}
