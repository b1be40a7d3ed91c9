package driven

import "context"

// TokenProvider supplies the platform session token for authenticated calls.
type TokenProvider interface {
	// Token returns a valid access token, refreshing if needed.
	Token(ctx context.Context) (string, error)

	// IsAuthenticated reports whether a session token is available without
	// performing a network call.
	IsAuthenticated() bool
}
