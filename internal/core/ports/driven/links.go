package driven

import (
	"context"

	"github.com/quayside-labs/deckhand/internal/core/domain"
)

// LinkResolver exchanges a share-link token for a focus descriptor.
// Failures are returned as *domain.LinkResolveError carrying one of the
// fixed taxonomy states; the caller is responsible for short-circuiting an
// empty token to LinkErrorNoToken without calling Resolve.
type LinkResolver interface {
	Resolve(ctx context.Context, token string) (*domain.FocusDescriptor, error)
}
