package platform

import (
	"context"
	"errors"
	"fmt"

	"github.com/quayside-labs/deckhand/internal/core/domain"
	"github.com/quayside-labs/deckhand/internal/core/ports/driven"
)

// Ensure LinkResolver implements the interface.
var _ driven.LinkResolver = (*LinkResolver)(nil)

// linkRequest is the /v1/open/resolve request format.
type linkRequest struct {
	Token string `json:"t"`
}

// linkResponse is the /v1/open/resolve response format.
type linkResponse struct {
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
}

// LinkResolver exchanges share-link tokens for focus descriptors.
type LinkResolver struct {
	client *Client
}

// NewLinkResolver creates a link resolver over a platform client.
func NewLinkResolver(client *Client) *LinkResolver {
	return &LinkResolver{client: client}
}

// Resolve exchanges a token for the entity it points at. Structured
// platform errors map onto the fixed link-error taxonomy; anything the
// platform does not classify collapses to unknown.
func (r *LinkResolver) Resolve(ctx context.Context, token string) (*domain.FocusDescriptor, error) {
	var resp linkResponse
	err := r.client.postJSON(ctx, "/v1/open/resolve", linkRequest{Token: token}, &resp)
	if err != nil {
		var serr *StatusError
		if errors.As(err, &serr) {
			return nil, &domain.LinkResolveError{
				State:  domain.LinkErrorStateFromCode(serr.Code),
				Detail: serr.Message,
			}
		}
		return nil, fmt.Errorf("resolve link: %w", err)
	}

	if resp.EntityID == "" {
		return nil, &domain.LinkResolveError{State: domain.LinkErrorInvalid}
	}
	return &domain.FocusDescriptor{
		EntityType: domain.ParseEntityType(resp.EntityType),
		EntityID:   resp.EntityID,
	}, nil
}
