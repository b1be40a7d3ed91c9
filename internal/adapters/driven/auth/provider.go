// Package auth provides the session token provider for platform calls.
package auth

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/oauth2"

	"github.com/quayside-labs/deckhand/internal/core/ports/driven"
)

// Config keys for the persisted session.
const (
	cfgAccessToken = "auth.access_token"
	cfgVesselID    = "auth.vessel_id"
)

// Ensure SessionProvider implements the interface.
var _ driven.TokenProvider = (*SessionProvider)(nil)

// SessionProvider supplies the platform session token. The token is held
// as an oauth2 token source and persisted through the config store, so a
// session survives process restarts.
type SessionProvider struct {
	config driven.ConfigStore

	mu     sync.RWMutex
	source oauth2.TokenSource
}

// NewSessionProvider creates a provider, loading any persisted session.
func NewSessionProvider(config driven.ConfigStore) *SessionProvider {
	p := &SessionProvider{config: config}
	if config != nil {
		if token := config.GetString(cfgAccessToken); token != "" {
			p.source = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		}
	}
	return p
}

// Token returns the current access token.
func (p *SessionProvider) Token(ctx context.Context) (string, error) {
	p.mu.RLock()
	source := p.source
	p.mu.RUnlock()

	if source == nil {
		return "", fmt.Errorf("no session token, sign in first")
	}
	token, err := source.Token()
	if err != nil {
		return "", fmt.Errorf("session token: %w", err)
	}
	return token.AccessToken, nil
}

// IsAuthenticated reports whether a session token is available. It never
// performs a network call.
func (p *SessionProvider) IsAuthenticated() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.source != nil
}

// SignIn stores a session token and persists it.
func (p *SessionProvider) SignIn(token, vesselID string) error {
	if token == "" {
		return fmt.Errorf("sign in: empty token")
	}

	p.mu.Lock()
	p.source = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	p.mu.Unlock()

	if p.config != nil {
		if err := p.config.Set(cfgAccessToken, token); err != nil {
			return fmt.Errorf("persist session: %w", err)
		}
		if vesselID != "" {
			if err := p.config.Set(cfgVesselID, vesselID); err != nil {
				return fmt.Errorf("persist vessel: %w", err)
			}
		}
	}
	return nil
}

// SignOut clears the session.
func (p *SessionProvider) SignOut() error {
	p.mu.Lock()
	p.source = nil
	p.mu.Unlock()

	if p.config != nil {
		if err := p.config.Set(cfgAccessToken, ""); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
	}
	return nil
}

// VesselID returns the signed-in vessel identifier, or "".
func (p *SessionProvider) VesselID() string {
	if p.config == nil {
		return ""
	}
	return p.config.GetString(cfgVesselID)
}
