package linkerror

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quayside-labs/deckhand/internal/adapters/driving/tui/messages"
	"github.com/quayside-labs/deckhand/internal/core/domain"
)

func TestView_RendersExpiredState(t *testing.T) {
	v := NewView(nil)
	v.SetError(&domain.LinkResolveError{State: domain.LinkErrorExpired})

	view := v.View()

	assert.Contains(t, view, "expired")
	assert.Contains(t, view, "Return to App")
}

func TestView_RendersYachtMismatchDistinctly(t *testing.T) {
	v := NewView(nil)
	v.SetError(&domain.LinkResolveError{State: domain.LinkErrorYachtMismatch})

	view := v.View()

	assert.Contains(t, view, "different vessel")
	assert.Contains(t, view, "Return to App")
}

func TestView_AuthRequiredOffersSignIn(t *testing.T) {
	v := NewView(nil)
	v.SetError(&domain.LinkResolveError{State: domain.LinkErrorAuthRequired})

	view := v.View()

	assert.Contains(t, view, "Sign in")
	assert.Contains(t, view, "Sign In")
}

func TestView_RendersDetail(t *testing.T) {
	v := NewView(nil)
	v.SetError(&domain.LinkResolveError{
		State:  domain.LinkErrorInvalid,
		Detail: "token checksum mismatch",
	})

	view := v.View()

	assert.Contains(t, view, "token checksum mismatch")
}

func TestView_NilErrorFallsBackToUnknown(t *testing.T) {
	v := NewView(nil)

	view := v.View()

	assert.Contains(t, view, "could not be opened")
	assert.Contains(t, view, "Return to App")
}

func TestView_EnterReturnsToSearch(t *testing.T) {
	v := NewView(nil)
	v.SetError(&domain.LinkResolveError{State: domain.LinkErrorExpired})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	changed, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewSearch, changed.View)
}

func TestView_EscReturnsToSearch(t *testing.T) {
	v := NewView(nil)
	v.SetError(&domain.LinkResolveError{State: domain.LinkErrorNoToken})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	changed, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewSearch, changed.View)
}
