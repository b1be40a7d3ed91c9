package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quayside-labs/deckhand/internal/core/domain"
)

func TestOpenCmd_OpensEntity(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"open", "equipment", "eq-1"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "via situation surface")
	assert.Contains(t, buf.String(), "eq-1")
	assert.Contains(t, buf.String(), "active")
}

func TestOpenCmd_UnknownEntityType(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"open", "submarine", "x-1"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown entity type")
}

func TestOpenCmd_MissingArgsWithoutLink(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"open", "equipment"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "entity type and id")
}

func TestOpenCmd_ResolvesLink(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"open", "--link", "tok-1"})
	defer func() {
		rootCmd.SetArgs(nil)
		openLinkToken = ""
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "wo-9")
}

func TestOpenCmd_LinkErrorIncludesRemediation(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	surfaceCoordinator = &mockSurface{
		linkErr: &domain.LinkResolveError{State: domain.LinkErrorAuthRequired},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"open", "--link", "tok-2"})
	defer func() {
		rootCmd.SetArgs(nil)
		openLinkToken = ""
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Sign in to open this link")
	assert.Contains(t, err.Error(), "[Sign In]")
}

func TestOpenCmd_SurfaceNotConfigured(t *testing.T) {
	oldSurface := surfaceCoordinator
	surfaceCoordinator = nil
	defer func() {
		surfaceCoordinator = oldSurface
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"open", "equipment", "eq-1"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "surface coordinator not configured")
}
