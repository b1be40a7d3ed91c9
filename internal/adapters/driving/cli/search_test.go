package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quayside-labs/deckhand/internal/core/domain"
)

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search [query]", searchCmd.Use)
}

func TestSearchCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestSearchCmd_HasLimitFlag(t *testing.T) {
	flag := searchCmd.Flags().Lookup("limit")
	require.NotNil(t, flag, "limit flag should exist")
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "50", flag.DefValue)
}

func TestSearchCmd_GroupedOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "pump"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Results (7)")
	assert.Contains(t, out, "Top match:")
	assert.Contains(t, out, "Main Engine Cooling Pump")
	assert.Contains(t, out, "Inventory (1 of 6)")
	assert.Contains(t, out, "Impeller Kit")
}

func TestSearchCmd_DomainFlag(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	mock := &mockSearchService{}
	searchService = mock

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "--domain", "inventory", "pump"})
	defer func() {
		rootCmd.SetArgs(nil)
		searchDomains = nil
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	require.Len(t, mock.lastOpts.Domains, 1)
	assert.Equal(t, domain.DomainInventory, mock.lastOpts.Domains[0])
}

func TestSearchCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "--json", "pump"})
	defer func() {
		rootCmd.SetArgs(nil)
		searchJSON = false
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "\"TopMatch\"")
	assert.Contains(t, buf.String(), "\"TotalResults\"")
}

func TestSearchCmd_ServiceNotConfigured(t *testing.T) {
	oldService := searchService
	searchService = nil
	defer func() {
		searchService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search", "test"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "search service not configured")
}

func TestSearchCmd_ServiceError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	searchService = &mockSearchServiceError{}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search", "test"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "search failed")
}

func TestOutputSearchGroups_Empty(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)

	err := outputSearchGroups(rootCmd, &domain.GroupedResults{})

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No results found")
}

func TestOutputSearchGroups_HasMore(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)

	grouped := mockGrouped("pump")
	grouped.HasMore = true

	err := outputSearchGroups(rootCmd, grouped)

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "More results available")
}
