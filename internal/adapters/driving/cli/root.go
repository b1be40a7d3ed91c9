// Package cli provides the cobra command-line interface for deckhand.
// It is a driving adapter: commands call core services through their
// driving ports and format the results for the terminal.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/quayside-labs/deckhand/internal/core/ports/driven"
	"github.com/quayside-labs/deckhand/internal/core/ports/driving"
	"github.com/quayside-labs/deckhand/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// sessionManager is the slice of the auth adapter the CLI needs.
type sessionManager interface {
	SignIn(token, vesselID string) error
	SignOut() error
	IsAuthenticated() bool
	VesselID() string
}

// Package-level services injected by the composition root before Execute.
var (
	searchService      driving.SearchService
	situationService   driving.SituationService
	surfaceCoordinator driving.SurfaceCoordinator
	filterSuggester    driving.FilterSuggester
	historyService     driving.HistoryService
	configStore        driven.ConfigStore
	session            sessionManager
)

var verbose bool

// Services bundles everything the CLI commands need.
type Services struct {
	Search    driving.SearchService
	Situation driving.SituationService
	Surface   driving.SurfaceCoordinator
	Filters   driving.FilterSuggester
	History   driving.HistoryService
	Config    driven.ConfigStore
	Session   sessionManager
}

// SetServices installs the services the commands run against.
func SetServices(s *Services) {
	searchService = s.Search
	situationService = s.Situation
	surfaceCoordinator = s.Surface
	filterSuggester = s.Filters
	historyService = s.History
	configStore = s.Config
	session = s.Session
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "deckhand",
	Short: "Vessel maintenance search and navigation",
	Long: `Deckhand is a terminal client for the vessel maintenance platform.

Search equipment, spare parts, work orders, faults, manuals and email in one
place, preview and open entities, and resolve shared links.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with a parent context, so commands
// observe cancellation through cmd.Context().
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
