package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/quayside-labs/deckhand/internal/adapters/driving/tui"
)

var tuiLinkToken string

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for Deckhand.

The TUI provides unified search with grouped results, entity preview and
opening, quick-filter suggestions, and a dedicated email overlay.

Controls:
  ↑/k, ↓/j - Navigate results
  Enter    - Search / Open
  Space    - Preview selected result
  Tab      - Expand/collapse group
  Esc      - Back / Cancel
  ?        - Toggle help
  ctrl+c   - Quit`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVarP(&tuiLinkToken, "link", "l", "", "share-link token to open on start")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports := &tui.Ports{
		Search:    searchService,
		Situation: situationService,
		Surface:   surfaceCoordinator,
		Filters:   filterSuggester,
		History:   historyService,
		Config:    configStore,
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	app.WithContext(cmd.Context())
	if tuiLinkToken != "" {
		app.WithLink(tuiLinkToken)
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
