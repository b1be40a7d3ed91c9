package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var filtersCmd = &cobra.Command{
	Use:   "filters [query]",
	Short: "Suggest quick filters for a query",
	Long: `Infers quick-filter shortcuts from free-text query input. Inference
is deterministic: the same query always yields the same ordered list.`,
	Args: cobra.ExactArgs(1),
	RunE: runFilters,
}

func init() {
	rootCmd.AddCommand(filtersCmd)
}

func runFilters(cmd *cobra.Command, args []string) error {
	if filterSuggester == nil {
		return errors.New("filter suggester not configured")
	}

	filters := filterSuggester.Suggest(args[0])
	if len(filters) == 0 {
		cmd.Println("No filter suggestions.")
		return nil
	}

	for _, f := range filters {
		cmd.Printf("  %-24s %s (%.2f, %s)\n", f.Label, f.Route, f.Score, f.MatchType)
	}
	return nil
}
