package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quayside-labs/deckhand/internal/core/domain"
)

var (
	searchLimit   int
	searchDomains []string
	searchJSON    bool
	searchExpand  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the vessel maintenance platform",
	Long: `Runs a unified search across equipment, spare parts, work orders,
faults, manuals and email, and prints the results grouped by domain.

A single high-confidence hit is promoted above the groups as the top match.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 50, "maximum number of results to request")
	searchCmd.Flags().StringSliceVarP(&searchDomains, "domain", "d", nil,
		"restrict to domains (manuals, maintenance, inventory, email)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().BoolVar(&searchExpand, "expand", false, "show expanded groups")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchService == nil {
		return errors.New("search service not configured")
	}

	opts := domain.SearchOptions{Limit: searchLimit}
	for _, d := range searchDomains {
		opts.Domains = append(opts.Domains, domain.Domain(d))
	}

	ctx := context.Background()
	grouped, err := searchService.Search(ctx, query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchExpand {
		grouped, _ = searchService.AutoExpandAll()
	}

	if searchJSON {
		return outputSearchJSON(cmd, grouped)
	}

	return outputSearchGroups(cmd, grouped)
}

func outputSearchJSON(cmd *cobra.Command, grouped *domain.GroupedResults) error {
	data, err := json.MarshalIndent(grouped, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchGroups(cmd *cobra.Command, grouped *domain.GroupedResults) error {
	if grouped == nil || grouped.IsEmpty() {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Printf("Results (%d):\n\n", grouped.TotalResults)

	if grouped.TopMatch != nil {
		cmd.Println("Top match:")
		printResult(cmd, grouped.TopMatch)
		cmd.Println()
	}

	for i := range grouped.Domains {
		group := &grouped.Domains[i]
		cmd.Printf("%s (%d of %d):\n", group.Domain.Label(), len(group.Results), group.TotalCount)
		for j := range group.Results {
			printResult(cmd, &group.Results[j])
		}
		cmd.Println()
	}

	if grouped.HasMore {
		cmd.Println("More results available on the platform.")
	}

	return nil
}

func printResult(cmd *cobra.Command, r *domain.SearchResult) {
	cmd.Printf("  %-12s %s (%.2f)\n", r.EntityType.Label(), r.Title, r.Score)
	if r.Subtitle != "" {
		cmd.Printf("               %s\n", r.Subtitle)
	}
	cmd.Printf("               id: %s\n", r.ID)
}
