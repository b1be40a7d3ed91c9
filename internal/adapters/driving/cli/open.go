package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quayside-labs/deckhand/internal/core/domain"
	"github.com/quayside-labs/deckhand/internal/core/ports/driving"
)

var openLinkToken string

var openCmd = &cobra.Command{
	Use:   "open [entity-type] [entity-id]",
	Short: "Open an entity or a shared link",
	Long: `Routes an entity through the surface coordinator. The CLI is a
headless host, so the open always drives the focus state machine directly
and prints the resulting situation.

With --link, resolves a share-link token instead of an explicit entity.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runOpen,
}

func init() {
	openCmd.Flags().StringVarP(&openLinkToken, "link", "l", "", "share-link token to resolve")
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	if surfaceCoordinator == nil {
		return errors.New("surface coordinator not configured")
	}

	ctx := context.Background()

	if openLinkToken != "" {
		decision, err := surfaceCoordinator.OpenLink(ctx, nil, openLinkToken)
		if err != nil {
			return formatLinkError(err)
		}
		return printDecision(cmd, decision)
	}

	if len(args) != 2 {
		return errors.New("provide an entity type and id, or --link")
	}

	entityType, err := domain.LookupEntityType(args[0])
	if err != nil {
		return err
	}

	result := domain.SearchResult{
		ID:         args[1],
		EntityType: entityType,
		Title:      fmt.Sprintf("%s %s", entityType.Label(), args[1]),
	}

	decision, err := surfaceCoordinator.Open(ctx, nil, result)
	if err != nil {
		return fmt.Errorf("open failed: %w", err)
	}
	return printDecision(cmd, decision)
}

// formatLinkError turns the taxonomy into a user-facing message with its
// remediation affordance.
func formatLinkError(err error) error {
	var linkErr *domain.LinkResolveError
	if errors.As(err, &linkErr) {
		return fmt.Errorf("%s [%s]", linkErr.State.Message(), linkErr.State.Remediation())
	}
	return fmt.Errorf("open link failed: %w", err)
}

func printDecision(cmd *cobra.Command, decision *driving.SurfaceDecision) error {
	if decision == nil {
		return errors.New("no routing decision")
	}

	cmd.Printf("Opened %s %q via %s surface\n",
		decision.Result.EntityType.Label(), decision.Result.Title, decision.Route)

	if decision.Situation != nil {
		cmd.Printf("Focus: %s (%s)\n", decision.Situation.EntityID, decision.Situation.State)
	}
	return nil
}
