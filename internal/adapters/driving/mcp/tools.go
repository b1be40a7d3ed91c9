package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/quayside-labs/deckhand/internal/core/domain"
	"github.com/quayside-labs/deckhand/internal/core/ports/driving"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query   string   `json:"query" jsonschema:"the search query across equipment, parts, work orders, faults, manuals and email"`
	Limit   int      `json:"limit,omitempty" jsonschema:"maximum number of results to request (default 50)"`
	Domains []string `json:"domains,omitempty" jsonschema:"restrict to domains: manuals, maintenance, inventory, email"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	TopMatch *ResultOutput `json:"top_match,omitempty"`
	Groups   []GroupOutput `json:"groups"`
	Total    int           `json:"total"`
	HasMore  bool          `json:"has_more"`
}

// GroupOutput is one display bucket of results.
type GroupOutput struct {
	Domain  string         `json:"domain"`
	Total   int            `json:"total"`
	Results []ResultOutput `json:"results"`
}

// ResultOutput represents a single search result.
type ResultOutput struct {
	ID         string  `json:"id"`
	EntityType string  `json:"entity_type"`
	Title      string  `json:"title"`
	Subtitle   string  `json:"subtitle,omitempty"`
	Score      float64 `json:"score"`
}

// SuggestFiltersInput is the input schema for the suggest_filters tool.
type SuggestFiltersInput struct {
	Query string `json:"query" jsonschema:"free-text query to infer quick filters from"`
}

// SuggestFiltersOutput is the output schema for the suggest_filters tool.
type SuggestFiltersOutput struct {
	Filters []FilterOutput `json:"filters"`
}

// FilterOutput represents a single quick-filter suggestion.
type FilterOutput struct {
	FilterID  string  `json:"filter_id"`
	Label     string  `json:"label"`
	Route     string  `json:"route"`
	Score     float64 `json:"score"`
	MatchType string  `json:"match_type"`
}

// OpenEntityInput is the input schema for the open_entity tool.
type OpenEntityInput struct {
	EntityType string `json:"entity_type" jsonschema:"entity type: equipment, part, work_order, fault, inventory, document, email_thread"`
	EntityID   string `json:"entity_id" jsonschema:"identifier of the entity to open"`
	Link       string `json:"link,omitempty" jsonschema:"share-link token to resolve instead of an explicit entity"`
}

// OpenEntityOutput is the output schema for the open_entity tool.
type OpenEntityOutput struct {
	Route      string `json:"route"`
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	Title      string `json:"title"`
	Focus      string `json:"focus,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search the vessel maintenance platform with results grouped by domain",
	}, s.handleSearch)

	if s.ports.Filters != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "suggest_filters",
			Description: "Infer quick-filter navigation shortcuts from free-text query input",
		}, s.handleSuggestFilters)
	}

	if s.ports.Surface != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "open_entity",
			Description: "Open an entity or resolve a share-link token, focusing it for follow-up actions",
		}, s.handleOpenEntity)
	}
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	opts := domain.SearchOptions{Limit: input.Limit}
	for _, d := range input.Domains {
		opts.Domains = append(opts.Domains, domain.Domain(d))
	}

	grouped, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Total:   grouped.TotalResults,
		HasMore: grouped.HasMore,
		Groups:  make([]GroupOutput, 0, len(grouped.Domains)),
	}

	if grouped.TopMatch != nil {
		top := toResultOutput(grouped.TopMatch)
		output.TopMatch = &top
	}

	for i := range grouped.Domains {
		group := &grouped.Domains[i]
		out := GroupOutput{
			Domain:  string(group.Domain),
			Total:   group.TotalCount,
			Results: make([]ResultOutput, 0, len(group.Results)),
		}
		for j := range group.Results {
			out.Results = append(out.Results, toResultOutput(&group.Results[j]))
		}
		output.Groups = append(output.Groups, out)
	}

	return nil, output, nil
}

func toResultOutput(r *domain.SearchResult) ResultOutput {
	return ResultOutput{
		ID:         r.ID,
		EntityType: string(r.EntityType),
		Title:      r.Title,
		Subtitle:   r.Subtitle,
		Score:      r.Score,
	}
}

// handleSuggestFilters handles the suggest_filters tool invocation.
func (s *Server) handleSuggestFilters(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input SuggestFiltersInput,
) (*mcp.CallToolResult, SuggestFiltersOutput, error) {
	filters := s.ports.Filters.Suggest(input.Query)

	output := SuggestFiltersOutput{
		Filters: make([]FilterOutput, 0, len(filters)),
	}
	for _, f := range filters {
		output.Filters = append(output.Filters, FilterOutput{
			FilterID:  f.FilterID,
			Label:     f.Label,
			Route:     f.Route,
			Score:     f.Score,
			MatchType: string(f.MatchType),
		})
	}

	return nil, output, nil
}

// handleOpenEntity handles the open_entity tool invocation.
func (s *Server) handleOpenEntity(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input OpenEntityInput,
) (*mcp.CallToolResult, OpenEntityOutput, error) {
	if input.Link != "" {
		d, err := s.ports.Surface.OpenLink(ctx, nil, input.Link)
		if err != nil {
			var linkErr *domain.LinkResolveError
			if errors.As(err, &linkErr) {
				return nil, OpenEntityOutput{}, fmt.Errorf("%s [%s]",
					linkErr.State.Message(), linkErr.State.Remediation())
			}
			return nil, OpenEntityOutput{}, err
		}
		return nil, toOpenOutput(d), nil
	}

	entityType, err := domain.LookupEntityType(input.EntityType)
	if err != nil {
		return nil, OpenEntityOutput{}, err
	}
	if input.EntityID == "" {
		return nil, OpenEntityOutput{}, errors.New("entity_id is required")
	}

	result := domain.SearchResult{
		ID:         input.EntityID,
		EntityType: entityType,
		Title:      fmt.Sprintf("%s %s", entityType.Label(), input.EntityID),
	}

	d, err := s.ports.Surface.Open(ctx, nil, result)
	if err != nil {
		return nil, OpenEntityOutput{}, err
	}
	return nil, toOpenOutput(d), nil
}

func toOpenOutput(d *driving.SurfaceDecision) OpenEntityOutput {
	output := OpenEntityOutput{
		Route:      string(d.Route),
		EntityType: string(d.Result.EntityType),
		EntityID:   d.Result.ID,
		Title:      d.Result.Title,
	}
	if d.Situation != nil {
		output.Focus = string(d.Situation.State)
	}
	return output
}
