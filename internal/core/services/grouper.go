package services

import (
	"github.com/quayside-labs/deckhand/internal/core/domain"
	"github.com/quayside-labs/deckhand/internal/core/ports/driven"
)

// Config keys for grouping heuristics. The thresholds are heuristic
// constants with no derivation behind them; they stay configurable rather
// than hard-coded.
const (
	cfgTopMatchThreshold = "search.top_match_threshold"
	cfgCollapsedSize     = "search.collapsed_group_size"
	cfgExpandedSize      = "search.expanded_group_size"
)

// GrouperConfig holds the grouping heuristics.
type GrouperConfig struct {
	// TopMatchThreshold is the minimum score to promote a top match.
	TopMatchThreshold float64

	// CollapsedLimit caps rows in a collapsed bucket.
	CollapsedLimit int

	// ExpandedLimit caps rows in an expanded bucket.
	ExpandedLimit int
}

// grouperConfigFrom reads grouping heuristics with compiled fallbacks.
// Reading per build means a config hot reload takes effect on the next query.
func grouperConfigFrom(cfg driven.ConfigStore) GrouperConfig {
	out := GrouperConfig{
		TopMatchThreshold: domain.DefaultTopMatchThreshold,
		CollapsedLimit:    domain.DefaultCollapsedGroupSize,
		ExpandedLimit:     domain.DefaultExpandedGroupSize,
	}
	if cfg == nil {
		return out
	}
	if v := cfg.GetFloat(cfgTopMatchThreshold); v > 0 {
		out.TopMatchThreshold = v
	}
	if v := cfg.GetInt(cfgCollapsedSize); v > 0 {
		out.CollapsedLimit = v
	}
	if v := cfg.GetInt(cfgExpandedSize); v > 0 {
		out.ExpandedLimit = v
	}
	return out
}

// groupResults partitions the full normalised list into a fresh
// GroupedResults. It never mutates its inputs; expansion changes rebuild
// from the full list, so an expanded bucket re-filters everything fetched
// rather than re-slicing the collapsed page.
//
// Bucket order follows first appearance in the ranked list, preserving the
// backend's relative ranking both across and within buckets.
func groupResults(
	query string,
	all []domain.SearchResult,
	page *driven.SearchPage,
	expanded map[domain.Domain]bool,
	cfg GrouperConfig,
) *domain.GroupedResults {
	grouped := &domain.GroupedResults{Query: query}
	if page != nil {
		grouped.TotalResults = page.TotalResults
		grouped.HasMore = page.HasMore
	}
	if grouped.TotalResults < len(all) {
		grouped.TotalResults = len(all)
	}
	if len(all) == 0 {
		return grouped
	}

	rest := all
	if all[0].Score >= cfg.TopMatchThreshold && cfg.TopMatchThreshold > 0 {
		top := all[0]
		grouped.TopMatch = &top
		rest = all[1:]
	}

	buckets := make(map[domain.Domain][]domain.SearchResult)
	var order []domain.Domain
	for _, r := range rest {
		d := r.Domain()
		if _, seen := buckets[d]; !seen {
			order = append(order, d)
		}
		buckets[d] = append(buckets[d], r)
	}

	counts := domainCounts(page)

	grouped.Domains = make([]domain.DomainGroup, 0, len(order))
	for _, d := range order {
		rows := buckets[d]

		total := counts[d]
		if total < len(rows) {
			total = len(rows)
		}

		limit := cfg.CollapsedLimit
		isExpanded := expanded[d]
		if isExpanded {
			limit = cfg.ExpandedLimit
		}
		if limit > len(rows) {
			limit = len(rows)
		}

		visible := make([]domain.SearchResult, limit)
		copy(visible, rows[:limit])

		grouped.Domains = append(grouped.Domains, domain.DomainGroup{
			Domain:     d,
			Results:    visible,
			TotalCount: total,
			Expanded:   isExpanded,
		})
	}

	return grouped
}

// domainCounts aggregates the backend's per-type counts into per-domain
// counts through the shared classification table.
func domainCounts(page *driven.SearchPage) map[domain.Domain]int {
	counts := make(map[domain.Domain]int)
	if page == nil {
		return counts
	}
	for tag, n := range page.TypeCounts {
		d := domain.ClassifyTypeTag(tag).Domain()
		counts[d] += n
	}
	return counts
}
