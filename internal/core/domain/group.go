package domain

// Default group sizing. The effective values are configuration parameters;
// these are the compiled fallbacks.
const (
	// DefaultCollapsedGroupSize is the row cap for a collapsed domain group.
	DefaultCollapsedGroupSize = 4

	// DefaultExpandedGroupSize is the row cap for an expanded domain group.
	DefaultExpandedGroupSize = 12

	// DefaultTopMatchThreshold is the minimum score for promoting a result
	// above the domain groups. A heuristic constant, tunable via config.
	DefaultTopMatchThreshold = 0.85
)

// DomainGroup is one display bucket of results sharing a domain.
// Invariants: len(Results) <= TotalCount; len(Results) <= the collapsed cap
// when !Expanded and <= the expanded cap when Expanded.
type DomainGroup struct {
	// Domain is the bucket's display domain.
	Domain Domain

	// Results are the visible rows, in backend rank order.
	Results []SearchResult

	// TotalCount is the number of matching results the backend reports for
	// this bucket. May exceed len(Results).
	TotalCount int

	// Expanded reports whether the bucket shows the expanded row cap.
	Expanded bool
}

// GroupedResults is the display shape of one query's results.
// It is produced fresh per query (and per expansion change); it is never
// mutated in place.
type GroupedResults struct {
	// Query is the query text the grouping was built for.
	Query string

	// TopMatch is the single high-confidence result promoted above the
	// groups, or nil. When present it appears in no DomainGroup.
	TopMatch *SearchResult

	// Domains are the buckets, ordered by first appearance in the ranked list.
	Domains []DomainGroup

	// TotalResults is the backend's total match count across all domains.
	TotalResults int

	// HasMore reports whether the backend holds results beyond the page.
	HasMore bool
}

// VisibleRowCount returns the number of currently rendered rows, including
// the top match when present.
func (g *GroupedResults) VisibleRowCount() int {
	n := 0
	if g.TopMatch != nil {
		n++
	}
	for i := range g.Domains {
		n += len(g.Domains[i].Results)
	}
	return n
}

// ResultAt returns the result rendered at the given global row index, or nil
// when the index is out of range. The index is recomputed from the current
// expansion state: row 0 is the top match when present, followed by each
// bucket's visible rows in order.
func (g *GroupedResults) ResultAt(index int) *SearchResult {
	if index < 0 {
		return nil
	}
	if g.TopMatch != nil {
		if index == 0 {
			return g.TopMatch
		}
		index--
	}
	for i := range g.Domains {
		rows := g.Domains[i].Results
		if index < len(rows) {
			return &rows[index]
		}
		index -= len(rows)
	}
	return nil
}

// GroupFor returns the bucket for the given domain, or nil.
func (g *GroupedResults) GroupFor(d Domain) *DomainGroup {
	for i := range g.Domains {
		if g.Domains[i].Domain == d {
			return &g.Domains[i]
		}
	}
	return nil
}

// IsEmpty reports whether the grouping holds no results at all.
func (g *GroupedResults) IsEmpty() bool {
	return g.TopMatch == nil && len(g.Domains) == 0
}
