package domain

// FilterMatchType describes how a quick-filter suggestion matched the query.
type FilterMatchType string

const (
	// FilterMatchPattern means an exact pattern from the filter table matched.
	FilterMatchPattern FilterMatchType = "pattern"
	// FilterMatchFuzzy means keyword overlap produced the match.
	FilterMatchFuzzy FilterMatchType = "fuzzy"
)

// InferredFilter is a quick-filter shortcut suggested from query text.
// Inference is deterministic: identical query text always yields an
// identical ordered list.
type InferredFilter struct {
	// FilterID identifies the filter definition that matched.
	FilterID string

	// Label is the human-facing suggestion text.
	Label string

	// Route is the navigation target the filter leads to.
	Route string

	// QueryParams are the fixed parameters applied at the route.
	QueryParams map[string]string

	// Score is the match confidence in [0,1].
	Score float64

	// MatchType records whether the match was exact-pattern or fuzzy.
	MatchType FilterMatchType
}
