package driving

import "github.com/quayside-labs/deckhand/internal/core/domain"

// FilterSuggester infers quick-filter shortcuts from free-text query input.
// Pure and deterministic: no network, no randomness; identical input always
// yields an identical, order-stable list of at most five suggestions.
type FilterSuggester interface {
	Suggest(query string) []domain.InferredFilter
}
