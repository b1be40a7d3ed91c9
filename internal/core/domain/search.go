package domain

// SearchOptions configures a search query.
type SearchOptions struct {
	// Limit is the maximum number of results to request from the backend.
	Limit int

	// Domains filters results to specific display domains.
	// Empty means all domains.
	Domains []Domain
}

// SearchResult is the canonical form of a single backend search hit.
// It is produced by the normaliser from a record of arbitrary shape and
// discarded on the next query or on clear.
type SearchResult struct {
	// ID is the addressable identifier. When the backend record carries
	// both a primary (sub-record) identifier and a coarser parent id, the
	// primary one wins; navigation depends on that precedence.
	ID string

	// TypeTag is the raw backend type tag the result arrived with.
	TypeTag string

	// EntityType is the classified navigation type.
	EntityType EntityType

	// Title is the display title. Never empty after normalisation.
	Title string

	// Subtitle is a secondary display line (snippet or assembled attributes).
	Subtitle string

	// Score is the backend relevance/confidence score, where known.
	Score float64

	// Metadata carries the original record fields, opaque to the core.
	Metadata map[string]any
}

// Domain returns the display domain for the result.
func (r *SearchResult) Domain() Domain {
	return r.EntityType.Domain()
}
