package services

import (
	"sort"
	"strings"

	"github.com/quayside-labs/deckhand/internal/core/domain"
	"github.com/quayside-labs/deckhand/internal/core/ports/driving"
)

// Ensure FilterService implements the interface.
var _ driving.FilterSuggester = (*FilterService)(nil)

const (
	// minFilterQueryLen is the minimum query length before any suggestion
	// is surfaced.
	minFilterQueryLen = 2

	// minFilterScore is the floor for fuzzy matches; exact pattern matches
	// bypass it.
	minFilterScore = 0.5

	// maxFilterSuggestions caps the suggestion list.
	maxFilterSuggestions = 5

	// fuzzyScoreCeiling keeps fuzzy matches below any pattern match.
	fuzzyScoreCeiling = 0.8
)

// filterDef is one entry in the static quick-filter table.
type filterDef struct {
	id       string
	label    string
	route    string
	params   map[string]string
	patterns []string
	keywords []string
}

// filterTable is the full set of inferable quick filters. Order matters
// only as the final tie-break; scoring decides rank.
var filterTable = []filterDef{
	{
		id:       "open-work-orders",
		label:    "Open work orders",
		route:    "/maintenance/work-orders",
		params:   map[string]string{"status": "open"},
		patterns: []string{"work order", "work orders", "open jobs", "wo list"},
		keywords: []string{"work", "order", "job", "task", "open"},
	},
	{
		id:       "overdue-maintenance",
		label:    "Overdue maintenance",
		route:    "/maintenance/work-orders",
		params:   map[string]string{"due": "overdue"},
		patterns: []string{"overdue", "overdue maintenance", "past due"},
		keywords: []string{"overdue", "late", "due", "maintenance"},
	},
	{
		id:       "critical-faults",
		label:    "Critical faults",
		route:    "/maintenance/faults",
		params:   map[string]string{"severity": "critical"},
		patterns: []string{"faults", "critical faults", "defects", "alerts"},
		keywords: []string{"fault", "defect", "alert", "critical"},
	},
	{
		id:       "low-stock",
		label:    "Low stock items",
		route:    "/inventory/stock",
		params:   map[string]string{"level": "low"},
		patterns: []string{"low stock", "out of stock", "stock levels"},
		keywords: []string{"stock", "inventory", "low", "spares"},
	},
	{
		id:       "spare-parts",
		label:    "Spare parts",
		route:    "/inventory/parts",
		params:   map[string]string{},
		patterns: []string{"spare parts", "spares", "parts list"},
		keywords: []string{"part", "spare", "consumable"},
	},
	{
		id:       "manuals",
		label:    "Manuals & documents",
		route:    "/manuals",
		params:   map[string]string{},
		patterns: []string{"manual", "manuals", "documentation", "handbook"},
		keywords: []string{"manual", "document", "doc", "drawing"},
	},
	{
		id:       "certificates",
		label:    "Certificates",
		route:    "/manuals/certificates",
		params:   map[string]string{"category": "certificate"},
		patterns: []string{"certificate", "certificates", "certs"},
		keywords: []string{"certificate", "cert", "survey", "class"},
	},
	{
		id:       "unread-email",
		label:    "Unread email",
		route:    "/email",
		params:   map[string]string{"state": "unread"},
		patterns: []string{"email", "emails", "inbox", "unread mail"},
		keywords: []string{"email", "mail", "message", "inbox"},
	},
}

// FilterService infers quick-filter shortcuts from free-text query input by
// matching against the static filter table. Pure and deterministic: the
// same query always returns the same ordered list.
type FilterService struct {
	table []filterDef
}

// NewFilterService creates a filter suggester over the built-in table.
func NewFilterService() *FilterService {
	return &FilterService{table: filterTable}
}

// Suggest returns up to five quick-filter suggestions for the query, sorted
// by score descending with filter id as the tie-break.
func (s *FilterService) Suggest(query string) []domain.InferredFilter {
	query = strings.ToLower(strings.TrimSpace(query))
	if len([]rune(query)) < minFilterQueryLen {
		return nil
	}
	tokens := tokenise(query)

	var suggestions []domain.InferredFilter
	for i := range s.table {
		def := &s.table[i]
		score, matchType, ok := scoreFilter(def, query, tokens)
		if !ok {
			continue
		}
		suggestions = append(suggestions, domain.InferredFilter{
			FilterID:    def.id,
			Label:       def.label,
			Route:       def.route,
			QueryParams: def.params,
			Score:       score,
			MatchType:   matchType,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Score != suggestions[j].Score {
			return suggestions[i].Score > suggestions[j].Score
		}
		return suggestions[i].FilterID < suggestions[j].FilterID
	})

	if len(suggestions) > maxFilterSuggestions {
		suggestions = suggestions[:maxFilterSuggestions]
	}
	return suggestions
}

// scoreFilter scores one definition against the query. An exact pattern hit
// scores 1.0; otherwise keyword overlap yields a fuzzy score capped below
// any pattern match, subject to the minimum score floor.
func scoreFilter(def *filterDef, query string, tokens map[string]bool) (float64, domain.FilterMatchType, bool) {
	for _, p := range def.patterns {
		if strings.Contains(query, p) {
			return 1.0, domain.FilterMatchPattern, true
		}
	}

	matched := 0
	for _, kw := range def.keywords {
		if tokens[kw] {
			matched++
		}
	}
	if matched == 0 {
		return 0, "", false
	}

	score := fuzzyScoreCeiling * float64(matched) / float64(len(def.keywords))
	if score < minFilterScore {
		return 0, "", false
	}
	return score, domain.FilterMatchFuzzy, true
}

// tokenise splits a lowercased query into a word set.
func tokenise(query string) map[string]bool {
	fields := strings.FieldsFunc(query, func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	})
	tokens := make(map[string]bool, len(fields))
	for _, f := range fields {
		tokens[f] = true
	}
	return tokens
}
