// Package normaliser converts heterogeneous backend search records into the
// canonical domain.SearchResult shape.
//
// The backend returns records of arbitrary per-source shape; field names
// vary and anything can be missing. Normalisation is a pure, total function:
// it never fails, never panics, and resolves every field through an explicit
// ordered extractor chain so the precedence order is a testable artifact
// rather than a nest of fallback expressions.
package normaliser

import (
	"fmt"
	"strings"

	"github.com/quayside-labs/deckhand/internal/core/domain"
)

// Title derivation limits.
const (
	maxSentenceTitleLen = 120
	maxDerivedTitleLen  = 80
	maxSubtitleLen      = 100
)

// idKeys resolve the addressable identifier. The primary id designates the
// addressable sub-record (e.g. a chunk) while the generic id may reference a
// coarser parent record; the order here is load-bearing for navigation and
// must not be reversed.
var idKeys = []string{"primary_id", "chunk_id", "id", "_id", "uid"}

// typeKeys resolve the backend type tag.
var typeKeys = []string{"type", "record_type", "entity_type", "kind"}

// titleKeys are the explicit title field and its common entity-name aliases,
// in precedence order.
var titleKeys = []string{
	"title", "name", "equipment_name", "part_name",
	"document_name", "filename", "code",
}

// subtitleKeys are the explicit secondary-line fields.
var subtitleKeys = []string{"subtitle", "snippet", "preview", "summary"}

// contentKeys hold descriptive text used for derived titles and subtitles.
var contentKeys = []string{"content", "description", "text", "body"}

// attributeLabels assemble a subtitle from known record attributes when no
// explicit secondary field exists. Order is fixed for determinism.
var attributeLabels = []struct {
	key   string
	label string
}{
	{"manufacturer", "Manufacturer"},
	{"part_number", "P/N"},
	{"model", "Model"},
	{"serial_number", "S/N"},
	{"location", "Location"},
	{"status", "Status"},
	{"category", "Category"},
}

// placeholderTitles are known junk values treated as absent.
var placeholderTitles = map[string]bool{
	"untitled": true,
	"unknown":  true,
	"n/a":      true,
	"na":       true,
	"null":     true,
	"none":     true,
	"-":        true,
}

// scoreKeys resolve the backend relevance score.
var scoreKeys = []string{"score", "confidence", "relevance", "_score"}

// Normalise maps one backend record of unknown shape to a SearchResult.
// It is idempotent and total over arbitrary input, including nil.
func Normalise(record map[string]any) domain.SearchResult {
	if record == nil {
		record = map[string]any{}
	}

	id := firstString(record, idKeys)
	tag := firstString(record, typeKeys)
	if tag == "" {
		tag = "document"
	}

	return domain.SearchResult{
		ID:         id,
		TypeTag:    tag,
		EntityType: domain.ClassifyTypeTag(tag),
		Title:      resolveTitle(record, id),
		Subtitle:   resolveSubtitle(record),
		Score:      firstFloat(record, scoreKeys),
		Metadata:   copyRecord(record),
	}
}

// NormaliseAll maps a page of backend records, preserving order.
func NormaliseAll(records []map[string]any) []domain.SearchResult {
	results := make([]domain.SearchResult, len(records))
	for i, rec := range records {
		results[i] = Normalise(rec)
	}
	return results
}

// resolveTitle applies the title chain: explicit fields, then a derivation
// from descriptive text, then a generic fallback.
func resolveTitle(record map[string]any, id string) string {
	title := firstString(record, titleKeys)
	if isPlaceholder(title) {
		title = ""
	}

	if title == "" {
		title = deriveTitle(firstString(record, contentKeys))
	}

	if title != "" {
		return title
	}

	if id != "" {
		short := id
		if len(short) > 8 {
			short = short[:8]
		}
		return "Document " + short
	}
	return "Untitled record"
}

// deriveTitle takes the first sentence of descriptive text when it is
// between 1 and 120 characters, else the first 80 characters trimmed.
func deriveTitle(content string) string {
	content = strings.TrimSpace(content)
	if content == "" {
		return ""
	}

	sentence := firstSentence(content)
	if n := len([]rune(sentence)); n >= 1 && n <= maxSentenceTitleLen {
		return sentence
	}
	return truncate(content, maxDerivedTitleLen)
}

// resolveSubtitle applies the subtitle chain: explicit secondary fields,
// then assembled attribute labels, then truncated descriptive text.
func resolveSubtitle(record map[string]any) string {
	if sub := firstString(record, subtitleKeys); sub != "" {
		return sub
	}

	parts := make([]string, 0, len(attributeLabels))
	for _, attr := range attributeLabels {
		if v := stringValue(record[attr.key]); v != "" {
			parts = append(parts, attr.label+": "+v)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, " | ")
	}

	return truncate(firstString(record, contentKeys), maxSubtitleLen)
}

// isPlaceholder reports whether a title value is a known junk placeholder.
func isPlaceholder(title string) bool {
	return placeholderTitles[strings.ToLower(strings.TrimSpace(title))]
}

// firstString returns the first non-empty string value among the keys.
func firstString(record map[string]any, keys []string) string {
	for _, key := range keys {
		if v := stringValue(record[key]); v != "" {
			return v
		}
	}
	return ""
}

// firstFloat returns the first numeric value among the keys, or 0.
func firstFloat(record map[string]any, keys []string) float64 {
	for _, key := range keys {
		switch v := record[key].(type) {
		case float64:
			return v
		case float32:
			return float64(v)
		case int:
			return float64(v)
		case int64:
			return float64(v)
		}
	}
	return 0
}

// stringValue coerces a record value to a trimmed display string.
// Non-scalar values are ignored rather than stringified.
func stringValue(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		return ""
	}
}

// firstSentence splits on sentence terminators and returns the first piece.
func firstSentence(content string) string {
	var b strings.Builder
	for _, r := range content {
		if r == '.' || r == '!' || r == '?' || r == '\n' {
			break
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// truncate cuts a string to at most n runes, trimmed.
func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimSpace(string(runes[:n]))
}

// copyRecord makes a shallow copy so the result does not alias caller state.
func copyRecord(src map[string]any) map[string]any {
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
