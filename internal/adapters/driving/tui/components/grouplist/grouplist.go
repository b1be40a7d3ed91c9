// Package grouplist provides the grouped result list component for the TUI.
package grouplist

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quayside-labs/deckhand/internal/adapters/driving/tui/styles"
	"github.com/quayside-labs/deckhand/internal/core/domain"
)

// GroupList displays grouped search results in a navigable list. Selection
// is a single global row index across the top match and every visible bucket
// row, so arrow keys walk the whole grouping top to bottom.
type GroupList struct {
	grouped  *domain.GroupedResults
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewGroupList creates a new grouped result list component.
func NewGroupList(s *styles.Styles) *GroupList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &GroupList{
		grouped:  nil,
		selected: 0,
		styles:   s,
		width:    80,
		height:   20,
	}
}

// Init initialises the group list.
func (g *GroupList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (g *GroupList) Update(msg tea.Msg) (*GroupList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyUp:
			g.MoveUp()
		case tea.KeyDown:
			g.MoveDown()
		default:
		}
		switch msg.String() {
		case "k":
			g.MoveUp()
		case "j":
			g.MoveDown()
		}
	}
	return g, nil
}

// View renders the grouped result list.
func (g *GroupList) View() string {
	if g.grouped == nil || g.grouped.IsEmpty() {
		return g.styles.Muted.Render("No results")
	}

	lines := make([]string, 0, g.grouped.VisibleRowCount()+len(g.grouped.Domains)*2+2)

	header := g.styles.Subtitle.Render(fmt.Sprintf("Results (%d)", g.grouped.TotalResults))
	lines = append(lines, header, "")

	row := 0
	if g.grouped.TopMatch != nil {
		lines = append(lines, g.styles.TopMatch.Render("Top match"))
		lines = append(lines, g.renderResult(row, g.grouped.TopMatch))
		lines = append(lines, "")
		row++
	}

	for i := range g.grouped.Domains {
		group := &g.grouped.Domains[i]
		lines = append(lines, g.renderGroupHeader(group))
		for j := range group.Results {
			lines = append(lines, g.renderResult(row, &group.Results[j]))
			row++
		}
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

// renderGroupHeader formats a bucket heading with its visible/total counts.
func (g *GroupList) renderGroupHeader(group *domain.DomainGroup) string {
	label := group.Domain.Label()
	counts := fmt.Sprintf("%d of %d", len(group.Results), group.TotalCount)

	hint := ""
	if group.TotalCount > len(group.Results) {
		if group.Expanded {
			hint = "  tab: collapse"
		} else {
			hint = "  tab: expand"
		}
	}

	return g.styles.GroupHeader.Render(fmt.Sprintf("%s (%s)", label, counts)) +
		g.styles.Muted.Render(hint)
}

// renderResult formats a single result row.
func (g *GroupList) renderResult(row int, result *domain.SearchResult) string {
	indicator := "  "
	if row == g.selected {
		indicator = "> "
	}

	title := result.Title
	if title == "" {
		title = "(Untitled)"
	}

	maxTitleLen := g.width - 20
	if maxTitleLen < 10 {
		maxTitleLen = 10
	}
	if len(title) > maxTitleLen {
		title = title[:maxTitleLen-3] + "..."
	}

	score := fmt.Sprintf("%.2f", result.Score)

	var line string
	if row == g.selected {
		line = g.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s", indicator, maxTitleLen, title, score))
	} else {
		line = g.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, maxTitleLen, title)) +
			g.styles.Muted.Render(score)
	}

	if result.Subtitle != "" {
		subtitle := result.Subtitle
		maxSubLen := g.width - 6
		if maxSubLen < 20 {
			maxSubLen = 20
		}
		if len(subtitle) > maxSubLen {
			subtitle = subtitle[:maxSubLen-3] + "..."
		}
		line += "\n" + g.styles.Muted.Render("    "+subtitle)
	}

	return line
}

// SetGrouped replaces the displayed grouping. When the grouping belongs to a
// new query the selection resets to the top; an expansion change of the same
// query keeps the selection clamped in range.
func (g *GroupList) SetGrouped(grouped *domain.GroupedResults) {
	sameQuery := g.grouped != nil && grouped != nil && g.grouped.Query == grouped.Query
	g.grouped = grouped
	if !sameQuery {
		g.selected = 0
		return
	}
	if max := g.Count() - 1; g.selected > max {
		if max < 0 {
			max = 0
		}
		g.selected = max
	}
}

// Grouped returns the current grouping.
func (g *GroupList) Grouped() *domain.GroupedResults {
	return g.grouped
}

// Selected returns the global index of the selected row.
func (g *GroupList) Selected() int {
	return g.selected
}

// SetSelected sets the selected row index.
func (g *GroupList) SetSelected(index int) {
	if index >= 0 && index < g.Count() {
		g.selected = index
	}
}

// SelectedResult returns the currently selected result, or nil if none.
func (g *GroupList) SelectedResult() *domain.SearchResult {
	if g.grouped == nil {
		return nil
	}
	return g.grouped.ResultAt(g.selected)
}

// SelectedDomain returns the bucket holding the selected row, or nil when
// the selection is the top match or the list is empty.
func (g *GroupList) SelectedDomain() *domain.DomainGroup {
	if g.grouped == nil {
		return nil
	}
	index := g.selected
	if g.grouped.TopMatch != nil {
		if index == 0 {
			return nil
		}
		index--
	}
	for i := range g.grouped.Domains {
		rows := g.grouped.Domains[i].Results
		if index < len(rows) {
			return &g.grouped.Domains[i]
		}
		index -= len(rows)
	}
	return nil
}

// MoveUp moves selection up.
func (g *GroupList) MoveUp() {
	if g.selected > 0 {
		g.selected--
	}
}

// MoveDown moves selection down.
func (g *GroupList) MoveDown() {
	if g.selected < g.Count()-1 {
		g.selected++
	}
}

// AtEnd reports whether the selection sits on the last visible row while
// collapsed buckets still hide results. The search view uses this to trigger
// the one-shot expand-all when the user scrolls past the bottom.
func (g *GroupList) AtEnd() bool {
	if g.grouped == nil || g.Count() == 0 {
		return false
	}
	if g.selected != g.Count()-1 {
		return false
	}
	for i := range g.grouped.Domains {
		group := &g.grouped.Domains[i]
		if !group.Expanded && group.TotalCount > len(group.Results) {
			return true
		}
	}
	return false
}

// SetDimensions sets the component dimensions.
func (g *GroupList) SetDimensions(width, height int) {
	g.width = width
	g.height = height
}

// Width returns the current width.
func (g *GroupList) Width() int {
	return g.width
}

// Height returns the current height.
func (g *GroupList) Height() int {
	return g.height
}

// Count returns the number of visible rows.
func (g *GroupList) Count() int {
	if g.grouped == nil {
		return 0
	}
	return g.grouped.VisibleRowCount()
}

// IsEmpty returns whether the list is empty.
func (g *GroupList) IsEmpty() bool {
	return g.Count() == 0
}
