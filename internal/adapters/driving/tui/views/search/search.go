// Package search provides the main search view for the TUI.
package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quayside-labs/deckhand/internal/adapters/driving/tui/components/grouplist"
	"github.com/quayside-labs/deckhand/internal/adapters/driving/tui/components/input"
	"github.com/quayside-labs/deckhand/internal/adapters/driving/tui/components/status"
	"github.com/quayside-labs/deckhand/internal/adapters/driving/tui/keymap"
	"github.com/quayside-labs/deckhand/internal/adapters/driving/tui/messages"
	"github.com/quayside-labs/deckhand/internal/adapters/driving/tui/styles"
	"github.com/quayside-labs/deckhand/internal/core/domain"
	"github.com/quayside-labs/deckhand/internal/core/ports/driving"
)

// ErrNoSearchService is returned when no search service was injected.
var ErrNoSearchService = errors.New("search view: no search service")

// View represents the search view with input, grouped results, and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SearchInput
	list      *grouplist.GroupList
	statusbar *status.Bar

	searchService    driving.SearchService
	situationService driving.SituationService
	filterSuggester  driving.FilterSuggester
	ctx              context.Context

	filters    []domain.InferredFilter
	width      int
	height     int
	ready      bool
	err        error
	focusInput bool // true = input mode (typing), false = results mode (navigating)
}

// NewView creates a new search view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	searchService driving.SearchService,
	situationService driving.SituationService,
	filterSuggester driving.FilterSuggester,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:           s,
		keymap:           km,
		input:            input.NewSearchInput(s),
		list:             grouplist.NewGroupList(s),
		statusbar:        status.NewBar(s, km),
		searchService:    searchService,
		situationService: situationService,
		filterSuggester:  filterSuggester,
		ctx:              context.Background(),
		width:            80,
		height:           24,
		ready:            false,
		focusInput:       true, // Start in input mode
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.GroupsUpdated:
		if msg.Grouped != nil {
			v.list.SetGrouped(msg.Grouped)
			v.statusbar.SetResultCount(msg.Grouped.TotalResults)
		}
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	// Forward to input component
	var inputCmd tea.Cmd
	v.input, inputCmd = v.input.Update(msg)
	if inputCmd != nil {
		cmds = append(cmds, inputCmd)
	}

	return v, tea.Batch(cmds...)
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Esc in results mode returns to input mode and clears any preview.
	if msg.Type == tea.KeyEsc {
		if !v.focusInput {
			v.focusInput = true
			v.input.Focus()
			if v.situationService != nil {
				v.situationService.ResetToIdle(v.ctx)
			}
			v.statusbar.SetFocus("")
		}
		return v, nil
	}

	// Enter in input mode submits search
	if msg.Type == tea.KeyEnter && v.focusInput {
		query := strings.TrimSpace(v.input.Value())
		if query == "" {
			return v, nil
		}
		v.statusbar.SetState(status.StateSearching)
		v.focusInput = false // Move to results mode after search
		v.input.Blur()
		return v, v.performSearch(query, domain.SearchOptions{})
	}

	// Ctrl+F applies the top quick-filter suggestion
	if keymap.Matches(msg.String(), v.keymap.Filter) && len(v.filters) > 0 {
		return v.applyFilter(v.filters[0])
	}

	// Input mode: keys go to input, suggestions refresh on every change
	if v.focusInput {
		v.input, _ = v.input.Update(msg)
		v.refreshFilters()
		return v, nil
	}

	// Results mode: Enter commits navigation on the selected row
	if msg.Type == tea.KeyEnter {
		result := v.list.SelectedResult()
		if result == nil {
			return v, nil
		}
		opened := *result
		return v, func() tea.Msg {
			return messages.OpenRequested{Result: opened}
		}
	}

	// Space previews the selected row as a candidate situation
	if keymap.Matches(msg.String(), v.keymap.Preview) {
		return v.previewSelected()
	}

	// Tab toggles expansion of the selected group
	if keymap.Matches(msg.String(), v.keymap.Expand) {
		return v.toggleSelectedGroup()
	}

	// Results mode: navigation
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyUp:
		v.list.MoveUp()
		return v, nil
	case tea.KeyDown:
		return v.moveDown()
	default:
	}

	switch msg.String() {
	case "k":
		v.list.MoveUp()
		return v, nil
	case "j":
		return v.moveDown()
	case "n":
		// New search: clear input and focus it
		v.focusInput = true
		v.input.Focus()
		v.input.SetValue("")
		v.filters = nil
		return v, nil
	}

	return v, nil
}

// moveDown advances the selection and fires the one-shot expand-all when the
// user runs past the bottom of a list that still hides results.
func (v *View) moveDown() (*View, tea.Cmd) {
	if v.list.AtEnd() && v.searchService != nil {
		grouped, fired := v.searchService.AutoExpandAll()
		if fired && grouped != nil {
			v.list.SetGrouped(grouped)
		}
		return v, nil
	}
	v.list.MoveDown()
	return v, nil
}

// previewSelected marks the selected result as a candidate focus.
func (v *View) previewSelected() (*View, tea.Cmd) {
	result := v.list.SelectedResult()
	if result == nil || v.situationService == nil {
		return v, nil
	}

	_, err := v.situationService.Create(v.ctx, result.EntityType, result.ID,
		domain.SituationCandidate, map[string]any{"title": result.Title})
	if err != nil {
		v.statusbar.SetMessage("Preview: " + err.Error())
		return v, nil
	}

	v.statusbar.SetFocus(result.Title)
	return v, nil
}

// toggleSelectedGroup expands or collapses the bucket under the selection.
func (v *View) toggleSelectedGroup() (*View, tea.Cmd) {
	group := v.list.SelectedDomain()
	if group == nil || v.searchService == nil {
		return v, nil
	}

	var (
		grouped *domain.GroupedResults
		err     error
	)
	if group.Expanded {
		grouped, err = v.searchService.Collapse(group.Domain)
	} else {
		grouped, err = v.searchService.Expand(group.Domain)
	}
	if err != nil {
		v.statusbar.SetMessage(err.Error())
		return v, nil
	}
	v.list.SetGrouped(grouped)
	return v, nil
}

// applyFilter narrows the search to the suggested filter's domain.
func (v *View) applyFilter(f domain.InferredFilter) (*View, tea.Cmd) {
	query := strings.TrimSpace(v.input.Value())
	if query == "" {
		return v, nil
	}

	opts := domain.SearchOptions{}
	if d := domainForRoute(f.Route); d != "" {
		opts.Domains = []domain.Domain{d}
	}

	v.statusbar.SetState(status.StateSearching)
	v.statusbar.SetMessage("Filter: " + f.Label)
	v.focusInput = false
	v.input.Blur()
	return v, v.performSearch(query, opts)
}

// domainForRoute maps a quick-filter route onto a display domain.
func domainForRoute(route string) domain.Domain {
	switch {
	case strings.HasPrefix(route, "/maintenance"):
		return domain.DomainMaintenance
	case strings.HasPrefix(route, "/inventory"):
		return domain.DomainInventory
	case strings.HasPrefix(route, "/manuals"):
		return domain.DomainManuals
	case strings.HasPrefix(route, "/email"):
		return domain.DomainEmail
	}
	return ""
}

// refreshFilters recomputes quick-filter suggestions for the current input.
func (v *View) refreshFilters() {
	if v.filterSuggester == nil {
		v.filters = nil
		return
	}
	v.filters = v.filterSuggester.Suggest(v.input.Value())
}

// performSearch executes a search and returns grouped results.
func (v *View) performSearch(query string, opts domain.SearchOptions) tea.Cmd {
	return func() tea.Msg {
		if v.searchService == nil {
			return messages.ErrorOccurred{Err: ErrNoSearchService}
		}

		grouped, err := v.searchService.Search(v.ctx, query, opts)
		if err != nil {
			return messages.SearchCompleted{Grouped: nil, Err: err}
		}
		return messages.SearchCompleted{Grouped: grouped, Err: nil}
	}
}

// handleSearchCompleted processes grouped search results.
func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if msg.Err != nil {
		// A superseded response lost the race to a newer query; the newer
		// query's results are already on screen or on their way.
		if errors.Is(msg.Err, domain.ErrSuperseded) {
			return
		}
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}

	v.err = nil
	v.list.SetGrouped(msg.Grouped)
	v.statusbar.SetState(status.StateResults)
	if msg.Grouped != nil {
		v.statusbar.SetResultCount(msg.Grouped.TotalResults)
	}

	// Switch to results mode after successful search
	v.focusInput = false
	v.input.Blur()
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)

	// Header
	header := v.styles.Title.Render("Deckhand")
	sections = append(sections, header, "")

	// Search input
	inputView := v.input.View()
	sections = append(sections, inputView)

	// Quick-filter suggestions
	if v.focusInput && len(v.filters) > 0 {
		sections = append(sections, v.renderFilters())
	}
	sections = append(sections, "")

	// Error display
	if v.err != nil {
		errView := v.styles.Error.Render("Error: " + v.err.Error())
		sections = append(sections, errView, "")
	}

	// Grouped results
	listView := v.list.View()
	sections = append(sections, listView)

	// Status bar at bottom
	sections = append(sections, "")
	statusView := v.statusbar.View()
	sections = append(sections, statusView)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderFilters renders the quick-filter suggestion strip.
func (v *View) renderFilters() string {
	labels := make([]string, 0, len(v.filters))
	for i, f := range v.filters {
		if i == 0 {
			labels = append(labels, v.styles.Subtitle.Render(f.Label))
			continue
		}
		labels = append(labels, v.styles.Muted.Render(f.Label))
	}
	hint := v.styles.Muted.Render("  ctrl+f applies first")
	return fmt.Sprintf("  %s%s", strings.Join(labels, v.styles.Muted.Render(" | ")), hint)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	// Allocate space to components
	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-10) // Reserve space for header, input, status
	v.statusbar.SetWidth(width)
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the current search query.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the search query.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
	v.refreshFilters()
}

// Grouped returns the current grouped results.
func (v *View) Grouped() *domain.GroupedResults {
	return v.list.Grouped()
}

// Filters returns the current quick-filter suggestions.
func (v *View) Filters() []domain.InferredFilter {
	return v.filters
}

// SelectedIndex returns the global index of the selected row.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// SelectedResult returns the currently selected result.
func (v *View) SelectedResult() *domain.SearchResult {
	return v.list.SelectedResult()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// ClearError clears the current error.
func (v *View) ClearError() {
	v.err = nil
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage("")
}

// Reset resets the view to initial input mode.
func (v *View) Reset() {
	v.focusInput = true
	v.input.Focus()
	v.input.SetValue("")
	v.filters = nil
	v.list.SetGrouped(nil)
	v.err = nil
	v.statusbar.Clear()
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}
