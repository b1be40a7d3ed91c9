// Package contextpanel provides the inline context surface for a focused
// entity: its details plus the platform actions available on it.
package contextpanel

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quayside-labs/deckhand/internal/adapters/driving/tui/keymap"
	"github.com/quayside-labs/deckhand/internal/adapters/driving/tui/messages"
	"github.com/quayside-labs/deckhand/internal/adapters/driving/tui/styles"
	"github.com/quayside-labs/deckhand/internal/core/domain"
	"github.com/quayside-labs/deckhand/internal/core/ports/driving"
)

// actionDef is one platform action offered on a focused entity.
type actionDef struct {
	id    string
	label string
}

// actionsByType maps entity types onto their offered actions.
var actionsByType = map[domain.EntityType][]actionDef{
	domain.EntityTypeWorkOrder: {
		{id: "work_order.complete", label: "Mark complete"},
		{id: "work_order.assign_self", label: "Assign to me"},
	},
	domain.EntityTypeEquipment: {
		{id: "equipment.create_work_order", label: "Create work order"},
		{id: "equipment.log_reading", label: "Log reading"},
	},
	domain.EntityTypeFault: {
		{id: "fault.acknowledge", label: "Acknowledge"},
		{id: "fault.create_work_order", label: "Create work order"},
	},
	domain.EntityTypePart: {
		{id: "part.adjust_stock", label: "Adjust stock"},
		{id: "part.order", label: "Order part"},
	},
	domain.EntityTypeInventory: {
		{id: "part.adjust_stock", label: "Adjust stock"},
	},
	domain.EntityTypeDocument: {
		{id: "document.open", label: "Open document"},
	},
}

// View renders the focused entity and lets the user run actions on it.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap

	situationService driving.SituationService
	ctx              context.Context

	result   domain.SearchResult
	actions  []actionDef
	selected int
	message  string
	width    int
	height   int
}

// NewView creates a new context panel view.
func NewView(s *styles.Styles, km *keymap.KeyMap, situationService driving.SituationService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:           s,
		keymap:           km,
		situationService: situationService,
		ctx:              context.Background(),
		width:            80,
		height:           24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetResult installs the entity the panel presents.
func (v *View) SetResult(result domain.SearchResult) {
	v.result = result
	v.actions = actionsByType[result.EntityType]
	v.selected = 0
	v.message = ""
}

// Result returns the presented entity.
func (v *View) Result() domain.SearchResult {
	return v.result
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the context panel.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ActionCompleted:
		if msg.Err != nil {
			v.message = fmt.Sprintf("%s failed: %s", msg.Action, msg.Err.Error())
		} else {
			v.message = msg.Action + " done"
		}
		return v, nil
	}

	return v, nil
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Esc dismisses the panel and clears the focus
	if msg.Type == tea.KeyEsc {
		if v.situationService != nil {
			v.situationService.ResetToIdle(v.ctx)
		}
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewSearch}
		}
	}

	if msg.Type == tea.KeyEnter {
		return v.executeSelected()
	}

	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyUp:
		v.moveUp()
		return v, nil
	case tea.KeyDown:
		v.moveDown()
		return v, nil
	default:
	}

	switch msg.String() {
	case "k":
		v.moveUp()
	case "j":
		v.moveDown()
	}

	return v, nil
}

func (v *View) moveUp() {
	if v.selected > 0 {
		v.selected--
	}
}

func (v *View) moveDown() {
	if v.selected < len(v.actions)-1 {
		v.selected++
	}
}

// executeSelected runs the selected action against the focused situation.
func (v *View) executeSelected() (*View, tea.Cmd) {
	if len(v.actions) == 0 || v.situationService == nil {
		return v, nil
	}

	action := v.actions[v.selected]
	svc := v.situationService
	ctx := v.ctx
	return v, func() tea.Msg {
		err := svc.ExecuteAction(ctx, action.id, nil)
		return messages.ActionCompleted{Action: action.label, Err: err}
	}
}

// View renders the context panel.
func (v *View) View() string {
	sections := make([]string, 0, 10)

	header := v.styles.Title.Render(v.result.Title)
	sections = append(sections, header)

	typeLine := v.styles.Muted.Render(
		fmt.Sprintf("%s | %s", v.result.EntityType.Label(), v.result.Domain().Label()))
	sections = append(sections, typeLine, "")

	if v.result.Subtitle != "" {
		sections = append(sections, v.styles.Normal.Render(v.result.Subtitle), "")
	}

	if len(v.actions) > 0 {
		sections = append(sections, v.styles.Subtitle.Render("Actions"))
		sections = append(sections, v.renderActions())
	} else {
		sections = append(sections, v.styles.Muted.Render("No actions available"))
	}

	if v.message != "" {
		sections = append(sections, "", v.styles.Warning.Render(v.message))
	}

	sections = append(sections, "", v.styles.Help.Render("enter: run action | esc: close"))

	panel := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return v.styles.Border.Padding(0, 1).Render(panel)
}

// renderActions renders the action list with the selection indicator.
func (v *View) renderActions() string {
	lines := make([]string, 0, len(v.actions))
	for i, action := range v.actions {
		indicator := "  "
		if i == v.selected {
			indicator = "> "
		}
		var line string
		if i == v.selected {
			line = v.styles.Selected.Render(indicator + action.label)
		} else {
			line = v.styles.Normal.Render(indicator + action.label)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// Selected returns the index of the selected action.
func (v *View) Selected() int {
	return v.selected
}

// Actions returns the labels of the offered actions.
func (v *View) Actions() []string {
	labels := make([]string, 0, len(v.actions))
	for _, a := range v.actions {
		labels = append(labels, a.label)
	}
	return labels
}

// Message returns the last action outcome message.
func (v *View) Message() string {
	return v.message
}
