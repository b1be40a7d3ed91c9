// Package linkerror provides the share-link failure screen. Each taxonomy
// state gets its own message and remediation affordance.
package linkerror

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quayside-labs/deckhand/internal/adapters/driving/tui/messages"
	"github.com/quayside-labs/deckhand/internal/adapters/driving/tui/styles"
	"github.com/quayside-labs/deckhand/internal/core/domain"
)

// View renders a link-open failure with its remediation affordance.
type View struct {
	styles *styles.Styles

	linkErr *domain.LinkResolveError
	width   int
	height  int
}

// NewView creates a new link error view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		width:  80,
		height: 24,
	}
}

// SetError installs the failure the screen presents.
func (v *View) SetError(err *domain.LinkResolveError) {
	v.linkErr = err
}

// Err returns the presented failure.
func (v *View) Err() *domain.LinkResolveError {
	return v.linkErr
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the link error view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc || msg.Type == tea.KeyEnter {
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewSearch}
			}
		}
	}

	return v, nil
}

// View renders the link error screen.
func (v *View) View() string {
	state := domain.LinkErrorUnknown
	detail := ""
	if v.linkErr != nil {
		state = v.linkErr.State
		detail = v.linkErr.Detail
	}

	sections := make([]string, 0, 8)

	sections = append(sections, v.styles.Error.Render("Link could not be opened"), "")
	sections = append(sections, v.styles.Normal.Render(state.Message()))

	if detail != "" {
		sections = append(sections, v.styles.Muted.Render(detail))
	}

	sections = append(sections, "",
		v.styles.Selected.Render(" "+state.Remediation()+" "),
		"",
		v.styles.Help.Render("enter/esc: "+state.Remediation()))

	screen := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return v.styles.Border.Padding(1, 2).Render(screen)
}
