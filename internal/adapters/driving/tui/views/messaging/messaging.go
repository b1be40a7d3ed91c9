// Package messaging provides the specialised email overlay. The overlay owns
// its own lifecycle: opening a thread here creates no focus situation, and
// closing it hands control straight back to search.
package messaging

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quayside-labs/deckhand/internal/adapters/driving/tui/messages"
	"github.com/quayside-labs/deckhand/internal/adapters/driving/tui/styles"
	"github.com/quayside-labs/deckhand/internal/core/domain"
)

// View renders an email thread in a dedicated overlay.
type View struct {
	styles *styles.Styles

	thread domain.SearchResult
	width  int
	height int
}

// NewView creates a new messaging overlay view.
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

// SetThread installs the email thread the overlay presents.
func (v *View) SetThread(thread domain.SearchResult) {
	v.thread = thread
}

// Thread returns the presented thread.
func (v *View) Thread() domain.SearchResult {
	return v.thread
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the messaging overlay.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc || msg.String() == "q" {
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewSearch}
			}
		}
	}

	return v, nil
}

// View renders the messaging overlay.
func (v *View) View() string {
	sections := make([]string, 0, 8)

	sections = append(sections, v.styles.Title.Render("Email"))
	sections = append(sections, v.styles.Subtitle.Render(v.thread.Title), "")

	if v.thread.Subtitle != "" {
		sections = append(sections, v.styles.Normal.Render(v.thread.Subtitle), "")
	}

	if from, ok := v.thread.Metadata["from"].(string); ok && from != "" {
		sections = append(sections, v.styles.Muted.Render(fmt.Sprintf("From: %s", from)))
	}
	if count, ok := v.thread.Metadata["message_count"].(int); ok && count > 0 {
		sections = append(sections, v.styles.Muted.Render(fmt.Sprintf("%d messages in thread", count)))
	}

	sections = append(sections, "", v.styles.Help.Render("esc: back to search"))

	overlay := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return v.styles.Border.Padding(0, 1).Render(overlay)
}
