package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quayside-labs/deckhand/internal/adapters/driving/tui/messages"
	"github.com/quayside-labs/deckhand/internal/adapters/driving/tui/styles"
	"github.com/quayside-labs/deckhand/internal/adapters/driving/tui/views/contextpanel"
	"github.com/quayside-labs/deckhand/internal/adapters/driving/tui/views/linkerror"
	"github.com/quayside-labs/deckhand/internal/adapters/driving/tui/views/messaging"
	"github.com/quayside-labs/deckhand/internal/adapters/driving/tui/views/search"
	"github.com/quayside-labs/deckhand/internal/core/domain"
	"github.com/quayside-labs/deckhand/internal/core/ports/driving"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea, and it is the shell the
// surface coordinator interrogates: capability answers come from live
// configuration on every open, never from a cached resolution.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// searchView is the search input and grouped results view.
	searchView *search.View

	// contextView is the inline context surface for a focused entity.
	contextView *contextpanel.View

	// messagingView is the specialised email overlay.
	messagingView *messaging.View

	// linkErrorView is the share-link failure screen.
	linkErrorView *linkerror.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// pendingLink is a share-link token to open on startup, if any.
	pendingLink string

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model and the shell capability contract.
var (
	_ tea.Model                 = (*App)(nil)
	_ driving.ShellCapabilities = (*App)(nil)
)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	searchView := search.NewView(s, nil, ports.Search, ports.Situation, ports.Filters)
	contextView := contextpanel.NewView(s, nil, ports.Situation)
	messagingView := messaging.NewView(s)
	linkErrorView := linkerror.NewView(s)

	return &App{
		ports:         ports,
		ctx:           context.Background(),
		styles:        s,
		searchView:    searchView,
		contextView:   contextView,
		messagingView: messagingView,
		linkErrorView: linkErrorView,
		currentView:   messages.ViewSearch,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	a.contextView.WithContext(ctx)
	return a
}

// WithLink queues a share-link token to resolve when the program starts.
func (a *App) WithLink(token string) *App {
	a.pendingLink = token
	return a
}

// SupportsOverlay reports whether a specialised overlay exists for the
// entity type. Only email threads have one, and only while multi-surface
// presentation is enabled in configuration.
func (a *App) SupportsOverlay(t domain.EntityType) bool {
	return t == domain.EntityTypeEmailThread && a.boolSetting("tui.multi_surface", true)
}

// SupportsContextSurface reports whether the inline context surface is
// enabled in configuration.
func (a *App) SupportsContextSurface() bool {
	return a.boolSetting("tui.context_surface", true)
}

// boolSetting reads a boolean setting, falling back when unset or when no
// config store was injected.
func (a *App) boolSetting(key string, fallback bool) bool {
	if a.ports.Config == nil {
		return fallback
	}
	if _, ok := a.ports.Config.Get(key); !ok {
		return fallback
	}
	return a.ports.Config.GetBool(key)
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tea.SetWindowTitle("deckhand - Vessel Search"),
		a.searchView.Init(),
	}
	if a.pendingLink != "" {
		cmds = append(cmds, a.openLink(a.pendingLink))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		// Forward to all views for proper sizing
		a.searchView.SetDimensions(msg.Width, msg.Height)
		a.contextView, _ = a.contextView.Update(msg)
		a.messagingView, _ = a.messagingView.Update(msg)
		a.linkErrorView, _ = a.linkErrorView.Update(msg)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// q quits from the search view's results mode only; everywhere else
		// the views own their keys
		if msg.String() == "q" && a.currentView == messages.ViewSearch && !a.searchView.InputFocused() {
			return a, tea.Quit
		}

		return a.updateCurrentView(msg)

	case messages.SearchCompleted, messages.GroupsUpdated:
		a.searchView, cmd = a.searchView.Update(msg)
		a.err = a.searchView.Err()
		return a, cmd

	case messages.OpenRequested:
		return a, a.openEntity(msg.Result)

	case messages.EntityOpened:
		return a.handleOpened(msg.Decision, msg.Err)

	case messages.LinkResolved:
		return a.handleOpened(msg.Decision, msg.Err)

	case messages.ActionCompleted:
		if a.currentView == messages.ViewContext {
			a.contextView, cmd = a.contextView.Update(msg)
			return a, cmd
		}
		return a, nil

	case messages.ViewChanged:
		a.currentView = msg.View
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		if a.currentView == messages.ViewSearch {
			a.searchView, cmd = a.searchView.Update(msg)
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to the active view
	return a.updateCurrentView(msg)
}

// updateCurrentView forwards a message to whichever view is active.
func (a *App) updateCurrentView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
		a.err = a.searchView.Err()
	case messages.ViewContext:
		a.contextView, cmd = a.contextView.Update(msg)
	case messages.ViewMessaging:
		a.messagingView, cmd = a.messagingView.Update(msg)
	case messages.ViewLinkError:
		a.linkErrorView, cmd = a.linkErrorView.Update(msg)
	case messages.ViewHelp:
		if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc {
			a.currentView = messages.ViewSearch
		}
	}
	return a, cmd
}

// openEntity routes one result through the surface coordinator. The app
// passes itself as the shell so capabilities are re-read from configuration
// at the moment of the open.
func (a *App) openEntity(result domain.SearchResult) tea.Cmd {
	return func() tea.Msg {
		decision, err := a.ports.Surface.Open(a.ctx, a, result)
		return messages.EntityOpened{Decision: decision, Err: err}
	}
}

// openLink resolves a share-link token and routes its target.
func (a *App) openLink(token string) tea.Cmd {
	return func() tea.Msg {
		decision, err := a.ports.Surface.OpenLink(a.ctx, a, token)
		return messages.LinkResolved{Decision: decision, Err: err}
	}
}

// handleOpened applies a surface routing decision (or its failure) to the
// view state.
func (a *App) handleOpened(decision *driving.SurfaceDecision, err error) (tea.Model, tea.Cmd) {
	if err != nil {
		var linkErr *domain.LinkResolveError
		if errors.As(err, &linkErr) {
			a.linkErrorView.SetError(linkErr)
			a.currentView = messages.ViewLinkError
			return a, nil
		}
		a.err = err
		var cmd tea.Cmd
		if a.currentView == messages.ViewSearch {
			a.searchView, cmd = a.searchView.Update(messages.ErrorOccurred{Err: err})
		}
		return a, cmd
	}

	if decision == nil {
		return a, nil
	}

	switch decision.Route {
	case driving.RouteOverlay:
		a.messagingView.SetThread(decision.Result)
		a.currentView = messages.ViewMessaging
	case driving.RouteContext:
		a.contextView.SetResult(decision.Result)
		a.currentView = messages.ViewContext
	case driving.RouteSituation:
		// A headless-style drive: the situation is already active, search
		// stays on screen as the host surface
		a.currentView = messages.ViewSearch
	}
	return a, nil
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewSearch:
		return a.searchView.View()
	case messages.ViewContext:
		return a.contextView.View()
	case messages.ViewMessaging:
		return a.messagingView.View()
	case messages.ViewLinkError:
		return a.linkErrorView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.searchView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Search:
  (type)      Enter search query
  enter       Submit search
  ctrl+f      Apply top quick filter

Results:
  j/k, ↑/↓    Navigate results
  space       Preview (tentative focus)
  enter       Open selected result
  tab/e       Expand or collapse group
  n           New search
  esc         Back to input

Global:
  ctrl+c      Quit

[esc] back`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.searchView.SetDimensions(width, height)
}
