// internal/ui/app.go
package ui

import (
	"context"
	"iter"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"arena/internal/debate"
)

// Messages produced by pulling the event sequence
type (
	eventMsg    struct{ ev debate.Event }
	failedMsg   struct{ err error }
	finishedMsg struct{}
)

// Model is the live debate view
type Model struct {
	dash     *Dashboard
	events   *puller
	cancel   context.CancelFunc
	viewport viewport.Model
	spinner  spinner.Model

	width, height int
	ready         bool
	showHelp      bool
	err           error
}

// New creates a view that drains seq. cancel, if non-nil, is called on
// quit so an in-flight generation returns promptly.
func New(topic string, seq iter.Seq2[debate.Event, error], cancel context.CancelFunc) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = StatusWarn
	return Model{
		dash:    NewDashboard(topic),
		events:  newPuller(seq),
		cancel:  cancel,
		spinner: s,
	}
}

// Dashboard exposes the state rendered by the view
func (m Model) Dashboard() *Dashboard { return m.dash }

// Err returns the failure that stopped the run, if any
func (m Model) Err() error { return m.err }

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.pull(), m.spinner.Tick)
}

// pull fetches exactly one event
func (m Model) pull() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		ev, err, ok := events.Next()
		switch {
		case !ok:
			return finishedMsg{}
		case err != nil:
			return failedMsg{err: err}
		default:
			return eventMsg{ev: ev}
		}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quit()
			return m, tea.Quit
		case "?", "f1":
			m.showHelp = !m.showHelp
			return m, nil
		case "esc":
			m.showHelp = false
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true
		m.refresh()
		return m, nil

	case eventMsg:
		m.dash.Apply(msg.ev)
		m.refresh()
		return m, m.pull()

	case failedMsg:
		m.err = msg.err
		m.dash.Fail(msg.err)
		m.refresh()
		return m, nil

	case finishedMsg:
		m.dash.Finished = true
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if m.dash.Finished {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// quit stops pulling. The context is cancelled first so Stop does not
// wait out a slow generation.
func (m Model) quit() {
	if m.cancel != nil {
		m.cancel()
	}
	m.events.Stop()
}

func (m *Model) resize() {
	h := m.height - headerHeight - agentsHeight
	if h < 3 {
		h = 3
	}
	if !m.ready {
		m.viewport = viewport.New(m.width, h)
		m.viewport.MouseWheelEnabled = true
		return
	}
	m.viewport.Width = m.width
	m.viewport.Height = h
}

func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(renderArena(m.dash, m.width))
	m.viewport.GotoBottom()
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return HelpContent(m.width, m.height)
	}
	return renderHeader(m.dash, m.width) + "\n" +
		m.viewport.View() + "\n" +
		renderAgents(m.dash, m.spinner.View(), m.width)
}
