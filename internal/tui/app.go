// Package tui is the interactive print queue dashboard.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/tessro/printq/internal/logging"
	"github.com/tessro/printq/internal/session"
	"github.com/tessro/printq/internal/store"
	"github.com/tessro/printq/internal/tui/components"
	"github.com/tessro/printq/internal/tui/styles"
)

const (
	defaultRefresh = time.Second
	errorDuration  = 5 * time.Second
)

// Store is a state store that reports writes made by other processes.
type Store interface {
	store.Store
	Watch(ctx context.Context) (<-chan struct{}, error)
}

// Options configures the dashboard.
type Options struct {
	Store   Store
	Logger  *zap.Logger
	Refresh time.Duration
	Theme   string
	// Presets are offered in the wait prompt; tab cycles through them.
	Presets []string
	// Gap is the configured default gap in minutes.
	Gap int
}

// Model is the main TUI model
type Model struct {
	session *session.Session
	logger  *zap.Logger
	refresh time.Duration
	changes <-chan struct{}
	presets []string
	preset  int

	width  int
	height int
	now    time.Time

	// Components
	current   *components.Current
	queueView *components.Queue

	// Overlays
	showHelp  bool
	prompting bool
	waitInput textinput.Model

	// Error handling
	lastError   error
	errorExpiry time.Time

	quitting bool
}

// NewModel creates a new TUI model over s.
func NewModel(s *session.Session, opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "HH:MM"
	ti.CharLimit = 5
	ti.Width = 10

	refresh := opts.Refresh
	if refresh <= 0 {
		refresh = defaultRefresh
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return Model{
		session:   s,
		logger:    logger,
		refresh:   refresh,
		presets:   opts.Presets,
		preset:    -1,
		now:       s.Now(),
		current:   components.NewCurrent(),
		queueView: components.NewQueue(),
		waitInput: ti,
	}
}

// Messages
type tickMsg time.Time
type reloadMsg struct{}

// Commands
func (m Model) tick() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	changes := m.changes
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return reloadMsg{}
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tick(), m.waitForChange())
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		if m.quitting {
			return m, nil
		}
		m.now = m.session.Now()
		if m.lastError != nil && m.now.After(m.errorExpiry) {
			m.lastError = nil
		}
		return m, m.tick()

	case reloadMsg:
		if err := m.session.Reload(); err != nil {
			m = m.withError(err)
		}
		m.logger.Debug("reloaded state after external write")
		m.queueView.Clamp(len(m.session.Queue()))
		return m, m.waitForChange()
	}

	if m.prompting {
		var cmd tea.Cmd
		m.waitInput, cmd = m.waitInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) withError(err error) Model {
	m.lastError = err
	m.errorExpiry = m.session.Now().Add(errorDuration)
	return m
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.showHelp {
		switch msg.String() {
		case "?", "esc", "q":
			m.showHelp = false
		}
		return m, nil
	}

	if m.prompting {
		return m.handlePromptKeyPress(msg)
	}

	n := len(m.session.Queue())
	id := m.selectedID()

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "?":
		m.showHelp = true

	case "j", "down":
		m.queueView.SelectNext(n)

	case "k", "up":
		m.queueView.SelectPrev()

	case "J", "shift+down":
		if id != "" && m.session.Move(id, 1) == nil {
			m.queueView.SelectNext(n)
		}

	case "K", "shift+up":
		if id != "" && m.session.Move(id, -1) == nil {
			m.queueView.SelectPrev()
		}

	case "m", "enter":
		if id == "" {
			return m, nil
		}
		if _, err := m.session.Promote(id); err != nil {
			return m.withError(err), nil
		}
		m.logger.Info("promoted from dashboard", zap.String(logging.FieldItemID, id))
		m.queueView.Clamp(n - 1)

	case "g":
		if _, err := m.session.InsertGapAfter(id, m.session.DefaultGap()); err != nil {
			return m.withError(err), nil
		}
		if n > 0 {
			m.queueView.SelectNext(n + 1)
		}

	case "w":
		m.prompting = true
		m.preset = -1
		m.waitInput.SetValue("")
		m.waitInput.Focus()
		return m, textinput.Blink

	case "d":
		if id == "" {
			return m, nil
		}
		if _, err := m.session.Duplicate(id); err != nil {
			return m.withError(err), nil
		}

	case "x", "delete":
		if id == "" {
			return m, nil
		}
		if err := m.session.Remove(id); err != nil {
			return m.withError(err), nil
		}
		m.queueView.Clamp(n - 1)

	case "c":
		m.session.ClearCurrent()

	case "r":
		if err := m.session.Reload(); err != nil {
			return m.withError(err), nil
		}
		m.queueView.Clamp(len(m.session.Queue()))
	}

	m.now = m.session.Now()
	return m, nil
}

func (m Model) handlePromptKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.prompting = false
		m.waitInput.Blur()
		return m, nil

	case "tab":
		if len(m.presets) > 0 {
			m.preset = (m.preset + 1) % len(m.presets)
			m.waitInput.SetValue(m.presets[m.preset])
			m.waitInput.CursorEnd()
		}
		return m, nil

	case "enter":
		id := m.selectedID()
		n := len(m.session.Queue())
		if _, err := m.session.InsertWaitAfter(id, m.waitInput.Value()); err != nil {
			return m.withError(err), nil
		}
		m.prompting = false
		m.waitInput.Blur()
		if n > 0 {
			m.queueView.SelectNext(n + 1)
		}
		m.now = m.session.Now()
		return m, nil
	}

	var cmd tea.Cmd
	m.waitInput, cmd = m.waitInput.Update(msg)
	return m, cmd
}

// selectedID returns the id under the cursor, or "" for an empty queue.
func (m Model) selectedID() string {
	q := m.session.Queue()
	i := m.queueView.Selected()
	if i < 0 || i >= len(q) {
		return ""
	}
	return q[i].ItemID()
}

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.width == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	currentHeight := 11
	queueHeight := m.height - currentHeight - 3
	if queueHeight < 6 {
		queueHeight = 6
	}

	banner, _ := m.session.Banner()
	current := m.current.Render(m.session.Current(), m.now, m.width-2, currentHeight-2, false)
	queue := m.queueView.Render(m.session.Projection().Entries, banner, m.now, m.width-2, queueHeight-2, true)

	sections := []string{current, queue}
	if m.prompting {
		sections = append(sections, m.renderPrompt())
	}
	sections = append(sections, m.renderStatusBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderPrompt() string {
	line := styles.Highlight.Render("Wait until ") + m.waitInput.View()
	if len(m.presets) > 0 {
		line += "  " + styles.Dim.Render("tab: "+strings.Join(m.presets, " "))
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(line)
}

func (m Model) renderStatusBar() string {
	status := styles.Dim.Render("q:quit  ?:help  j/k:select  J/K:move  m:start  g:gap  w:wait  d:dup  x:remove  c:clear")

	if m.lastError != nil {
		status = styles.Alert.Render("Error: " + m.lastError.Error())
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 1).
		Render(status)
}

func (m Model) renderHelp() string {
	title := "printq - Keyboard Shortcuts"
	divider := strings.Repeat("═", len(title))

	help := fmt.Sprintf(`
  %s
  %s

  Global
  ──────
  q, Ctrl+C    Quit
  ?            Toggle help
  r            Reload

  Queue
  ─────
  j/↓  k/↑     Select item
  J    K       Move item down / up
  m, Enter     Start selected print now
  g            Add %d minute gap below
  w            Add wait below (tab cycles presets)
  d            Duplicate to end of queue
  x            Remove

  Current print
  ─────────────
  c            Clear

  Press ? or Esc to close
`, title, divider, m.session.DefaultGap())

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(styles.BorderStyle.Render(help))
}

// Run starts the TUI application
func Run(opts Options) error {
	styles.Apply(opts.Theme)

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s, loadErr := session.Open(opts.Store, session.WithLogger(logger), session.WithDefaultGap(opts.Gap))
	model := NewModel(s, opts)
	if loadErr != nil {
		model = model.withError(loadErr)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := opts.Store.Watch(ctx)
	if err != nil {
		logger.Warn("not watching for external changes", zap.String(logging.FieldStore, opts.Store.Path()), zap.Error(err))
	} else {
		model.changes = changes
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
