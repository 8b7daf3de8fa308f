package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/ngmaloney/weather-terminal/internal/search"
	"github.com/ngmaloney/weather-terminal/internal/view"
)

// Layout selects how searches are entered
type Layout int

const (
	LayoutGlobal Layout = iota // One search bar fills every card
	LayoutCards                // Each card has its own inline search box
)

// Searcher runs the geocode and fetch sequence for a query
type Searcher interface {
	Search(ctx context.Context, query string) (*search.Result, error)
	SearchPanel(ctx context.Context, query string, panel models.Panel) (*search.Result, error)
}

type Options struct {
	Layout   Layout
	Searcher Searcher
	// DiscardStale drops results older than the newest one already shown
	// for the same target. Off means the last result to arrive wins.
	DiscardStale bool
	// InitialQuery is searched as soon as the program starts.
	InitialQuery string
	Now          func() time.Time
}

// Model represents the application's state
type Model struct {
	layout Layout
	width  int
	height int

	// Everything drawn below the header comes from state
	state view.State

	searchInput textinput.Model // global search bar
	cardInput   textinput.Model // inline box of state.ActivePanel
	spinner     spinner.Model

	searcher     Searcher
	initialQuery string

	// Outstanding searches; the loading indicator stays up while any remain
	inflight int
	// Sequence number of the last search issued
	seq uint64
	// Newest sequence applied per target, indexed by models.Panel
	applied      [4]uint64
	discardStale bool
}

// NewModel creates a new application model
func NewModel(opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "Enter a city name (e.g. Paris, Lisbon, Denver)..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 60

	ci := textinput.New()
	ci.Placeholder = "City name..."
	ci.CharLimit = 100
	ci.Width = 40

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	m := Model{
		layout:       opts.Layout,
		searchInput:  ti,
		cardInput:    ci,
		spinner:      s,
		searcher:     opts.Searcher,
		initialQuery: strings.TrimSpace(opts.InitialQuery),
		discardStale: opts.DiscardStale,
	}
	if m.layout == LayoutCards {
		m.searchInput.Blur()
	}
	m.state.SetClock(now())
	return m
}

// Init starts the clock and any start-up search
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, tickClock()}
	if m.initialQuery != "" {
		cmds = append(cmds, startupSearch(m.initialQuery))
	}
	return tea.Batch(cmds...)
}

// State returns the view state backing the screen
func (m Model) State() view.State {
	return m.state
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case clockTickMsg:
		m.state.SetClock(time.Time(msg))
		return m, tickClock()

	case spinner.TickMsg:
		if !m.state.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case startupSearchMsg:
		if m.layout == LayoutCards {
			var cmds []tea.Cmd
			for _, p := range models.Panels {
				var cmd tea.Cmd
				m, cmd = m.submitPanel(p, msg.query)
				cmds = append(cmds, cmd)
			}
			return m, tea.Batch(cmds...)
		}
		m.searchInput.SetValue(msg.query)
		return m.submitGlobal(msg.query)

	case searchResultMsg:
		return m.handleResult(msg), nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.layout == LayoutCards {
			return m.handleCardsKey(msg)
		}
		return m.handleGlobalKey(msg)
	}

	return m, nil
}

// handleGlobalKey handles keyboard input for the single search bar
func (m Model) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		return m.submitGlobal(m.searchInput.Value())
	case tea.KeyEsc:
		m.state.ClearError()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleCardsKey handles keyboard input when each card searches on its own
func (m Model) handleCardsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	active := m.state.ActivePanel

	if active == models.PanelNone {
		switch msg.String() {
		case "1":
			return m.openCard(models.PanelCurrent)
		case "2":
			return m.openCard(models.PanelHistorical)
		case "3":
			return m.openCard(models.PanelMarine)
		case "q":
			return m, tea.Quit
		case "esc":
			m.state.ClearError()
		}
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEnter:
		query := m.cardInput.Value()
		if strings.TrimSpace(query) == "" {
			m.state.SetError(models.MsgValidation, active)
			return m, nil
		}
		return m.submitPanel(active, query)
	case tea.KeyEsc:
		m.closeCard()
		return m, nil
	case tea.KeyTab:
		return m.openCard(nextPanel(active))
	}

	var cmd tea.Cmd
	m.cardInput, cmd = m.cardInput.Update(msg)
	return m, cmd
}

// openCard shows the inline box of p, closing any other box
func (m Model) openCard(p models.Panel) (tea.Model, tea.Cmd) {
	m.state.ActivePanel = p
	m.cardInput.SetValue("")
	return m, m.cardInput.Focus()
}

func (m *Model) closeCard() {
	m.state.ActivePanel = models.PanelNone
	m.cardInput.Blur()
	m.cardInput.SetValue("")
}

func nextPanel(p models.Panel) models.Panel {
	if p >= models.PanelMarine {
		return models.PanelCurrent
	}
	return p + 1
}

// submitGlobal starts a full search. Every panel and the error are cleared
// before the request is issued.
func (m Model) submitGlobal(query string) (tea.Model, tea.Cmd) {
	query = strings.TrimSpace(query)
	if query == "" {
		m.state.SetError(models.MsgValidation, models.PanelNone)
		return m, nil
	}

	m.state.Reset()
	m.state.ClearError()
	seq := m.begin()

	return m, tea.Batch(m.spinner.Tick, runSearch(m.searcher, seq, query))
}

// submitPanel starts a search that only feeds panel. The panel keeps its
// current contents until the result arrives.
func (m Model) submitPanel(panel models.Panel, query string) (Model, tea.Cmd) {
	query = strings.TrimSpace(query)
	if query == "" {
		m.state.SetError(models.MsgValidation, panel)
		return m, nil
	}

	m.state.ClearError()
	seq := m.begin()

	return m, tea.Batch(m.spinner.Tick, runPanelSearch(m.searcher, seq, panel, query))
}

func (m *Model) begin() uint64 {
	m.seq++
	m.inflight++
	m.state.Loading = true
	return m.seq
}

// handleResult applies a settled search. The loading indicator is cleared
// once no search is outstanding, whatever the outcome.
func (m Model) handleResult(msg searchResultMsg) Model {
	if m.inflight > 0 {
		m.inflight--
	}
	m.state.Loading = m.inflight > 0

	if msg.panel != models.PanelNone && m.state.ActivePanel == msg.panel {
		m.closeCard()
	}

	if m.discardStale && msg.seq < m.applied[msg.panel] {
		return m
	}
	if msg.seq > m.applied[msg.panel] {
		m.applied[msg.panel] = msg.seq
	}

	if msg.panel == models.PanelNone {
		if msg.err != nil {
			m.state.Reset()
			m.state.SetError(models.UserMessage(msg.err), models.PanelNone)
			return m
		}
		m.state.ClearError()
		m.state.Apply(msg.res)
		return m
	}

	if msg.err != nil {
		m.state.SetError(models.UserMessage(msg.err), msg.panel)
		return m
	}
	if m.state.Error != nil && m.state.Error.Panel == msg.panel {
		m.state.ClearError()
	}
	m.state.ApplyPanel(msg.res, msg.panel)
	return m
}

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.layout == LayoutCards {
		return m.viewCards()
	}
	return m.viewGlobal()
}

func (m Model) viewHeader() string {
	title := titleStyle.Render("☀ Weather Terminal")
	clock := clockStyle.Render(m.state.Clock)
	return lipgloss.JoinVertical(lipgloss.Left, title, clock)
}

// viewGlobal renders the single search bar layout
func (m Model) viewGlobal() string {
	var sections []string
	sections = append(sections, m.viewHeader(), "")
	sections = append(sections, searchBoxStyle.Render(m.searchInput.View()))

	if m.state.Error != nil {
		sections = append(sections, "", errorStyle.Render("✗ "+m.state.Error.Message))
	}
	if m.state.Loading {
		sections = append(sections, "", m.spinner.View()+" "+mutedStyle.Render("Fetching weather data..."))
	}

	sections = append(sections, "")
	if m.state.Current.Visible {
		sections = append(sections, renderPane(models.PanelCurrent, m.renderCurrent()))
	}
	if m.state.Historical.Visible {
		sections = append(sections, renderPane(models.PanelHistorical, m.renderHistorical()))
	}
	if m.state.Marine.Visible {
		sections = append(sections, renderPane(models.PanelMarine, m.renderMarine()))
	}

	help := helpStyle.Render("Enter: Search • Esc: Dismiss error • Ctrl+C: Quit")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewCards renders one card per panel, each with its own search box
func (m Model) viewCards() string {
	var sections []string
	sections = append(sections, m.viewHeader(), "")

	if m.state.Error != nil && m.state.Error.Panel == models.PanelNone {
		sections = append(sections, errorStyle.Render("✗ "+m.state.Error.Message), "")
	}
	if m.state.Loading {
		sections = append(sections, m.spinner.View()+" "+mutedStyle.Render("Fetching weather data..."), "")
	}

	for i, p := range models.Panels {
		sections = append(sections, m.renderCard(i+1, p))
	}

	help := "1/2/3: Search a card • Esc: Dismiss error • Q: Quit"
	if m.state.ActivePanel != models.PanelNone {
		help = "Enter: Search • Tab: Next card • Esc: Close"
	}
	sections = append(sections, helpStyle.Render(help))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
