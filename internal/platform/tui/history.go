package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pairs/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the view list sidebar
	sidebarWidth       = 20  // Width of the view list sidebar
	maxRecentRounds    = 100 // Max rounds to load
)

// historyKind selects what a history tab shows.
type historyKind int

const (
	historyLevelStats historyKind = iota
	historyRecent
)

// historyTab is one selectable table of the history screen.
type historyTab struct {
	Title  string
	GameID string
	Kind   historyKind
}

var historyTabs = []historyTab{
	{Title: "Level Stats", GameID: "pairs", Kind: historyLevelStats},
	{Title: "Recent Rounds", GameID: "pairs", Kind: historyRecent},
	{Title: "Classic Rounds", GameID: "pairs_classic", Kind: historyRecent},
}

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	NextTab     key.Binding
	PrevTab     key.Binding
	AllProfiles key.Binding
	Back        key.Binding
	Quit        key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.PrevTab, k.AllProfiles, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab, k.PrevTab},
		{k.AllProfiles, k.Back, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev view"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next view"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next view"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev view"),
		),
		AllProfiles: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "all profiles"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for the round history screen.
type HistoryModel struct {
	tabCursor   int
	store       *storage.Store
	profile     string
	allProfiles bool
	rows        []table.Row
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
	// embedded is set when hosted by SessionModel: Back must not quit the program
	embedded bool
}

// NewHistoryModel creates a history model showing rounds of profile.
func NewHistoryModel(store *storage.Store, profile string, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false
	h.Width = width

	m := HistoryModel{
		store:       store,
		profile:     profile,
		keys:        DefaultHistoryKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	m.table = m.createTable()
	m.loadRows()

	return m
}

func (m HistoryModel) currentTab() historyTab {
	return historyTabs[m.tabCursor]
}

// profileFilter is the profile passed to storage queries; empty means all.
func (m HistoryModel) profileFilter() string {
	if m.allProfiles {
		return ""
	}
	return m.profile
}

// createTable creates a table with columns for the current tab.
func (m *HistoryModel) createTable() table.Model {
	var columns []table.Column
	switch m.currentTab().Kind {
	case historyLevelStats:
		columns = []table.Column{
			{Title: "Level", Width: 6},
			{Title: "Played", Width: 7},
			{Title: "Won", Width: 5},
			{Title: "Lost", Width: 5},
			{Title: "Best", Width: 5},
			{Title: "Avg", Width: 6},
			{Title: "Last", Width: 13},
		}
	default:
		columns = []table.Column{
			{Title: "Level", Width: 6},
			{Title: "Result", Width: 7},
			{Title: "Moves", Width: 6},
			{Title: "Pairs", Width: 6},
			{Title: "Time", Width: 6},
			{Title: "Date", Width: 13},
		}
		if m.allProfiles {
			columns = append(columns, table.Column{Title: "Profile", Width: 12})
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRows queries storage for the current tab.
func (m *HistoryModel) loadRows() {
	m.rows = nil
	if m.store != nil {
		tab := m.currentTab()
		var err error
		switch tab.Kind {
		case historyLevelStats:
			m.rows, err = m.levelStatRows(tab.GameID)
		default:
			m.rows, err = m.recentRows(tab.GameID)
		}
		if err != nil {
			log.Warn("could not load history", "view", tab.Title, "err", err)
			m.rows = nil
		}
	}

	m.table.SetRows(m.rows)
	m.table.GotoTop()
}

func (m *HistoryModel) levelStatRows(gameID string) ([]table.Row, error) {
	stats, err := m.store.LevelStats(gameID, m.profileFilter())
	if err != nil {
		return nil, err
	}
	rows := make([]table.Row, len(stats))
	for i, s := range stats {
		best := "-"
		if s.BestMoves > 0 {
			best = fmt.Sprintf("%d", s.BestMoves)
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", s.Level),
			fmt.Sprintf("%d", s.Played),
			fmt.Sprintf("%d", s.Won),
			fmt.Sprintf("%d", s.Lost),
			best,
			fmt.Sprintf("%.1f", s.AvgMoves),
			s.LastPlayed.Format("Jan 02 15:04"),
		}
	}
	return rows, nil
}

func (m *HistoryModel) recentRows(gameID string) ([]table.Row, error) {
	rounds, err := m.store.RecentRounds(gameID, m.profileFilter(), maxRecentRounds)
	if err != nil {
		return nil, err
	}
	rows := make([]table.Row, len(rounds))
	for i, r := range rounds {
		level := fmt.Sprintf("%d", r.Level)
		if r.Level == 0 {
			level = "-"
		}
		row := table.Row{
			level,
			r.Outcome,
			fmt.Sprintf("%d", r.Moves),
			fmt.Sprintf("%d", r.Pairs),
			fmt.Sprintf("%ds", r.DurationSecs),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
		if m.allProfiles {
			row = append(row, r.Profile)
		}
		rows[i] = row
	}
	return rows, nil
}

// switchTab moves to another tab and reloads its rows.
func (m *HistoryModel) switchTab(delta int) {
	n := len(historyTabs)
	m.tabCursor = ((m.tabCursor+delta)%n + n) % n
	m.table = m.createTable()
	m.loadRows()
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.embedded {
				return m, nil
			}
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTab), key.Matches(msg, m.keys.Right):
			m.switchTab(1)
			return m, nil

		case key.Matches(msg, m.keys.PrevTab), key.Matches(msg, m.keys.Left):
			m.switchTab(-1)
			return m, nil

		case key.Matches(msg, m.keys.AllProfiles):
			m.allProfiles = !m.allProfiles
			m.table = m.createTable()
			m.loadRows()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.table.SetRows(m.rows)
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	who := m.profile
	if m.allProfiles {
		who = "all profiles"
	}
	title := fmt.Sprintf("HISTORY - %s (%s)", m.currentTab().Title, who)
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the view list as a sidebar next to the table.
func (m HistoryModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Views\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, tab := range historyTabs {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.tabCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + tab.Title))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout renders the views as tabs above the table.
func (m HistoryModel) renderNarrowLayout() string {
	var b strings.Builder

	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(historyTabs))
	for i, tab := range historyTabs {
		if i == m.tabCursor {
			tabs[i] = activeTabStyle.Render(tab.Title)
		} else {
			tabs[i] = tabStyle.Render(" " + tab.Title + " ")
		}
	}

	tabLine := strings.Join(tabs, " ")
	if lipgloss.Width(tabLine) > m.width-4 {
		tabLine = fmt.Sprintf("< %s >", m.currentTab().Title)
	}
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m HistoryModel) renderTableContent() string {
	if len(m.rows) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No rounds recorded yet.\nFinish a board to start your history!")
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

// RunHistory runs the history screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunHistory(store *storage.Store, profile string, width, height int) (goBack bool, err error) {
	model := NewHistoryModel(store, profile, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(HistoryModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
