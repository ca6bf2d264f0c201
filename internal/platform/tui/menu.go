package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pairs/internal/config"
	"github.com/vovakirdan/tui-pairs/internal/core"
	"github.com/vovakirdan/tui-pairs/internal/games/pairs"
	"github.com/vovakirdan/tui-pairs/internal/storage"
)

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	menuLockedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// mainMenuItem is one entry of the top-level menu.
type mainMenuItem int

const (
	itemContinue mainMenuItem = iota
	itemSelectLevel
	itemClassic
	itemHistory
	itemQuit
)

var mainMenuItems = []mainMenuItem{itemContinue, itemSelectLevel, itemClassic, itemHistory, itemQuit}

// LevelRow is one line of the level picker.
type LevelRow struct {
	Ordinal   int
	Name      string
	Pairs     int
	Moves     int // 0 means unlimited
	Locked    bool
	BestMoves int // 0 when the level was never won
}

// MenuSelection is what the player chose to play.
type MenuSelection struct {
	GameID string
	Level  int // 0 starts at the unlocked frontier
}

// MenuModel is the Bubble Tea model for the main menu and level picker.
type MenuModel struct {
	cursor        int
	levelCursor   int
	inLevelSelect bool
	levels        []LevelRow
	unlocked      int
	profile       string
	width         int
	height        int
	config        core.RuntimeConfig
	keyMapper     *KeyMapper
	notice        string
	quitting      bool
	selected      *MenuSelection
	openHistory   bool
}

// NewMenuModel creates a new menu model for profile.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, profile string) MenuModel {
	if profile == "" {
		profile = pairs.DefaultProfile
	}
	levels, unlocked := loadLevelRows(store, profile)

	return MenuModel{
		levels:    levels,
		unlocked:  unlocked,
		profile:   profile,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// loadLevelRows builds the level picker rows from the active catalog, the
// profile's unlocked frontier and its best winning move counts.
func loadLevelRows(store *storage.Store, profile string) ([]LevelRow, int) {
	cat, err := pairs.LoadCatalog(pairs.GetConfigPath(), pairs.GetDifficultyPreset())
	if err != nil {
		log.Warn("using default level catalog", "err", err)
		cat, err = pairs.CatalogFromConfig(config.DefaultPairsConfig())
		if err != nil {
			return nil, 1
		}
	}

	unlocked := 1
	var best map[int]int
	if store != nil {
		if v, loadErr := store.LoadProgress(pairs.ProgressKey(profile)); loadErr == nil {
			unlocked = v
		} else {
			log.Warn("could not read progress", "profile", profile, "err", loadErr)
		}
		if b, bestErr := store.BestMoves("pairs", profile); bestErr == nil {
			best = b
		}
	}
	unlocked = core.Clamp(unlocked, 1, cat.MaxOrdinal())

	specs := cat.Levels()
	rows := make([]LevelRow, 0, len(specs))
	for _, l := range specs {
		rows = append(rows, LevelRow{
			Ordinal:   l.Ordinal,
			Name:      l.Name,
			Pairs:     l.PairCount,
			Moves:     l.MoveBudget,
			Locked:    l.Ordinal > unlocked,
			BestMoves: best[l.Ordinal],
		})
	}
	return rows, unlocked
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action := m.keyMapper.MapKeyToMenuAction(msg)
		if m.inLevelSelect {
			return m.handleLevelSelectKey(action)
		}
		return m.handleMainKey(action)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

func (m MenuModel) handleMainKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(mainMenuItems)-1 {
			m.cursor++
		}

	case MenuActionHistory:
		m.openHistory = true
		return m, tea.Quit

	case MenuActionSelect:
		switch mainMenuItems[m.cursor] {
		case itemContinue:
			m.selected = &MenuSelection{GameID: "pairs"}
			return m, tea.Quit
		case itemSelectLevel:
			m.inLevelSelect = true
			m.levelCursor = m.unlocked - 1
			m.notice = ""
		case itemClassic:
			m.selected = &MenuSelection{GameID: "pairs_classic"}
			return m, tea.Quit
		case itemHistory:
			m.openHistory = true
			return m, tea.Quit
		case itemQuit:
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m MenuModel) handleLevelSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
		m.notice = ""
	case MenuActionDown:
		if m.levelCursor < len(m.levels)-1 {
			m.levelCursor++
		}
		m.notice = ""
	case MenuActionSelect:
		if len(m.levels) == 0 {
			return m, nil
		}
		row := m.levels[m.levelCursor]
		if row.Locked {
			m.notice = fmt.Sprintf("Clear level %d to unlock %q", row.Ordinal-1, row.Name)
			return m, nil
		}
		m.selected = &MenuSelection{GameID: "pairs", Level: row.Ordinal}
		return m, tea.Quit
	case MenuActionBack:
		m.inLevelSelect = false
		m.notice = ""
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	if m.inLevelSelect {
		return m.viewLevelSelect()
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("  P A I R S  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Find every matching pair", m.width))
	b.WriteString("\n\n")

	for i, item := range mainMenuItems {
		line := "  " + m.itemLabel(item)
		if i == m.cursor {
			line = menuCursorStyle.Render("> " + m.itemLabel(item))
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Up/Down: Navigate  |  Enter: Select  |  Tab: History  |  Q: Quit", m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) itemLabel(item mainMenuItem) string {
	switch item {
	case itemContinue:
		if m.unlocked-1 < len(m.levels) && m.unlocked > 0 {
			return fmt.Sprintf("Continue (Level %d: %s)", m.unlocked, m.levels[m.unlocked-1].Name)
		}
		return "Continue"
	case itemSelectLevel:
		return "Select Level"
	case itemClassic:
		return "Classic (unlimited moves)"
	case itemHistory:
		return "History"
	case itemQuit:
		return "Quit"
	}
	return ""
}

func (m MenuModel) viewLevelSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("SELECT LEVEL"), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(fmt.Sprintf("Profile: %s", m.profile), m.width))
	b.WriteString("\n\n")

	for i, row := range m.levels {
		moves := "unlimited"
		if row.Moves > 0 {
			moves = fmt.Sprintf("%2d moves", row.Moves)
		}
		best := ""
		if row.BestMoves > 0 {
			best = fmt.Sprintf("  best %d", row.BestMoves)
		}
		text := fmt.Sprintf("%2d. %-14s %2d pairs  %s%s", row.Ordinal, row.Name, row.Pairs, moves, best)
		if row.Locked {
			text = fmt.Sprintf("%2d. %-14s [locked]", row.Ordinal, row.Name)
		}

		var line string
		switch {
		case i == m.levelCursor:
			line = menuCursorStyle.Render("> " + text)
		case row.Locked:
			line = menuLockedStyle.Render("  " + text)
		default:
			line = "  " + text
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(centerText(m.notice, m.width))
		b.WriteString("\n")
	}
	b.WriteString(centerText("Up/Down: Navigate  |  Enter: Play  |  Esc: Back  |  Q: Quit", m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the player's choice, or nil if none was made.
func (m MenuModel) Selected() *MenuSelection {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsHistory returns true if the user asked for the round history.
func (m MenuModel) WantsHistory() bool {
	return m.openHistory
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width. Width is measured in cells,
// so styled and non-ASCII text centers correctly.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Selection    *MenuSelection
	Config       core.RuntimeConfig
	WantsHistory bool
	Quit         bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, profile string) (MenuResult, error) {
	model := NewMenuModel(store, cfg, profile)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Config: m.Config(),
	}

	switch {
	case m.WantsHistory():
		result.WantsHistory = true
	case m.IsQuitting() || m.Selected() == nil:
		result.Quit = true
	default:
		result.Selection = m.Selected()
	}

	return result, nil
}
