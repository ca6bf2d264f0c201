package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pairs/internal/core"
	"github.com/vovakirdan/tui-pairs/internal/registry"
	"github.com/vovakirdan/tui-pairs/internal/storage"
)

// helpHeight is the number of rows reserved under the board for key help.
const helpHeight = 1

var helpBarStyle = lipgloss.NewStyle().PaddingLeft(1)

// loggerAware is implemented by games that accept a logger.
type loggerAware interface {
	SetLogger(l *log.Logger)
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	profile    string
	logger     *log.Logger
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	help       help.Model
	tickLoop   uint64
	recorded   map[string]bool // Round IDs already written to history
	embedded   bool            // Hosted by SessionModel: Back must not quit the program
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game.
// store may be nil, in which case progress and history stay in memory.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, profile string) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	// Only attach a real store: a nil *Store in the interface would not be nil.
	if store != nil {
		if pa, ok := game.(registry.ProgressAware); ok {
			pa.AttachProgress(store, profile)
		}
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, core.Max(cfg.ScreenH-helpHeight, 0)),
		store:      store,
		config:     cfg,
		profile:    profile,
		logger:     log.Default(),
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		help:       h,
		tickLoop:   newTickLoop(),
		recorded:   make(map[string]bool),
	}
}

// WithLogger returns a copy of the model that logs to l, and hands l to
// the game when it accepts one.
func (m Model) WithLogger(l *log.Logger) Model {
	m.logger = l
	if la, ok := m.game.(loggerAware); ok {
		la.SetLogger(l)
	}
	return m
}

// gameConfig is the runtime config seen by the game: the help bar rows
// are taken out of the screen height.
func (m Model) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = core.Max(cfg.ScreenH-helpHeight, 0)
	return cfg
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.gameConfig())
	// Note: gameState will be set on first tick (value receiver limitation)

	// Start the tick loop
	return tickCmd(m.config.TickRate, m.tickLoop)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Loop != m.tickLoop {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keyMapper.Keys()

	switch {
	case key.Matches(msg, keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, keys.Back):
		m.backToMenu = true
		if m.embedded {
			return m, nil
		}
		return m, tea.Quit
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	gameH := core.Max(msg.Height-helpHeight, 0)
	m.screen.Resize(msg.Width, gameH)
	m.help.Width = msg.Width

	if r, ok := m.game.(registry.Resizable); ok {
		r.Resize(msg.Width, gameH)
		return m, nil
	}

	// Games without Resize are dealt again at the new size
	if !m.gameState.GameOver {
		m.game.Reset(m.gameConfig())
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	m.recordRound()

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate, m.tickLoop)
}

// recordRound writes a finished round to history once per round ID.
func (m Model) recordRound() {
	rr, ok := m.game.(registry.RoundReporter)
	if !ok {
		return
	}
	res, done := rr.LastRound()
	if !done || m.recorded[res.RoundID] {
		return
	}
	m.recorded[res.RoundID] = true

	if m.store == nil {
		return
	}
	if _, err := m.store.SaveRound(m.game.ID(), res); err != nil {
		m.logger.Warn("could not record round", "game", m.game.ID(), "round", res.RoundID, "err", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}
	dir := filepath.Join(home, ".pairs", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	return RenderScreen(m.screen) + "\n" + helpBarStyle.Render(m.help.View(m.keyMapper.Keys()))
}

// IsQuitting returns true if the user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for one game. It reports whether the
// player left with Back rather than Quit.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, profile string) (backToMenu bool, err error) {
	model := NewModel(game, store, cfg, profile)

	p := tea.NewProgram(model, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if fm, ok := final.(Model); ok {
		return fm.BackToMenu(), nil
	}
	return false, nil
}
