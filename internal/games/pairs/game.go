package pairs

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pairs/internal/config"
	"github.com/vovakirdan/tui-pairs/internal/core"
	"github.com/vovakirdan/tui-pairs/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeLevels  Mode = "levels"
	ModeClassic Mode = "classic"
)

// Game adapts a Controller to registry.Game: it owns the card cursor,
// drives the revert scheduler from Step and draws the board.
type Game struct {
	mode   Mode
	logger *log.Logger

	backend    core.ProgressBackend
	profile    string
	startLevel int // Per-instance override of selectedStartLevel

	rng      *rand.Rand
	tick     uint64
	tickDur  time.Duration
	catalog  *Catalog
	progress ProgressStore
	sched    *TickScheduler
	ctrl     *Controller

	cursor      int
	startedTick uint64
	lastRound   *core.RoundResult
	status      string // One-line message under the board

	// Screen dimensions
	screenW int
	screenH int

	paused   bool
	tooSmall bool
}

// Package-level variables for menu and CLI selection
var (
	selectedStartLevel int
	configPath         string
	difficultyPreset   config.DifficultyPreset = config.DifficultyNormal
)

// SetStartLevel sets the level the next Reset starts on. 0 means resume at
// the unlocked frontier.
func SetStartLevel(level int) {
	selectedStartLevel = level
}

// GetStartLevel returns the currently selected start level.
func GetStartLevel() int {
	return selectedStartLevel
}

// SetConfigPath sets a custom config file for subsequent Resets.
func SetConfigPath(path string) {
	configPath = path
}

// GetConfigPath returns the custom config path, empty for the default search.
func GetConfigPath() string {
	return configPath
}

// SetDifficultyPreset sets the move budget preset for subsequent Resets.
func SetDifficultyPreset(p config.DifficultyPreset) {
	difficultyPreset = p
}

// GetDifficultyPreset returns the active difficulty preset.
func GetDifficultyPreset() config.DifficultyPreset {
	return difficultyPreset
}

// New creates a new level mode game.
func New() *Game {
	return &Game{mode: ModeLevels}
}

// NewClassic creates a new classic mode game: one board, unlimited moves.
func NewClassic() *Game {
	return &Game{mode: ModeClassic}
}

func init() {
	registry.Register("pairs", func() registry.Game {
		return New()
	})
	registry.Register("pairs_classic", func() registry.Game {
		return NewClassic()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeClassic {
		return "pairs_classic"
	}
	return "pairs"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeClassic {
		return "Pairs (Classic)"
	}
	return "Pairs"
}

// AttachProgress sets the backend and profile used for level unlocks.
// It takes effect on the next Reset. Classic mode ignores it.
func (g *Game) AttachProgress(backend core.ProgressBackend, profile string) {
	g.backend = backend
	g.profile = profile
}

// SelectLevel sets the level the next Reset starts on for this instance
// only. SSH sessions use it instead of the package-level SetStartLevel.
func (g *Game) SelectLevel(level int) {
	g.startLevel = level
}

// SetLogger sets the logger handed to the controller and progress store.
func (g *Game) SetLogger(l *log.Logger) {
	g.logger = l
}

// Reset loads the catalog and deals the first round.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if g.logger == nil {
		g.logger = log.Default()
	}
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.tickDur = cfg.TickDuration()
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.paused = false
	g.cursor = 0
	g.lastRound = nil
	g.status = ""

	pairsCfg := g.loadConfig()
	g.catalog = g.buildCatalog(pairsCfg)

	g.progress = nil
	if g.mode == ModeLevels {
		if g.backend == nil {
			g.backend = NewMemoryBackend()
		}
		g.progress = NewProgress(g.backend, g.profile, g.catalog.MaxOrdinal(), g.logger)
	}

	g.sched = NewTickScheduler()
	g.ctrl = NewController(g.catalog, Options{
		Progress:    g.progress,
		Scheduler:   g.sched,
		RevertDelay: pairsCfg.RevertDelay(),
		Rand:        g.rng,
		Logger:      g.logger,
	})
	g.ctrl.Subscribe(g.onEvent)

	g.startRound()
	g.checkScreenSize()
}

func (g *Game) loadConfig() config.PairsConfig {
	cfg, err := config.LoadPairs(configPath)
	if err != nil {
		g.logger.Warn("using default pairs config", "err", err)
		cfg = config.DefaultPairsConfig()
	}
	if g.mode == ModeLevels {
		config.ApplyPairsPreset(&cfg, difficultyPreset)
	}
	return cfg
}

func (g *Game) buildCatalog(cfg config.PairsConfig) *Catalog {
	build := CatalogFromConfig
	if g.mode == ModeClassic {
		build = ClassicCatalog
	}
	cat, err := build(cfg)
	if err == nil {
		return cat
	}
	g.logger.Warn("invalid pairs config, using defaults", "err", err)
	cat, err = build(config.DefaultPairsConfig())
	if err != nil {
		panic(err)
	}
	return cat
}

// startRound starts the selected level, or the unlocked frontier when no
// level was selected or the selection is locked.
func (g *Game) startRound() {
	ordinal := 1
	if g.mode == ModeLevels {
		ordinal = g.progress.Get()
		switch {
		case g.startLevel > 0:
			ordinal = g.startLevel
			g.startLevel = 0
		case selectedStartLevel > 0:
			ordinal = selectedStartLevel
			selectedStartLevel = 0 // Reset after use
		}
	}

	err := g.ctrl.Start(ordinal)
	if err == nil {
		return
	}
	g.logger.Warn("cannot start level", "level", ordinal, "err", err)
	//nolint:errcheck // The frontier is always a valid, unlocked ordinal
	g.ctrl.Start(g.ctrl.Progress().Get())
	if errors.Is(err, ErrLevelLocked) {
		g.status = fmt.Sprintf("Level %d is still locked", ordinal)
	}
}

// checkScreenSize checks if the screen is large enough for the current board.
func (g *Game) checkScreenSize() {
	minW, minH := g.boardSize()
	g.tooSmall = g.screenW < minW || g.screenH < minH+hudHeight+footerHeight
}

// Resize updates the screen dimensions without dealing a new board.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.checkScreenSize()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	state := g.ctrl.State()

	if in.Has(core.ActionPause) && !state.Terminal() {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.sched.Advance(g.tickDur)

	switch {
	case in.Has(core.ActionRestart):
		//nolint:errcheck // A round always exists after Reset
		g.ctrl.Retry()
		return core.StepResult{State: g.State()}
	case in.Has(core.ActionNext):
		if err := g.ctrl.NextLevel(); err != nil {
			g.logger.Debug("next level unavailable", "err", err)
		}
		return core.StepResult{State: g.State()}
	}

	g.moveCursor(in)

	if in.Has(core.ActionConfirm) {
		if err := g.ctrl.SelectCard(g.cursor); err != nil {
			g.logger.Warn("select failed", "card", g.cursor, "err", err)
		}
	}

	return core.StepResult{State: g.State()}
}

// moveCursor moves the cursor across the card grid without wrapping.
func (g *Game) moveCursor(in core.InputFrame) {
	n := len(g.ctrl.round.Cards)
	cols := g.columns()

	switch {
	case in.Has(core.ActionUp):
		if g.cursor-cols >= 0 {
			g.cursor -= cols
		}
	case in.Has(core.ActionDown):
		if g.cursor+cols < n {
			g.cursor += cols
		}
	case in.Has(core.ActionLeft):
		if g.cursor%cols > 0 {
			g.cursor--
		}
	case in.Has(core.ActionRight):
		if g.cursor%cols < cols-1 && g.cursor+1 < n {
			g.cursor++
		}
	}
}

// columns returns the grid width for the current level, never wider than
// the number of cards.
func (g *Game) columns() int {
	r := g.ctrl.round
	return core.Clamp(r.Level.Columns(), 1, core.Max(len(r.Cards), 1))
}

// onEvent keeps adapter state in sync with the controller.
func (g *Game) onEvent(e Event) {
	switch ev := e.(type) {
	case RoundStartedEvent:
		g.cursor = 0
		g.startedTick = g.tick
		g.lastRound = nil
		g.status = ""
		g.checkScreenSize()
	case RoundWonEvent:
		g.recordRound(true)
		if ev.Final && g.mode == ModeLevels {
			g.status = "Every level cleared"
		}
	case RoundLostEvent:
		g.recordRound(false)
	}
}

func (g *Game) recordRound(won bool) {
	r := g.ctrl.round
	level := r.Level.Ordinal
	if g.mode == ModeClassic {
		level = 0
	}
	profile := g.profile
	if profile == "" {
		profile = DefaultProfile
	}
	g.lastRound = &core.RoundResult{
		RoundID:  r.ID,
		Profile:  profile,
		Level:    level,
		Won:      won,
		Moves:    r.MovesUsed,
		Pairs:    r.Level.PairCount,
		Duration: time.Duration(g.tick-g.startedTick) * g.tickDur,
	}
}

// LastRound returns the result of the most recently finished round, if the
// current round has ended.
func (g *Game) LastRound() (core.RoundResult, bool) {
	if g.lastRound == nil {
		return core.RoundResult{}, false
	}
	return *g.lastRound, true
}

// Controller exposes the round controller, mainly for tests.
func (g *Game) Controller() *Controller {
	return g.ctrl
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	state := g.ctrl.State()
	return core.GameState{
		Score:    state.MovesUsed,
		GameOver: state.Terminal(),
		Paused:   g.paused || g.tooSmall,
	}
}
