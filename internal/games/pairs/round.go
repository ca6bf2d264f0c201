package pairs

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pairs/internal/config"
)

var (
	// ErrLevelLocked is returned when starting a level beyond the unlocked frontier.
	ErrLevelLocked = errors.New("level locked")
	// ErrNoRound is returned by round operations before the first Start.
	ErrNoRound = errors.New("no round in progress")
	// ErrUnknownCard is returned for card ids outside the board.
	ErrUnknownCard = errors.New("unknown card")
	// ErrNoNextLevel is returned by NextLevel when there is nothing to advance to.
	ErrNoNextLevel = errors.New("no next level")
)

// Options configures a Controller. Zero values get defaults.
type Options struct {
	Progress    ProgressStore // nil: every level open, nothing persisted
	Scheduler   Scheduler     // nil: a private TickScheduler that never advances
	RevertDelay time.Duration // 0: config.DefaultRevertDelay
	Rand        Source        // nil: seeded from the clock
	Logger      *log.Logger   // nil: log.Default()
}

// Controller owns one RoundState and drives it through card selections.
// It is single-threaded: selections and scheduler callbacks must come from
// the same goroutine.
type Controller struct {
	catalog     *Catalog
	progress    ProgressStore
	scheduler   Scheduler
	revertDelay time.Duration
	rand        Source
	logger      *log.Logger

	round      *RoundState
	generation uint64
	observers  []Observer
}

// NewController creates a controller for catalog. No round is dealt until Start.
func NewController(catalog *Catalog, opts Options) *Controller {
	c := &Controller{
		catalog:     catalog,
		progress:    opts.Progress,
		scheduler:   opts.Scheduler,
		revertDelay: opts.RevertDelay,
		rand:        opts.Rand,
		logger:      opts.Logger,
	}
	if c.progress == nil {
		c.progress = openProgress{max: catalog.MaxOrdinal()}
	}
	if c.scheduler == nil {
		c.scheduler = NewTickScheduler()
	}
	if c.revertDelay <= 0 {
		c.revertDelay = config.DefaultRevertDelay
	}
	if c.rand == nil {
		c.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if c.logger == nil {
		c.logger = log.Default()
	}
	return c
}

// Subscribe registers an observer for all future events.
func (c *Controller) Subscribe(o Observer) {
	c.observers = append(c.observers, o)
}

// Catalog returns the controller's level catalog.
func (c *Controller) Catalog() *Catalog {
	return c.catalog
}

// Progress returns the progress store in use.
func (c *Controller) Progress() ProgressStore {
	return c.progress
}

// HasRound reports whether a round has been dealt.
func (c *Controller) HasRound() bool {
	return c.round != nil
}

// State returns a copy of the current round. The zero value is returned
// before the first Start.
func (c *Controller) State() RoundState {
	if c.round == nil {
		return RoundState{}
	}
	return c.round.clone()
}

// Start deals a new round of the given level, discarding the current one.
func (c *Controller) Start(ordinal int) error {
	level, err := c.catalog.ByOrdinal(ordinal)
	if err != nil {
		return err
	}
	if ordinal > c.progress.Get() {
		return fmt.Errorf("pairs: level %d: %w", ordinal, ErrLevelLocked)
	}
	c.begin(level)
	return nil
}

// Retry deals a fresh board of the current level.
func (c *Controller) Retry() error {
	if c.round == nil {
		return fmt.Errorf("pairs: retry: %w", ErrNoRound)
	}
	c.begin(c.round.Level)
	return nil
}

// NextLevel starts the level after a won round.
func (c *Controller) NextLevel() error {
	if c.round == nil {
		return fmt.Errorf("pairs: next level: %w", ErrNoRound)
	}
	if c.round.Outcome != Won {
		return fmt.Errorf("pairs: next level: round not won: %w", ErrNoNextLevel)
	}
	next, ok := c.catalog.Next(c.round.Level)
	if !ok {
		return fmt.Errorf("pairs: next level: level %d is final: %w", c.round.Level.Ordinal, ErrNoNextLevel)
	}
	return c.Start(next.Ordinal)
}

func (c *Controller) begin(level LevelSpec) {
	c.generation++
	round := BuildRound(level, c.catalog.symbols, c.rand)
	round.Generation = c.generation
	c.round = &round

	c.logger.Debug("round started", "round", round.ID, "level", level.Ordinal, "pairs", level.PairCount, "budget", level.MoveBudget)
	c.emit(RoundStartedEvent{
		RoundID: round.ID,
		Level:   level,
		Cards:   append([]Card(nil), round.Cards...),
	})
}

// SelectCard flips card id face up. Selections while input is locked, after
// the round ended, or of cards that are not hidden are ignored. The second
// selection of a move resolves it.
func (c *Controller) SelectCard(id int) error {
	r := c.round
	if r == nil {
		return fmt.Errorf("pairs: select card %d: %w", id, ErrNoRound)
	}
	if id < 0 || id >= len(r.Cards) {
		return fmt.Errorf("pairs: select card %d: %w", id, ErrUnknownCard)
	}
	if r.InputLocked || r.Terminal() {
		return nil
	}
	card := &r.Cards[id]
	if card.Visibility != Hidden {
		return nil
	}
	if len(r.Selected) >= 2 {
		panic(fmt.Sprintf("pairs: %d cards selected with input unlocked", len(r.Selected)))
	}

	card.Visibility = Revealed
	r.Selected = append(r.Selected, id)
	c.emit(CardRevealedEvent{CardID: id, Symbol: card.Symbol})

	if len(r.Selected) == 2 {
		c.resolve()
	}
	return nil
}

func (c *Controller) resolve() {
	r := c.round

	r.MovesUsed++
	if !r.Level.Unlimited() {
		r.MovesRemaining--
	}
	c.emit(MovesChangedEvent{
		Used:      r.MovesUsed,
		Remaining: r.MovesRemaining,
		Unlimited: r.Level.Unlimited(),
	})

	r.InputLocked = true
	first, second := r.Selected[0], r.Selected[1]

	if r.Cards[first].Symbol == r.Cards[second].Symbol {
		r.Cards[first].Visibility = Matched
		r.Cards[second].Visibility = Matched
		r.MatchedPairs++
		r.Selected = nil
		r.InputLocked = false
		c.emit(PairMatchedEvent{
			First:        first,
			Second:       second,
			Symbol:       r.Cards[first].Symbol,
			MatchedPairs: r.MatchedPairs,
		})
		if c.checkWin() {
			return
		}
		c.checkLoss()
		return
	}

	c.emit(MismatchEvent{First: first, Second: second})
	gen := r.Generation
	c.scheduler.After(c.revertDelay, func() {
		c.revert(gen, first, second)
	})
	c.checkLoss()
}

// revert flips a mismatched pair back. Callbacks from a superseded round
// or for a round that already ended do nothing.
func (c *Controller) revert(gen uint64, first, second int) {
	r := c.round
	if r == nil || r.Generation != gen {
		c.logger.Debug("stale revert ignored", "generation", gen)
		return
	}
	if r.Terminal() {
		return
	}

	r.Cards[first].Visibility = Hidden
	r.Cards[second].Visibility = Hidden
	r.Selected = nil
	r.InputLocked = false
	c.emit(CardsHiddenEvent{First: first, Second: second})
}

func (c *Controller) checkWin() bool {
	r := c.round
	if r.MatchedPairs != r.Level.PairCount {
		return false
	}

	r.Outcome = Won
	r.InputLocked = true
	r.Selected = nil
	c.progress.Unlock(r.Level)

	c.logger.Debug("round won", "round", r.ID, "level", r.Level.Ordinal, "moves", r.MovesUsed)
	c.emit(RoundWonEvent{
		Level:     r.Level,
		Final:     c.catalog.IsFinal(r.Level),
		MovesUsed: r.MovesUsed,
	})
	return true
}

func (c *Controller) checkLoss() {
	r := c.round
	if r.Level.Unlimited() || r.Terminal() {
		return
	}
	if r.MovesRemaining > 0 || r.MatchedPairs >= r.Level.PairCount {
		return
	}

	r.Outcome = Lost
	r.InputLocked = true
	r.Selected = nil

	c.logger.Debug("round lost", "round", r.ID, "level", r.Level.Ordinal, "matched", r.MatchedPairs)
	c.emit(RoundLostEvent{
		Level:        r.Level,
		MovesUsed:    r.MovesUsed,
		MatchedPairs: r.MatchedPairs,
	})
}

func (c *Controller) emit(e Event) {
	for _, o := range c.observers {
		o(e)
	}
}
