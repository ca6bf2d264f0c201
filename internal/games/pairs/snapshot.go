package pairs

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateRevealing   GameStateType = "revealing" // Mismatch shown, revert pending
	StateWon         GameStateType = "won"
	StateLost        GameStateType = "lost"
	StatePaused      GameStateType = "paused"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Tick           uint64
	Mode           string // "levels" or "classic"
	Level          int
	Cursor         int
	MovesUsed      int
	MovesRemaining int
	MatchedPairs   int
	Pairs          int
	Cards          []Card
	Selected       []int
	PendingReverts int
	State          GameStateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	r := g.ctrl.State()

	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case r.Outcome == Won:
		state = StateWon
	case r.Outcome == Lost:
		state = StateLost
	case g.paused:
		state = StatePaused
	case r.InputLocked:
		state = StateRevealing
	}

	return Snapshot{
		Tick:           g.tick,
		Mode:           string(g.mode),
		Level:          r.Level.Ordinal,
		Cursor:         g.cursor,
		MovesUsed:      r.MovesUsed,
		MovesRemaining: r.MovesRemaining,
		MatchedPairs:   r.MatchedPairs,
		Pairs:          r.Level.PairCount,
		Cards:          r.Cards,
		Selected:       r.Selected,
		PendingReverts: g.sched.Pending(),
		State:          state,
	}
}
