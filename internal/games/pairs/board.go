package pairs

import (
	"fmt"

	"github.com/google/uuid"
)

// Visibility is the face state of a card.
type Visibility int

const (
	Hidden Visibility = iota
	Revealed
	Matched
)

// String returns a human-readable name for the visibility.
func (v Visibility) String() string {
	switch v {
	case Hidden:
		return "hidden"
	case Revealed:
		return "revealed"
	case Matched:
		return "matched"
	default:
		return "unknown"
	}
}

// Outcome is the result of a round.
type Outcome int

const (
	InProgress Outcome = iota
	Won
	Lost
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case InProgress:
		return "in_progress"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// Card is one tile on the board. ID is its index in RoundState.Cards.
type Card struct {
	ID         int
	Symbol     SymbolID
	Visibility Visibility
}

// RoundState is the full state of one round.
type RoundState struct {
	ID         string // Unique per round, used for history records
	Generation uint64 // Incremented by the controller on every new round
	Level      LevelSpec

	Cards    []Card
	Selected []int // Revealed, unresolved card ids; at most 2

	MovesUsed      int
	MovesRemaining int // Only meaningful when the level has a move budget
	MatchedPairs   int

	InputLocked bool
	Outcome     Outcome
}

// Terminal reports whether the round has been won or lost.
func (s RoundState) Terminal() bool {
	return s.Outcome != InProgress
}

// clone returns a deep copy so callers cannot mutate controller state.
func (s RoundState) clone() RoundState {
	s.Cards = append([]Card(nil), s.Cards...)
	s.Selected = append([]int(nil), s.Selected...)
	return s
}

// BuildRound deals a fresh board for level: it draws PairCount distinct
// symbols from a shuffled copy of the pool, duplicates each, shuffles the
// tokens and numbers the cards in order.
// It panics when the pool is smaller than the pair count; NewCatalog
// rejects such catalogs.
func BuildRound(level LevelSpec, symbols []Symbol, src Source) RoundState {
	if len(symbols) < level.PairCount {
		panic(fmt.Sprintf("pairs: level %d needs %d symbols, pool has %d", level.Ordinal, level.PairCount, len(symbols)))
	}

	pool := make([]SymbolID, len(symbols))
	for i, s := range symbols {
		pool[i] = s.ID
	}
	Shuffle(src, pool)

	tokens := make([]SymbolID, 0, 2*level.PairCount)
	for _, id := range pool[:level.PairCount] {
		tokens = append(tokens, id, id)
	}
	Shuffle(src, tokens)

	cards := make([]Card, len(tokens))
	for i, id := range tokens {
		cards[i] = Card{ID: i, Symbol: id, Visibility: Hidden}
	}

	remaining := level.MoveBudget
	if level.Unlimited() {
		remaining = 0
	}

	return RoundState{
		ID:             uuid.NewString(),
		Level:          level,
		Cards:          cards,
		MovesRemaining: remaining,
		Outcome:        InProgress,
	}
}
