package pairs

// Event is a notification emitted by the Controller.
type Event interface {
	roundEvent()
}

// Observer receives controller events synchronously, in emission order.
type Observer func(Event)

// RoundStartedEvent is emitted when a new board is dealt.
type RoundStartedEvent struct {
	RoundID string
	Level   LevelSpec
	Cards   []Card
}

// CardRevealedEvent is emitted when a hidden card is flipped face up.
type CardRevealedEvent struct {
	CardID int
	Symbol SymbolID
}

// MovesChangedEvent is emitted once per move, before the move is resolved.
type MovesChangedEvent struct {
	Used      int
	Remaining int // 0 when Unlimited
	Unlimited bool
}

// PairMatchedEvent is emitted when two selected cards share a symbol.
type PairMatchedEvent struct {
	First, Second int
	Symbol        SymbolID
	MatchedPairs  int
}

// MismatchEvent is emitted when two selected cards differ.
// The cards flip back once the revert delay elapses.
type MismatchEvent struct {
	First, Second int
}

// CardsHiddenEvent is emitted when a mismatched pair flips back.
type CardsHiddenEvent struct {
	First, Second int
}

// RoundWonEvent is emitted when the last pair is matched.
type RoundWonEvent struct {
	Level     LevelSpec
	Final     bool // Level is the last one in the catalog
	MovesUsed int
}

// RoundLostEvent is emitted when the move budget runs out.
type RoundLostEvent struct {
	Level        LevelSpec
	MovesUsed    int
	MatchedPairs int
}

func (RoundStartedEvent) roundEvent() {}
func (CardRevealedEvent) roundEvent() {}
func (MovesChangedEvent) roundEvent() {}
func (PairMatchedEvent) roundEvent()  {}
func (MismatchEvent) roundEvent()     {}
func (CardsHiddenEvent) roundEvent()  {}
func (RoundWonEvent) roundEvent()     {}
func (RoundLostEvent) roundEvent()    {}
