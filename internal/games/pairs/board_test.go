package pairs

import (
	"math/rand"
	"testing"
)

func TestBuildRoundDealsEachSymbolTwice(t *testing.T) {
	symbols := testSymbols(12)

	for pairs := 1; pairs <= 12; pairs++ {
		for seed := int64(0); seed < 5; seed++ {
			lvl := LevelSpec{Ordinal: 1, PairCount: pairs, MoveBudget: pairs * 2}
			round := BuildRound(lvl, symbols, rand.New(rand.NewSource(seed)))

			if len(round.Cards) != 2*pairs {
				t.Fatalf("pairs=%d: %d cards, want %d", pairs, len(round.Cards), 2*pairs)
			}
			for sym, ids := range pairsOf(round) {
				if len(ids) != 2 {
					t.Errorf("pairs=%d seed=%d: symbol %s appears %d times", pairs, seed, sym, len(ids))
				}
			}
			if len(pairsOf(round)) != pairs {
				t.Errorf("pairs=%d: %d distinct symbols", pairs, len(pairsOf(round)))
			}
			for i, c := range round.Cards {
				if c.ID != i {
					t.Errorf("card %d has id %d", i, c.ID)
				}
				if c.Visibility != Hidden {
					t.Errorf("card %d starts %s", i, c.Visibility)
				}
			}
		}
	}
}

func TestBuildRoundInitialState(t *testing.T) {
	lvl := LevelSpec{Ordinal: 2, PairCount: 3, MoveBudget: 10}
	round := BuildRound(lvl, testSymbols(5), rand.New(rand.NewSource(1)))

	if round.MovesUsed != 0 || round.MatchedPairs != 0 {
		t.Errorf("counters not zero: %+v", round)
	}
	if round.MovesRemaining != 10 {
		t.Errorf("MovesRemaining = %d, want 10", round.MovesRemaining)
	}
	if len(round.Selected) != 0 || round.InputLocked {
		t.Errorf("selection state not clean: selected=%v locked=%v", round.Selected, round.InputLocked)
	}
	if round.Outcome != InProgress {
		t.Errorf("Outcome = %s, want in_progress", round.Outcome)
	}
	if round.ID == "" {
		t.Error("round id should be set")
	}

	unlimited := BuildRound(LevelSpec{Ordinal: 1, PairCount: 2}, testSymbols(2), rand.New(rand.NewSource(1)))
	if unlimited.MovesRemaining != 0 {
		t.Errorf("unlimited MovesRemaining = %d, want 0", unlimited.MovesRemaining)
	}
}

func TestBuildRoundDrawsFromWholePool(t *testing.T) {
	symbols := testSymbols(10)
	seen := make(map[SymbolID]bool)

	for seed := int64(0); seed < 50; seed++ {
		round := BuildRound(LevelSpec{Ordinal: 1, PairCount: 2}, symbols, rand.New(rand.NewSource(seed)))
		for sym := range pairsOf(round) {
			seen[sym] = true
		}
	}

	if len(seen) < len(symbols) {
		t.Errorf("only %d of %d symbols ever dealt", len(seen), len(symbols))
	}
}

func TestBuildRoundPanicsOnSmallPool(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for a pool smaller than the pair count")
		}
	}()
	BuildRound(LevelSpec{Ordinal: 1, PairCount: 4}, testSymbols(3), rand.New(rand.NewSource(1)))
}

func TestRoundStateCloneIsDeep(t *testing.T) {
	round := BuildRound(LevelSpec{Ordinal: 1, PairCount: 2}, testSymbols(2), rand.New(rand.NewSource(1)))
	round.Selected = []int{0}

	c := round.clone()
	c.Cards[0].Visibility = Matched
	c.Selected[0] = 3

	if round.Cards[0].Visibility != Hidden || round.Selected[0] != 0 {
		t.Error("clone shares memory with the original")
	}
}
