package pairs

import (
	"math/rand"
	"testing"
)

func TestScenarioWinInThreeMoves(t *testing.T) {
	cat := testCatalog(t, [2]int{3, 10}, [2]int{4, 12})
	h := newHarness(t, cat, 1)

	if err := h.ctrl.Start(1); err != nil {
		t.Fatalf("Start(1) failed: %v", err)
	}
	if got := h.progress.Get(); got != 1 {
		t.Fatalf("initial progress = %d, want 1", got)
	}

	for _, p := range orderedPairs(h.ctrl.State()) {
		h.mustSelect(t, p[0])
		h.mustSelect(t, p[1])
	}

	s := h.ctrl.State()
	if s.Outcome != Won {
		t.Fatalf("Outcome = %s, want won", s.Outcome)
	}
	if s.MovesUsed != 3 {
		t.Errorf("MovesUsed = %d, want 3", s.MovesUsed)
	}
	if s.MovesRemaining != 7 {
		t.Errorf("MovesRemaining = %d, want 7", s.MovesRemaining)
	}
	if !s.InputLocked || len(s.Selected) != 0 {
		t.Errorf("won round should be locked with no selection: locked=%v selected=%v", s.InputLocked, s.Selected)
	}
	if got := h.progress.Get(); got != 2 {
		t.Errorf("progress = %d, want 2", got)
	}

	var won *RoundWonEvent
	for _, e := range h.rec.events {
		if ev, ok := e.(RoundWonEvent); ok {
			won = &ev
		}
	}
	if won == nil {
		t.Fatal("no RoundWonEvent emitted")
	}
	if won.Level.Ordinal != 1 || won.Final || won.MovesUsed != 3 {
		t.Errorf("RoundWonEvent = %+v", *won)
	}
}

func TestScenarioLoseByExhaustingBudget(t *testing.T) {
	cat := testCatalog(t, [2]int{3, 2})
	h := newHarness(t, cat, 2)
	//nolint:errcheck // Level 1 is always open
	h.ctrl.Start(1)

	a, b := mismatchedPair(t, h.ctrl.State())
	h.mustSelect(t, a)
	h.mustSelect(t, b)

	s := h.ctrl.State()
	if s.Outcome != InProgress || !s.InputLocked {
		t.Fatalf("after first mismatch: outcome=%s locked=%v", s.Outcome, s.InputLocked)
	}
	h.settle()

	a, b = mismatchedPair(t, h.ctrl.State())
	h.mustSelect(t, a)
	h.mustSelect(t, b)

	s = h.ctrl.State()
	if s.Outcome != Lost {
		t.Fatalf("Outcome = %s, want lost", s.Outcome)
	}
	if s.MatchedPairs != 0 || s.MovesRemaining != 0 || s.MovesUsed != 2 {
		t.Errorf("counters: matched=%d remaining=%d used=%d", s.MatchedPairs, s.MovesRemaining, s.MovesUsed)
	}
	if !s.InputLocked || len(s.Selected) != 0 {
		t.Errorf("lost round should be locked with no selection")
	}
	if n := h.rec.count(func(e Event) bool { _, ok := e.(RoundLostEvent); return ok }); n != 1 {
		t.Errorf("RoundLostEvent emitted %d times, want 1", n)
	}

	// The pending revert must not touch the finished round
	before := h.ctrl.State()
	h.settle()
	after := h.ctrl.State()
	for i := range before.Cards {
		if before.Cards[i] != after.Cards[i] {
			t.Errorf("card %d changed after loss: %+v -> %+v", i, before.Cards[i], after.Cards[i])
		}
	}
	if h.progress.Get() != 1 {
		t.Errorf("losing should not unlock, progress = %d", h.progress.Get())
	}
}

func TestDuplicateSelectIsIgnored(t *testing.T) {
	h := newHarness(t, testCatalog(t, [2]int{3, 10}), 3)
	//nolint:errcheck // Level 1 is always open
	h.ctrl.Start(1)

	h.mustSelect(t, 0)
	h.mustSelect(t, 0)

	s := h.ctrl.State()
	if len(s.Selected) != 1 || s.Selected[0] != 0 {
		t.Errorf("Selected = %v, want [0]", s.Selected)
	}
	if s.MovesUsed != 0 {
		t.Errorf("MovesUsed = %d, want 0", s.MovesUsed)
	}
	if s.InputLocked {
		t.Error("input should stay unlocked after a single selection")
	}
}

func TestSelectMatchedCardIsIgnored(t *testing.T) {
	h := newHarness(t, testCatalog(t, [2]int{3, 10}), 4)
	//nolint:errcheck // Level 1 is always open
	h.ctrl.Start(1)

	p := orderedPairs(h.ctrl.State())[0]
	h.mustSelect(t, p[0])
	h.mustSelect(t, p[1])

	h.mustSelect(t, p[0])
	s := h.ctrl.State()
	if len(s.Selected) != 0 || s.MovesUsed != 1 {
		t.Errorf("selecting a matched card changed state: selected=%v moves=%d", s.Selected, s.MovesUsed)
	}
	if s.Cards[p[0]].Visibility != Matched {
		t.Errorf("card %d is %s, want matched", p[0], s.Cards[p[0]].Visibility)
	}
}

func TestSelectWhileLockedIsIgnored(t *testing.T) {
	h := newHarness(t, testCatalog(t, [2]int{4, 10}), 5)
	//nolint:errcheck // Level 1 is always open
	h.ctrl.Start(1)

	a, b := mismatchedPair(t, h.ctrl.State())
	h.mustSelect(t, a)
	h.mustSelect(t, b)

	var third int
	for _, c := range h.ctrl.State().Cards {
		if c.Visibility == Hidden {
			third = c.ID
			break
		}
	}
	h.mustSelect(t, third)

	s := h.ctrl.State()
	if s.Cards[third].Visibility != Hidden {
		t.Errorf("card %d revealed while input locked", third)
	}
	if s.MovesUsed != 1 || len(s.Selected) != 2 {
		t.Errorf("locked select changed state: moves=%d selected=%v", s.MovesUsed, s.Selected)
	}

	h.settle()
	s = h.ctrl.State()
	if s.InputLocked || len(s.Selected) != 0 {
		t.Errorf("after revert: locked=%v selected=%v", s.InputLocked, s.Selected)
	}
	if s.Cards[a].Visibility != Hidden || s.Cards[b].Visibility != Hidden {
		t.Error("mismatched cards should be hidden after the revert delay")
	}
	if n := h.rec.count(isHidden); n != 1 {
		t.Errorf("CardsHiddenEvent emitted %d times, want 1", n)
	}
}

func TestRevertWaitsForDelay(t *testing.T) {
	h := newHarness(t, testCatalog(t, [2]int{3, 10}), 6)
	//nolint:errcheck // Level 1 is always open
	h.ctrl.Start(1)

	a, b := mismatchedPair(t, h.ctrl.State())
	h.mustSelect(t, a)
	h.mustSelect(t, b)

	h.sched.Advance(testDelay - 1)
	if s := h.ctrl.State(); !s.InputLocked || s.Cards[a].Visibility != Revealed {
		t.Fatal("revert fired before the delay elapsed")
	}
	h.sched.Advance(1)
	if s := h.ctrl.State(); s.InputLocked || s.Cards[a].Visibility != Hidden {
		t.Fatal("revert did not fire once the delay elapsed")
	}
}

func TestStaleRevertAfterRetryIsIgnored(t *testing.T) {
	h := newHarness(t, testCatalog(t, [2]int{3, 10}), 7)
	//nolint:errcheck // Level 1 is always open
	h.ctrl.Start(1)
	firstGen := h.ctrl.State().Generation

	a, b := mismatchedPair(t, h.ctrl.State())
	h.mustSelect(t, a)
	h.mustSelect(t, b)

	if err := h.ctrl.Retry(); err != nil {
		t.Fatalf("Retry failed: %v", err)
	}
	fresh := h.ctrl.State()
	if fresh.Generation <= firstGen {
		t.Fatalf("Generation = %d, want > %d", fresh.Generation, firstGen)
	}

	// Reveal one card of the new round, then let the old revert fire
	h.mustSelect(t, a)
	h.settle()

	s := h.ctrl.State()
	if n := h.rec.count(isHidden); n != 0 {
		t.Errorf("stale revert emitted %d CardsHiddenEvent", n)
	}
	if s.Cards[a].Visibility != Revealed || len(s.Selected) != 1 {
		t.Errorf("stale revert mutated the new round: card=%s selected=%v", s.Cards[a].Visibility, s.Selected)
	}
	if s.MovesUsed != 0 {
		t.Errorf("MovesUsed = %d, want 0 for a retried round", s.MovesUsed)
	}
}

func TestWinOnLastBudgetedMove(t *testing.T) {
	h := newHarness(t, testCatalog(t, [2]int{2, 2}, [2]int{2, 2}), 8)
	//nolint:errcheck // Level 1 is always open
	h.ctrl.Start(1)

	for _, p := range orderedPairs(h.ctrl.State()) {
		h.mustSelect(t, p[0])
		h.mustSelect(t, p[1])
	}

	s := h.ctrl.State()
	if s.Outcome != Won {
		t.Errorf("Outcome = %s, want won on the move that exhausts the budget", s.Outcome)
	}
	if s.MovesRemaining != 0 {
		t.Errorf("MovesRemaining = %d, want 0", s.MovesRemaining)
	}
}

func TestLoseOnMatchThatLeavesPairsOpen(t *testing.T) {
	h := newHarness(t, testCatalog(t, [2]int{3, 1}), 9)
	//nolint:errcheck // Level 1 is always open
	h.ctrl.Start(1)

	p := orderedPairs(h.ctrl.State())[0]
	h.mustSelect(t, p[0])
	h.mustSelect(t, p[1])

	s := h.ctrl.State()
	if s.Outcome != Lost {
		t.Errorf("Outcome = %s, want lost with %d of 3 pairs and no moves left", s.Outcome, s.MatchedPairs)
	}
	if s.MatchedPairs != 1 {
		t.Errorf("MatchedPairs = %d, want 1", s.MatchedPairs)
	}
}

func TestFinalLevelDoesNotAdvanceProgress(t *testing.T) {
	cat := testCatalog(t, [2]int{2, 10}, [2]int{2, 10})
	h := newHarness(t, cat, 10)
	//nolint:errcheck // Memory backend never fails
	h.backend.SaveProgress(ProgressKey(""), 2)

	if err := h.ctrl.Start(2); err != nil {
		t.Fatalf("Start(2) failed: %v", err)
	}
	for _, p := range orderedPairs(h.ctrl.State()) {
		h.mustSelect(t, p[0])
		h.mustSelect(t, p[1])
	}

	if got := h.progress.Get(); got != 2 {
		t.Errorf("progress = %d after final level, want 2", got)
	}
	stored, _ := h.backend.LoadProgress(ProgressKey(""))
	if stored != 2 {
		t.Errorf("stored progress = %d, want 2", stored)
	}

	var final bool
	for _, e := range h.rec.events {
		if ev, ok := e.(RoundWonEvent); ok {
			final = ev.Final
		}
	}
	if !final {
		t.Error("RoundWonEvent.Final should be true for the last level")
	}

	mustErrorIs(t, h.ctrl.NextLevel(), ErrNoNextLevel)
}

func TestNextLevelAfterWin(t *testing.T) {
	h := newHarness(t, testCatalog(t, [2]int{2, 10}, [2]int{3, 10}), 11)
	//nolint:errcheck // Level 1 is always open
	h.ctrl.Start(1)

	mustErrorIs(t, h.ctrl.NextLevel(), ErrNoNextLevel)

	for _, p := range orderedPairs(h.ctrl.State()) {
		h.mustSelect(t, p[0])
		h.mustSelect(t, p[1])
	}
	if err := h.ctrl.NextLevel(); err != nil {
		t.Fatalf("NextLevel failed: %v", err)
	}

	s := h.ctrl.State()
	if s.Level.Ordinal != 2 || s.Outcome != InProgress || len(s.Cards) != 6 {
		t.Errorf("next round: level=%d outcome=%s cards=%d", s.Level.Ordinal, s.Outcome, len(s.Cards))
	}
}

func TestStartErrors(t *testing.T) {
	h := newHarness(t, testCatalog(t, [2]int{2, 10}, [2]int{3, 10}), 12)

	mustErrorIs(t, h.ctrl.Retry(), ErrNoRound)
	mustErrorIs(t, h.ctrl.NextLevel(), ErrNoRound)
	mustErrorIs(t, h.ctrl.SelectCard(0), ErrNoRound)
	mustErrorIs(t, h.ctrl.Start(3), ErrLevelNotFound)
	mustErrorIs(t, h.ctrl.Start(2), ErrLevelLocked)

	if h.ctrl.HasRound() {
		t.Error("failed starts should not deal a round")
	}

	//nolint:errcheck // Level 1 is always open
	h.ctrl.Start(1)
	mustErrorIs(t, h.ctrl.SelectCard(-1), ErrUnknownCard)
	mustErrorIs(t, h.ctrl.SelectCard(4), ErrUnknownCard)
}

func TestUnlimitedLevelNeverLoses(t *testing.T) {
	cat := testCatalog(t, [2]int{3, 0})
	h := newHarness(t, cat, 13)
	//nolint:errcheck // Level 1 is always open
	h.ctrl.Start(1)

	for i := 0; i < 50; i++ {
		a, b := mismatchedPair(t, h.ctrl.State())
		h.mustSelect(t, a)
		h.mustSelect(t, b)
		h.settle()
	}

	s := h.ctrl.State()
	if s.Outcome != InProgress {
		t.Fatalf("Outcome = %s after 50 mismatches, want in_progress", s.Outcome)
	}
	if s.MovesUsed != 50 || s.MovesRemaining != 0 {
		t.Errorf("MovesUsed = %d MovesRemaining = %d", s.MovesUsed, s.MovesRemaining)
	}

	for _, p := range orderedPairs(s) {
		h.mustSelect(t, p[0])
		h.mustSelect(t, p[1])
	}
	if h.ctrl.State().Outcome != Won {
		t.Error("unlimited level should still be winnable")
	}
}

func TestMatchEventOrder(t *testing.T) {
	h := newHarness(t, testCatalog(t, [2]int{3, 10}), 14)
	//nolint:errcheck // Level 1 is always open
	h.ctrl.Start(1)
	h.rec.events = nil

	p := orderedPairs(h.ctrl.State())[0]
	h.mustSelect(t, p[0])
	h.mustSelect(t, p[1])

	if len(h.rec.events) != 4 {
		t.Fatalf("got %d events, want 4: %#v", len(h.rec.events), h.rec.events)
	}
	if _, ok := h.rec.events[0].(CardRevealedEvent); !ok {
		t.Errorf("event 0 = %T, want CardRevealedEvent", h.rec.events[0])
	}
	if _, ok := h.rec.events[1].(CardRevealedEvent); !ok {
		t.Errorf("event 1 = %T, want CardRevealedEvent", h.rec.events[1])
	}
	moves, ok := h.rec.events[2].(MovesChangedEvent)
	if !ok || moves.Used != 1 || moves.Remaining != 9 || moves.Unlimited {
		t.Errorf("event 2 = %#v, want MovesChangedEvent{1, 9}", h.rec.events[2])
	}
	if m, ok := h.rec.events[3].(PairMatchedEvent); !ok || m.MatchedPairs != 1 {
		t.Errorf("event 3 = %#v, want PairMatchedEvent with 1 pair", h.rec.events[3])
	}
}

func TestStateReturnsCopy(t *testing.T) {
	h := newHarness(t, testCatalog(t, [2]int{2, 10}), 15)
	//nolint:errcheck // Level 1 is always open
	h.ctrl.Start(1)

	s := h.ctrl.State()
	s.Cards[0].Visibility = Matched
	if h.ctrl.State().Cards[0].Visibility != Hidden {
		t.Error("mutating State() result changed the controller")
	}
}

// TestRandomPlayInvariants plays random selections and checks the round
// invariants after every call.
func TestRandomPlayInvariants(t *testing.T) {
	for seed := int64(0); seed < 30; seed++ {
		cat := testCatalog(t, [2]int{4, 6}, [2]int{6, 0})
		h := newHarness(t, cat, seed)
		pick := rand.New(rand.NewSource(seed + 1000))
		//nolint:errcheck // Level 1 is always open
		h.ctrl.Start(1)

		for step := 0; step < 200 && !h.ctrl.State().Terminal(); step++ {
			s := h.ctrl.State()
			h.mustSelect(t, pick.Intn(len(s.Cards)))

			s = h.ctrl.State()
			if s.MatchedPairs < 0 || s.MatchedPairs > s.Level.PairCount {
				t.Fatalf("seed %d: MatchedPairs = %d", seed, s.MatchedPairs)
			}
			if s.MovesRemaining < 0 {
				t.Fatalf("seed %d: MovesRemaining = %d", seed, s.MovesRemaining)
			}
			if len(s.Selected) > 2 {
				t.Fatalf("seed %d: %d selected", seed, len(s.Selected))
			}
			if s.Terminal() && !s.InputLocked {
				t.Fatalf("seed %d: terminal round with unlocked input", seed)
			}

			h.settle()
			s = h.ctrl.State()
			if !s.Terminal() && (s.InputLocked || len(s.Selected) == 2) {
				t.Fatalf("seed %d: unresolved after settle: locked=%v selected=%v", seed, s.InputLocked, s.Selected)
			}
			if s.Terminal() && len(s.Selected) != 0 {
				t.Fatalf("seed %d: terminal round keeps selection %v", seed, s.Selected)
			}
		}
	}
}
