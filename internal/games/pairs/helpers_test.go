package pairs

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

// quietLogger discards all output.
func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

// testSymbols returns n distinct symbols.
func testSymbols(n int) []Symbol {
	symbols := make([]Symbol, n)
	for i := range symbols {
		symbols[i] = Symbol{ID: SymbolID(fmt.Sprintf("s%02d", i)), Glyph: rune('A' + i)}
	}
	return symbols
}

// testCatalog builds a catalog from (pairs, budget) tuples.
func testCatalog(t *testing.T, specs ...[2]int) *Catalog {
	t.Helper()
	levels := make([]LevelSpec, len(specs))
	maxPairs := 0
	for i, s := range specs {
		levels[i] = LevelSpec{
			Ordinal:    i + 1,
			Name:       fmt.Sprintf("Level %d", i+1),
			PairCount:  s[0],
			MoveBudget: s[1],
			LayoutHint: 4,
		}
		maxPairs = max(maxPairs, s[0])
	}
	cat, err := NewCatalog(levels, testSymbols(maxPairs+2))
	if err != nil {
		t.Fatalf("NewCatalog failed: %v", err)
	}
	return cat
}

// recorder collects controller events.
type recorder struct {
	events []Event
}

func (r *recorder) observe(e Event) {
	r.events = append(r.events, e)
}

func (r *recorder) count(match func(Event) bool) int {
	n := 0
	for _, e := range r.events {
		if match(e) {
			n++
		}
	}
	return n
}

func isHidden(e Event) bool {
	_, ok := e.(CardsHiddenEvent)
	return ok
}

// harness wires a controller to a tick scheduler and an in-memory progress store.
type harness struct {
	ctrl     *Controller
	sched    *TickScheduler
	backend  *MemoryBackend
	progress *Progress
	rec      *recorder
}

const testDelay = 500 * time.Millisecond

func newHarness(t *testing.T, cat *Catalog, seed int64) *harness {
	t.Helper()
	h := &harness{
		sched:   NewTickScheduler(),
		backend: NewMemoryBackend(),
		rec:     &recorder{},
	}
	h.progress = NewProgress(h.backend, "", cat.MaxOrdinal(), quietLogger())
	h.ctrl = NewController(cat, Options{
		Progress:    h.progress,
		Scheduler:   h.sched,
		RevertDelay: testDelay,
		Rand:        rand.New(rand.NewSource(seed)),
		Logger:      quietLogger(),
	})
	h.ctrl.Subscribe(h.rec.observe)
	return h
}

// settle fires any pending revert.
func (h *harness) settle() {
	h.sched.Advance(testDelay)
}

func (h *harness) mustSelect(t *testing.T, id int) {
	t.Helper()
	if err := h.ctrl.SelectCard(id); err != nil {
		t.Fatalf("SelectCard(%d) failed: %v", id, err)
	}
}

// pairsOf groups card ids by symbol.
func pairsOf(s RoundState) map[SymbolID][]int {
	groups := make(map[SymbolID][]int)
	for _, c := range s.Cards {
		groups[c.Symbol] = append(groups[c.Symbol], c.ID)
	}
	return groups
}

// orderedPairs returns the card id pairs in order of first appearance.
func orderedPairs(s RoundState) [][2]int {
	groups := pairsOf(s)
	seen := make(map[SymbolID]bool)
	var out [][2]int
	for _, c := range s.Cards {
		if seen[c.Symbol] {
			continue
		}
		seen[c.Symbol] = true
		ids := groups[c.Symbol]
		out = append(out, [2]int{ids[0], ids[1]})
	}
	return out
}

// mismatchedPair returns two hidden cards with different symbols.
func mismatchedPair(t *testing.T, s RoundState) (int, int) {
	t.Helper()
	for _, a := range s.Cards {
		if a.Visibility != Hidden {
			continue
		}
		for _, b := range s.Cards {
			if b.Visibility == Hidden && b.Symbol != a.Symbol {
				return a.ID, b.ID
			}
		}
	}
	t.Fatal("no mismatched hidden pair on board")
	return -1, -1
}

func mustErrorIs(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("error = %v, want %v", err, target)
	}
}
