package pairs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-pairs/internal/core"
)

const testConfigYAML = `
revert_delay_ms: 100
symbols:
  - { id: a, glyph: "A" }
  - { id: b, glyph: "B" }
  - { id: c, glyph: "C" }
  - { id: d, glyph: "D" }
levels:
  - { name: "Tiny", pairs: 2, moves: 4, columns: 2 }
  - { name: "Small", pairs: 3, moves: 6, columns: 3 }
classic:
  pairs: 2
  columns: 2
`

// useTestConfig points the game at a small config for the duration of the test.
func useTestConfig(t *testing.T) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pairs.yaml")
	if err := os.WriteFile(path, []byte(testConfigYAML), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	SetConfigPath(path)
	t.Cleanup(func() {
		SetConfigPath("")
		SetStartLevel(0)
	})
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 10, Seed: 1}
}

func newTestGame(t *testing.T, g *Game, backend core.ProgressBackend) *Game {
	t.Helper()
	useTestConfig(t)
	g.SetLogger(quietLogger())
	if backend != nil {
		g.AttachProgress(backend, "tester")
	}
	g.Reset(testRuntime())
	return g
}

func step(g *Game, actions ...core.Action) core.StepResult {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return g.Step(in)
}

// flip moves the cursor onto card id and selects it.
func flip(g *Game, id int) {
	g.cursor = id
	step(g, core.ActionConfirm)
}

func TestGameRegistration(t *testing.T) {
	if New().ID() != "pairs" || NewClassic().ID() != "pairs_classic" {
		t.Error("unexpected game ids")
	}
	if New().Title() != "Pairs" || NewClassic().Title() != "Pairs (Classic)" {
		t.Error("unexpected titles")
	}
}

func TestGameResetStartsAtFrontier(t *testing.T) {
	g := newTestGame(t, New(), NewMemoryBackend())

	snap := g.Snapshot()
	if snap.Level != 1 || snap.Pairs != 2 || snap.MovesRemaining != 4 {
		t.Errorf("snapshot = %+v, want level 1 with 2 pairs and 4 moves", snap)
	}
	if len(snap.Cards) != 4 {
		t.Errorf("cards = %d, want 4", len(snap.Cards))
	}
	if snap.State != StatePlaying {
		t.Errorf("State = %s, want playing", snap.State)
	}
}

func TestGameCursorMovement(t *testing.T) {
	g := newTestGame(t, New(), nil)

	moves := []struct {
		action core.Action
		want   int
	}{
		{core.ActionRight, 1},
		{core.ActionRight, 1}, // Right edge
		{core.ActionDown, 3},
		{core.ActionDown, 3}, // Bottom edge
		{core.ActionLeft, 2},
		{core.ActionLeft, 2}, // Left edge
		{core.ActionUp, 0},
		{core.ActionUp, 0}, // Top edge
	}

	for i, m := range moves {
		step(g, m.action)
		if g.cursor != m.want {
			t.Fatalf("move %d (%s): cursor = %d, want %d", i, m.action, g.cursor, m.want)
		}
	}
}

func TestGameConfirmSelectsCardUnderCursor(t *testing.T) {
	g := newTestGame(t, New(), nil)

	step(g, core.ActionRight)
	step(g, core.ActionConfirm)

	snap := g.Snapshot()
	if len(snap.Selected) != 1 || snap.Selected[0] != 1 {
		t.Errorf("Selected = %v, want [1]", snap.Selected)
	}
	if snap.Cards[1].Visibility != Revealed {
		t.Errorf("card 1 is %s, want revealed", snap.Cards[1].Visibility)
	}
}

func TestGameMismatchRevertsOnTick(t *testing.T) {
	g := newTestGame(t, New(), nil)

	a, b := mismatchedPair(t, g.Controller().State())
	flip(g, a)
	flip(g, b)

	snap := g.Snapshot()
	if snap.State != StateRevealing || snap.PendingReverts != 1 {
		t.Fatalf("after mismatch: state=%s pending=%d", snap.State, snap.PendingReverts)
	}

	// One tick at 10 TPS covers the 100ms revert delay
	step(g)

	snap = g.Snapshot()
	if snap.State != StatePlaying || snap.PendingReverts != 0 {
		t.Errorf("after tick: state=%s pending=%d", snap.State, snap.PendingReverts)
	}
	if snap.Cards[a].Visibility != Hidden || snap.Cards[b].Visibility != Hidden {
		t.Error("mismatched cards should flip back")
	}
	if snap.MovesUsed != 1 || snap.MovesRemaining != 3 {
		t.Errorf("moves used=%d remaining=%d, want 1 and 3", snap.MovesUsed, snap.MovesRemaining)
	}
}

func TestGameWinUnlocksAndReportsRound(t *testing.T) {
	backend := NewMemoryBackend()
	g := newTestGame(t, New(), backend)

	if _, ok := g.LastRound(); ok {
		t.Fatal("LastRound should be empty while playing")
	}

	for _, p := range orderedPairs(g.Controller().State()) {
		flip(g, p[0])
		flip(g, p[1])
	}

	if !g.State().GameOver {
		t.Fatal("expected game over after clearing the board")
	}
	if g.State().Score != 2 {
		t.Errorf("Score = %d, want 2 moves", g.State().Score)
	}

	res, ok := g.LastRound()
	if !ok {
		t.Fatal("LastRound should report the won round")
	}
	if !res.Won || res.Level != 1 || res.Moves != 2 || res.Pairs != 2 || res.Profile != "tester" {
		t.Errorf("LastRound = %+v", res)
	}
	if res.RoundID == "" {
		t.Error("round id missing")
	}

	if v, _ := backend.LoadProgress(ProgressKey("tester")); v != 2 {
		t.Errorf("stored progress = %d, want 2", v)
	}

	step(g, core.ActionNext)
	snap := g.Snapshot()
	if snap.Level != 2 || snap.State != StatePlaying {
		t.Errorf("after next: level=%d state=%s", snap.Level, snap.State)
	}
	if _, ok := g.LastRound(); ok {
		t.Error("LastRound should reset when a new round starts")
	}
}

func TestGameLoseAndRetry(t *testing.T) {
	g := newTestGame(t, New(), nil)

	for i := 0; i < 4; i++ {
		a, b := mismatchedPair(t, g.Controller().State())
		flip(g, a)
		flip(g, b)
		step(g)
	}

	snap := g.Snapshot()
	if snap.State != StateLost {
		t.Fatalf("State = %s, want lost", snap.State)
	}
	res, ok := g.LastRound()
	if !ok || res.Won || res.Moves != 4 {
		t.Errorf("LastRound = %+v, %v", res, ok)
	}

	// Flipping after a loss does nothing
	flip(g, 0)
	if g.Snapshot().MovesUsed != 4 {
		t.Error("moves changed after the round was lost")
	}

	step(g, core.ActionRestart)
	snap = g.Snapshot()
	if snap.State != StatePlaying || snap.MovesUsed != 0 || snap.Level != 1 {
		t.Errorf("after retry: %+v", snap)
	}
}

func TestGameStartLevelRespectsLocks(t *testing.T) {
	t.Run("locked", func(t *testing.T) {
		useTestConfig(t)
		SetStartLevel(2)
		g := newTestGame(t, New(), NewMemoryBackend())

		if lvl := g.Snapshot().Level; lvl != 1 {
			t.Errorf("locked start level: got level %d, want 1", lvl)
		}
		if g.status == "" {
			t.Error("expected a status message for the locked level")
		}
	})

	t.Run("unlocked", func(t *testing.T) {
		useTestConfig(t)
		backend := NewMemoryBackend()
		//nolint:errcheck // Memory backend never fails
		backend.SaveProgress(ProgressKey("tester"), 2)
		SetStartLevel(2)
		g := newTestGame(t, New(), backend)

		if lvl := g.Snapshot().Level; lvl != 2 {
			t.Errorf("start level: got level %d, want 2", lvl)
		}
		if GetStartLevel() != 0 {
			t.Error("start level should be consumed by Reset")
		}
	})
}

func TestGamePause(t *testing.T) {
	g := newTestGame(t, New(), nil)

	step(g, core.ActionPause)
	if !g.State().Paused || g.Snapshot().State != StatePaused {
		t.Fatal("expected paused state")
	}

	step(g, core.ActionConfirm)
	if len(g.Snapshot().Selected) != 0 {
		t.Error("selection should be ignored while paused")
	}

	step(g, core.ActionPause)
	if g.State().Paused {
		t.Error("expected unpaused state")
	}
}

func TestGameTooSmall(t *testing.T) {
	useTestConfig(t)
	g := New()
	g.SetLogger(quietLogger())
	cfg := testRuntime()
	cfg.ScreenW = 8
	g.Reset(cfg)

	if g.Snapshot().State != StatePausedSmall {
		t.Fatalf("State = %s, want paused_small_window", g.Snapshot().State)
	}
	step(g, core.ActionConfirm)
	if len(g.Snapshot().Selected) != 0 {
		t.Error("input should be ignored while the window is too small")
	}

	g.Resize(80, 24)
	if g.Snapshot().State != StatePlaying {
		t.Errorf("after resize: State = %s, want playing", g.Snapshot().State)
	}
}

func TestClassicGameNeverLoses(t *testing.T) {
	g := newTestGame(t, NewClassic(), nil)

	for i := 0; i < 20; i++ {
		a, b := mismatchedPair(t, g.Controller().State())
		flip(g, a)
		flip(g, b)
		step(g)
	}
	if g.State().GameOver {
		t.Fatal("classic mode ended without clearing the board")
	}

	for _, p := range orderedPairs(g.Controller().State()) {
		flip(g, p[0])
		flip(g, p[1])
	}

	res, ok := g.LastRound()
	if !ok || !res.Won || res.Level != 0 || res.Moves != 22 {
		t.Errorf("LastRound = %+v, %v; want classic win in 22 moves", res, ok)
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(t, New(), nil)
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"Level 1/2", "Tiny", "Moves: 0   Left: 4   Pairs: 0/2", "░"} {
		if !strings.Contains(out, want) {
			t.Errorf("render output missing %q", want)
		}
	}

	for _, p := range orderedPairs(g.Controller().State()) {
		flip(g, p[0])
		flip(g, p[1])
	}
	g.Render(screen)
	if !strings.Contains(screen.String(), "LEVEL CLEARED!") {
		t.Error("render output missing win overlay")
	}
}
