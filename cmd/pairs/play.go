package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pairs/internal/core"
	"github.com/vovakirdan/tui-pairs/internal/platform/tui"
	"github.com/vovakirdan/tui-pairs/internal/registry"
	"github.com/vovakirdan/tui-pairs/internal/storage"
)

var flagLevel int

var playCmd = &cobra.Command{
	Use:   "play [levels|classic]",
	Short: "Play a game",
	Long: `Start playing. Level mode (the default) resumes at the highest
unlocked level unless --level picks an unlocked one. Classic mode deals a
single board with unlimited moves.

Controls:
  Arrows/WASD/hjkl  - Move the cursor
  Enter/Space       - Flip the card under the cursor
  N                 - Next level (after clearing one)
  R                 - Retry the level / deal a new board
  P                 - Pause
  B/Esc             - Back
  Ctrl+S            - Screenshot
  Q/Ctrl+C          - Quit

Difficulty options scale the move budget of every level:
  easy   - 1.5x moves
  normal - moves as configured
  hard   - 0.75x moves, never fewer than the number of pairs

Examples:
  pairs play
  pairs play --level 4
  pairs play classic
  pairs play --difficulty hard --profile alice`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Start on this level (must be unlocked)")
}

// gameIDForMode maps a mode argument to a registered game id.
func gameIDForMode(mode string) (string, error) {
	switch mode {
	case "", "levels", "pairs":
		return "pairs", nil
	case "classic", "pairs_classic":
		return "pairs_classic", nil
	}
	return "", fmt.Errorf("unknown mode %q (want levels or classic)", mode)
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the database, or returns nil with a warning so play can
// continue with in-memory progress.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database, progress will not be saved: %v\n", err)
		log.Warn("database unavailable", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, args []string) error {
	mode := ""
	if len(args) > 0 {
		mode = args[0]
	}
	gameID, err := gameIDForMode(mode)
	if err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}
	if ls, ok := game.(registry.LevelSelectable); ok && flagLevel > 0 {
		ls.SelectLevel(flagLevel)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if _, err := tui.Run(game, store, runtimeConfig(), flagProfile); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
