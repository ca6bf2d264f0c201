package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pairs/internal/platform/tui"
	"github.com/vovakirdan/tui-pairs/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the level picker menu",
	Long: `Start in interactive menu mode.

Continue resumes at the highest unlocked level, Select Level lists every
level with its lock state and best result, Classic deals a free board and
History shows finished rounds. After a game you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - History
  Esc/B        - Back
  Q            - Quit

Examples:
  pairs menu
  pairs menu --profile alice
  pairs menu --db ./pairs.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(store, cfg, flagProfile)
		if err != nil {
			return fmt.Errorf("menu: %w", err)
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsHistory {
			goBack, histErr := tui.RunHistory(store, flagProfile, cfg.ScreenW, cfg.ScreenH)
			if histErr != nil {
				return fmt.Errorf("history: %w", histErr)
			}
			if goBack {
				continue
			}
			return nil
		}

		sel := menuResult.Selection
		game, err := registry.Create(sel.GameID)
		if err != nil {
			return fmt.Errorf("creating game: %w", err)
		}
		if ls, ok := game.(registry.LevelSelectable); ok && sel.Level > 0 {
			ls.SelectLevel(sel.Level)
		}

		log.Info("starting game", "game", sel.GameID, "level", sel.Level, "profile", flagProfile)
		backToMenu, err := tui.Run(game, store, cfg, flagProfile)
		if err != nil {
			return fmt.Errorf("running game: %w", err)
		}
		if !backToMenu {
			return nil
		}
	}
}
