package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pairs/internal/core"
	"github.com/vovakirdan/tui-pairs/internal/games/pairs"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Show the level catalog",
	Long: `List every level with its pair count and move budget (after the
--difficulty preset), whether the profile has unlocked it, and the fewest
moves it was cleared in.

Examples:
  pairs levels
  pairs levels --difficulty hard
  pairs levels --profile alice --config ./my-pairs.yaml`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func runLevels(_ *cobra.Command, _ []string) error {
	cat, err := pairs.LoadCatalog(pairs.GetConfigPath(), pairs.GetDifficultyPreset())
	if err != nil {
		return fmt.Errorf("loading levels: %w", err)
	}

	unlocked := 1
	best := map[int]int{}
	store := openStore()
	if store != nil {
		defer store.Close()
		if v, loadErr := store.LoadProgress(pairs.ProgressKey(flagProfile)); loadErr == nil {
			unlocked = v
		}
		if b, bestErr := store.BestMoves("pairs", flagProfile); bestErr == nil {
			best = b
		}
	}
	unlocked = core.Clamp(unlocked, 1, cat.MaxOrdinal())

	fmt.Printf("Levels (%s difficulty, profile %s)\n", pairs.GetDifficultyPreset(), flagProfile)
	fmt.Println()
	fmt.Printf("  %-3s  %-16s  %5s  %5s  %-8s  %s\n", "#", "Name", "Pairs", "Moves", "Status", "Best")
	fmt.Printf("  %-3s  %-16s  %5s  %5s  %-8s  %s\n", "-", "----", "-----", "-----", "------", "----")

	for _, l := range cat.Levels() {
		status := "open"
		if l.Ordinal > unlocked {
			status = "locked"
		} else if l.Ordinal == unlocked && l.Ordinal < cat.MaxOrdinal() {
			status = "current"
		}

		bestStr := "-"
		if b := best[l.Ordinal]; b > 0 {
			bestStr = fmt.Sprintf("%d", b)
		}

		fmt.Printf("  %-3d  %-16s  %5d  %5d  %-8s  %s\n",
			l.Ordinal, l.Name, l.PairCount, l.MoveBudget, status, bestStr)
	}

	return nil
}
