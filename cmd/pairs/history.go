package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pairs/internal/storage"
)

var (
	flagHistoryLimit int
	flagAllProfiles  bool
)

var historyCmd = &cobra.Command{
	Use:   "history [levels|classic]",
	Short: "Show finished rounds",
	Long: `Display per-level statistics and the most recent rounds of a mode.
By default only rounds of --profile are shown.

Examples:
  pairs history
  pairs history classic --limit 20
  pairs history --all-profiles
  pairs history clear classic`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear [levels|classic]",
	Short: "Delete the recorded rounds of a mode",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of recent rounds to show")
	historyCmd.Flags().BoolVar(&flagAllProfiles, "all-profiles", false, "Include every profile")
	historyCmd.AddCommand(historyClearCmd)
}

func modeArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

func runHistory(_ *cobra.Command, args []string) error {
	gameID, err := gameIDForMode(modeArg(args))
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	profile := flagProfile
	who := fmt.Sprintf("profile %s", profile)
	if flagAllProfiles {
		profile = ""
		who = "all profiles"
	}

	if gameID == "pairs" {
		stats, statsErr := store.LevelStats(gameID, profile)
		if statsErr != nil {
			return fmt.Errorf("reading level stats: %w", statsErr)
		}
		fmt.Printf("Level stats (%s)\n", who)
		fmt.Println()
		if len(stats) == 0 {
			fmt.Println("  No levels played yet.")
		} else {
			fmt.Printf("  %-5s  %6s  %4s  %4s  %4s  %6s\n", "Level", "Played", "Won", "Lost", "Best", "Avg")
			fmt.Printf("  %-5s  %6s  %4s  %4s  %4s  %6s\n", "-----", "------", "---", "----", "----", "---")
			for _, s := range stats {
				best := "-"
				if s.BestMoves > 0 {
					best = fmt.Sprintf("%d", s.BestMoves)
				}
				fmt.Printf("  %-5d  %6d  %4d  %4d  %4s  %6.1f\n", s.Level, s.Played, s.Won, s.Lost, best, s.AvgMoves)
			}
		}
		fmt.Println()
	}

	rounds, err := store.RecentRounds(gameID, profile, flagHistoryLimit)
	if err != nil {
		return fmt.Errorf("reading rounds: %w", err)
	}

	fmt.Printf("Recent rounds (%s, %s)\n", gameID, who)
	fmt.Println()
	if len(rounds) == 0 {
		fmt.Println("  No rounds recorded yet. Finish a board to start your history!")
		return nil
	}

	fmt.Printf("  %-5s  %-6s  %5s  %5s  %6s  %-12s  %s\n", "Level", "Result", "Moves", "Pairs", "Time", "Profile", "Date")
	fmt.Printf("  %-5s  %-6s  %5s  %5s  %6s  %-12s  %s\n", "-----", "------", "-----", "-----", "----", "-------", "----")
	for _, r := range rounds {
		level := "-"
		if r.Level > 0 {
			level = fmt.Sprintf("%d", r.Level)
		}
		dur := (time.Duration(r.DurationSecs) * time.Second).String()
		fmt.Printf("  %-5s  %-6s  %5d  %5d  %6s  %-12s  %s\n",
			level, r.Outcome, r.Moves, r.Pairs, dur, r.Profile, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	return nil
}

func runHistoryClear(_ *cobra.Command, args []string) error {
	gameID, err := gameIDForMode(modeArg(args))
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	if err := store.ClearRounds(gameID); err != nil {
		return fmt.Errorf("clearing rounds: %w", err)
	}

	fmt.Printf("Round history of %s cleared.\n", gameID)
	return nil
}
