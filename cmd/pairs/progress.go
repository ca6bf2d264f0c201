package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pairs/internal/games/pairs"
	"github.com/vovakirdan/tui-pairs/internal/storage"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show saved level progress",
	Long: `Show the highest unlocked level of every profile in the database.

Examples:
  pairs progress
  pairs progress reset
  pairs progress reset --profile alice`,
	Args: cobra.NoArgs,
	RunE: runProgress,
}

var progressResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset progress of the --profile profile to level 1",
	Args:  cobra.NoArgs,
	RunE:  runProgressReset,
}

func init() {
	progressCmd.AddCommand(progressResetCmd)
}

func runProgress(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	entries, err := store.AllProgress()
	if err != nil {
		return fmt.Errorf("reading progress: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("No progress saved yet. Every profile starts at level 1.")
		return nil
	}

	fmt.Println("Saved progress:")
	fmt.Println()
	fmt.Printf("  %-24s  %-8s  %s\n", "Key", "Unlocked", "Updated")
	fmt.Printf("  %-24s  %-8s  %s\n", "---", "--------", "-------")
	for _, e := range entries {
		fmt.Printf("  %-24s  %-8d  %s\n", e.Key, e.Value, e.UpdatedAt.Format("2006-01-02 15:04"))
	}

	return nil
}

func runProgressReset(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	key := pairs.ProgressKey(flagProfile)
	if err := store.ResetProgress(key); err != nil {
		return fmt.Errorf("resetting progress: %w", err)
	}

	fmt.Printf("Progress for profile %q reset to level 1.\n", flagProfile)
	return nil
}
