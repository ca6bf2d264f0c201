// pairs is a terminal memory game: flip two cards at a time and find every
// matching pair before the move budget runs out.
//
// Usage:
//
//	pairs list               - List available game modes
//	pairs play [mode]        - Play levels (default) or classic
//	pairs menu               - Start menu to pick a level interactively
//	pairs levels             - Show the level catalog and what is unlocked
//	pairs progress           - Show saved progress (progress reset to clear it)
//	pairs history [mode]     - Show finished rounds
//	pairs serve              - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30)
//	--seed <value>        - Set RNG seed for reproducible boards
//	--db <path>           - Set database path (default: ~/.pairs/pairs.db)
//	--profile <name>      - Progress profile (default: local)
//	--config <path>       - Custom pairs config YAML
//	--difficulty <preset> - Move budget preset: easy, normal, hard
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pairs/internal/config"
	"github.com/vovakirdan/tui-pairs/internal/games/pairs"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagProfile    string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

// logFile is closed by main after the command finishes.
var logFile *os.File

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pairs",
	Short: "Pairs - a card matching memory game for your terminal",
	Long: `Pairs is a memory game played in the terminal. Cards are dealt face
down; flip two at a time and find every matching pair. Each level gives a
move budget, and clearing a level unlocks the next one.

Available commands:
  list      - Show the game modes
  play      - Play directly
  menu      - Interactive menu with level picker and history
  levels    - Show the level catalog
  progress  - Show or reset saved progress
  history   - Show finished rounds
  serve     - Start SSH server for remote play

Examples:
  pairs play
  pairs play --level 3
  pairs play classic
  pairs menu --difficulty easy
  pairs serve --ssh :2222`,
	PersistentPreRunE: setup,
	SilenceUsage:      true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.pairs/pairs.db", "Path to progress and history database")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", pairs.DefaultProfile, "Progress profile name")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom pairs config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "normal", "Move budget preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (TUI commands discard logs otherwise)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup installs the default logger and the game-wide config selection.
func setup(cmd *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	// The alt screen owns the terminal, so TUI commands must not log to it.
	var out io.Writer = io.Discard
	if !isTUICommand(cmd) {
		out = os.Stderr
	}
	if flagLogFile != "" {
		f, openErr := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if openErr != nil {
			return fmt.Errorf("cannot open log file: %w", openErr)
		}
		logFile = f
		out = f
	}

	log.SetDefault(log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "pairs",
	}))

	if flagProfile == "" {
		flagProfile = pairs.DefaultProfile
	}
	pairs.SetConfigPath(flagConfig)
	pairs.SetDifficultyPreset(config.ParsePreset(flagDifficulty))
	return nil
}

// isTUICommand reports whether cmd takes over the terminal.
func isTUICommand(cmd *cobra.Command) bool {
	switch cmd {
	case playCmd, menuCmd:
		return true
	}
	return false
}
