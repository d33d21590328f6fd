// blockblast is a terminal block-placement puzzle: drop dealt pieces onto a
// grid and clear full rows and columns.
//
// Usage:
//
//	blockblast play [mode]      - Play a mode (blockblast or blockblast_mini)
//	blockblast menu             - Pick a mode interactively
//	blockblast list             - List available modes
//	blockblast shapes           - Print the active piece catalog
//	blockblast scores <mode>    - Show high scores for a mode
//	blockblast serve            - Start SSH server for remote play
//	blockblast web              - Start WebSocket server
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible dealing
//	--db <path>          - Set database path (default: ~/.blockblast/scores.db)
//	--config <path>      - Use a custom blockblast.yaml
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blast/internal/config"
	"github.com/vovakirdan/tui-blast/internal/games/blockblast"
	"github.com/vovakirdan/tui-blast/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "blockblast",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blockblast",
	Short: "Block Blast - a block-placement puzzle in your terminal",
	Long: `Block Blast deals three pieces at a time. Drop them onto the board;
every full row or column vanishes and scores. The game ends when none
of the dealt pieces fits anywhere.

Available commands:
  play     - Play a mode directly
  menu     - Interactive mode picker
  list     - Show all available modes
  shapes   - Print the active piece catalog
  scores   - View high scores
  serve    - Start SSH server for remote play
  web      - Start WebSocket server

Examples:
  blockblast play
  blockblast play blockblast_mini
  blockblast menu
  blockblast serve --ssh :2222
  blockblast web --addr :8080
  blockblast scores blockblast`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
		}
		logger.SetLevel(level)
		return useConfig(flagConfig)
	},
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom blockblast.yaml")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(shapesCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
}

// useConfig loads the game configuration once so a broken file fails every
// subcommand the same way, then hands the path to the game modes.
func useConfig(path string) error {
	if _, err := config.LoadBlockBlast(path); err != nil {
		return err
	}
	blockblast.SetConfigPath(path)
	return nil
}

// openStore opens the score database, continuing without one on failure.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
