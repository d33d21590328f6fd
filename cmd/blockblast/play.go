package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-blast/internal/core"
	"github.com/vovakirdan/tui-blast/internal/games/blockblast"
	"github.com/vovakirdan/tui-blast/internal/platform/tui"
	"github.com/vovakirdan/tui-blast/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the specified mode (default: blockblast).

Controls:
  Arrows/WASD/HJKL  - Move cursor
  1/2/3, Tab        - Select piece
  Space/Enter       - Place piece
  U, Ctrl+Z         - Undo last placement
  R                 - Restart
  P                 - Pause
  ?                 - Help
  Esc/B, Q          - Quit

Examples:
  blockblast play
  blockblast play blockblast_mini
  blockblast play --seed 7
  blockblast play --config ./my-blockblast.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

// runtimeConfig builds the run settings from flags and the terminal size.
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

func runPlay(_ *cobra.Command, args []string) error {
	gameID := blockblast.IDClassic
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q, run 'blockblast list' to see available modes", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	logger.Debug("starting game", "mode", gameID, "seed", flagSeed, "fps", flagFPS)
	if err := tui.Run(game, store, runtimeConfig()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
