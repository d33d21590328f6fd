package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blast/internal/registry"
	"github.com/vovakirdan/tui-blast/internal/storage"
)

var flagClearScores bool

var scoresCmd = &cobra.Command{
	Use:   "scores <mode>",
	Short: "Show high scores for a mode",
	Long: `Display the top 10 high scores for the specified mode.

Examples:
  blockblast scores blockblast
  blockblast scores blockblast_mini
  blockblast scores blockblast --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete all recorded scores for the mode")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := args[0]
	out := cmd.OutOrStdout()

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q, run 'blockblast list' to see available modes", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagClearScores {
		n, clearErr := store.ClearScores(gameID)
		if clearErr != nil {
			return clearErr
		}
		logger.Info("scores cleared", "mode", gameID, "removed", n)
		return nil
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "High Scores - %s\n\n", game.Title())

	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'blockblast play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-8s  %-6s  %-6s  %s\n", "Rank", "Score", "Lines", "Moves", "Date")
	fmt.Fprintf(out, "  %-4s  %-8s  %-6s  %-6s  %s\n", "----", "-----", "-----", "-----", "----")

	for i, entry := range scores {
		fmt.Fprintf(out, "  %-4d  %-8d  %-6d  %-6d  %s\n",
			i+1, entry.Score, entry.Lines, entry.Moves, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, statsErr := store.GetGameStats(gameID); statsErr == nil {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Best: %d  Games: %d  Lines cleared: %d\n",
			stats.HighScore, stats.GamesCount, stats.TotalLines)
	}
	return nil
}
