package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blast/internal/config"
)

var shapesCmd = &cobra.Command{
	Use:   "shapes",
	Short: "Print the active piece catalog",
	Long: `Prints every shape the dealer draws from, as loaded from the
configuration search path (or --config), followed by the color palette.

Examples:
  blockblast shapes
  blockblast shapes --config ./my-blockblast.yaml`,
	Args: cobra.NoArgs,
	RunE: runShapes,
}

func runShapes(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadBlockBlast(flagConfig)
	if err != nil {
		return err
	}
	catalog, err := cfg.Catalog()
	if err != nil {
		return err
	}
	palette, err := cfg.Palette()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Shapes (%d):\n\n", len(catalog))
	for i, shape := range catalog {
		fmt.Fprintf(out, "  %d. %s (%d cells)\n", i+1, shape.Name, shape.Area())
		for _, row := range shape.Rows() {
			row = strings.NewReplacer("#", "█", ".", "·").Replace(row)
			fmt.Fprintf(out, "       %s\n", row)
		}
	}

	names := make([]string, len(palette))
	for i, c := range palette {
		names[i] = c.String()
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Palette: %s\n", strings.Join(names, ", "))
	fmt.Fprintf(out, "Board: %dx%d (mini %dx%d)\n",
		cfg.Board.GridSize, cfg.Board.GridSize, cfg.Board.MiniGridSize, cfg.Board.MiniGridSize)
	return nil
}
