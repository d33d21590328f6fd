package config

import (
	_ "embed"
)

//go:embed defaults/blockblast.yaml
var defaultBlockBlastYAML []byte

// Grid size limits. Column labels run A..Z.
const (
	MinGridSize = 3
	MaxGridSize = 26
)

// DefaultBlockBlastConfig returns the default Block Blast configuration.
// Pieces.Shapes is left empty so the engine's built-in catalog is used.
func DefaultBlockBlastConfig() BlockBlastConfig {
	return BlockBlastConfig{
		Board: BoardConfig{
			GridSize:     10,
			MiniGridSize: 8,
		},
		Pieces: PiecesConfig{
			Palette: []string{"pink", "bright_blue", "green", "orange", "magenta", "cyan", "yellow"},
		},
		Animation: AnimationConfig{
			ClearFlashMS: 400,
		},
		Hints: HintsConfig{
			Enabled: true,
		},
	}
}
