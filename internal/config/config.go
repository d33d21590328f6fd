// Package config provides YAML-based configuration loading for Block Blast.
package config

// BlockBlastConfig contains all configuration for the Block Blast game.
type BlockBlastConfig struct {
	Board     BoardConfig     `yaml:"board"`
	Pieces    PiecesConfig    `yaml:"pieces"`
	Animation AnimationConfig `yaml:"animation"`
	Hints     HintsConfig     `yaml:"hints"`
}

// BoardConfig defines the grid dimensions.
type BoardConfig struct {
	GridSize     int `yaml:"grid_size"`      // Side of the standard board
	MiniGridSize int `yaml:"mini_grid_size"` // Side of the compact board
}

// PiecesConfig defines what gets dealt.
type PiecesConfig struct {
	Palette []string      `yaml:"palette"` // Color names, see core.ParseColor
	Shapes  []ShapeConfig `yaml:"shapes"`  // Empty selects the built-in catalog
}

// ShapeConfig is one catalog entry drawn in a 3x3 frame, '#' for a block.
type ShapeConfig struct {
	Name string   `yaml:"name"`
	Rows []string `yaml:"rows"`
}

// AnimationConfig defines cosmetic timings.
type AnimationConfig struct {
	ClearFlashMS int `yaml:"clear_flash_ms"` // How long cleared cells flash
}

// HintsConfig toggles placement assistance.
type HintsConfig struct {
	Enabled bool `yaml:"enabled"` // Dim hand pieces that fit nowhere
}
