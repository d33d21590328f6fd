package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-blast/internal/blast"
	"github.com/vovakirdan/tui-blast/internal/core"
)

// ConfigFile is the file name looked up in every search location.
const ConfigFile = "blockblast.yaml"

// LoadBlockBlast loads Block Blast configuration.
// Search order: customPath -> ~/.blockblast/configs/blockblast.yaml -> ./configs/blockblast.yaml -> embedded default
// Keys missing from a file keep their default values. A broken custom file
// is an error; broken files in the implicit locations are skipped.
func LoadBlockBlast(customPath string) (BlockBlastConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BlockBlastConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return BlockBlastConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(ConfigFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", ConfigFile)); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultBlockBlastYAML)
	if err != nil {
		return DefaultBlockBlastConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse decodes data over the hardcoded defaults and validates the result.
func parse(data []byte) (BlockBlastConfig, error) {
	cfg := DefaultBlockBlastConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".blockblast", "configs", filename)
}

// Validate checks grid sizes, palette names and shape definitions.
func (c BlockBlastConfig) Validate() error {
	for _, g := range []struct {
		key  string
		size int
	}{
		{"board.grid_size", c.Board.GridSize},
		{"board.mini_grid_size", c.Board.MiniGridSize},
	} {
		if g.size < MinGridSize || g.size > MaxGridSize {
			return fmt.Errorf("config: %s must be between %d and %d, got %d", g.key, MinGridSize, MaxGridSize, g.size)
		}
	}
	if c.Animation.ClearFlashMS < 0 {
		return fmt.Errorf("config: animation.clear_flash_ms must not be negative")
	}
	if _, err := c.Palette(); err != nil {
		return err
	}
	if _, err := c.Catalog(); err != nil {
		return err
	}
	return nil
}

// Palette resolves the configured color names. An empty list selects the
// engine's default palette.
func (c BlockBlastConfig) Palette() ([]core.Color, error) {
	if len(c.Pieces.Palette) == 0 {
		return blast.DefaultPalette(), nil
	}
	out := make([]core.Color, 0, len(c.Pieces.Palette))
	for _, name := range c.Pieces.Palette {
		color, ok := core.ParseColor(name)
		if !ok {
			return nil, fmt.Errorf("config: unknown color %q in pieces.palette", name)
		}
		out = append(out, color)
	}
	return out, nil
}

// Catalog builds the shape catalog. An empty list selects the built-in set.
func (c BlockBlastConfig) Catalog() (blast.Catalog, error) {
	if len(c.Pieces.Shapes) == 0 {
		return blast.DefaultCatalog(), nil
	}
	cat := make(blast.Catalog, 0, len(c.Pieces.Shapes))
	for i, sc := range c.Pieces.Shapes {
		name := sc.Name
		if name == "" {
			name = fmt.Sprintf("shape%d", i+1)
		}
		s, err := blast.ParseShape(name, sc.Rows)
		if err != nil {
			return nil, fmt.Errorf("config: pieces.shapes[%d]: %w", i, err)
		}
		cat = append(cat, s)
	}
	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cat, nil
}
