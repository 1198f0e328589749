package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/chromatic-ant/internal/palette"
)

// AppDir is the per-user directory under the home directory.
const AppDir = ".chromatic-ant"

// LoadAnt loads the session configuration.
// Search order: customPath -> ~/.chromatic-ant/configs/ant.yaml -> ./configs/ant.yaml -> embedded default
//
// Files are decoded over the defaults, so a file only needs the keys it
// changes. The result is validated.
func LoadAnt(customPath string) (AntConfig, error) {
	cfg, err := parse(defaultAntYAML)
	if err != nil {
		cfg = DefaultAntConfig() // Fallback to hardcoded if embed fails
	}

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{UserPath("configs", "ant.yaml"), filepath.Join("configs", "ant.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := cfg
		if err := yaml.Unmarshal(data, &candidate); err == nil {
			return candidate, candidate.Validate()
		}
	}

	return cfg, cfg.Validate()
}

func parse(data []byte) (AntConfig, error) {
	var cfg AntConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// UserPath joins elem under ~/.chromatic-ant, or returns empty if home is
// unavailable.
func UserPath(elem ...string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(append([]string{home, AppDir}, elem...)...)
}

// DefaultDBPath is where run history and the high score live.
func DefaultDBPath() string {
	return filepath.Join("~", AppDir, "ant.db")
}

// ExportDir is where saved images go. Falls back to the working directory.
func ExportDir() string {
	if dir := UserPath("exports"); dir != "" {
		return dir
	}
	return "."
}

// AntColor returns the configured ant color, or the default one.
func (c AntConfig) AntColor() colorful.Color {
	if c.Display.AntColor == "" {
		return palette.AntColor
	}
	col, err := palette.ParseColor(c.Display.AntColor)
	if err != nil {
		return palette.AntColor
	}
	return col
}
