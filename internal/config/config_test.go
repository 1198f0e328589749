package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vovakirdan/chromatic-ant/internal/ant"
	"github.com/vovakirdan/chromatic-ant/internal/palette"
	"github.com/vovakirdan/chromatic-ant/internal/rules"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ant.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	return path
}

func TestEmbeddedMatchesDefaults(t *testing.T) {
	cfg, err := parse(defaultAntYAML)
	if err != nil {
		t.Fatalf("embedded yaml does not parse: %v", err)
	}
	want := DefaultAntConfig()
	want.Rules = []RuleConfig{}
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("embedded config = %+v, expected %+v", cfg, want)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("embedded config invalid: %v", err)
	}
}

func TestEngineConfig(t *testing.T) {
	got := DefaultAntConfig().EngineConfig()
	if got != ant.DefaultConfig() {
		t.Errorf("EngineConfig() = %+v, expected %+v", got, ant.DefaultConfig())
	}
}

func TestLoadCustomPathOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
grid:
  width: 20
scoring:
  target_coverage: 50
display:
  palette: ["#000000", "#111111", "#222222", "#333333"]
`)

	cfg, err := LoadAnt(path)
	if err != nil {
		t.Fatalf("LoadAnt() failed: %v", err)
	}
	if cfg.Grid.Width != 20 || cfg.Grid.Height != 50 {
		t.Errorf("grid = %+v, expected 20x50", cfg.Grid)
	}
	if cfg.Scoring.TargetCoverage != 50 || cfg.Scoring.PointsNewVisit != 10 {
		t.Errorf("scoring = %+v", cfg.Scoring)
	}
	if got := cfg.Palette().Hex()[3]; got != "#333333" {
		t.Errorf("palette[3] = %s, expected #333333", got)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := LoadAnt(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AntConfig)
	}{
		{"zero width", func(c *AntConfig) { c.Grid.Width = 0 }},
		{"negative height", func(c *AntConfig) { c.Grid.Height = -1 }},
		{"zero target", func(c *AntConfig) { c.Scoring.TargetCoverage = 0 }},
		{"target over 100", func(c *AntConfig) { c.Scoring.TargetCoverage = 100.5 }},
		{"negative points", func(c *AntConfig) { c.Scoring.PointsRevisit = -1 }},
		{"speed over max", func(c *AntConfig) { c.Playback.Speed = 101 }},
		{"short palette", func(c *AntConfig) { c.Display.Palette = []string{"#000000"} }},
		{"bad ant color", func(c *AntConfig) { c.Display.AntColor = "red" }},
		{"bad rule", func(c *AntConfig) {
			c.Rules = []RuleConfig{{Name: "x", Sequence: "RLR"}}
		}},
	}

	if err := DefaultAntConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultAntConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}

	full := DefaultAntConfig()
	full.Scoring.TargetCoverage = 100
	if err := full.Validate(); err != nil {
		t.Errorf("target 100 should be valid: %v", err)
	}
}

func TestRegisterRules(t *testing.T) {
	cfg := DefaultAntConfig()
	cfg.Rules = []RuleConfig{{Name: "Zigzag (RRLL)", Description: "Diagonal highways", Sequence: "rr-ll"}}

	if err := cfg.RegisterRules(); err != nil {
		t.Fatalf("RegisterRules() failed: %v", err)
	}
	r, err := rules.Lookup("Zigzag (RRLL)")
	if err != nil {
		t.Fatalf("Lookup() failed: %v", err)
	}
	if r.SequenceString() != "R-R-L-L" {
		t.Errorf("sequence = %s, expected R-R-L-L", r.SequenceString())
	}

	// Registering the same name again is an error
	if err := cfg.RegisterRules(); !errors.Is(err, rules.ErrInvalidRule) {
		t.Errorf("expected ErrInvalidRule for duplicate, got %v", err)
	}
}

func TestDefaultRule(t *testing.T) {
	cfg := DefaultAntConfig()
	cfg.Rule = "boxer"
	r, err := cfg.DefaultRule()
	if err != nil || r.Name != rules.Boxer.Name {
		t.Errorf("DefaultRule() = %q, %v", r.Name, err)
	}

	cfg.Rule = "missing"
	if _, err := cfg.DefaultRule(); !errors.Is(err, rules.ErrUnknownRule) {
		t.Errorf("expected ErrUnknownRule, got %v", err)
	}
}

func TestAntColor(t *testing.T) {
	cfg := DefaultAntConfig()
	if cfg.AntColor() != palette.AntColor {
		t.Error("expected default ant color")
	}
	cfg.Display.AntColor = "#00ff00"
	if cfg.AntColor().Hex() != "#00ff00" {
		t.Errorf("AntColor() = %s", cfg.AntColor().Hex())
	}
}
