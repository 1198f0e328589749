// Package config provides YAML-based configuration loading for the ant
// engine, its display and any extra rules.
package config

import (
	"fmt"

	"github.com/vovakirdan/chromatic-ant/internal/ant"
	"github.com/vovakirdan/chromatic-ant/internal/palette"
	"github.com/vovakirdan/chromatic-ant/internal/rules"
)

// AntConfig contains all configuration for a session.
type AntConfig struct {
	Grid     GridConfig     `yaml:"grid"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	Playback PlaybackConfig `yaml:"playback"`
	Rule     string         `yaml:"rule"`
	Display  DisplayConfig  `yaml:"display"`
	Rules    []RuleConfig   `yaml:"rules"`
}

// GridConfig defines the torus dimensions.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ScoringConfig defines points and the completion threshold.
type ScoringConfig struct {
	TargetCoverage float64 `yaml:"target_coverage"` // Percent, (0, 100]
	PointsNewVisit int     `yaml:"points_new_visit"`
	PointsRevisit  int     `yaml:"points_revisit"`
}

// PlaybackConfig defines the initial scheduler speed and stats cadence.
type PlaybackConfig struct {
	Speed       float64 `yaml:"speed"`
	NotifyEvery int     `yaml:"notify_every"`
}

// DisplayConfig defines colors and export cell size.
type DisplayConfig struct {
	Palette  []string `yaml:"palette"`
	AntColor string   `yaml:"ant_color"`
	CellSize int      `yaml:"cell_size"`
}

// RuleConfig describes a user-defined rule.
type RuleConfig struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Sequence    string `yaml:"sequence"` // Four turns, e.g. "RRLL"
}

// Validate checks the configuration for values the engine cannot run with.
func (c AntConfig) Validate() error {
	if c.Grid.Width <= 0 || c.Grid.Height <= 0 {
		return fmt.Errorf("config: grid must be positive, got %dx%d", c.Grid.Width, c.Grid.Height)
	}
	if c.Scoring.TargetCoverage <= 0 || c.Scoring.TargetCoverage > 100 {
		return fmt.Errorf("config: target_coverage must be in (0, 100], got %g", c.Scoring.TargetCoverage)
	}
	if c.Scoring.PointsNewVisit < 0 || c.Scoring.PointsRevisit < 0 {
		return fmt.Errorf("config: points must not be negative")
	}
	if c.Playback.Speed < ant.MinSpeed || c.Playback.Speed > ant.MaxSpeed {
		return fmt.Errorf("config: speed must be in [%g, %g], got %g", ant.MinSpeed, ant.MaxSpeed, c.Playback.Speed)
	}
	if _, err := palette.Parse(c.Display.Palette); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Display.AntColor != "" {
		if _, err := palette.ParseColor(c.Display.AntColor); err != nil {
			return fmt.Errorf("config: ant_color: %w", err)
		}
	}
	for i, rc := range c.Rules {
		if _, err := rules.Parse(rc.Name, rc.Description, rc.Sequence); err != nil {
			return fmt.Errorf("config: rules[%d]: %w", i, err)
		}
	}
	return nil
}

// EngineConfig converts the configuration into engine parameters.
func (c AntConfig) EngineConfig() ant.Config {
	return ant.Config{
		Width:          c.Grid.Width,
		Height:         c.Grid.Height,
		TargetCoverage: c.Scoring.TargetCoverage,
		PointsNewVisit: c.Scoring.PointsNewVisit,
		PointsRevisit:  c.Scoring.PointsRevisit,
		Speed:          c.Playback.Speed,
		NotifyEvery:    c.Playback.NotifyEvery,
	}
}

// Palette returns the configured palette, or the default one if it does
// not parse.
func (c AntConfig) Palette() palette.Palette {
	p, err := palette.Parse(c.Display.Palette)
	if err != nil {
		return palette.Default
	}
	return p
}

// RegisterRules adds the custom rules to the registry.
func (c AntConfig) RegisterRules() error {
	for _, rc := range c.Rules {
		r, err := rules.Parse(rc.Name, rc.Description, rc.Sequence)
		if err != nil {
			return fmt.Errorf("config: rule %q: %w", rc.Name, err)
		}
		if err := rules.Register(r); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	return nil
}

// DefaultRule resolves the configured rule, falling back to the registry
// default when none is set.
func (c AntConfig) DefaultRule() (rules.Rule, error) {
	if c.Rule == "" {
		return rules.Default(), nil
	}
	return rules.Resolve(c.Rule)
}
