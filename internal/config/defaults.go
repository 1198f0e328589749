package config

import (
	_ "embed"

	"github.com/vovakirdan/chromatic-ant/internal/ant"
	"github.com/vovakirdan/chromatic-ant/internal/palette"
	"github.com/vovakirdan/chromatic-ant/internal/render"
	"github.com/vovakirdan/chromatic-ant/internal/rules"
)

//go:embed defaults/ant.yaml
var defaultAntYAML []byte

// DefaultAntConfig returns the default configuration.
func DefaultAntConfig() AntConfig {
	e := ant.DefaultConfig()
	return AntConfig{
		Grid: GridConfig{
			Width:  e.Width,
			Height: e.Height,
		},
		Scoring: ScoringConfig{
			TargetCoverage: e.TargetCoverage,
			PointsNewVisit: e.PointsNewVisit,
			PointsRevisit:  e.PointsRevisit,
		},
		Playback: PlaybackConfig{
			Speed:       e.Speed,
			NotifyEvery: e.NotifyEvery,
		},
		Rule: rules.Classic.Name,
		Display: DisplayConfig{
			Palette:  palette.Default.Hex(),
			AntColor: palette.AntColor.Hex(),
			CellSize: render.DefaultCellSize,
		},
	}
}
