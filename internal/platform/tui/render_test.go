package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/chromatic-ant/internal/ant"
	"github.com/vovakirdan/chromatic-ant/internal/palette"
	"github.com/vovakirdan/chromatic-ant/internal/rules"
)

func TestTerminalRows(t *testing.T) {
	tests := []struct{ h, want int }{
		{1, 1}, {2, 1}, {3, 2}, {50, 25}, {51, 26},
	}
	for _, tc := range tests {
		if got := TerminalRows(tc.h); got != tc.want {
			t.Errorf("TerminalRows(%d) = %d, expected %d", tc.h, got, tc.want)
		}
	}
}

func TestRenderGridShape(t *testing.T) {
	cfg := ant.DefaultConfig()
	cfg.Width, cfg.Height = 7, 5
	e := ant.New(cfg, rules.Classic, nil)
	for range 20 {
		e.Step()
	}

	for _, art := range []bool{false, true} {
		out := RenderGrid(e, GridStyle{
			Palette:  palette.Default,
			AntColor: palette.AntColor,
			ArtMode:  art,
		})
		lines := strings.Split(out, "\n")
		if len(lines) != 3 {
			t.Fatalf("art=%v: expected 3 lines, got %d", art, len(lines))
		}
		for i, line := range lines {
			if w := lipgloss.Width(line); w != 7 {
				t.Errorf("art=%v: line %d width = %d, expected 7", art, i, w)
			}
			if !strings.Contains(line, halfBlock) {
				t.Errorf("art=%v: line %d has no half blocks", art, i)
			}
		}
	}
}
