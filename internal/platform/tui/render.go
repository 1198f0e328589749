package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/chromatic-ant/internal/ant"
	"github.com/vovakirdan/chromatic-ant/internal/palette"
)

// halfBlock draws the upper grid row in the foreground and the lower one in
// the background, so one terminal line holds two rows of cells.
const halfBlock = "▀"

var cursorColor = lipgloss.Color("#facc15")

// GridStyle controls how RenderGrid colors cells.
type GridStyle struct {
	Palette  palette.Palette
	AntColor colorful.Color
	ArtMode  bool // Hide the ant, leave inactive cells as backdrop

	ShowCursor       bool
	CursorX, CursorY int
}

// TerminalRows returns how many terminal lines a grid of height h takes.
func TerminalRows(h int) int {
	return (h + 1) / 2
}

// RenderGrid converts the grid to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderGrid(v ant.View, st GridStyle) string {
	w, h := v.Width(), v.Height()
	a := v.Ant()

	hex := make([]lipgloss.Color, palette.Size)
	for i := range hex {
		hex[i] = lipgloss.Color(st.Palette[i].Hex())
	}
	empty := lipgloss.Color(palette.EmptyColor.Hex())
	if st.ArtMode {
		empty = lipgloss.Color(palette.Backdrop.Hex())
	}
	antColor := lipgloss.Color(st.AntColor.Hex())

	colorAt := func(x, y int) lipgloss.Color {
		switch {
		case st.ShowCursor && x == st.CursorX && y == st.CursorY:
			return cursorColor
		case !st.ArtMode && x == a.X && y == a.Y:
			return antColor
		}
		if s := v.State(x, y); s != 0 {
			return hex[s]
		}
		return empty
	}

	type pair struct{ fg, bg lipgloss.Color }
	styles := make(map[pair]lipgloss.Style)
	styleFor := func(p pair) lipgloss.Style {
		if s, ok := styles[p]; ok {
			return s
		}
		s := lipgloss.NewStyle().Foreground(p.fg)
		if p.bg != "" {
			s = s.Background(p.bg)
		}
		styles[p] = s
		return s
	}

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(w*TerminalRows(h)*4 + h)

	for ty := range TerminalRows(h) {
		if ty > 0 {
			sb.WriteRune('\n')
		}
		top, bottom := ty*2, ty*2+1

		cellPair := func(x int) pair {
			p := pair{fg: colorAt(x, top)}
			if bottom < h {
				p.bg = colorAt(x, bottom)
			}
			return p
		}

		// Group consecutive cells with the same colors for efficiency
		x := 0
		for x < w {
			start := cellPair(x)
			n := 0
			for x < w && cellPair(x) == start {
				n++
				x++
			}
			sb.WriteString(styleFor(start).Render(strings.Repeat(halfBlock, n)))
		}
	}
	return sb.String()
}
