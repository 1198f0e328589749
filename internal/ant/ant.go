// Package ant implements the generalized Langton's ant engine: a four-state
// toroidal grid, a single ant, scoring, coverage tracking and the variable
// rate scheduler that decides how many steps run per frame.
//
// The package is UI-agnostic and deterministic. All mutation happens on the
// caller's goroutine; an Engine must not be shared between goroutines.
package ant

// States is the number of cell states. State 0 is background.
const States = 4

// Heading is one of four cyclic directions. Adding 1 turns right.
type Heading uint8

const (
	Up Heading = iota
	Right
	Down
	Left
)

// String returns the string representation of a heading.
func (h Heading) String() string {
	switch h {
	case Up:
		return "Up"
	case Right:
		return "Right"
	case Down:
		return "Down"
	case Left:
		return "Left"
	default:
		return "Unknown"
	}
}

// TurnRight returns the heading after a clockwise quarter turn.
func (h Heading) TurnRight() Heading { return (h + 1) % 4 }

// TurnLeft returns the heading after a counter-clockwise quarter turn.
func (h Heading) TurnLeft() Heading { return (h + 3) % 4 }

// Delta returns the (dx, dy) offset for one move. Up decreases Y.
func (h Heading) Delta() (dx, dy int) {
	switch h {
	case Up:
		return 0, -1
	case Right:
		return 1, 0
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	default:
		return 0, 0
	}
}

// Ant is the position and heading of the walker.
type Ant struct {
	X, Y    int
	Heading Heading
}

// centered returns an ant in the middle of a w x h grid facing up.
func centered(w, h int) Ant {
	return Ant{X: w / 2, Y: h / 2, Heading: Up}
}
