// Package core provides fundamental types and utilities shared by the engine
// and the UI shell. It contains no external dependencies (especially no
// Bubble Tea) to keep simulation code pure and testable.
package core

// Rect is an axis-aligned area of the terminal, used to map pointer
// positions onto the grid.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Local translates (x, y) into coordinates relative to the top-left corner.
// The result may lie outside the rectangle.
func (r Rect) Local(x, y int) (int, int) {
	return x - r.X, y - r.Y
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
