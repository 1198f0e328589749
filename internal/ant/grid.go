package ant

// Grid is a toroidal board of cell states in [0, 4).
// Cells are stored in row-major order: index = y*W + x.
type Grid struct {
	w, h    int
	cells   []uint8
	visited []bool
	active  int // number of non-zero cells, maintained on every write
}

// NewGrid allocates a zeroed grid. Non-positive dimensions are raised to 1.
func NewGrid(w, h int) *Grid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Grid{
		w:       w,
		h:       h,
		cells:   make([]uint8, w*h),
		visited: make([]bool, w*h),
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.w }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.h }

// Size returns the total number of cells.
func (g *Grid) Size() int { return len(g.cells) }

// index converts coordinates to a flat index. Callers pass in-bounds values.
func (g *Grid) index(x, y int) int {
	return y*g.w + x
}

// InBounds returns true if (x, y) lies on the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.w && y >= 0 && y < g.h
}

// Wrap applies toroidal wrapping to the provided coordinates.
func (g *Grid) Wrap(x, y int) (int, int) {
	x = (x%g.w + g.w) % g.w
	y = (y%g.h + g.h) % g.h
	return x, y
}

// State returns the state of the cell at (x, y), or 0 if out of bounds.
func (g *Grid) State(x, y int) uint8 {
	if !g.InBounds(x, y) {
		return 0
	}
	return g.cells[g.index(x, y)]
}

// Visited reports whether the cell at (x, y) has ever been touched by the ant.
func (g *Grid) Visited(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	return g.visited[g.index(x, y)]
}

// Active returns the number of non-zero cells.
func (g *Grid) Active() int { return g.active }

// advance cycles the cell at idx to its next state and returns the old one.
func (g *Grid) advance(idx int) uint8 {
	prev := g.cells[idx]
	next := (prev + 1) % States
	g.cells[idx] = next

	switch {
	case prev == 0 && next != 0:
		g.active++
	case prev != 0 && next == 0:
		g.active--
	}
	return prev
}

// markVisited sets the visited bit and reports whether it was unset before.
func (g *Grid) markVisited(idx int) bool {
	if g.visited[idx] {
		return false
	}
	g.visited[idx] = true
	return true
}

// Clear zeroes every cell and visited bit.
func (g *Grid) Clear() {
	clear(g.cells)
	clear(g.visited)
	g.active = 0
}

// CopyCells copies cell states into dst (allocating if too small) and returns it.
func (g *Grid) CopyCells(dst []uint8) []uint8 {
	if cap(dst) < len(g.cells) {
		dst = make([]uint8, len(g.cells))
	}
	dst = dst[:len(g.cells)]
	copy(dst, g.cells)
	return dst
}

// countActive recomputes the active count by a full scan.
func (g *Grid) countActive() int {
	n := 0
	for _, c := range g.cells {
		if c != 0 {
			n++
		}
	}
	return n
}
