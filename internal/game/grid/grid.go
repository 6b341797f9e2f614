// Package grid provides a generic 2-D cell store used by the board-based
// engines (minesweeper, battleship, maze). It replaces the per-game
// neighbor and clone helpers each engine would otherwise redefine.
package grid

// Grid is a width x height board of cells stored row-major.
type Grid[T any] struct {
	width  int
	height int
	cells  []T
}

// New returns a zero-valued grid of the given dimensions.
func New[T any](width, height int) *Grid[T] {
	return &Grid[T]{
		width:  width,
		height: height,
		cells:  make([]T, width*height),
	}
}

// Width returns the number of columns.
func (g *Grid[T]) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid[T]) Height() int { return g.height }

// InBounds reports whether (row, col) lies on the grid.
func (g *Grid[T]) InBounds(row, col int) bool {
	return row >= 0 && row < g.height && col >= 0 && col < g.width
}

// At returns the cell at (row, col). Callers must ensure in-bounds.
func (g *Grid[T]) At(row, col int) T {
	return g.cells[row*g.width+col]
}

// Ref returns a pointer to the cell at (row, col) for in-place updates.
func (g *Grid[T]) Ref(row, col int) *T {
	return &g.cells[row*g.width+col]
}

// Set stores v at (row, col).
func (g *Grid[T]) Set(row, col int, v T) {
	g.cells[row*g.width+col] = v
}

// Fill sets every cell to v.
func (g *Grid[T]) Fill(v T) {
	for i := range g.cells {
		g.cells[i] = v
	}
}

// Clone returns a deep copy of the grid. Cell types are expected to be
// plain values; pointer-bearing cells would share their referents.
func (g *Grid[T]) Clone() *Grid[T] {
	c := &Grid[T]{
		width:  g.width,
		height: g.height,
		cells:  make([]T, len(g.cells)),
	}
	copy(c.cells, g.cells)
	return c
}

// Each calls fn for every cell in row-major order.
func (g *Grid[T]) Each(fn func(row, col int, v T)) {
	for r := 0; r < g.height; r++ {
		for c := 0; c < g.width; c++ {
			fn(r, c, g.At(r, c))
		}
	}
}

// Coord is a (row, col) pair.
type Coord struct {
	Row int
	Col int
}

// moore lists the 8 Moore-neighborhood offsets.
var moore = [8]Coord{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// vonNeumann lists the 4 orthogonal offsets.
var vonNeumann = [4]Coord{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Neighbors8 returns the in-bounds Moore (8-connected) neighbors of
// (row, col).
func (g *Grid[T]) Neighbors8(row, col int) []Coord {
	out := make([]Coord, 0, 8)
	for _, d := range moore {
		r, c := row+d.Row, col+d.Col
		if g.InBounds(r, c) {
			out = append(out, Coord{r, c})
		}
	}
	return out
}

// Neighbors4 returns the in-bounds orthogonal neighbors of (row, col).
func (g *Grid[T]) Neighbors4(row, col int) []Coord {
	out := make([]Coord, 0, 4)
	for _, d := range vonNeumann {
		r, c := row+d.Row, col+d.Col
		if g.InBounds(r, c) {
			out = append(out, Coord{r, c})
		}
	}
	return out
}
