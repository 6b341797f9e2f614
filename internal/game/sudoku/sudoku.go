// Package sudoku implements the Sudoku engine: a randomized backtracking
// generator/solver, placement validity checks, conflict highlighting,
// and win detection.
//
// The engine never blocks a conflicting entry; Conflicts exists for UI
// feedback and only full-grid validity gates the win.
package sudoku

import (
	"math/rand"

	"github.com/colindiffer/pocketgames/internal/game"
)

// Size is the grid dimension; Box is the sub-grid dimension.
const (
	Size = 9
	Box  = 3
)

// Cell is one grid cell. Fixed cells are the puzzle's givens and cannot
// be edited.
type Cell struct {
	Value int // 0 means empty
	Fixed bool
}

// Grid is the 9x9 board.
type Grid [Size][Size]Cell

// removals maps difficulty to the number of cells blanked out of the
// solved grid.
var removals = map[game.Difficulty]int{
	game.Easy:   35,
	game.Medium: 45,
	game.Hard:   52,
	game.Expert: 58,
}

// Match is one Sudoku game: the puzzle, the player's entries, and the
// solution it was carved from.
type Match struct {
	Grid     Grid
	solution [Size][Size]int
	gaveUp   bool
}

// NewMatch generates a fresh solved grid and removes `remove` cells
// uniformly at random to produce the puzzle.
func NewMatch(remove int, rng *rand.Rand) *Match {
	var values [Size][Size]int
	solve(&values, 0, rng)

	m := &Match{solution: values}
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			m.Grid[r][c] = Cell{Value: values[r][c], Fixed: true}
		}
	}

	// Blank `remove` distinct cells.
	order := rng.Perm(Size * Size)
	if remove > len(order) {
		remove = len(order)
	}
	for _, idx := range order[:remove] {
		r, c := idx/Size, idx%Size
		m.Grid[r][c] = Cell{}
	}
	return m
}

// solve fills values from cell index pos onward by randomized
// backtracking: digits 1-9 are tried in random order per cell and dead
// ends unwind. Starting from an empty grid it always terminates with a
// complete valid grid.
func solve(values *[Size][Size]int, pos int, rng *rand.Rand) bool {
	if pos == Size*Size {
		return true
	}
	r, c := pos/Size, pos%Size
	if values[r][c] != 0 {
		return solve(values, pos+1, rng)
	}

	for _, n := range rng.Perm(Size) {
		digit := n + 1
		if validPlacement(values, r, c, digit) {
			values[r][c] = digit
			if solve(values, pos+1, rng) {
				return true
			}
			values[r][c] = 0
		}
	}
	return false
}

// validPlacement reports whether digit can go at (row, col) without
// repeating in its row, column, or 3x3 box. The cell itself is ignored.
func validPlacement(values *[Size][Size]int, row, col, digit int) bool {
	for i := 0; i < Size; i++ {
		if i != col && values[row][i] == digit {
			return false
		}
		if i != row && values[i][col] == digit {
			return false
		}
	}
	br, bc := (row/Box)*Box, (col/Box)*Box
	for r := br; r < br+Box; r++ {
		for c := bc; c < bc+Box; c++ {
			if (r != row || c != col) && values[r][c] == digit {
				return false
			}
		}
	}
	return true
}

// IsValid reports whether placing digit at (row, col) would be conflict
// free against the current grid.
func (m *Match) IsValid(row, col, digit int) bool {
	values := m.values()
	return validPlacement(&values, row, col, digit)
}

// Set writes digit (1-9, or 0 to clear) into a non-fixed cell.
// Conflicting digits are accepted; fixed cells, bad coordinates, and
// out-of-range digits are silent no-ops returning false.
func (m *Match) Set(row, col, digit int) bool {
	if m.GameOver() || row < 0 || row >= Size || col < 0 || col >= Size {
		return false
	}
	if digit < 0 || digit > 9 {
		return false
	}
	if m.Grid[row][col].Fixed {
		return false
	}
	m.Grid[row][col].Value = digit
	return true
}

// Conflicts returns the coordinates of every filled cell whose value
// repeats in its row, column, or box. Used for highlighting, not for
// blocking moves.
func (m *Match) Conflicts() [][2]int {
	values := m.values()
	var out [][2]int
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if values[r][c] != 0 && !validPlacement(&values, r, c, values[r][c]) {
				out = append(out, [2]int{r, c})
			}
		}
	}
	return out
}

// Solved reports whether every cell is filled and the whole grid is
// valid.
func (m *Match) Solved() bool {
	values := m.values()
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if values[r][c] == 0 || !validPlacement(&values, r, c, values[r][c]) {
				return false
			}
		}
	}
	return true
}

// Solution returns the solved grid the puzzle was generated from.
func (m *Match) Solution() [Size][Size]int { return m.solution }

// GiveUp abandons the puzzle, ending the match as a loss.
func (m *Match) GiveUp() { m.gaveUp = true }

// GameOver reports whether the puzzle is solved or abandoned.
func (m *Match) GameOver() bool { return m.gaveUp || m.Solved() }

// Outcome returns the match result.
func (m *Match) Outcome() game.Outcome {
	switch {
	case m.Solved():
		return game.Won
	case m.gaveUp:
		return game.Lost
	}
	return game.InProgress
}

// Score counts correctly filled non-given cells.
func (m *Match) Score() int64 {
	var score int64
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			cell := m.Grid[r][c]
			if !cell.Fixed && cell.Value != 0 && cell.Value == m.solution[r][c] {
				score++
			}
		}
	}
	return score
}

func (m *Match) values() [Size][Size]int {
	var values [Size][Size]int
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			values[r][c] = m.Grid[r][c].Value
		}
	}
	return values
}
