// Package minesweeper implements the Minesweeper rule engine: lazy mine
// placement that guarantees a safe opening, flood-fill reveal, flagging,
// and win/loss detection.
package minesweeper

import (
	"math/rand"

	"github.com/colindiffer/pocketgames/internal/game"
	"github.com/colindiffer/pocketgames/internal/game/grid"
)

// CellState is the visible state of a cell. A cell's mine/adjacency data
// is fixed at board creation; only the state mutates afterwards.
type CellState uint8

const (
	Hidden CellState = iota
	Revealed
	Flagged
)

// Cell is one board cell.
type Cell struct {
	Mine        bool
	MinesAround int // mines among the 8 Moore neighbors, fixed at creation
	State       CellState
}

// Layout fixes the board dimensions and mine count for a difficulty.
type Layout struct {
	Width  int
	Height int
	Mines  int
}

// layouts follows the classic beginner/intermediate/expert boards, with
// an easier 8x8 entry level.
var layouts = map[game.Difficulty]Layout{
	game.Easy:   {Width: 8, Height: 8, Mines: 10},
	game.Medium: {Width: 16, Height: 16, Mines: 40},
	game.Hard:   {Width: 30, Height: 16, Mines: 99},
	game.Expert: {Width: 30, Height: 20, Mines: 130},
}

// Match is one Minesweeper game. Mines are not placed until the first
// reveal so that the first click and its whole 8-neighborhood are always
// safe.
type Match struct {
	Board    *grid.Grid[Cell]
	layout   Layout
	placed   bool
	lost     bool
	won      bool
	revealed int
	flags    int
	rng      *rand.Rand
}

// NewMatch creates an untouched board for the given layout.
func NewMatch(layout Layout, rng *rand.Rand) *Match {
	return &Match{
		Board:  grid.New[Cell](layout.Width, layout.Height),
		layout: layout,
		rng:    rng,
	}
}

// placeMines scatters the layout's mines uniformly at random over all
// cells outside the 8-neighborhood of (safeRow, safeCol), then computes
// every cell's MinesAround count once.
func (m *Match) placeMines(safeRow, safeCol int) {
	type pos struct{ r, c int }
	candidates := make([]pos, 0, m.layout.Width*m.layout.Height)
	m.Board.Each(func(r, c int, _ Cell) {
		dr, dc := r-safeRow, c-safeCol
		if dr >= -1 && dr <= 1 && dc >= -1 && dc <= 1 {
			return
		}
		candidates = append(candidates, pos{r, c})
	})

	// Fisher-Yates prefix: the first Mines candidates become mines.
	n := m.layout.Mines
	if n > len(candidates) {
		n = len(candidates)
	}
	for i := 0; i < n; i++ {
		j := i + m.rng.Intn(len(candidates)-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]
		m.Board.Ref(candidates[i].r, candidates[i].c).Mine = true
	}

	m.Board.Each(func(r, c int, _ Cell) {
		count := 0
		for _, nb := range m.Board.Neighbors8(r, c) {
			if m.Board.At(nb.Row, nb.Col).Mine {
				count++
			}
		}
		m.Board.Ref(r, c).MinesAround = count
	})
	m.placed = true
}

// Reveal opens the cell at (row, col). Revealing a zero-adjacency cell
// flood-fills through its 8-connected zero region; revealing a mine
// loses the game. Flagged cells, already-revealed cells, out-of-bounds
// coordinates, and finished games are silent no-ops returning false.
func (m *Match) Reveal(row, col int) bool {
	if m.GameOver() || !m.Board.InBounds(row, col) {
		return false
	}
	cell := m.Board.At(row, col)
	if cell.State != Hidden {
		return false
	}
	if !m.placed {
		m.placeMines(row, col)
	}

	if m.Board.At(row, col).Mine {
		m.Board.Ref(row, col).State = Revealed
		m.lost = true
		return true
	}

	m.floodReveal(row, col)
	m.checkWin()
	return true
}

// floodReveal opens (row, col) and, when the cell has no adjacent mines,
// recurses through all hidden neighbors. Cells with MinesAround > 0 stop
// the fill.
func (m *Match) floodReveal(row, col int) {
	cell := m.Board.Ref(row, col)
	if cell.State == Revealed || cell.Mine {
		return
	}
	cell.State = Revealed
	m.revealed++
	if cell.MinesAround > 0 {
		return
	}
	for _, nb := range m.Board.Neighbors8(row, col) {
		if m.Board.At(nb.Row, nb.Col).State == Hidden {
			m.floodReveal(nb.Row, nb.Col)
		}
	}
}

// ToggleFlag flips a hidden cell to flagged or a flagged cell back to
// hidden. Revealed cells are flag-immune.
func (m *Match) ToggleFlag(row, col int) bool {
	if m.GameOver() || !m.Board.InBounds(row, col) {
		return false
	}
	cell := m.Board.Ref(row, col)
	switch cell.State {
	case Hidden:
		cell.State = Flagged
		m.flags++
	case Flagged:
		cell.State = Hidden
		m.flags--
	default:
		return false
	}
	return true
}

// Chord reveals all non-flagged neighbors of a revealed numbered cell
// when exactly MinesAround of its neighbors are flagged. A wrong flag
// makes chording lose the game, as in the desktop originals.
func (m *Match) Chord(row, col int) bool {
	if m.GameOver() || !m.Board.InBounds(row, col) {
		return false
	}
	cell := m.Board.At(row, col)
	if cell.State != Revealed || cell.MinesAround == 0 {
		return false
	}

	flagged := 0
	for _, nb := range m.Board.Neighbors8(row, col) {
		if m.Board.At(nb.Row, nb.Col).State == Flagged {
			flagged++
		}
	}
	if flagged != cell.MinesAround {
		return false
	}

	acted := false
	for _, nb := range m.Board.Neighbors8(row, col) {
		if m.Board.At(nb.Row, nb.Col).State == Hidden {
			acted = m.Reveal(nb.Row, nb.Col) || acted
			if m.lost {
				return true
			}
		}
	}
	return acted
}

// FlagsRemaining returns the mine count minus placed flags; may go
// negative when the player over-flags.
func (m *Match) FlagsRemaining() int { return m.layout.Mines - m.flags }

// CheckWin reports whether every non-mine cell is revealed.
func (m *Match) CheckWin() bool { return m.won }

// CheckLoss reports whether a mine has been revealed.
func (m *Match) CheckLoss() bool { return m.lost }

func (m *Match) checkWin() {
	if m.lost || !m.placed {
		return
	}
	total := m.layout.Width*m.layout.Height - m.layout.Mines
	if m.revealed >= total {
		m.won = true
	}
}

// GameOver reports whether the match has ended.
func (m *Match) GameOver() bool { return m.won || m.lost }

// Outcome returns the match result.
func (m *Match) Outcome() game.Outcome {
	switch {
	case m.won:
		return game.Won
	case m.lost:
		return game.Lost
	}
	return game.InProgress
}

// Score counts revealed safe cells.
func (m *Match) Score() int64 { return int64(m.revealed) }
