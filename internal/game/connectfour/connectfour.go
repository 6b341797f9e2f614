// Package connectfour implements the Connect Four rule engine with a
// depth-limited minimax opponent using a center-weighted evaluation.
package connectfour

import (
	"math/rand"

	"github.com/colindiffer/pocketgames/internal/game"
)

// Board dimensions.
const (
	Cols = 7
	Rows = 6
)

// Disc is the content of one slot.
type Disc uint8

const (
	Empty  Disc = iota
	Red         // the human player, moves first
	Yellow      // the AI opponent
)

// Board is indexed [row][col] with row 0 at the top; discs stack from
// row Rows-1 upward.
type Board [Rows][Cols]Disc

// searchDepth maps difficulty to minimax depth.
var searchDepth = map[game.Difficulty]int{
	game.Easy:   2,
	game.Medium: 4,
	game.Hard:   6,
}

// Match is one Connect Four game.
type Match struct {
	Board  Board
	Turn   Disc
	Winner Disc
	Over   bool
	moves  int
	depth  int
	rng    *rand.Rand
}

// NewMatch starts a game with Red to move.
func NewMatch(depth int, rng *rand.Rand) *Match {
	return &Match{Turn: Red, depth: depth, rng: rng}
}

// ValidMoves returns the columns that are not full.
func ValidMoves(b Board) []int {
	var cols []int
	for c := 0; c < Cols; c++ {
		if b[0][c] == Empty {
			cols = append(cols, c)
		}
	}
	return cols
}

// dropRow returns the row a disc dropped in col would land on, or -1
// when the column is full.
func dropRow(b Board, col int) int {
	for r := Rows - 1; r >= 0; r-- {
		if b[r][col] == Empty {
			return r
		}
	}
	return -1
}

// Drop plays the side to move in the given column. Full columns,
// out-of-range columns, and finished games are silent no-ops returning
// false.
func (m *Match) Drop(col int) bool {
	if m.Over || col < 0 || col >= Cols {
		return false
	}
	row := dropRow(m.Board, col)
	if row < 0 {
		return false
	}

	m.Board[row][col] = m.Turn
	m.moves++

	if winsAt(m.Board, row, col) {
		m.Winner = m.Turn
		m.Over = true
		return true
	}
	if m.moves == Rows*Cols {
		m.Over = true
		return true
	}

	if m.Turn == Red {
		m.Turn = Yellow
	} else {
		m.Turn = Red
	}
	return true
}

// AIMove chooses and plays Yellow's column by minimax, breaking ties at
// random. Returns the column played or -1 when it is not Yellow's turn.
func (m *Match) AIMove() int {
	if m.Over || m.Turn != Yellow {
		return -1
	}
	cols := ValidMoves(m.Board)
	if len(cols) == 0 {
		return -1
	}

	best := []int{cols[0]}
	bestScore := -1 << 30
	for _, col := range cols {
		b := m.Board
		r := dropRow(b, col)
		b[r][col] = Yellow
		var score int
		if winsAt(b, r, col) {
			score = 1 << 20
		} else {
			score = minimax(b, m.depth-1, Red, -1<<30, 1<<30)
		}
		if score > bestScore {
			bestScore = score
			best = best[:0]
			best = append(best, col)
		} else if score == bestScore {
			best = append(best, col)
		}
	}
	col := best[m.rng.Intn(len(best))]
	m.Drop(col)
	return col
}

// minimax evaluates for Yellow with alpha-beta pruning.
func minimax(b Board, depth int, turn Disc, alpha, beta int) int {
	cols := ValidMoves(b)
	if len(cols) == 0 {
		return 0 // board full, draw
	}
	if depth <= 0 {
		return evaluate(b)
	}

	maximizing := turn == Yellow
	best := -1 << 30
	if !maximizing {
		best = 1 << 30
	}
	for _, col := range cols {
		nb := b
		r := dropRow(nb, col)
		nb[r][col] = turn
		var score int
		if winsAt(nb, r, col) {
			// Prefer quicker wins and slower losses.
			if maximizing {
				score = 1<<20 + depth
			} else {
				score = -(1<<20 + depth)
			}
		} else {
			score = minimax(nb, depth-1, other(turn), alpha, beta)
		}
		if maximizing {
			if score > best {
				best = score
			}
			if best > alpha {
				alpha = best
			}
		} else {
			if score < best {
				best = score
			}
			if best < beta {
				beta = best
			}
		}
		if alpha >= beta {
			break
		}
	}
	return best
}

// evaluate scores the board for Yellow: center-column discs count most,
// open three-in-a-rows count heavily.
func evaluate(b Board) int {
	score := 0
	for r := 0; r < Rows; r++ {
		switch b[r][Cols/2] {
		case Yellow:
			score += 3
		case Red:
			score -= 3
		}
	}
	score += windowScore(b, Yellow) - windowScore(b, Red)
	return score
}

// windowScore counts 4-windows holding exactly three of side's discs
// and one empty slot.
func windowScore(b Board, side Disc) int {
	total := 0
	check := func(cells [4]Disc) {
		own, empty := 0, 0
		for _, d := range cells {
			switch d {
			case side:
				own++
			case Empty:
				empty++
			}
		}
		if own == 3 && empty == 1 {
			total += 8
		}
	}
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			if c+3 < Cols {
				check([4]Disc{b[r][c], b[r][c+1], b[r][c+2], b[r][c+3]})
			}
			if r+3 < Rows {
				check([4]Disc{b[r][c], b[r+1][c], b[r+2][c], b[r+3][c]})
			}
			if r+3 < Rows && c+3 < Cols {
				check([4]Disc{b[r][c], b[r+1][c+1], b[r+2][c+2], b[r+3][c+3]})
			}
			if r+3 < Rows && c-3 >= 0 {
				check([4]Disc{b[r][c], b[r+1][c-1], b[r+2][c-2], b[r+3][c-3]})
			}
		}
	}
	return total
}

// winsAt reports whether the disc just placed at (row, col) completes
// four in a row.
func winsAt(b Board, row, col int) bool {
	side := b[row][col]
	dirs := [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}
	for _, d := range dirs {
		count := 1
		for _, sign := range [2]int{1, -1} {
			r, c := row+d[0]*sign, col+d[1]*sign
			for r >= 0 && r < Rows && c >= 0 && c < Cols && b[r][c] == side {
				count++
				r, c = r+d[0]*sign, c+d[1]*sign
			}
		}
		if count >= 4 {
			return true
		}
	}
	return false
}

// GameOver reports whether the match has ended.
func (m *Match) GameOver() bool { return m.Over }

// Outcome returns the result from Red's (the human's) point of view.
func (m *Match) Outcome() game.Outcome {
	if !m.Over {
		return game.InProgress
	}
	switch m.Winner {
	case Red:
		return game.Won
	case Yellow:
		return game.Lost
	}
	return game.Draw
}

// Score awards a point for a win.
func (m *Match) Score() int64 {
	if m.Winner == Red {
		return 1
	}
	return 0
}

func other(d Disc) Disc {
	if d == Red {
		return Yellow
	}
	return Red
}
