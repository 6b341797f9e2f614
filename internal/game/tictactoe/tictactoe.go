// Package tictactoe implements the Tic-Tac-Toe rule engine with an
// exhaustive-minimax opponent. Difficulty does not shrink the search:
// the AI always knows the optimal move and plays it with a per-difficulty
// probability, falling back to a uniformly random legal move otherwise.
package tictactoe

import (
	"math/rand"

	"github.com/colindiffer/pocketgames/internal/game"
)

// Mark is the content of one board cell.
type Mark uint8

const (
	Empty Mark = iota
	X          // the human player, moves first
	O          // the AI opponent
)

// Board is the 3x3 board stored row-major.
type Board [9]Mark

// winLines enumerates the 8 three-in-a-row index triples.
var winLines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// optimalChance maps difficulty to the probability the AI plays the
// minimax-optimal move instead of a random legal one.
var optimalChance = map[game.Difficulty]float64{
	game.Easy:   0.20,
	game.Medium: 0.55,
	game.Hard:   0.85,
}

// Match is one Tic-Tac-Toe game in progress.
type Match struct {
	Board   Board
	Turn    Mark
	Winner  Mark // Empty means draw or still playing
	Over    bool
	Moves   int
	optimal float64
	rng     *rand.Rand
}

// NewMatch starts a game with X (the human) to move.
func NewMatch(optimal float64, rng *rand.Rand) *Match {
	return &Match{Turn: X, optimal: optimal, rng: rng}
}

// Play places the side to move at (row, col). An out-of-bounds or
// occupied cell, or a finished game, leaves the state unchanged and
// returns false.
func (m *Match) Play(row, col int) bool {
	if m.Over || row < 0 || row > 2 || col < 0 || col > 2 {
		return false
	}
	idx := row*3 + col
	if m.Board[idx] != Empty {
		return false
	}

	m.Board[idx] = m.Turn
	m.Moves++

	if hasWin(m.Board, m.Turn) {
		m.Winner = m.Turn
		m.Over = true
		return true
	}
	if m.Moves == 9 {
		m.Over = true
		return true
	}

	if m.Turn == X {
		m.Turn = O
	} else {
		m.Turn = X
	}
	return true
}

// AIMove chooses and plays the AI's move, returning the cell index
// played or -1 when the game is over or it is not O's turn.
func (m *Match) AIMove() int {
	if m.Over || m.Turn != O {
		return -1
	}

	var idx int
	if m.rng.Float64() < m.optimal {
		idx = bestMove(m.Board, O)
	} else {
		idx = randomMove(m.Board, m.rng)
	}
	if idx < 0 {
		return -1
	}
	m.Play(idx/3, idx%3)
	return idx
}

// GameOver reports whether the match has ended.
func (m *Match) GameOver() bool { return m.Over }

// Outcome reports the result from the human (X) point of view.
func (m *Match) Outcome() game.Outcome {
	if !m.Over {
		return game.InProgress
	}
	switch m.Winner {
	case X:
		return game.Won
	case O:
		return game.Lost
	}
	return game.Draw
}

// Score awards one point for a win.
func (m *Match) Score() int64 {
	if m.Winner == X {
		return 1
	}
	return 0
}

// ValidMoves returns the indices of all empty cells.
func ValidMoves(b Board) []int {
	moves := make([]int, 0, 9)
	for i, v := range b {
		if v == Empty {
			moves = append(moves, i)
		}
	}
	return moves
}

func hasWin(b Board, side Mark) bool {
	for _, ln := range winLines {
		if b[ln[0]] == side && b[ln[1]] == side && b[ln[2]] == side {
			return true
		}
	}
	return false
}

func randomMove(b Board, rng *rand.Rand) int {
	moves := ValidMoves(b)
	if len(moves) == 0 {
		return -1
	}
	return moves[rng.Intn(len(moves))]
}

// bestMove returns the minimax-optimal cell for side. Tic-Tac-Toe is
// small enough for a full-tree search; wins are preferred sooner and
// losses later via a depth adjustment.
func bestMove(b Board, side Mark) int {
	best, bestScore := -1, -1000
	for _, idx := range ValidMoves(b) {
		b[idx] = side
		score := -negamax(b, opponent(side), 1)
		b[idx] = Empty
		if score > bestScore {
			best, bestScore = idx, score
		}
	}
	return best
}

// negamax scores the position for the side to move: +10 for a win,
// -10 for a loss, 0 for a draw, shaded by depth.
func negamax(b Board, side Mark, depth int) int {
	if hasWin(b, opponent(side)) {
		return -10 + depth
	}
	moves := ValidMoves(b)
	if len(moves) == 0 {
		return 0
	}
	best := -1000
	for _, idx := range moves {
		b[idx] = side
		score := -negamax(b, opponent(side), depth+1)
		b[idx] = Empty
		if score > best {
			best = score
		}
	}
	return best
}

func opponent(side Mark) Mark {
	if side == X {
		return O
	}
	return X
}
