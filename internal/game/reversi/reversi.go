// Package reversi implements the Reversi/Othello rule engine and a
// depth-limited minimax opponent. Difficulty scales the search depth.
package reversi

import (
	"math/rand"

	"github.com/colindiffer/pocketgames/internal/game"
)

// Size is the board dimension.
const Size = 8

// Disc is the content of one board square.
type Disc uint8

const (
	Empty Disc = iota
	Black      // the human player, moves first
	White      // the AI opponent
)

// Board is the 8x8 board indexed [row][col].
type Board [Size][Size]Disc

// Move is a candidate placement together with the opponent discs it
// flips. Flips is never empty for a legal move.
type Move struct {
	Row   int
	Col   int
	Flips [][2]int
}

// searchDepth maps difficulty to minimax depth.
var searchDepth = map[game.Difficulty]int{
	game.Easy:   1,
	game.Medium: 3,
	game.Hard:   5,
}

var directions = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// positional weights the corners and edges for the evaluation function.
var positional = [Size][Size]int{
	{100, -20, 10, 5, 5, 10, -20, 100},
	{-20, -50, -2, -2, -2, -2, -50, -20},
	{10, -2, 1, 1, 1, 1, -2, 10},
	{5, -2, 1, 1, 1, 1, -2, 5},
	{5, -2, 1, 1, 1, 1, -2, 5},
	{10, -2, 1, 1, 1, 1, -2, 10},
	{-20, -50, -2, -2, -2, -2, -50, -20},
	{100, -20, 10, 5, 5, 10, -20, 100},
}

// Match is one Reversi game.
type Match struct {
	Board Board
	Turn  Disc
	depth int
	rng   *rand.Rand
}

// NewMatch sets up the standard four-disc opening with Black to move.
func NewMatch(depth int, rng *rand.Rand) *Match {
	m := &Match{Turn: Black, depth: depth, rng: rng}
	m.Board[3][3] = White
	m.Board[3][4] = Black
	m.Board[4][3] = Black
	m.Board[4][4] = White
	return m
}

// ValidMoves lists every legal move for player, with the discs each
// move would flip.
func ValidMoves(b Board, player Disc) []Move {
	var moves []Move
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b[r][c] != Empty {
				continue
			}
			flips := flipsFor(b, r, c, player)
			if len(flips) > 0 {
				moves = append(moves, Move{Row: r, Col: c, Flips: flips})
			}
		}
	}
	return moves
}

// flipsFor scans all 8 directions from (row, col) for contiguous
// opponent runs terminated by one of player's own discs.
func flipsFor(b Board, row, col int, player Disc) [][2]int {
	opp := opponent(player)
	var flips [][2]int
	for _, d := range directions {
		var run [][2]int
		r, c := row+d[0], col+d[1]
		for r >= 0 && r < Size && c >= 0 && c < Size && b[r][c] == opp {
			run = append(run, [2]int{r, c})
			r, c = r+d[0], c+d[1]
		}
		if len(run) > 0 && r >= 0 && r < Size && c >= 0 && c < Size && b[r][c] == player {
			flips = append(flips, run...)
		}
	}
	return flips
}

// Apply returns the board after player places at move, with all flips
// applied. The input board is not modified.
func Apply(b Board, move Move, player Disc) Board {
	b[move.Row][move.Col] = player
	for _, f := range move.Flips {
		b[f[0]][f[1]] = player
	}
	return b
}

// Play places the side to move at (row, col). Illegal placements leave
// the state unchanged and return false. After a legal move the turn
// passes to the opponent, or stays when the opponent has no reply.
func (m *Match) Play(row, col int) bool {
	if m.GameOver() || row < 0 || row >= Size || col < 0 || col >= Size {
		return false
	}
	flips := flipsFor(m.Board, row, col, m.Turn)
	if m.Board[row][col] != Empty || len(flips) == 0 {
		return false
	}

	m.Board = Apply(m.Board, Move{Row: row, Col: col, Flips: flips}, m.Turn)
	m.advanceTurn()
	return true
}

// advanceTurn passes the move to the opponent, skipping back when the
// opponent has no legal move.
func (m *Match) advanceTurn() {
	next := opponent(m.Turn)
	if len(ValidMoves(m.Board, next)) > 0 {
		m.Turn = next
	}
	// Otherwise the mover goes again; if the mover also has no move the
	// game is over and Turn is irrelevant.
}

// AIMove chooses and plays White's move by minimax, breaking score ties
// at random. Returns the move played, or nil when White cannot move.
func (m *Match) AIMove() *Move {
	if m.GameOver() || m.Turn != White {
		return nil
	}
	moves := ValidMoves(m.Board, White)
	if len(moves) == 0 {
		return nil
	}

	best := []Move{moves[0]}
	bestScore := -1 << 30
	for _, mv := range moves {
		score := minimax(Apply(m.Board, mv, White), m.depth-1, Black, -1<<30, 1<<30)
		if score > bestScore {
			bestScore = score
			best = best[:0]
			best = append(best, mv)
		} else if score == bestScore {
			best = append(best, mv)
		}
	}
	chosen := best[m.rng.Intn(len(best))]
	m.Play(chosen.Row, chosen.Col)
	return &chosen
}

// minimax evaluates the board for White with alpha-beta pruning.
func minimax(b Board, depth int, turn Disc, alpha, beta int) int {
	moves := ValidMoves(b, turn)
	if len(moves) == 0 {
		if len(ValidMoves(b, opponent(turn))) == 0 {
			// Terminal: score by final disc count.
			black, white := CountPieces(b)
			return (white - black) * 1000
		}
		return minimax(b, depth, opponent(turn), alpha, beta)
	}
	if depth <= 0 {
		return evaluate(b)
	}

	if turn == White {
		best := -1 << 30
		for _, mv := range moves {
			score := minimax(Apply(b, mv, White), depth-1, Black, alpha, beta)
			if score > best {
				best = score
			}
			if best > alpha {
				alpha = best
			}
			if alpha >= beta {
				break
			}
		}
		return best
	}

	best := 1 << 30
	for _, mv := range moves {
		score := minimax(Apply(b, mv, Black), depth-1, White, alpha, beta)
		if score < best {
			best = score
		}
		if best < beta {
			beta = best
		}
		if alpha >= beta {
			break
		}
	}
	return best
}

// evaluate scores the board for White using positional weights.
func evaluate(b Board) int {
	score := 0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			switch b[r][c] {
			case White:
				score += positional[r][c]
			case Black:
				score -= positional[r][c]
			}
		}
	}
	return score
}

// CountPieces returns the black and white disc counts.
func CountPieces(b Board) (black, white int) {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			switch b[r][c] {
			case Black:
				black++
			case White:
				white++
			}
		}
	}
	return black, white
}

// GameOver reports whether neither side has a legal move.
func (m *Match) GameOver() bool {
	return len(ValidMoves(m.Board, Black)) == 0 && len(ValidMoves(m.Board, White)) == 0
}

// Outcome returns the result from Black's (the human's) point of view.
func (m *Match) Outcome() game.Outcome {
	if !m.GameOver() {
		return game.InProgress
	}
	black, white := CountPieces(m.Board)
	switch {
	case black > white:
		return game.Won
	case white > black:
		return game.Lost
	}
	return game.Draw
}

// Score is Black's final disc count.
func (m *Match) Score() int64 {
	black, _ := CountPieces(m.Board)
	return int64(black)
}

func opponent(p Disc) Disc {
	if p == Black {
		return White
	}
	return Black
}
