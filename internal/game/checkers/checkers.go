// Package checkers implements the English draughts rule engine:
// mandatory captures with multi-jump continuation, kings, and a
// depth-limited minimax opponent.
package checkers

import (
	"math/rand"

	"github.com/colindiffer/pocketgames/internal/game"
)

// Size is the board dimension.
const Size = 8

// Piece is the content of one square.
type Piece uint8

const (
	Empty Piece = iota
	RedMan
	RedKing
	BlackMan
	BlackKing
)

// Side identifies a player. Red is the human and moves up the board
// (toward row 0); Black is the AI and moves down.
type Side uint8

const (
	Red Side = iota
	Black
)

// Board is indexed [row][col]; play happens on the dark squares where
// (row+col) is odd.
type Board [Size][Size]Piece

// Move is one complete move: a step, or a jump chain visiting every
// square in Path and removing every piece in Captures.
type Move struct {
	Path     [][2]int // at least two squares, first is the origin
	Captures [][2]int
}

// searchDepth maps difficulty to minimax depth.
var searchDepth = map[game.Difficulty]int{
	game.Easy:   2,
	game.Medium: 4,
	game.Hard:   6,
}

// drawLimit is the number of consecutive moves without a capture or
// promotion after which the game is drawn.
const drawLimit = 60

// Match is one checkers game.
type Match struct {
	Board      Board
	Turn       Side
	quietMoves int
	depth      int
	rng        *rand.Rand
}

// NewMatch sets up the standard twelve-a-side opening with Red to move.
func NewMatch(depth int, rng *rand.Rand) *Match {
	m := &Match{Turn: Red, depth: depth, rng: rng}
	for r := 0; r < 3; r++ {
		for c := 0; c < Size; c++ {
			if (r+c)%2 == 1 {
				m.Board[r][c] = BlackMan
			}
		}
	}
	for r := 5; r < 8; r++ {
		for c := 0; c < Size; c++ {
			if (r+c)%2 == 1 {
				m.Board[r][c] = RedMan
			}
		}
	}
	return m
}

func owner(p Piece) (Side, bool) {
	switch p {
	case RedMan, RedKing:
		return Red, true
	case BlackMan, BlackKing:
		return Black, true
	}
	return 0, false
}

func isKing(p Piece) bool { return p == RedKing || p == BlackKing }

// moveDirs returns the diagonal directions a piece may move or jump in.
func moveDirs(p Piece) [][2]int {
	switch p {
	case RedMan:
		return [][2]int{{-1, -1}, {-1, 1}}
	case BlackMan:
		return [][2]int{{1, -1}, {1, 1}}
	case RedKing, BlackKing:
		return [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	}
	return nil
}

func inBounds(r, c int) bool { return r >= 0 && r < Size && c >= 0 && c < Size }

// ValidMoves lists every legal move for side. When any capture exists,
// only capture moves are legal; a jump chain continues until the piece
// has no further jump (or is promoted mid-move, which ends it).
func ValidMoves(b Board, side Side) []Move {
	var jumps, steps []Move
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			p := b[r][c]
			if o, ok := owner(p); !ok || o != side {
				continue
			}
			jumps = append(jumps, jumpChains(b, r, c, p, Move{Path: [][2]int{{r, c}}})...)
			if len(jumps) > 0 {
				continue // steps are moot once a jump exists
			}
			for _, d := range moveDirs(p) {
				nr, nc := r+d[0], c+d[1]
				if inBounds(nr, nc) && b[nr][nc] == Empty {
					steps = append(steps, Move{Path: [][2]int{{r, c}, {nr, nc}}})
				}
			}
		}
	}
	if len(jumps) > 0 {
		return jumps
	}
	return steps
}

// jumpChains recursively extends the jump chain for the piece p
// currently at the last square of acc.Path, returning every maximal
// continuation. Promotion ends a chain immediately.
func jumpChains(b Board, r, c int, p Piece, acc Move) []Move {
	side, _ := owner(p)
	var out []Move
	for _, d := range moveDirs(p) {
		mr, mc := r+d[0], c+d[1]
		jr, jc := r+2*d[0], c+2*d[1]
		if !inBounds(jr, jc) || b[jr][jc] != Empty {
			continue
		}
		victim, ok := owner(b[mr][mc])
		if !ok || victim == side {
			continue
		}

		next := b
		next[r][c] = Empty
		next[mr][mc] = Empty
		landed := p
		promoted := false
		if p == RedMan && jr == 0 {
			landed, promoted = RedKing, true
		} else if p == BlackMan && jr == Size-1 {
			landed, promoted = BlackKing, true
		}
		next[jr][jc] = landed

		ext := Move{
			Path:     append(append([][2]int{}, acc.Path...), [2]int{jr, jc}),
			Captures: append(append([][2]int{}, acc.Captures...), [2]int{mr, mc}),
		}
		if promoted {
			out = append(out, ext)
			continue
		}
		cont := jumpChains(next, jr, jc, landed, ext)
		if len(cont) == 0 {
			out = append(out, ext)
		} else {
			out = append(out, cont...)
		}
	}
	return out
}

// Apply returns the board after move is played by the piece at the
// move's origin. The input board is not modified.
func Apply(b Board, mv Move) Board {
	start := mv.Path[0]
	end := mv.Path[len(mv.Path)-1]
	p := b[start[0]][start[1]]
	b[start[0]][start[1]] = Empty
	for _, cap := range mv.Captures {
		b[cap[0]][cap[1]] = Empty
	}
	if p == RedMan && end[0] == 0 {
		p = RedKing
	} else if p == BlackMan && end[0] == Size-1 {
		p = BlackKing
	}
	b[end[0]][end[1]] = p
	return b
}

// Play performs mv for the side to move. Moves not present in
// ValidMoves leave the state unchanged and return false.
func (m *Match) Play(mv Move) bool {
	if m.GameOver() {
		return false
	}
	if !containsMove(ValidMoves(m.Board, m.Turn), mv) {
		return false
	}

	promoted := isPromotion(m.Board, mv)
	m.Board = Apply(m.Board, mv)
	if len(mv.Captures) > 0 || promoted {
		m.quietMoves = 0
	} else {
		m.quietMoves++
	}
	m.Turn = otherSide(m.Turn)
	return true
}

func isPromotion(b Board, mv Move) bool {
	p := b[mv.Path[0][0]][mv.Path[0][1]]
	end := mv.Path[len(mv.Path)-1]
	return (p == RedMan && end[0] == 0) || (p == BlackMan && end[0] == Size-1)
}

func containsMove(moves []Move, mv Move) bool {
	for _, have := range moves {
		if equalMoves(have, mv) {
			return true
		}
	}
	return false
}

func equalMoves(a, b Move) bool {
	if len(a.Path) != len(b.Path) {
		return false
	}
	for i := range a.Path {
		if a.Path[i] != b.Path[i] {
			return false
		}
	}
	return true
}

// AIMove chooses and plays Black's move by minimax, breaking ties at
// random. Returns the move played, or nil when Black cannot move.
func (m *Match) AIMove() *Move {
	if m.GameOver() || m.Turn != Black {
		return nil
	}
	moves := ValidMoves(m.Board, Black)
	if len(moves) == 0 {
		return nil
	}

	best := []Move{moves[0]}
	bestScore := -1 << 30
	for _, mv := range moves {
		score := minimax(Apply(m.Board, mv), m.depth-1, Red, -1<<30, 1<<30)
		if score > bestScore {
			bestScore = score
			best = best[:0]
			best = append(best, mv)
		} else if score == bestScore {
			best = append(best, mv)
		}
	}
	chosen := best[m.rng.Intn(len(best))]
	m.Play(chosen)
	return &chosen
}

// minimax evaluates for Black with alpha-beta pruning; running out of
// moves loses.
func minimax(b Board, depth int, turn Side, alpha, beta int) int {
	moves := ValidMoves(b, turn)
	if len(moves) == 0 {
		if turn == Black {
			return -1 << 20
		}
		return 1 << 20
	}
	if depth <= 0 {
		return evaluate(b)
	}

	maximizing := turn == Black
	best := -1 << 30
	if !maximizing {
		best = 1 << 30
	}
	for _, mv := range moves {
		score := minimax(Apply(b, mv), depth-1, otherSide(turn), alpha, beta)
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

// evaluate scores material for Black: men 100, kings 250, with a small
// advancement bonus for men.
func evaluate(b Board) int {
	score := 0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			switch b[r][c] {
			case BlackMan:
				score += 100 + r // closer to promotion is better
			case BlackKing:
				score += 250
			case RedMan:
				score -= 100 + (Size - 1 - r)
			case RedKing:
				score -= 250
			}
		}
	}
	return score
}

// CountPieces returns the red and black piece counts.
func CountPieces(b Board) (red, black int) {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if o, ok := owner(b[r][c]); ok {
				if o == Red {
					red++
				} else {
					black++
				}
			}
		}
	}
	return red, black
}

// GameOver reports whether the side to move has no legal move or the
// quiet-move draw limit is reached.
func (m *Match) GameOver() bool {
	return m.quietMoves >= drawLimit || len(ValidMoves(m.Board, m.Turn)) == 0
}

// Outcome returns the result from Red's (the human's) point of view.
// The side that cannot move loses.
func (m *Match) Outcome() game.Outcome {
	if !m.GameOver() {
		return game.InProgress
	}
	if m.quietMoves >= drawLimit {
		return game.Draw
	}
	if m.Turn == Red {
		return game.Lost
	}
	return game.Won
}

// Score is Red's surviving piece count on a win, otherwise 0.
func (m *Match) Score() int64 {
	if m.Outcome() != game.Won {
		return 0
	}
	red, _ := CountPieces(m.Board)
	return int64(red)
}

func otherSide(s Side) Side {
	if s == Red {
		return Black
	}
	return Red
}
