// Package chess implements a chess rule engine: full legal move
// generation (castling, en passant, promotion), check/checkmate/
// stalemate detection, the fifty-move rule, and a material+mobility
// minimax opponent.
//
// Board rows run 0..7 top to bottom with black's home rank at row 0, so
// white pawns move toward decreasing rows.
package chess

import (
	"math/rand"

	"github.com/colindiffer/pocketgames/internal/game"
)

// Size is the board dimension.
const Size = 8

// Piece encodes kind and color: positive values are white, negative are
// black, zero is an empty square.
type Piece int8

const (
	Empty  Piece = 0
	Pawn   Piece = 1
	Knight Piece = 2
	Bishop Piece = 3
	Rook   Piece = 4
	Queen  Piece = 5
	King   Piece = 6
)

// Color is a side, +1 for white and -1 for black.
type Color int8

const (
	White Color = 1
	Black Color = -1
)

// Board is indexed [row][col].
type Board [Size][Size]Piece

// Move is one chess move. Promotion is the piece kind a pawn becomes on
// the last rank (Queen by default when zero on entry to Play).
type Move struct {
	FromRow, FromCol int
	ToRow, ToCol     int
	Promotion        Piece
}

// castleRights tracks which castlings remain possible.
type castleRights struct {
	whiteKing, whiteQueen bool
	blackKing, blackQueen bool
}

// searchDepth maps difficulty to minimax depth.
var searchDepth = map[game.Difficulty]int{
	game.Easy:   1,
	game.Medium: 2,
	game.Hard:   3,
}

// position is the board plus the side-effect state move generation
// needs (castling rights and the en passant target square).
type position struct {
	board  Board
	rights castleRights
	epCol  int // column of a pawn that just advanced two, -1 otherwise
	epRow  int // row the capturing pawn lands on
}

// Match is one chess game. White is the human and moves first.
type Match struct {
	pos       position
	Turn      Color
	halfmoves int // plies since the last capture or pawn move
	depth     int
	rng       *rand.Rand
}

// NewMatch sets up the standard opening position.
func NewMatch(depth int, rng *rand.Rand) *Match {
	m := &Match{Turn: White, depth: depth, rng: rng}
	m.pos.epCol = -1
	m.pos.rights = castleRights{true, true, true, true}

	back := [Size]Piece{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for c := 0; c < Size; c++ {
		m.pos.board[0][c] = -back[c]
		m.pos.board[1][c] = -Pawn
		m.pos.board[6][c] = Pawn
		m.pos.board[7][c] = back[c]
	}
	return m
}

// Board returns the current board.
func (m *Match) Board() Board { return m.pos.board }

func colorOf(p Piece) Color {
	switch {
	case p > 0:
		return White
	case p < 0:
		return Black
	}
	return 0
}

func kindOf(p Piece) Piece {
	if p < 0 {
		return -p
	}
	return p
}

func inBounds(r, c int) bool { return r >= 0 && r < Size && c >= 0 && c < Size }

// pawnDir is the row delta a color's pawns advance by.
func pawnDir(side Color) int {
	if side == White {
		return -1
	}
	return 1
}

var knightJumps = [8][2]int{
	{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
	{1, -2}, {1, 2}, {2, -1}, {2, 1},
}

var bishopDirs = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
var rookDirs = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
var royalDirs = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// pseudoMoves lists side's moves ignoring king safety. Castling is
// included only when the intermediate squares are safe, so the final
// legality filter only has to test the king's destination.
func pseudoMoves(p *position, side Color) []Move {
	var out []Move
	b := &p.board
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			piece := b[r][c]
			if piece == Empty || colorOf(piece) != side {
				continue
			}
			switch kindOf(piece) {
			case Pawn:
				out = append(out, pawnMoves(p, r, c, side)...)
			case Knight:
				for _, d := range knightJumps {
					nr, nc := r+d[0], c+d[1]
					if inBounds(nr, nc) && colorOf(b[nr][nc]) != side {
						out = append(out, Move{r, c, nr, nc, 0})
					}
				}
			case Bishop:
				out = append(out, slideMoves(b, r, c, side, bishopDirs[:])...)
			case Rook:
				out = append(out, slideMoves(b, r, c, side, rookDirs[:])...)
			case Queen:
				out = append(out, slideMoves(b, r, c, side, bishopDirs[:])...)
				out = append(out, slideMoves(b, r, c, side, rookDirs[:])...)
			case King:
				for _, d := range royalDirs {
					nr, nc := r+d[0], c+d[1]
					if inBounds(nr, nc) && colorOf(b[nr][nc]) != side {
						out = append(out, Move{r, c, nr, nc, 0})
					}
				}
				out = append(out, castleMoves(p, side)...)
			}
		}
	}
	return out
}

func slideMoves(b *Board, r, c int, side Color, dirs [][2]int) []Move {
	var out []Move
	for _, d := range dirs {
		nr, nc := r+d[0], c+d[1]
		for inBounds(nr, nc) {
			target := b[nr][nc]
			if colorOf(target) == side {
				break
			}
			out = append(out, Move{r, c, nr, nc, 0})
			if target != Empty {
				break
			}
			nr, nc = nr+d[0], nc+d[1]
		}
	}
	return out
}

func pawnMoves(p *position, r, c int, side Color) []Move {
	var out []Move
	b := &p.board
	dir := pawnDir(side)
	startRow, promoRow := 6, 0
	if side == Black {
		startRow, promoRow = 1, 7
	}

	push := func(mv Move) {
		if mv.ToRow == promoRow {
			for _, kind := range []Piece{Queen, Rook, Bishop, Knight} {
				mv.Promotion = kind
				out = append(out, mv)
			}
			return
		}
		out = append(out, mv)
	}

	// Single and double advance.
	if inBounds(r+dir, c) && b[r+dir][c] == Empty {
		push(Move{r, c, r + dir, c, 0})
		if r == startRow && b[r+2*dir][c] == Empty {
			out = append(out, Move{r, c, r + 2*dir, c, 0})
		}
	}

	// Captures, including en passant.
	for _, dc := range [2]int{-1, 1} {
		nr, nc := r+dir, c+dc
		if !inBounds(nr, nc) {
			continue
		}
		target := b[nr][nc]
		if target != Empty && colorOf(target) != side {
			push(Move{r, c, nr, nc, 0})
		}
		if target == Empty && nc == p.epCol && nr == p.epRow {
			out = append(out, Move{r, c, nr, nc, 0})
		}
	}
	return out
}

// castleMoves emits king-side and queen-side castling when rights
// remain, the path is clear, and the king does not pass through check.
func castleMoves(p *position, side Color) []Move {
	var out []Move
	b := &p.board
	row := 7
	kingSide, queenSide := p.rights.whiteKing, p.rights.whiteQueen
	if side == Black {
		row = 0
		kingSide, queenSide = p.rights.blackKing, p.rights.blackQueen
	}
	if b[row][4] != King*Piece(side) || isAttacked(b, row, 4, -side) {
		return nil
	}

	if kingSide && b[row][5] == Empty && b[row][6] == Empty &&
		b[row][7] == Rook*Piece(side) && !isAttacked(b, row, 5, -side) {
		out = append(out, Move{row, 4, row, 6, 0})
	}
	if queenSide && b[row][1] == Empty && b[row][2] == Empty && b[row][3] == Empty &&
		b[row][0] == Rook*Piece(side) && !isAttacked(b, row, 3, -side) {
		out = append(out, Move{row, 4, row, 2, 0})
	}
	return out
}

// isAttacked reports whether (r, c) is attacked by any piece of `by`.
func isAttacked(b *Board, r, c int, by Color) bool {
	// Pawns attack against their direction of travel.
	pr := r - pawnDir(by)
	for _, dc := range [2]int{-1, 1} {
		if inBounds(pr, c+dc) && b[pr][c+dc] == Pawn*Piece(by) {
			return true
		}
	}
	for _, d := range knightJumps {
		nr, nc := r+d[0], c+d[1]
		if inBounds(nr, nc) && b[nr][nc] == Knight*Piece(by) {
			return true
		}
	}
	for _, d := range royalDirs {
		nr, nc := r+d[0], c+d[1]
		if inBounds(nr, nc) && b[nr][nc] == King*Piece(by) {
			return true
		}
	}
	for _, d := range bishopDirs {
		nr, nc := r+d[0], c+d[1]
		for inBounds(nr, nc) {
			p := b[nr][nc]
			if p != Empty {
				if p == Bishop*Piece(by) || p == Queen*Piece(by) {
					return true
				}
				break
			}
			nr, nc = nr+d[0], nc+d[1]
		}
	}
	for _, d := range rookDirs {
		nr, nc := r+d[0], c+d[1]
		for inBounds(nr, nc) {
			p := b[nr][nc]
			if p != Empty {
				if p == Rook*Piece(by) || p == Queen*Piece(by) {
					return true
				}
				break
			}
			nr, nc = nr+d[0], nc+d[1]
		}
	}
	return false
}

// apply plays mv on a copy of the position and returns it, handling
// castling rook hops, en passant captures, promotion, and rights
// bookkeeping. capture reports whether a piece (or pawn, en passant)
// was taken.
func apply(p position, mv Move, side Color) (position, bool) {
	b := &p.board
	piece := b[mv.FromRow][mv.FromCol]
	capture := b[mv.ToRow][mv.ToCol] != Empty

	// En passant capture: pawn moves diagonally onto an empty square.
	if kindOf(piece) == Pawn && mv.ToCol != mv.FromCol && b[mv.ToRow][mv.ToCol] == Empty {
		b[mv.FromRow][mv.ToCol] = Empty
		capture = true
	}

	// Castling: king moves two columns, the rook hops over.
	if kindOf(piece) == King && mv.ToCol-mv.FromCol == 2 {
		b[mv.FromRow][5] = b[mv.FromRow][7]
		b[mv.FromRow][7] = Empty
	} else if kindOf(piece) == King && mv.FromCol-mv.ToCol == 2 {
		b[mv.FromRow][3] = b[mv.FromRow][0]
		b[mv.FromRow][0] = Empty
	}

	b[mv.FromRow][mv.FromCol] = Empty
	placed := piece
	if mv.Promotion != 0 {
		placed = mv.Promotion * Piece(side)
	}
	b[mv.ToRow][mv.ToCol] = placed

	// New en passant target after a double pawn push.
	p.epCol = -1
	if kindOf(piece) == Pawn && (mv.ToRow-mv.FromRow == 2 || mv.FromRow-mv.ToRow == 2) {
		p.epCol = mv.FromCol
		p.epRow = (mv.FromRow + mv.ToRow) / 2
	}

	// Rights lapse when kings or rooks move, or rooks are captured.
	touch := func(r, c int) {
		switch {
		case r == 7 && c == 4:
			p.rights.whiteKing, p.rights.whiteQueen = false, false
		case r == 7 && c == 0:
			p.rights.whiteQueen = false
		case r == 7 && c == 7:
			p.rights.whiteKing = false
		case r == 0 && c == 4:
			p.rights.blackKing, p.rights.blackQueen = false, false
		case r == 0 && c == 0:
			p.rights.blackQueen = false
		case r == 0 && c == 7:
			p.rights.blackKing = false
		}
	}
	touch(mv.FromRow, mv.FromCol)
	touch(mv.ToRow, mv.ToCol)

	return p, capture
}

func kingSquare(b *Board, side Color) (int, int) {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b[r][c] == King*Piece(side) {
				return r, c
			}
		}
	}
	return -1, -1
}

// legalMoves lists every legal move for side.
func legalMoves(p *position, side Color) []Move {
	var out []Move
	for _, mv := range pseudoMoves(p, side) {
		next, _ := apply(*p, mv, side)
		kr, kc := kingSquare(&next.board, side)
		if kr >= 0 && !isAttacked(&next.board, kr, kc, -side) {
			out = append(out, mv)
		}
	}
	return out
}

// Moves lists the legal moves for the side to move.
func (m *Match) Moves() []Move {
	return legalMoves(&m.pos, m.Turn)
}

// InCheck reports whether side's king is attacked.
func (m *Match) InCheck(side Color) bool {
	kr, kc := kingSquare(&m.pos.board, side)
	return kr >= 0 && isAttacked(&m.pos.board, kr, kc, -side)
}

// Play performs mv for the side to move. Moves not in the legal set
// leave the state unchanged and return false. A promotion move with no
// Promotion set promotes to a queen.
func (m *Match) Play(mv Move) bool {
	if m.GameOver() {
		return false
	}
	piece := m.pos.board[mv.FromRow][mv.FromCol]
	promoRow := 0
	if m.Turn == Black {
		promoRow = 7
	}
	if kindOf(piece) == Pawn && mv.ToRow == promoRow && mv.Promotion == 0 {
		mv.Promotion = Queen
	}

	legal := false
	for _, have := range m.Moves() {
		if have == mv {
			legal = true
			break
		}
	}
	if !legal {
		return false
	}

	next, capture := apply(m.pos, mv, m.Turn)
	if capture || kindOf(piece) == Pawn {
		m.halfmoves = 0
	} else {
		m.halfmoves++
	}
	m.pos = next
	m.Turn = -m.Turn
	return true
}

// AIMove chooses and plays Black's move by minimax, breaking ties at
// random. Returns the move played, or nil when Black has none.
func (m *Match) AIMove() *Move {
	if m.GameOver() || m.Turn != Black {
		return nil
	}
	moves := m.Moves()
	if len(moves) == 0 {
		return nil
	}

	best := []Move{moves[0]}
	bestScore := -1 << 30
	for _, mv := range moves {
		next, _ := apply(m.pos, mv, Black)
		score := minimax(&next, m.depth-1, White, -1<<30, 1<<30)
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

// pieceValue is the material value in centipawns.
var pieceValue = map[Piece]int{
	Pawn: 100, Knight: 320, Bishop: 330, Rook: 500, Queen: 900,
}

// minimax evaluates for Black with alpha-beta pruning.
func minimax(p *position, depth int, turn Color, alpha, beta int) int {
	moves := legalMoves(p, turn)
	if len(moves) == 0 {
		kr, kc := kingSquare(&p.board, turn)
		if kr >= 0 && isAttacked(&p.board, kr, kc, -turn) {
			// Checkmate against turn.
			if turn == Black {
				return -1 << 20
			}
			return 1 << 20
		}
		return 0 // stalemate
	}
	if depth <= 0 {
		return evaluate(p, turn, len(moves))
	}

	maximizing := turn == Black
	best := -1 << 30
	if !maximizing {
		best = 1 << 30
	}
	for _, mv := range moves {
		next, _ := apply(*p, mv, turn)
		score := minimax(&next, depth-1, -turn, alpha, beta)
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

// evaluate scores material for Black plus a small mobility term for the
// side to move.
func evaluate(p *position, turn Color, mobility int) int {
	score := 0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			piece := p.board[r][c]
			if piece == Empty || kindOf(piece) == King {
				continue
			}
			v := pieceValue[kindOf(piece)]
			if colorOf(piece) == Black {
				score += v
			} else {
				score -= v
			}
		}
	}
	if turn == Black {
		score += mobility
	} else {
		score -= mobility
	}
	return score
}

// GameOver reports whether the side to move has no legal move or the
// fifty-move rule has run out.
func (m *Match) GameOver() bool {
	return m.halfmoves >= 100 || len(m.Moves()) == 0
}

// Outcome returns the result from White's (the human's) point of view.
func (m *Match) Outcome() game.Outcome {
	if !m.GameOver() {
		return game.InProgress
	}
	if m.halfmoves >= 100 {
		return game.Draw
	}
	if !m.InCheck(m.Turn) {
		return game.Draw // stalemate
	}
	if m.Turn == White {
		return game.Lost
	}
	return game.Won
}

// Score awards a point for a win.
func (m *Match) Score() int64 {
	if m.Outcome() == game.Won {
		return 1
	}
	return 0
}
