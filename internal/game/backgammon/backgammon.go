// Package backgammon implements a backgammon rule engine: 24 points
// plus bar and borne-off trays per color, dice-driven move legality
// (bar entry first, bearing off only with every checker home), and a
// priority-heuristic computer opponent.
//
// Points are numbered 0..23 from White's perspective: White moves from
// high points toward 0 and bears off from points 0..5; Red moves toward
// 23 and bears off from 18..23.
package backgammon

import (
	"math/rand"

	"github.com/colindiffer/pocketgames/internal/game"
)

// Points is the number of board points.
const Points = 24

// CheckersPerSide is each color's checker count.
const CheckersPerSide = 15

// Color identifies a side. White is the human.
type Color int8

const (
	White Color = iota
	Red
)

func (c Color) opponent() Color {
	if c == White {
		return Red
	}
	return White
}

// Move is a single checker placement for one die. FromBar enters from
// the bar; Off bears the checker off. From and To are point indexes in
// the mover's own direction of travel.
type Move struct {
	From    int
	To      int
	FromBar bool
	Off     bool
	Die     int
}

// aiErrorChance is the probability the computer plays a random legal
// move instead of its heuristic pick, per difficulty.
var aiErrorChance = map[game.Difficulty]float64{
	game.Easy:   0.60,
	game.Medium: 0.30,
	game.Hard:   0.05,
}

// Match is one backgammon game between White (human) and Red (AI).
type Match struct {
	// Board[p] holds the checker count on point p; Owner[p] says whose
	// they are (meaningless when the count is zero).
	Board [Points]int
	Owner [Points]Color

	Bar  [2]int // checkers on the bar, indexed by Color
	Off  [2]int // checkers borne off, indexed by Color
	Turn Color

	// Dice holds the remaining unplayed dice for the current roll.
	// Doubles appear four times.
	Dice []int

	errorChance float64
	rng         *rand.Rand
}

// NewMatch sets up the standard starting position and rolls White's
// first dice.
func NewMatch(errorChance float64, rng *rand.Rand) *Match {
	m := &Match{Turn: White, errorChance: errorChance, rng: rng}

	// Standard layout, mirrored for the two colors.
	place := func(p, n int, c Color) {
		m.Board[p] = n
		m.Owner[p] = c
	}
	place(23, 2, White)
	place(12, 5, White)
	place(7, 3, White)
	place(5, 5, White)
	place(0, 2, Red)
	place(11, 5, Red)
	place(16, 3, Red)
	place(18, 5, Red)

	m.Roll()
	return m
}

// Roll rolls a fresh pair of dice for the side to move. Doubles yield
// four dice. A roll with no legal placement is a dance: the turn
// forfeits and the opponent rolls instead.
func (m *Match) Roll() {
	for !m.GameOver() {
		a, b := m.rng.Intn(6)+1, m.rng.Intn(6)+1
		if a == b {
			m.Dice = []int{a, a, a, a}
		} else {
			m.Dice = []int{a, b}
		}
		if len(m.ValidMoves()) > 0 {
			return
		}
		m.Turn = m.Turn.opponent()
	}
}

// dest returns the landing point for a checker of color c moving die
// pips from point p, or a value outside 0..23 when it runs off the end.
func dest(p int, die int, c Color) int {
	if c == White {
		return p - die
	}
	return p + die
}

// entryPoint is where color c enters from the bar with a given die.
func entryPoint(die int, c Color) int {
	if c == White {
		return Points - die
	}
	return die - 1
}

// open reports whether color c may land on point p: empty, own, or a
// lone opposing blot.
func (m *Match) open(p int, c Color) bool {
	return m.Board[p] == 0 || m.Owner[p] == c || m.Board[p] == 1
}

// allHome reports whether every checker of c is in its home board.
func (m *Match) allHome(c Color) bool {
	if m.Bar[c] > 0 {
		return false
	}
	for p := 0; p < Points; p++ {
		if m.Board[p] == 0 || m.Owner[p] != c {
			continue
		}
		if c == White && p > 5 {
			return false
		}
		if c == Red && p < 18 {
			return false
		}
	}
	return true
}

// pipsToOff is the exact die value that bears off from point p.
func pipsToOff(p int, c Color) int {
	if c == White {
		return p + 1
	}
	return Points - p
}

// ValidMoves lists every legal single-die placement for the side to
// move with the remaining dice. With checkers on the bar only entry
// moves are offered.
func (m *Match) ValidMoves() []Move {
	c := m.Turn
	seen := map[int]bool{}
	var out []Move
	for _, die := range m.Dice {
		if seen[die] {
			continue
		}
		seen[die] = true
		out = append(out, m.movesForDie(die, c)...)
	}
	return out
}

func (m *Match) movesForDie(die int, c Color) []Move {
	var out []Move

	if m.Bar[c] > 0 {
		p := entryPoint(die, c)
		if m.open(p, c) {
			out = append(out, Move{To: p, FromBar: true, Die: die})
		}
		return out
	}

	bearing := m.allHome(c)
	for p := 0; p < Points; p++ {
		if m.Board[p] == 0 || m.Owner[p] != c {
			continue
		}
		d := dest(p, die, c)
		if d >= 0 && d < Points {
			if m.open(d, c) {
				out = append(out, Move{From: p, To: d, Die: die})
			}
			continue
		}
		if !bearing {
			continue
		}
		// Exact bear-off, or an oversized die from the rearmost point.
		need := pipsToOff(p, c)
		if die == need || (die > need && m.isRearmost(p, c)) {
			out = append(out, Move{From: p, Off: true, Die: die})
		}
	}
	return out
}

// isRearmost reports whether p is c's furthest-from-home occupied point
// within the home board.
func (m *Match) isRearmost(p int, c Color) bool {
	if c == White {
		for q := p + 1; q <= 5; q++ {
			if m.Board[q] > 0 && m.Owner[q] == c {
				return false
			}
		}
		return true
	}
	for q := p - 1; q >= 18; q-- {
		if m.Board[q] > 0 && m.Owner[q] == c {
			return false
		}
	}
	return true
}

// Play performs one single-die placement for the side to move. Illegal
// moves leave the state unchanged and return false. When the last die
// is consumed the turn passes and the opponent's dice are rolled.
func (m *Match) Play(mv Move) bool {
	if m.GameOver() {
		return false
	}
	legal := false
	for _, have := range m.ValidMoves() {
		if have == mv {
			legal = true
			break
		}
	}
	if !legal {
		return false
	}

	c := m.Turn
	if mv.FromBar {
		m.Bar[c]--
	} else {
		m.Board[mv.From]--
	}

	if mv.Off {
		m.Off[c]++
	} else {
		// Hit a blot.
		if m.Board[mv.To] == 1 && m.Owner[mv.To] != c {
			m.Board[mv.To] = 0
			m.Bar[c.opponent()]++
		}
		m.Board[mv.To]++
		m.Owner[mv.To] = c
	}

	m.consumeDie(mv.Die)
	if m.GameOver() {
		return true
	}
	if len(m.Dice) == 0 || len(m.ValidMoves()) == 0 {
		m.Turn = c.opponent()
		m.Roll()
	}
	return true
}

func (m *Match) consumeDie(die int) {
	for i, d := range m.Dice {
		if d == die {
			m.Dice = append(m.Dice[:i], m.Dice[i+1:]...)
			return
		}
	}
}

// AIMove picks and plays one placement for Red: enter from the bar
// first, then bear off when possible, otherwise a random legal move.
// At lower difficulties the heuristic is sometimes skipped entirely.
// Returns the move played, or nil when it is not Red's turn.
func (m *Match) AIMove() *Move {
	if m.GameOver() || m.Turn != Red {
		return nil
	}
	moves := m.ValidMoves()
	if len(moves) == 0 {
		return nil
	}

	chosen := moves[m.rng.Intn(len(moves))]
	if m.rng.Float64() >= m.errorChance {
		for _, mv := range moves {
			if mv.FromBar {
				chosen = mv
				break
			}
			if mv.Off {
				chosen = mv
			}
		}
	}
	m.Play(chosen)
	return &chosen
}

// GameOver reports whether either side has borne off all checkers.
func (m *Match) GameOver() bool {
	return m.Off[White] == CheckersPerSide || m.Off[Red] == CheckersPerSide
}

// Outcome returns the result from White's (the human's) point of view.
func (m *Match) Outcome() game.Outcome {
	switch {
	case m.Off[White] == CheckersPerSide:
		return game.Won
	case m.Off[Red] == CheckersPerSide:
		return game.Lost
	}
	return game.InProgress
}

// Score counts White's borne-off checkers, doubled for a gammon (Red
// bore off nothing).
func (m *Match) Score() int64 {
	s := int64(m.Off[White])
	if m.Outcome() == game.Won && m.Off[Red] == 0 {
		s *= 2
	}
	return s
}
