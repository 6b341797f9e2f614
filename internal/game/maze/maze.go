// Package maze implements a maze game: a recursive-backtracker
// generator over an odd-sized wall grid, single-step player movement
// with wall collision, and a reach-the-exit win. Difficulty sets the
// maze dimensions.
package maze

import (
	"math/rand"

	"github.com/colindiffer/pocketgames/internal/game"
	"github.com/colindiffer/pocketgames/internal/game/grid"
)

// Direction is a single-step player move.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

var steps = map[Direction]grid.Coord{
	Up:    {Row: -1, Col: 0},
	Down:  {Row: 1, Col: 0},
	Left:  {Row: 0, Col: -1},
	Right: {Row: 0, Col: 1},
}

// carveDirs fixes the neighbor scan order so generation is
// reproducible for a given seed.
var carveDirs = [4]grid.Coord{{Row: -1}, {Row: 1}, {Col: -1}, {Col: 1}}

// dimensions maps difficulty to the (odd) maze size.
var dimensions = map[game.Difficulty]int{
	game.Easy:   11,
	game.Medium: 21,
	game.Hard:   31,
	game.Expert: 41,
}

// Match is one maze run. Walls[r][c] true means the cell is solid.
type Match struct {
	Walls  *grid.Grid[bool]
	Player grid.Coord
	Exit   grid.Coord
	Moves  int
	gaveUp bool
}

// NewMatch carves a size x size maze with a recursive backtracker. The
// player starts in the top-left room, the exit sits in the
// bottom-right. size must be odd so rooms land on odd coordinates.
func NewMatch(size int, rng *rand.Rand) *Match {
	m := &Match{
		Walls:  grid.New[bool](size, size),
		Player: grid.Coord{Row: 1, Col: 1},
		Exit:   grid.Coord{Row: size - 2, Col: size - 2},
	}
	m.Walls.Fill(true)
	m.carve(rng)
	return m
}

// carve knocks out passages depth-first, backtracking when a room has
// no unvisited neighbors two cells away.
func (m *Match) carve(rng *rand.Rand) {
	start := grid.Coord{Row: 1, Col: 1}
	m.Walls.Set(start.Row, start.Col, false)
	stack := []grid.Coord{start}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]

		var next []grid.Coord
		for _, d := range carveDirs {
			r, c := cur.Row+2*d.Row, cur.Col+2*d.Col
			if m.Walls.InBounds(r, c) && m.Walls.At(r, c) {
				next = append(next, grid.Coord{Row: r, Col: c})
			}
		}
		if len(next) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		chosen := next[rng.Intn(len(next))]
		m.Walls.Set((cur.Row+chosen.Row)/2, (cur.Col+chosen.Col)/2, false)
		m.Walls.Set(chosen.Row, chosen.Col, false)
		stack = append(stack, chosen)
	}
}

// Move steps the player one cell. Walls and edges block: the move is a
// no-op returning false, and does not count.
func (m *Match) Move(dir Direction) bool {
	if m.GameOver() {
		return false
	}
	d, ok := steps[dir]
	if !ok {
		return false
	}
	r, c := m.Player.Row+d.Row, m.Player.Col+d.Col
	if !m.Walls.InBounds(r, c) || m.Walls.At(r, c) {
		return false
	}
	m.Player = grid.Coord{Row: r, Col: c}
	m.Moves++
	return true
}

// GiveUp abandons the run.
func (m *Match) GiveUp() { m.gaveUp = true }

// GameOver reports whether the exit is reached or the run abandoned.
func (m *Match) GameOver() bool {
	return m.gaveUp || m.Player == m.Exit
}

// Outcome returns the result of the run.
func (m *Match) Outcome() game.Outcome {
	switch {
	case m.Player == m.Exit:
		return game.Won
	case m.gaveUp:
		return game.Lost
	}
	return game.InProgress
}

// Score rewards short runs: the cell count minus moves taken, floored
// at one for any win.
func (m *Match) Score() int64 {
	if m.Outcome() != game.Won {
		return 0
	}
	s := int64(m.Walls.Width()*m.Walls.Height()) - int64(m.Moves)
	if s < 1 {
		s = 1
	}
	return s
}
