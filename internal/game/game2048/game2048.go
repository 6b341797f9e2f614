// Package game2048 implements a 2048 engine: four-directional swipes
// over a 4x4 tile board with merge-once-per-swipe semantics, random
// tile spawns, score accumulation, and a difficulty-dependent target
// tile.
package game2048

import (
	"math/rand"

	"github.com/colindiffer/pocketgames/internal/game"
)

// Size is the board dimension.
const Size = 4

// fourChance is the probability a spawned tile is a 4 instead of a 2.
const fourChance = 0.1

// Direction is a swipe direction.
type Direction uint8

const (
	Left Direction = iota
	Right
	Up
	Down
)

// targetTile maps difficulty to the tile that wins the game.
var targetTile = map[game.Difficulty]int{
	game.Easy:   1024,
	game.Medium: 2048,
	game.Hard:   4096,
}

// Board holds tile values, zero for empty cells.
type Board [Size][Size]int

// Match is one 2048 game.
type Match struct {
	Board  Board
	Points int64

	target int
	rng    *rand.Rand
}

// NewMatch starts a game with two spawned tiles.
func NewMatch(target int, rng *rand.Rand) *Match {
	m := &Match{target: target, rng: rng}
	m.spawn()
	m.spawn()
	return m
}

// spawn places a 2 (or, rarely, a 4) on a uniformly random empty cell.
func (m *Match) spawn() {
	var empty [][2]int
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if m.Board[r][c] == 0 {
				empty = append(empty, [2]int{r, c})
			}
		}
	}
	if len(empty) == 0 {
		return
	}
	cell := empty[m.rng.Intn(len(empty))]
	value := 2
	if m.rng.Float64() < fourChance {
		value = 4
	}
	m.Board[cell[0]][cell[1]] = value
}

// mergeLine slides a line toward index 0 and merges equal neighbors at
// most once each, returning the new line and the points gained.
func mergeLine(line [Size]int) ([Size]int, int) {
	var out [Size]int
	n, gained := 0, 0
	canMerge := false
	for _, v := range line {
		if v == 0 {
			continue
		}
		if canMerge && out[n-1] == v {
			out[n-1] *= 2
			gained += out[n-1]
			canMerge = false
		} else {
			out[n] = v
			n++
			canMerge = true
		}
	}
	return out, gained
}

// Swipe pushes every tile in the given direction. Returns false when
// the swipe changes nothing (no tile spawns on a dead swipe).
func (m *Match) Swipe(dir Direction) bool {
	if m.GameOver() {
		return false
	}
	before := m.Board
	gained := 0

	for i := 0; i < Size; i++ {
		line := m.extract(i, dir)
		merged, g := mergeLine(line)
		gained += g
		m.insert(i, dir, merged)
	}

	if m.Board == before {
		return false
	}
	m.Points += int64(gained)
	m.spawn()
	return true
}

// extract reads line i in swipe order: the cell tiles move toward comes
// first.
func (m *Match) extract(i int, dir Direction) [Size]int {
	var line [Size]int
	for j := 0; j < Size; j++ {
		switch dir {
		case Left:
			line[j] = m.Board[i][j]
		case Right:
			line[j] = m.Board[i][Size-1-j]
		case Up:
			line[j] = m.Board[j][i]
		case Down:
			line[j] = m.Board[Size-1-j][i]
		}
	}
	return line
}

// insert writes line i back in the same order extract read it.
func (m *Match) insert(i int, dir Direction, line [Size]int) {
	for j := 0; j < Size; j++ {
		switch dir {
		case Left:
			m.Board[i][j] = line[j]
		case Right:
			m.Board[i][Size-1-j] = line[j]
		case Up:
			m.Board[j][i] = line[j]
		case Down:
			m.Board[Size-1-j][i] = line[j]
		}
	}
}

// Highest returns the largest tile on the board.
func (m *Match) Highest() int {
	best := 0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if m.Board[r][c] > best {
				best = m.Board[r][c]
			}
		}
	}
	return best
}

// movable reports whether any swipe could change the board.
func (m *Match) movable() bool {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			v := m.Board[r][c]
			if v == 0 {
				return true
			}
			if c+1 < Size && m.Board[r][c+1] == v {
				return true
			}
			if r+1 < Size && m.Board[r+1][c] == v {
				return true
			}
		}
	}
	return false
}

// GameOver reports whether the target tile is reached or no swipe can
// change the board.
func (m *Match) GameOver() bool {
	return m.Highest() >= m.target || !m.movable()
}

// Outcome returns the result: reaching the target tile wins.
func (m *Match) Outcome() game.Outcome {
	switch {
	case m.Highest() >= m.target:
		return game.Won
	case !m.movable():
		return game.Lost
	}
	return game.InProgress
}

// Score is the accumulated merge total.
func (m *Match) Score() int64 { return m.Points }
