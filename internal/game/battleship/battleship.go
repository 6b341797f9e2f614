// Package battleship implements a Battleship engine: a 10x10 ocean per
// side, the classic five-ship fleet, placement validation, strike
// resolution (miss, hit, sunk, repeat), and a uniform-random enemy
// gunner.
package battleship

import (
	"math/rand"

	"github.com/colindiffer/pocketgames/internal/game"
	"github.com/colindiffer/pocketgames/internal/game/grid"
)

// Size is the board dimension.
const Size = 10

// Fleet lists the ship lengths each side places.
var Fleet = []int{5, 4, 3, 3, 2}

// Phase is the match lifecycle stage.
type Phase uint8

const (
	Placing Phase = iota
	Firing
	Settled
)

// StrikeResult is the outcome of one shot.
type StrikeResult uint8

const (
	Repeat StrikeResult = iota // cell already struck, turn wasted
	Miss
	Hit
	Sunk
)

// Ship is one placed vessel.
type Ship struct {
	Cells []grid.Coord
	Hits  int
}

// Sunk reports whether every cell has been hit.
func (s *Ship) Sunk() bool { return s.Hits == len(s.Cells) }

// Board is one side's ocean: ship occupancy plus strike marks.
type Board struct {
	ships  []Ship
	occupy *grid.Grid[int] // ship index +1, zero when empty
	struck *grid.Grid[bool]
}

func newBoard() *Board {
	return &Board{
		occupy: grid.New[int](Size, Size),
		struck: grid.New[bool](Size, Size),
	}
}

// CanPlace reports whether a ship of the given length fits at (row,
// col) heading right (horizontal) or down: inside the board and not
// overlapping another ship.
func (b *Board) CanPlace(length, row, col int, horizontal bool) bool {
	for i := 0; i < length; i++ {
		r, c := row, col
		if horizontal {
			c += i
		} else {
			r += i
		}
		if !b.occupy.InBounds(r, c) || b.occupy.At(r, c) != 0 {
			return false
		}
	}
	return true
}

// place adds the ship. Callers must have checked CanPlace.
func (b *Board) place(length, row, col int, horizontal bool) {
	ship := Ship{}
	for i := 0; i < length; i++ {
		r, c := row, col
		if horizontal {
			c += i
		} else {
			r += i
		}
		ship.Cells = append(ship.Cells, grid.Coord{Row: r, Col: c})
	}
	b.ships = append(b.ships, ship)
	for _, cell := range ship.Cells {
		b.occupy.Set(cell.Row, cell.Col, len(b.ships))
	}
}

// randomFleet places the whole fleet at random.
func (b *Board) randomFleet(rng *rand.Rand) {
	for _, length := range Fleet {
		for {
			row, col := rng.Intn(Size), rng.Intn(Size)
			horizontal := rng.Intn(2) == 0
			if b.CanPlace(length, row, col, horizontal) {
				b.place(length, row, col, horizontal)
				break
			}
		}
	}
}

// strike marks a cell and resolves the shot.
func (b *Board) strike(row, col int) StrikeResult {
	if b.struck.At(row, col) {
		return Repeat
	}
	b.struck.Set(row, col, true)
	idx := b.occupy.At(row, col)
	if idx == 0 {
		return Miss
	}
	ship := &b.ships[idx-1]
	ship.Hits++
	if ship.Sunk() {
		return Sunk
	}
	return Hit
}

// defeated reports whether the whole fleet is sunk.
func (b *Board) defeated() bool {
	for i := range b.ships {
		if !b.ships[i].Sunk() {
			return false
		}
	}
	return len(b.ships) == len(Fleet)
}

// Match is one battleship game against a random-fire opponent.
type Match struct {
	player *Board // the human's fleet, fired at by the enemy
	enemy  *Board // the enemy's fleet, fired at by the human

	Phase Phase
	Shots int
	rng   *rand.Rand
}

// NewMatch creates a game with the enemy fleet already placed. The
// human places ships with PlaceShip (or AutoPlace) before firing.
func NewMatch(rng *rand.Rand) *Match {
	m := &Match{player: newBoard(), enemy: newBoard(), Phase: Placing, rng: rng}
	m.enemy.randomFleet(rng)
	return m
}

// PlaceShip places the human's next fleet ship (largest first) at the
// given position. The match moves to the firing phase once the whole
// fleet is down.
func (m *Match) PlaceShip(row, col int, horizontal bool) bool {
	if m.Phase != Placing {
		return false
	}
	length := Fleet[len(m.player.ships)]
	if !m.player.CanPlace(length, row, col, horizontal) {
		return false
	}
	m.player.place(length, row, col, horizontal)
	if len(m.player.ships) == len(Fleet) {
		m.Phase = Firing
	}
	return true
}

// PlacedShips reports how many of the human's ships are down.
func (m *Match) PlacedShips() int { return len(m.player.ships) }

// AutoPlace finishes the human's placement at random.
func (m *Match) AutoPlace() bool {
	if m.Phase != Placing {
		return false
	}
	for _, length := range Fleet[len(m.player.ships):] {
		for {
			row, col := m.rng.Intn(Size), m.rng.Intn(Size)
			horizontal := m.rng.Intn(2) == 0
			if m.player.CanPlace(length, row, col, horizontal) {
				m.player.place(length, row, col, horizontal)
				break
			}
		}
	}
	m.Phase = Firing
	return true
}

// Fire resolves the human's shot at the enemy board, then the enemy
// answers with a uniformly random shot at an unstruck cell of the
// human's board. A repeated cell wastes the turn.
func (m *Match) Fire(row, col int) (StrikeResult, bool) {
	if m.Phase != Firing || !m.enemy.occupy.InBounds(row, col) {
		return Repeat, false
	}
	result := m.enemy.strike(row, col)
	m.Shots++
	if m.enemy.defeated() {
		m.Phase = Settled
		return result, true
	}

	m.enemyShot()
	if m.player.defeated() {
		m.Phase = Settled
	}
	return result, true
}

// enemyShot fires at a uniformly random unstruck cell.
func (m *Match) enemyShot() {
	var open []grid.Coord
	m.player.struck.Each(func(r, c int, hit bool) {
		if !hit {
			open = append(open, grid.Coord{Row: r, Col: c})
		}
	})
	if len(open) == 0 {
		return
	}
	cell := open[m.rng.Intn(len(open))]
	m.player.strike(cell.Row, cell.Col)
}

// EnemyStruck reports whether the enemy has fired at (row, col) on the
// human's board.
func (m *Match) EnemyStruck(row, col int) bool {
	return m.player.struck.At(row, col)
}

// GameOver reports whether either fleet is fully sunk.
func (m *Match) GameOver() bool { return m.Phase == Settled }

// Outcome returns the result for the human.
func (m *Match) Outcome() game.Outcome {
	if !m.GameOver() {
		return game.InProgress
	}
	if m.enemy.defeated() {
		return game.Won
	}
	return game.Lost
}

// Score rewards economy of fire: the fewer shots taken to win, the
// higher the score.
func (m *Match) Score() int64 {
	if m.Outcome() != game.Won {
		return 0
	}
	return int64(Size*Size - m.Shots)
}
