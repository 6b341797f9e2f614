// Package freecell implements a FreeCell engine: eight tableau columns,
// free cells, and four foundations. Tableau runs build down in
// alternating colors with the ace low, foundations build up by suit
// from the ace, and multi-card runs move under the classic supermove
// capacity, halved when the run lands on an empty column.
package freecell

import (
	"math/rand"

	"github.com/colindiffer/pocketgames/internal/game"
	"github.com/colindiffer/pocketgames/internal/game/cards"
)

// Columns is the number of tableau columns.
const Columns = 8

// MaxCells is the full complement of free cells.
const MaxCells = 4

// cellCount is the difficulty knob: fewer free cells make the same
// deals considerably tighter.
var cellCount = map[game.Difficulty]int{
	game.Easy:   4,
	game.Medium: 3,
	game.Hard:   2,
}

// Match is one FreeCell deal.
type Match struct {
	Tableau [Columns][]cards.Card
	Cells   []*cards.Card // nil entries are empty
	// Foundations holds the top rank per suit in ace-low values, zero
	// when the foundation is empty.
	Foundations map[cards.Suit]int

	Moves  int
	gaveUp bool
}

// NewMatch shuffles and deals a fresh game: the first four columns get
// seven cards, the rest six.
func NewMatch(cells int, rng *rand.Rand) *Match {
	m := &Match{
		Cells:       make([]*cards.Card, cells),
		Foundations: map[cards.Suit]int{},
	}
	deck := cards.Shuffled(rng)
	for i := range deck {
		deck[i].FaceUp = true
		col := i % Columns
		m.Tableau[col] = append(m.Tableau[col], deck[i])
	}
	return m
}

func top(col []cards.Card) *cards.Card {
	if len(col) == 0 {
		return nil
	}
	return &col[len(col)-1]
}

// fits reports whether card may sit on base in a tableau run:
// descending by one, alternating color.
func fits(card, base cards.Card) bool {
	return cards.RankValueAceLow(card.Rank)+1 == cards.RankValueAceLow(base.Rank) &&
		card.Color() != base.Color()
}

// freeCells counts empty cells.
func (m *Match) freeCells() int {
	n := 0
	for _, c := range m.Cells {
		if c == nil {
			n++
		}
	}
	return n
}

// emptyColumns counts empty tableau columns.
func (m *Match) emptyColumns() int {
	n := 0
	for i := range m.Tableau {
		if len(m.Tableau[i]) == 0 {
			n++
		}
	}
	return n
}

// Capacity is the largest run currently movable onto a non-empty
// column: (1 + free cells) doubled per empty column.
func (m *Match) Capacity() int {
	return (1 + m.freeCells()) << m.emptyColumns()
}

// ToCell moves the top card of a column into the first empty cell.
func (m *Match) ToCell(col int) bool {
	if m.gaveUp || col < 0 || col >= Columns {
		return false
	}
	card := top(m.Tableau[col])
	if card == nil {
		return false
	}
	for i, c := range m.Cells {
		if c == nil {
			moved := *card
			m.Cells[i] = &moved
			m.Tableau[col] = m.Tableau[col][:len(m.Tableau[col])-1]
			m.Moves++
			return true
		}
	}
	return false
}

// FromCell moves the card in cell onto a tableau column.
func (m *Match) FromCell(cell, col int) bool {
	if m.gaveUp || cell < 0 || cell >= len(m.Cells) || m.Cells[cell] == nil {
		return false
	}
	if col < 0 || col >= Columns {
		return false
	}
	card := *m.Cells[cell]
	if base := top(m.Tableau[col]); base != nil && !fits(card, *base) {
		return false
	}
	m.Tableau[col] = append(m.Tableau[col], card)
	m.Cells[cell] = nil
	m.Moves++
	return true
}

// foundationReady reports whether card is the next card for its suit's
// foundation.
func (m *Match) foundationReady(card cards.Card) bool {
	return cards.RankValueAceLow(card.Rank) == m.Foundations[card.Suit]+1
}

// ToFoundation moves the top card of a column to its foundation.
func (m *Match) ToFoundation(col int) bool {
	if m.gaveUp || col < 0 || col >= Columns {
		return false
	}
	card := top(m.Tableau[col])
	if card == nil || !m.foundationReady(*card) {
		return false
	}
	m.Foundations[card.Suit]++
	m.Tableau[col] = m.Tableau[col][:len(m.Tableau[col])-1]
	m.Moves++
	return true
}

// CellToFoundation moves a held card to its foundation.
func (m *Match) CellToFoundation(cell int) bool {
	if m.gaveUp || cell < 0 || cell >= len(m.Cells) || m.Cells[cell] == nil {
		return false
	}
	card := *m.Cells[cell]
	if !m.foundationReady(card) {
		return false
	}
	m.Foundations[card.Suit]++
	m.Cells[cell] = nil
	m.Moves++
	return true
}

// MoveRun moves the bottom n cards of column from onto column to. The
// carried cards must already form a valid run, the run must fit the
// destination, and n must be within the supermove capacity, which is
// halved when the destination column is empty.
func (m *Match) MoveRun(from, to, n int) bool {
	if m.gaveUp || from == to || from < 0 || from >= Columns || to < 0 || to >= Columns {
		return false
	}
	src := m.Tableau[from]
	if n < 1 || n > len(src) {
		return false
	}
	run := src[len(src)-n:]
	for i := 1; i < len(run); i++ {
		if !fits(run[i], run[i-1]) {
			return false
		}
	}

	capacity := m.Capacity()
	if len(m.Tableau[to]) == 0 {
		capacity /= 2
	} else if base := top(m.Tableau[to]); !fits(run[0], *base) {
		return false
	}
	if n > capacity {
		return false
	}

	m.Tableau[to] = append(m.Tableau[to], run...)
	m.Tableau[from] = src[:len(src)-n]
	m.Moves++
	return true
}

// AutoMoves repeatedly plays safe foundation moves: aces and twos
// always, higher cards only once both opposite-color foundations have
// reached the rank below. Returns the number of cards moved.
func (m *Match) AutoMoves() int {
	moved := 0
	for {
		progress := false
		for col := 0; col < Columns; col++ {
			if card := top(m.Tableau[col]); card != nil && m.safeToFoundation(*card) && m.ToFoundation(col) {
				progress = true
				moved++
			}
		}
		for cell := range m.Cells {
			if m.Cells[cell] != nil && m.safeToFoundation(*m.Cells[cell]) && m.CellToFoundation(cell) {
				progress = true
				moved++
			}
		}
		if !progress {
			return moved
		}
	}
}

func (m *Match) safeToFoundation(card cards.Card) bool {
	v := cards.RankValueAceLow(card.Rank)
	if !m.foundationReady(card) {
		return false
	}
	if v <= 2 {
		return true
	}
	for _, suit := range cards.Suits {
		if cards.SuitColor(suit) != card.Color() && m.Foundations[suit] < v-1 {
			return false
		}
	}
	return true
}

// GiveUp abandons the deal.
func (m *Match) GiveUp() { m.gaveUp = true }

// founded counts cards on the foundations.
func (m *Match) founded() int {
	n := 0
	for _, v := range m.Foundations {
		n += v
	}
	return n
}

// GameOver reports whether the deal is won or abandoned.
func (m *Match) GameOver() bool {
	return m.gaveUp || m.founded() == cards.DeckSize
}

// Outcome returns the result of the deal.
func (m *Match) Outcome() game.Outcome {
	switch {
	case m.founded() == cards.DeckSize:
		return game.Won
	case m.gaveUp:
		return game.Lost
	}
	return game.InProgress
}

// Score counts cards settled on the foundations.
func (m *Match) Score() int64 { return int64(m.founded()) }
