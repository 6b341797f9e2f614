// Package klondike implements a Klondike solitaire engine: seven
// tableau columns dealt with face-down cards, a stock and waste with a
// draw-one or draw-three rule, foundations built up by suit from the
// ace, alternating-color descending tableau builds, and the
// king-to-empty-column rule.
package klondike

import (
	"math/rand"

	"github.com/colindiffer/pocketgames/internal/game"
	"github.com/colindiffer/pocketgames/internal/game/cards"
)

// Columns is the number of tableau columns.
const Columns = 7

// drawCount is the difficulty knob: cards turned per draw.
var drawCount = map[game.Difficulty]int{
	game.Easy: 1,
	game.Hard: 3,
}

// Match is one Klondike deal.
type Match struct {
	Stock   []cards.Card
	Waste   []cards.Card
	Tableau [Columns][]cards.Card
	// Foundations holds the top rank per suit in ace-low values, zero
	// when the foundation is empty.
	Foundations map[cards.Suit]int

	Moves  int
	draw   int
	gaveUp bool
}

// NewMatch shuffles and deals: column i receives i+1 cards with only
// the last face up, and the remaining 24 cards form the stock.
func NewMatch(draw int, rng *rand.Rand) *Match {
	m := &Match{Foundations: map[cards.Suit]int{}, draw: draw}
	deck := cards.Shuffled(rng)

	next := 0
	for col := 0; col < Columns; col++ {
		for n := 0; n <= col; n++ {
			c := deck[next]
			next++
			c.FaceUp = n == col
			m.Tableau[col] = append(m.Tableau[col], c)
		}
	}
	m.Stock = append([]cards.Card(nil), deck[next:]...)
	return m
}

// Draw turns up to the draw count from the stock onto the waste. An
// empty stock is recycled from the waste first; with both empty it
// returns false.
func (m *Match) Draw() bool {
	if m.gaveUp {
		return false
	}
	if len(m.Stock) == 0 {
		if len(m.Waste) == 0 {
			return false
		}
		// Recycle: the waste flips back over in reverse order.
		for i := len(m.Waste) - 1; i >= 0; i-- {
			c := m.Waste[i]
			c.FaceUp = false
			m.Stock = append(m.Stock, c)
		}
		m.Waste = nil
	}
	n := m.draw
	if n > len(m.Stock) {
		n = len(m.Stock)
	}
	for i := 0; i < n; i++ {
		c := m.Stock[len(m.Stock)-1]
		m.Stock = m.Stock[:len(m.Stock)-1]
		c.FaceUp = true
		m.Waste = append(m.Waste, c)
	}
	m.Moves++
	return true
}

// fits reports whether card may sit on base in a tableau build.
func fits(card, base cards.Card) bool {
	return cards.RankValueAceLow(card.Rank)+1 == cards.RankValueAceLow(base.Rank) &&
		card.Color() != base.Color()
}

// landable reports whether card may land on column col: kings on empty
// columns, otherwise a valid build on the face-up top.
func (m *Match) landable(card cards.Card, col int) bool {
	pile := m.Tableau[col]
	if len(pile) == 0 {
		return card.Rank == cards.King
	}
	topCard := pile[len(pile)-1]
	return topCard.FaceUp && fits(card, topCard)
}

// flipTop turns the new top of a column face up after a removal.
func (m *Match) flipTop(col int) {
	pile := m.Tableau[col]
	if len(pile) > 0 && !pile[len(pile)-1].FaceUp {
		pile[len(pile)-1].FaceUp = true
	}
}

// WasteToTableau plays the top waste card onto a column.
func (m *Match) WasteToTableau(col int) bool {
	if m.gaveUp || col < 0 || col >= Columns || len(m.Waste) == 0 {
		return false
	}
	card := m.Waste[len(m.Waste)-1]
	if !m.landable(card, col) {
		return false
	}
	m.Waste = m.Waste[:len(m.Waste)-1]
	m.Tableau[col] = append(m.Tableau[col], card)
	m.Moves++
	return true
}

// foundationReady reports whether card is next for its suit.
func (m *Match) foundationReady(card cards.Card) bool {
	return cards.RankValueAceLow(card.Rank) == m.Foundations[card.Suit]+1
}

// WasteToFoundation plays the top waste card onto its foundation.
func (m *Match) WasteToFoundation() bool {
	if m.gaveUp || len(m.Waste) == 0 {
		return false
	}
	card := m.Waste[len(m.Waste)-1]
	if !m.foundationReady(card) {
		return false
	}
	m.Waste = m.Waste[:len(m.Waste)-1]
	m.Foundations[card.Suit]++
	m.Moves++
	return true
}

// TableauToFoundation plays a column's top card onto its foundation and
// flips the card underneath.
func (m *Match) TableauToFoundation(col int) bool {
	if m.gaveUp || col < 0 || col >= Columns || len(m.Tableau[col]) == 0 {
		return false
	}
	card := m.Tableau[col][len(m.Tableau[col])-1]
	if !card.FaceUp || !m.foundationReady(card) {
		return false
	}
	m.Tableau[col] = m.Tableau[col][:len(m.Tableau[col])-1]
	m.Foundations[card.Suit]++
	m.flipTop(col)
	m.Moves++
	return true
}

// MoveRun moves the face-up run starting n cards from the bottom of
// column from onto column to, flipping the uncovered card.
func (m *Match) MoveRun(from, to, n int) bool {
	if m.gaveUp || from == to || from < 0 || from >= Columns || to < 0 || to >= Columns {
		return false
	}
	src := m.Tableau[from]
	if n < 1 || n > len(src) {
		return false
	}
	run := src[len(src)-n:]
	if !run[0].FaceUp {
		return false
	}
	for i := 1; i < len(run); i++ {
		if !fits(run[i], run[i-1]) {
			return false
		}
	}
	if !m.landable(run[0], to) {
		return false
	}

	m.Tableau[to] = append(m.Tableau[to], run...)
	m.Tableau[from] = src[:len(src)-n]
	m.flipTop(from)
	m.Moves++
	return true
}

// GiveUp abandons the deal.
func (m *Match) GiveUp() { m.gaveUp = true }

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
