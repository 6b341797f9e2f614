// Package cards provides the playing-card primitives shared by every
// card-game engine: deck construction, Fisher-Yates shuffling, rank and
// suit ordering, and color classification for alternating-color tableau
// rules.
//
// Rank ordering is context-dependent across the collection: trick and
// showdown games treat the ace as high, tableau-building games treat it
// as low. Both orderings are exported by name and callers pick one
// explicitly; there is deliberately no single RankValue function.
package cards

// Suit is one of the four French suits.
type Suit string

const (
	Clubs    Suit = "clubs"
	Diamonds Suit = "diamonds"
	Spades   Suit = "spades"
	Hearts   Suit = "hearts"
)

// Suits lists all suits in deck construction order.
var Suits = []Suit{Clubs, Diamonds, Spades, Hearts}

// Rank is a card rank: "A", "2".."10", "J", "Q", "K".
type Rank string

const (
	Ace   Rank = "A"
	Two   Rank = "2"
	Three Rank = "3"
	Four  Rank = "4"
	Five  Rank = "5"
	Six   Rank = "6"
	Seven Rank = "7"
	Eight Rank = "8"
	Nine  Rank = "9"
	Ten   Rank = "10"
	Jack  Rank = "J"
	Queen Rank = "Q"
	King  Rank = "K"
)

// Ranks lists all ranks in ascending ace-low order.
var Ranks = []Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

// Color classifies suits for alternating-color tableau building.
type Color string

const (
	Red   Color = "red"
	Black Color = "black"
)

// Card is one physical playing card. ID is unique per physical card, so
// multi-deck games can tell two copies of the same suit/rank apart.
// Cards are treated as values and never mutated once dealt, except for
// the FaceUp marker which piles flip as play progresses.
type Card struct {
	Suit   Suit
	Rank   Rank
	ID     int
	FaceUp bool
}

// String returns a short human-readable form like "A♠" or "10♥".
func (c Card) String() string {
	sym := map[Suit]string{Clubs: "♣", Diamonds: "♦", Spades: "♠", Hearts: "♥"}
	return string(c.Rank) + sym[c.Suit]
}

// Color returns the card's color.
func (c Card) Color() Color {
	return SuitColor(c.Suit)
}

// SuitColor returns red for hearts/diamonds and black for clubs/spades.
func SuitColor(s Suit) Color {
	if s == Hearts || s == Diamonds {
		return Red
	}
	return Black
}

// RankValueAceLow maps ranks to 1..13 with the ace low. This is the
// ordering used for tableau building (FreeCell, Klondike) and for
// foundation sequencing.
func RankValueAceLow(r Rank) int {
	for i, rr := range Ranks {
		if rr == r {
			return i + 1
		}
	}
	return 0
}

// RankValueAceHigh maps ranks to 2..14 with the ace high. This is the
// ordering used by trick-taking and showdown games (Hearts, Poker).
func RankValueAceHigh(r Rank) int {
	if r == Ace {
		return 14
	}
	return RankValueAceLow(r)
}
