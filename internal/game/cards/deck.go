package cards

import "math/rand"

// DeckSize is the number of cards in one standard deck.
const DeckSize = 52

// NewDeck returns the 52 cards of a standard deck in fixed suit-major
// order (clubs A..K, diamonds A..K, spades A..K, hearts A..K) with IDs
// 0..51. Every new round constructs a fresh deck; decks are consumed by
// dealing and never recycled mid-round.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	id := 0
	for _, s := range Suits {
		for _, r := range Ranks {
			deck = append(deck, Card{Suit: s, Rank: r, ID: id})
			id++
		}
	}
	return deck
}

// NewDecks returns n standard decks concatenated, with IDs 0..52n-1 so
// that duplicate suit/rank pairs remain distinguishable.
func NewDecks(n int) []Card {
	deck := make([]Card, 0, DeckSize*n)
	for i := 0; i < n; i++ {
		for _, c := range NewDeck() {
			c.ID += i * DeckSize
			deck = append(deck, c)
		}
	}
	return deck
}

// Shuffle permutes deck in place with a Fisher-Yates shuffle driven by
// rng. Given an unbiased rng every permutation is equally likely.
func Shuffle(deck []Card, rng *rand.Rand) {
	for i := len(deck) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
}

// Shuffled returns a freshly constructed, shuffled standard deck.
func Shuffled(rng *rand.Rand) []Card {
	deck := NewDeck()
	Shuffle(deck, rng)
	return deck
}

// Beats reports whether card a beats card b in a trick where lead is the
// led suit, using ace-high ordering. A card off the led suit never wins;
// there are no trumps in the games that use this.
func Beats(a, b Card, lead Suit) bool {
	if a.Suit != lead {
		return false
	}
	if b.Suit != lead {
		return true
	}
	return RankValueAceHigh(a.Rank) > RankValueAceHigh(b.Rank)
}
