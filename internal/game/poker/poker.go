// Package poker implements a five-card draw engine in the video-poker
// style: stake a bet, receive five cards, hold any subset, draw
// replacements, and get paid on a Jacks-or-better table.
package poker

import (
	"math/rand"

	"github.com/colindiffer/pocketgames/internal/game"
	"github.com/colindiffer/pocketgames/internal/game/cards"
)

// HandSize is the cards in a draw-poker hand.
const HandSize = 5

// StartingTokens is the opening bankroll.
const StartingTokens = 100

// TargetTokens ends the session in the player's favor.
const TargetTokens = 200

// HandRank classifies a five-card hand, weakest first.
type HandRank uint8

const (
	HighCard HandRank = iota
	JacksOrBetter
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

var rankNames = map[HandRank]string{
	HighCard:      "high card",
	JacksOrBetter: "jacks or better",
	TwoPair:       "two pair",
	ThreeOfAKind:  "three of a kind",
	Straight:      "straight",
	Flush:         "flush",
	FullHouse:     "full house",
	FourOfAKind:   "four of a kind",
	StraightFlush: "straight flush",
	RoyalFlush:    "royal flush",
}

func (r HandRank) String() string { return rankNames[r] }

// Paytable maps hand ranks to bet multipliers. Hands absent from the
// table pay nothing.
type Paytable map[HandRank]int

// paytables holds the difficulty variants: the classic full-pay 9/6
// table and its short-pay cousins.
var paytables = map[game.Difficulty]Paytable{
	game.Easy: {
		RoyalFlush: 250, StraightFlush: 50, FourOfAKind: 25,
		FullHouse: 9, Flush: 6, Straight: 4, ThreeOfAKind: 3,
		TwoPair: 2, JacksOrBetter: 1,
	},
	game.Medium: {
		RoyalFlush: 250, StraightFlush: 50, FourOfAKind: 25,
		FullHouse: 8, Flush: 5, Straight: 4, ThreeOfAKind: 3,
		TwoPair: 2, JacksOrBetter: 1,
	},
	game.Hard: {
		RoyalFlush: 250, StraightFlush: 50, FourOfAKind: 25,
		FullHouse: 6, Flush: 5, Straight: 4, ThreeOfAKind: 3,
		TwoPair: 2, JacksOrBetter: 1,
	},
}

// Phase is the round lifecycle stage.
type Phase uint8

const (
	Betting Phase = iota
	Drawing
	Settled
)

// Match is one video-poker session over a token bankroll.
type Match struct {
	Tokens int
	Bet    int
	Phase  Phase
	Hand   []cards.Card

	// LastRank and LastPayout describe the most recent settled round.
	LastRank   HandRank
	LastPayout int

	table Paytable
	deck  []cards.Card
	rng   *rand.Rand
}

// NewMatch opens a session against the given paytable.
func NewMatch(table Paytable, rng *rand.Rand) *Match {
	return &Match{Tokens: StartingTokens, Phase: Betting, table: table, rng: rng}
}

// PlaceBet stakes amount and deals five cards from a fresh shuffle.
func (m *Match) PlaceBet(amount int) bool {
	if m.Phase != Betting || amount < 1 || amount > m.Tokens {
		return false
	}
	m.Bet = amount
	m.Tokens -= amount
	m.deck = cards.Shuffled(m.rng)
	m.Hand = append([]cards.Card(nil), m.deck[:HandSize]...)
	m.deck = m.deck[HandSize:]
	m.Phase = Drawing
	return true
}

// DrawCards replaces every card whose hold flag is false, then settles
// the round against the paytable. hold[i] corresponds to Hand[i].
func (m *Match) DrawCards(hold [HandSize]bool) bool {
	if m.Phase != Drawing {
		return false
	}
	for i := range m.Hand {
		if !hold[i] {
			m.Hand[i] = m.deck[0]
			m.deck = m.deck[1:]
		}
	}

	m.LastRank = Evaluate(m.Hand)
	m.LastPayout = m.table[m.LastRank] * m.Bet
	m.Tokens += m.LastPayout

	if m.Tokens <= 0 || m.Tokens >= TargetTokens {
		m.Phase = Settled
	} else {
		m.Phase = Betting
	}
	return true
}

// Evaluate classifies a five-card hand. Straights accept the wheel
// (A-2-3-4-5) with the ace low.
func Evaluate(hand []cards.Card) HandRank {
	var rankCount [15]int // indexed by ace-high value 2..14
	suitCount := map[cards.Suit]int{}
	for _, c := range hand {
		rankCount[cards.RankValueAceHigh(c.Rank)]++
		suitCount[c.Suit]++
	}

	flush := len(suitCount) == 1
	straight, high := straightHigh(rankCount)

	switch {
	case straight && flush && high == 14:
		return RoyalFlush
	case straight && flush:
		return StraightFlush
	}

	pairs, trips, quads := 0, 0, 0
	pairHigh := 0
	for v := 2; v <= 14; v++ {
		switch rankCount[v] {
		case 2:
			pairs++
			if v > pairHigh {
				pairHigh = v
			}
		case 3:
			trips++
		case 4:
			quads++
		}
	}

	switch {
	case quads == 1:
		return FourOfAKind
	case trips == 1 && pairs == 1:
		return FullHouse
	case flush:
		return Flush
	case straight:
		return Straight
	case trips == 1:
		return ThreeOfAKind
	case pairs == 2:
		return TwoPair
	case pairs == 1 && pairHigh >= 11:
		return JacksOrBetter
	}
	return HighCard
}

// straightHigh reports whether the counted ranks form a straight and
// its high value. The wheel reports a high of 5.
func straightHigh(rankCount [15]int) (bool, int) {
	run := 0
	for v := 2; v <= 14; v++ {
		if rankCount[v] != 1 {
			run = 0
			continue
		}
		run++
		if run == 5 {
			return true, v
		}
	}
	// Wheel: ace plays low under 2-3-4-5.
	if rankCount[14] == 1 && rankCount[2] == 1 && rankCount[3] == 1 &&
		rankCount[4] == 1 && rankCount[5] == 1 {
		return true, 5
	}
	return false, 0
}

// GameOver reports whether the session is finished.
func (m *Match) GameOver() bool { return m.Phase == Settled }

// Outcome returns the session result.
func (m *Match) Outcome() game.Outcome {
	if !m.GameOver() {
		return game.InProgress
	}
	if m.Tokens >= TargetTokens {
		return game.Won
	}
	return game.Lost
}

// Score is the profit over the starting bankroll, floored at zero.
func (m *Match) Score() int64 {
	if m.Tokens > StartingTokens {
		return int64(m.Tokens - StartingTokens)
	}
	return 0
}
