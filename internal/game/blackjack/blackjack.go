// Package blackjack implements a single-seat blackjack engine: a
// betting/playing/settled round lifecycle over a token bankroll, hit,
// stand and double, soft-ace hand valuation, a dealer that draws to 17
// with a configurable soft-17 rule, and a 3:2 payout for a natural.
package blackjack

import (
	"math/rand"

	"github.com/colindiffer/pocketgames/internal/game"
	"github.com/colindiffer/pocketgames/internal/game/cards"
)

// StartingTokens is the opening bankroll.
const StartingTokens = 100

// TargetTokens ends the session in the player's favor.
const TargetTokens = 200

// reshuffleBelow is the shoe size that triggers a fresh shuffle before
// the next deal. No single round can consume this many cards, so the
// shoe is only ever rebuilt between rounds, while no cards are in play.
const reshuffleBelow = 24

// Phase is the round lifecycle stage.
type Phase uint8

const (
	Betting Phase = iota
	Playing
	Settled
)

// Result is how the last round settled.
type Result uint8

const (
	NoResult Result = iota
	PlayerBlackjack
	PlayerWin
	DealerWin
	Push
)

// Rules is the table configuration, set by difficulty.
type Rules struct {
	Decks            int
	DealerHitsSoft17 bool
}

// tables maps difficulty to table rules.
var tables = map[game.Difficulty]Rules{
	game.Easy:   {Decks: 1, DealerHitsSoft17: false},
	game.Medium: {Decks: 4, DealerHitsSoft17: false},
	game.Hard:   {Decks: 6, DealerHitsSoft17: true},
}

// Match is one blackjack session, played round by round until the
// bankroll is gone or the target is reached.
type Match struct {
	Tokens int
	Bet    int
	Phase  Phase
	Last   Result

	Player []cards.Card
	Dealer []cards.Card

	rules Rules
	shoe  []cards.Card
	rng   *rand.Rand
}

// NewMatch opens a session with a fresh shoe and the starting bankroll.
func NewMatch(rules Rules, rng *rand.Rand) *Match {
	m := &Match{Tokens: StartingTokens, Phase: Betting, rules: rules, rng: rng}
	m.shuffle()
	return m
}

func (m *Match) shuffle() {
	m.shoe = cards.NewDecks(m.rules.Decks)
	cards.Shuffle(m.shoe, m.rng)
}

func (m *Match) draw() cards.Card {
	c := m.shoe[len(m.shoe)-1]
	m.shoe = m.shoe[:len(m.shoe)-1]
	return c
}

// HandValue returns the best total for a hand, counting one ace as 11
// when that does not bust. soft reports whether an ace is currently
// counted as 11.
func HandValue(hand []cards.Card) (total int, soft bool) {
	aces := 0
	for _, c := range hand {
		v := cards.RankValueAceLow(c.Rank)
		if v > 10 {
			v = 10
		}
		if c.Rank == cards.Ace {
			aces++
		}
		total += v
	}
	if aces > 0 && total+10 <= 21 {
		return total + 10, true
	}
	return total, false
}

// isNatural reports a two-card 21.
func isNatural(hand []cards.Card) bool {
	if len(hand) != 2 {
		return false
	}
	total, _ := HandValue(hand)
	return total == 21
}

// PlaceBet stakes amount and deals the round. Naturals settle
// immediately. Returns false outside the betting phase or when the
// amount is not between 1 and the bankroll.
func (m *Match) PlaceBet(amount int) bool {
	if m.Phase != Betting || amount < 1 || amount > m.Tokens {
		return false
	}
	m.Bet = amount
	m.Tokens -= amount
	m.Last = NoResult

	if len(m.shoe) < reshuffleBelow {
		m.shuffle()
	}
	m.Player = []cards.Card{m.draw(), m.draw()}
	m.Dealer = []cards.Card{m.draw(), m.draw()}
	m.Phase = Playing

	if isNatural(m.Player) || isNatural(m.Dealer) {
		m.settle()
	}
	return true
}

// Hit draws one card. Going over 21 ends the round against the player.
func (m *Match) Hit() bool {
	if m.Phase != Playing {
		return false
	}
	m.Player = append(m.Player, m.draw())
	if total, _ := HandValue(m.Player); total > 21 {
		m.settle()
	}
	return true
}

// Stand finishes the player's hand and runs the dealer.
func (m *Match) Stand() bool {
	if m.Phase != Playing {
		return false
	}
	m.settle()
	return true
}

// Double doubles the stake, draws exactly one card, and stands. Only
// available on the first two cards with a bankroll that covers the
// raise.
func (m *Match) Double() bool {
	if m.Phase != Playing || len(m.Player) != 2 || m.Tokens < m.Bet {
		return false
	}
	m.Tokens -= m.Bet
	m.Bet *= 2
	m.Player = append(m.Player, m.draw())
	m.settle()
	return true
}

// settle runs the dealer when needed, resolves the round, and pays out.
func (m *Match) settle() {
	playerTotal, _ := HandValue(m.Player)

	switch {
	case isNatural(m.Player) && isNatural(m.Dealer):
		m.Last = Push
	case isNatural(m.Player):
		m.Last = PlayerBlackjack
	case isNatural(m.Dealer):
		m.Last = DealerWin
	case playerTotal > 21:
		m.Last = DealerWin
	default:
		m.runDealer()
		dealerTotal, _ := HandValue(m.Dealer)
		switch {
		case dealerTotal > 21 || playerTotal > dealerTotal:
			m.Last = PlayerWin
		case playerTotal < dealerTotal:
			m.Last = DealerWin
		default:
			m.Last = Push
		}
	}

	switch m.Last {
	case PlayerBlackjack:
		// 3:2 on the stake.
		m.Tokens += m.Bet + m.Bet*3/2
	case PlayerWin:
		m.Tokens += 2 * m.Bet
	case Push:
		m.Tokens += m.Bet
	}

	if m.Tokens <= 0 || m.Tokens >= TargetTokens {
		m.Phase = Settled
	} else {
		m.Phase = Betting
	}
}

// runDealer draws to 17, hitting soft 17 when the table rules say so.
func (m *Match) runDealer() {
	for {
		total, soft := HandValue(m.Dealer)
		if total > 17 || (total == 17 && !(soft && m.rules.DealerHitsSoft17)) {
			return
		}
		m.Dealer = append(m.Dealer, m.draw())
	}
}

// GameOver reports whether the session is finished: the bankroll ran
// out or reached the target at the end of a round.
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
