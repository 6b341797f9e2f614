// Package hearts implements a four-player Hearts rule engine: rotating
// pass direction, 2♣ opening lead, follow-suit enforcement, the
// hearts-broken and no-points-on-the-first-trick rules, round scoring
// with shoot-the-moon reversal, and heuristic card play for the three
// computer seats.
//
// Seat 0 is the human; play proceeds clockwise through seats 1..3.
package hearts

import (
	"math/rand"
	"sort"

	"github.com/colindiffer/pocketgames/internal/game"
	"github.com/colindiffer/pocketgames/internal/game/cards"
)

// Seats is the number of players.
const Seats = 4

// LosingScore ends the game when any player reaches it.
const LosingScore = 100

// PassCount is how many cards each player passes.
const PassCount = 3

// Phase is the round lifecycle stage.
type Phase uint8

const (
	Passing Phase = iota
	Playing
	Settled
)

// PassDirection is where passed cards go, rotating each round.
type PassDirection uint8

const (
	PassLeft PassDirection = iota
	PassRight
	PassAcross
	PassHold
)

// aiErrorChance is the probability a computer seat ignores its
// heuristic and plays a random legal card.
var aiErrorChance = map[game.Difficulty]float64{
	game.Easy:   0.50,
	game.Medium: 0.25,
	game.Hard:   0.05,
}

// Match is one game of Hearts to LosingScore points.
type Match struct {
	Hands  [Seats][]cards.Card
	Scores [Seats]int // running game totals
	Round  [Seats]int // points taken this round

	Phase Phase
	Turn  int // seat to act during Playing

	// Trick holds the cards played so far this trick; TrickSeats[i] is
	// the seat that played Trick[i].
	Trick      []cards.Card
	TrickSeats []int

	RoundNum     int
	heartsBroken bool
	firstTrick   bool
	tricksPlayed int

	errorChance float64
	rng         *rand.Rand
}

// NewMatch deals the first round and opens the passing phase.
func NewMatch(errorChance float64, rng *rand.Rand) *Match {
	m := &Match{errorChance: errorChance, rng: rng}
	m.deal()
	return m
}

// deal starts a fresh round: shuffle, 13 cards each, and either the
// passing phase or straight to play on a hold round.
func (m *Match) deal() {
	deck := cards.Shuffled(m.rng)
	for s := 0; s < Seats; s++ {
		hand := append([]cards.Card(nil), deck[s*13:(s+1)*13]...)
		sortHand(hand)
		m.Hands[s] = hand
		m.Round[s] = 0
	}
	m.Trick = nil
	m.TrickSeats = nil
	m.heartsBroken = false
	m.firstTrick = true
	m.tricksPlayed = 0

	if m.Direction() == PassHold {
		m.Phase = Playing
		m.Turn = m.clubsTwoHolder()
	} else {
		m.Phase = Passing
	}
}

// Direction returns this round's pass direction.
func (m *Match) Direction() PassDirection {
	return PassDirection(m.RoundNum % 4)
}

func sortHand(hand []cards.Card) {
	sort.Slice(hand, func(i, j int) bool {
		if hand[i].Suit != hand[j].Suit {
			return hand[i].Suit < hand[j].Suit
		}
		return cards.RankValueAceHigh(hand[i].Rank) < cards.RankValueAceHigh(hand[j].Rank)
	})
}

func (m *Match) clubsTwoHolder() int {
	for s := 0; s < Seats; s++ {
		for _, c := range m.Hands[s] {
			if c.Suit == cards.Clubs && c.Rank == cards.Two {
				return s
			}
		}
	}
	return 0
}

func handIndex(hand []cards.Card, c cards.Card) int {
	for i, have := range hand {
		if have.ID == c.ID {
			return i
		}
	}
	return -1
}

func isPoint(c cards.Card) bool {
	return c.Suit == cards.Hearts ||
		(c.Suit == cards.Spades && c.Rank == cards.Queen)
}

// Pass submits the human's three cards for this round's pass. The
// computer seats pass simultaneously, cards are exchanged, and play
// opens with the 2♣ holder. Returns false outside the passing phase or
// when the cards are not three distinct cards from the hand.
func (m *Match) Pass(chosen [PassCount]cards.Card) bool {
	if m.Phase != Passing {
		return false
	}
	seen := map[int]bool{}
	for _, c := range chosen {
		if handIndex(m.Hands[0], c) < 0 || seen[c.ID] {
			return false
		}
		seen[c.ID] = true
	}

	var outgoing [Seats][]cards.Card
	outgoing[0] = chosen[:]
	for s := 1; s < Seats; s++ {
		outgoing[s] = m.aiPassPick(s)
	}
	for s := 0; s < Seats; s++ {
		for _, c := range outgoing[s] {
			i := handIndex(m.Hands[s], c)
			m.Hands[s] = append(m.Hands[s][:i], m.Hands[s][i+1:]...)
		}
	}

	shift := map[PassDirection]int{PassLeft: 1, PassRight: 3, PassAcross: 2}[m.Direction()]
	for s := 0; s < Seats; s++ {
		to := (s + shift) % Seats
		m.Hands[to] = append(m.Hands[to], outgoing[s]...)
	}
	for s := 0; s < Seats; s++ {
		sortHand(m.Hands[s])
	}

	m.Phase = Playing
	m.Turn = m.clubsTwoHolder()
	return true
}

// aiPassPick chooses a computer seat's pass: its highest-ranked cards,
// with the queen of spades and high spades first.
func (m *Match) aiPassPick(seat int) []cards.Card {
	hand := append([]cards.Card(nil), m.Hands[seat]...)
	sort.Slice(hand, func(i, j int) bool {
		return passWeight(hand[i]) > passWeight(hand[j])
	})
	return hand[:PassCount]
}

func passWeight(c cards.Card) int {
	w := cards.RankValueAceHigh(c.Rank)
	if c.Suit == cards.Spades && cards.RankValueAceHigh(c.Rank) >= 12 {
		w += 40 // Q♠, K♠, A♠ are liabilities
	}
	if c.Suit == cards.Hearts {
		w += 10
	}
	return w
}

// ValidPlays lists the cards seat may legally play right now.
func (m *Match) ValidPlays(seat int) []cards.Card {
	if m.Phase != Playing || seat != m.Turn {
		return nil
	}
	hand := m.Hands[seat]

	if len(m.Trick) == 0 {
		if m.firstTrick {
			// The 2♣ holder must open with it.
			for _, c := range hand {
				if c.Suit == cards.Clubs && c.Rank == cards.Two {
					return []cards.Card{c}
				}
			}
		}
		var out []cards.Card
		for _, c := range hand {
			if c.Suit == cards.Hearts && !m.heartsBroken {
				continue
			}
			out = append(out, c)
		}
		if len(out) == 0 {
			return append(out, hand...) // only hearts left
		}
		return out
	}

	lead := m.Trick[0].Suit
	var follow []cards.Card
	for _, c := range hand {
		if c.Suit == lead {
			follow = append(follow, c)
		}
	}
	if len(follow) > 0 {
		return follow
	}

	// Void in the led suit: anything goes, except points on the first
	// trick when the hand has an alternative.
	if m.firstTrick {
		var clean []cards.Card
		for _, c := range hand {
			if !isPoint(c) {
				clean = append(clean, c)
			}
		}
		if len(clean) > 0 {
			return clean
		}
	}
	return append([]cards.Card(nil), hand...)
}

// PlayCard plays c for the seat to act. Illegal plays leave the state
// unchanged and return false. When the fourth card falls the trick is
// scored and its winner leads; when the thirteenth trick falls the
// round is scored and, unless the game is over, the next round is
// dealt.
func (m *Match) PlayCard(c cards.Card) bool {
	legal := false
	for _, have := range m.ValidPlays(m.Turn) {
		if have.ID == c.ID {
			legal = true
			break
		}
	}
	if !legal {
		return false
	}

	i := handIndex(m.Hands[m.Turn], c)
	m.Hands[m.Turn] = append(m.Hands[m.Turn][:i], m.Hands[m.Turn][i+1:]...)
	m.Trick = append(m.Trick, c)
	m.TrickSeats = append(m.TrickSeats, m.Turn)
	if c.Suit == cards.Hearts {
		m.heartsBroken = true
	}

	if len(m.Trick) < Seats {
		m.Turn = (m.Turn + 1) % Seats
		return true
	}
	m.closeTrick()
	return true
}

// closeTrick scores the completed trick and advances the round.
func (m *Match) closeTrick() {
	lead := m.Trick[0].Suit
	win := 0
	for i := 1; i < Seats; i++ {
		if cards.Beats(m.Trick[i], m.Trick[win], lead) {
			win = i
		}
	}
	winner := m.TrickSeats[win]
	for _, c := range m.Trick {
		if c.Suit == cards.Hearts {
			m.Round[winner]++
		} else if c.Suit == cards.Spades && c.Rank == cards.Queen {
			m.Round[winner] += 13
		}
	}

	m.Trick = nil
	m.TrickSeats = nil
	m.firstTrick = false
	m.Turn = winner
	m.tricksPlayed++
	if m.tricksPlayed == 13 {
		m.closeRound()
	}
}

// closeRound applies round points to the totals, handling a shot moon,
// then deals again or settles the game.
func (m *Match) closeRound() {
	shooter := -1
	for s := 0; s < Seats; s++ {
		if m.Round[s] == 26 {
			shooter = s
			break
		}
	}
	if shooter >= 0 {
		// Shoot the moon: the shooter stays, everyone else takes 26.
		for s := 0; s < Seats; s++ {
			if s != shooter {
				m.Scores[s] += 26
			}
		}
	} else {
		for s := 0; s < Seats; s++ {
			m.Scores[s] += m.Round[s]
		}
	}

	for s := 0; s < Seats; s++ {
		if m.Scores[s] >= LosingScore {
			m.Phase = Settled
			return
		}
	}
	m.RoundNum++
	m.deal()
}

// AIPlay chooses and plays a card for the computer seat to act.
// Returns the card played, or nil when it is the human's turn or the
// seat has no legal play.
func (m *Match) AIPlay() *cards.Card {
	if m.Phase != Playing || m.Turn == 0 {
		return nil
	}
	plays := m.ValidPlays(m.Turn)
	if len(plays) == 0 {
		return nil
	}

	chosen := plays[m.rng.Intn(len(plays))]
	if m.rng.Float64() >= m.errorChance {
		chosen = m.heuristicPick(plays)
	}
	m.PlayCard(chosen)
	return &chosen
}

// heuristicPick ducks under the current winner when following, dumps
// the queen of spades or a high heart when void, and otherwise leads
// low.
func (m *Match) heuristicPick(plays []cards.Card) cards.Card {
	if len(m.Trick) == 0 {
		return lowest(plays)
	}

	lead := m.Trick[0].Suit
	if plays[0].Suit == lead {
		// Highest card that still loses the trick, else the lowest.
		winning := m.Trick[0]
		for _, c := range m.Trick[1:] {
			if cards.Beats(c, winning, lead) {
				winning = c
			}
		}
		var duck *cards.Card
		for i := range plays {
			c := plays[i]
			if !cards.Beats(c, winning, lead) &&
				(duck == nil || cards.RankValueAceHigh(c.Rank) > cards.RankValueAceHigh(duck.Rank)) {
				duck = &plays[i]
			}
		}
		if duck != nil {
			return *duck
		}
		return lowest(plays)
	}

	// Void: shed the most dangerous card available.
	best := plays[0]
	for _, c := range plays[1:] {
		if passWeight(c) > passWeight(best) {
			best = c
		}
	}
	return best
}

func lowest(plays []cards.Card) cards.Card {
	low := plays[0]
	for _, c := range plays[1:] {
		if cards.RankValueAceHigh(c.Rank) < cards.RankValueAceHigh(low.Rank) {
			low = c
		}
	}
	return low
}

// GameOver reports whether a player has reached LosingScore.
func (m *Match) GameOver() bool { return m.Phase == Settled }

// Outcome returns the result for the human seat: strictly lowest total
// wins, a tie for lowest is a draw.
func (m *Match) Outcome() game.Outcome {
	if !m.GameOver() {
		return game.InProgress
	}
	low, ties := m.Scores[0], 0
	for s := 1; s < Seats; s++ {
		if m.Scores[s] < low {
			return game.Lost
		}
		if m.Scores[s] == low {
			ties++
		}
	}
	if ties > 0 {
		return game.Draw
	}
	return game.Won
}

// Score is the human's margin over the worst seat, zero when settled
// mid-round or while in progress.
func (m *Match) Score() int64 {
	if !m.GameOver() {
		return 0
	}
	worst := m.Scores[0]
	for _, s := range m.Scores[1:] {
		if s > worst {
			worst = s
		}
	}
	return int64(worst - m.Scores[0])
}
