package blackjack

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/colindiffer/pocketgames/internal/game"
	"github.com/colindiffer/pocketgames/internal/game/cards"
)

func pick(t *testing.T, suit cards.Suit, rank cards.Rank) cards.Card {
	t.Helper()
	for _, c := range cards.NewDeck() {
		if c.Suit == suit && c.Rank == rank {
			return c
		}
	}
	t.Fatalf("no %v %v in deck", suit, rank)
	return cards.Card{}
}

func newTestMatch(t *testing.T, rules Rules) *Match {
	t.Helper()
	return NewMatch(rules, rand.New(rand.NewSource(1)))
}

// stackShoe arranges the shoe so that next[0] is drawn first, with
// enough filler underneath to avoid a reshuffle.
func stackShoe(m *Match, next ...cards.Card) {
	shoe := append([]cards.Card(nil), cards.NewDeck()[:reshuffleBelow]...)
	for i := len(next) - 1; i >= 0; i-- {
		shoe = append(shoe, next[i])
	}
	m.shoe = shoe
}

func TestHandValue(t *testing.T) {
	tests := []struct {
		name  string
		hand  []cards.Card
		total int
		soft  bool
	}{
		{"ace counts eleven", []cards.Card{
			pick(t, cards.Spades, cards.Ace), pick(t, cards.Hearts, cards.Six),
		}, 17, true},
		{"ace drops to one past 21", []cards.Card{
			pick(t, cards.Spades, cards.Ace), pick(t, cards.Hearts, cards.Six),
			pick(t, cards.Clubs, cards.Nine),
		}, 16, false},
		{"faces are ten", []cards.Card{
			pick(t, cards.Spades, cards.King), pick(t, cards.Hearts, cards.Queen),
		}, 20, false},
		{"only one ace upgrades", []cards.Card{
			pick(t, cards.Spades, cards.Ace), pick(t, cards.Hearts, cards.Ace),
			pick(t, cards.Clubs, cards.Nine),
		}, 21, true},
		{"bust", []cards.Card{
			pick(t, cards.Spades, cards.Ten), pick(t, cards.Hearts, cards.Nine),
			pick(t, cards.Clubs, cards.Five),
		}, 24, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, soft := HandValue(tt.hand)
			assert.Equal(t, tt.total, total)
			assert.Equal(t, tt.soft, soft)
		})
	}
}

func TestPlaceBet_Validation(t *testing.T) {
	m := newTestMatch(t, tables[game.Easy])

	assert.False(t, m.PlaceBet(0))
	assert.False(t, m.PlaceBet(StartingTokens+1))
	assert.Equal(t, StartingTokens, m.Tokens)

	require.True(t, m.PlaceBet(10))
	assert.Equal(t, StartingTokens-10, m.Tokens)
	assert.Len(t, m.Player, 2)
	assert.Len(t, m.Dealer, 2)
	assert.False(t, m.PlaceBet(10), "no betting mid-round")
}

func TestNaturalPaysThreeToTwo(t *testing.T) {
	m := newTestMatch(t, tables[game.Easy])
	stackShoe(m,
		pick(t, cards.Spades, cards.Ace),  // player
		pick(t, cards.Hearts, cards.King), // player
		pick(t, cards.Clubs, cards.Nine),  // dealer
		pick(t, cards.Diamonds, cards.Five),
	)

	require.True(t, m.PlaceBet(10))
	assert.Equal(t, PlayerBlackjack, m.Last)
	assert.Equal(t, StartingTokens+15, m.Tokens, "3:2 on a 10 stake")
	assert.Equal(t, Betting, m.Phase)
}

func TestNaturalPush(t *testing.T) {
	m := newTestMatch(t, tables[game.Easy])
	stackShoe(m,
		pick(t, cards.Spades, cards.Ace),
		pick(t, cards.Hearts, cards.King),
		pick(t, cards.Clubs, cards.Ace),
		pick(t, cards.Diamonds, cards.Queen),
	)

	require.True(t, m.PlaceBet(10))
	assert.Equal(t, Push, m.Last)
	assert.Equal(t, StartingTokens, m.Tokens, "stake returned")
}

func TestHit_BustLosesStake(t *testing.T) {
	m := newTestMatch(t, tables[game.Easy])
	m.Phase = Playing
	m.Bet = 10
	m.Tokens = StartingTokens - 10
	m.Player = []cards.Card{pick(t, cards.Spades, cards.King), pick(t, cards.Hearts, cards.Queen)}
	m.Dealer = []cards.Card{pick(t, cards.Clubs, cards.Nine), pick(t, cards.Diamonds, cards.Five)}
	stackShoe(m, pick(t, cards.Clubs, cards.Seven))

	require.True(t, m.Hit())
	assert.Equal(t, DealerWin, m.Last)
	assert.Equal(t, StartingTokens-10, m.Tokens)
	assert.Equal(t, Betting, m.Phase)
}

func TestStand_DealerDrawsToSeventeen(t *testing.T) {
	m := newTestMatch(t, tables[game.Easy])
	m.Phase = Playing
	m.Bet = 10
	m.Tokens = StartingTokens - 10
	m.Player = []cards.Card{pick(t, cards.Spades, cards.Ten), pick(t, cards.Hearts, cards.Nine)}
	m.Dealer = []cards.Card{pick(t, cards.Clubs, cards.Ten), pick(t, cards.Diamonds, cards.Six)}
	stackShoe(m, pick(t, cards.Clubs, cards.Two))

	require.True(t, m.Stand())
	assert.Len(t, m.Dealer, 3, "dealer hit 16")
	assert.Equal(t, PlayerWin, m.Last, "19 beats 18")
	assert.Equal(t, StartingTokens+10, m.Tokens)
}

func TestSoftSeventeenRule(t *testing.T) {
	setup := func(rules Rules) *Match {
		m := newTestMatch(t, rules)
		m.Phase = Playing
		m.Bet = 10
		m.Tokens = StartingTokens - 10
		m.Player = []cards.Card{pick(t, cards.Spades, cards.Ten), pick(t, cards.Hearts, cards.Eight)}
		m.Dealer = []cards.Card{pick(t, cards.Clubs, cards.Ace), pick(t, cards.Diamonds, cards.Six)}
		stackShoe(m, pick(t, cards.Clubs, cards.Four))
		return m
	}

	m := setup(Rules{Decks: 1, DealerHitsSoft17: false})
	require.True(t, m.Stand())
	assert.Len(t, m.Dealer, 2, "stands on soft 17")
	assert.Equal(t, PlayerWin, m.Last, "18 beats 17")

	m = setup(Rules{Decks: 1, DealerHitsSoft17: true})
	require.True(t, m.Stand())
	assert.Len(t, m.Dealer, 3, "hits soft 17")
	assert.Equal(t, DealerWin, m.Last, "ace-six-four is 21")
}

func TestDouble(t *testing.T) {
	m := newTestMatch(t, tables[game.Easy])
	m.Phase = Playing
	m.Bet = 10
	m.Tokens = StartingTokens - 10
	m.Player = []cards.Card{pick(t, cards.Spades, cards.Five), pick(t, cards.Hearts, cards.Six)}
	m.Dealer = []cards.Card{pick(t, cards.Clubs, cards.Ten), pick(t, cards.Diamonds, cards.Seven)}
	stackShoe(m, pick(t, cards.Clubs, cards.Ten))

	require.True(t, m.Double())
	assert.Len(t, m.Player, 3, "exactly one card after doubling")
	assert.Equal(t, PlayerWin, m.Last, "21 beats 17")
	assert.Equal(t, StartingTokens+20, m.Tokens, "doubled stake pays out")
}

func TestDouble_Rejected(t *testing.T) {
	m := newTestMatch(t, tables[game.Easy])
	m.Phase = Playing
	m.Bet = 60
	m.Tokens = 40
	m.Player = []cards.Card{pick(t, cards.Spades, cards.Five), pick(t, cards.Hearts, cards.Six)}

	assert.False(t, m.Double(), "bankroll cannot cover the raise")

	m.Tokens = 90
	m.Player = append(m.Player, pick(t, cards.Clubs, cards.Two))
	assert.False(t, m.Double(), "only on the first two cards")
}

func TestSessionEnds(t *testing.T) {
	m := newTestMatch(t, tables[game.Easy])
	m.Phase = Playing
	m.Bet = 10
	m.Tokens = 0
	m.Player = []cards.Card{pick(t, cards.Spades, cards.Ten), pick(t, cards.Hearts, cards.Nine)}
	m.Dealer = []cards.Card{pick(t, cards.Clubs, cards.King), pick(t, cards.Diamonds, cards.Queen)}
	stackShoe(m)

	require.True(t, m.Stand())
	assert.True(t, m.GameOver())
	assert.Equal(t, game.Lost, m.Outcome())
	assert.False(t, m.PlaceBet(1), "broke players cannot bet")

	m = newTestMatch(t, tables[game.Easy])
	m.Phase = Playing
	m.Bet = 20
	m.Tokens = 180
	m.Player = []cards.Card{pick(t, cards.Spades, cards.Ten), pick(t, cards.Hearts, cards.Ten)}
	m.Dealer = []cards.Card{pick(t, cards.Clubs, cards.Ten), pick(t, cards.Diamonds, cards.Nine)}
	stackShoe(m)

	require.True(t, m.Stand())
	assert.True(t, m.GameOver())
	assert.Equal(t, game.Won, m.Outcome())
	assert.Equal(t, int64(120), m.Score())
}

// TestShoeConservationProperty plays many rounds, hitting aggressively
// to run the shoe down, and asserts after every draw that the shoe plus
// both hands form a sub-multiset of the table's decks: no card sits in
// two piles at once and no rank-suit pair has more copies than the shoe
// was built from.
func TestShoeConservationProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.Int64().Draw(t, "seed")
		rules := rapid.SampledFrom([]Rules{
			tables[game.Easy], tables[game.Medium], tables[game.Hard],
		}).Draw(t, "rules")
		m := NewMatch(rules, rand.New(rand.NewSource(seed)))

		check := func() {
			ids := make(map[int]bool)
			copies := make(map[[2]string]int)
			total := 0
			for _, pile := range [][]cards.Card{m.shoe, m.Player, m.Dealer} {
				for _, c := range pile {
					if ids[c.ID] {
						t.Fatalf("card %v %v (id %d) in two piles", c.Rank, c.Suit, c.ID)
					}
					ids[c.ID] = true
					copies[[2]string{string(c.Suit), string(c.Rank)}]++
					total++
				}
			}
			if total > cards.DeckSize*rules.Decks {
				t.Fatalf("%d cards across piles from %d decks", total, rules.Decks)
			}
			for key, n := range copies {
				if n > rules.Decks {
					t.Fatalf("%d copies of %v from %d decks", n, key, rules.Decks)
				}
			}
		}

		for round := 0; round < 30 && !m.GameOver(); round++ {
			bet := m.Tokens
			if bet > 5 {
				bet = 5
			}
			require.True(t, m.PlaceBet(bet))
			check()
			for m.Phase == Playing {
				if total, _ := HandValue(m.Player); total < 17 {
					require.True(t, m.Hit())
				} else {
					require.True(t, m.Stand())
				}
				check()
			}
		}
	})
}

func TestAdapter(t *testing.T) {
	g := New()
	assert.Equal(t, "blackjack", g.ID())
	assert.Equal(t, []game.Difficulty{game.Easy, game.Medium, game.Hard}, g.Difficulties())

	_, err := g.NewMatch(game.Expert, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, game.ErrUnknownDifficulty)

	m, err := g.NewMatch(game.Hard, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, game.InProgress, m.Outcome())
}
