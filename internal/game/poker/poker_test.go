package poker

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name string
		hand []cards.Card
		want HandRank
	}{
		{"royal flush", []cards.Card{
			pick(t, cards.Spades, cards.Ten), pick(t, cards.Spades, cards.Jack),
			pick(t, cards.Spades, cards.Queen), pick(t, cards.Spades, cards.King),
			pick(t, cards.Spades, cards.Ace),
		}, RoyalFlush},
		{"straight flush", []cards.Card{
			pick(t, cards.Hearts, cards.Three), pick(t, cards.Hearts, cards.Four),
			pick(t, cards.Hearts, cards.Five), pick(t, cards.Hearts, cards.Six),
			pick(t, cards.Hearts, cards.Seven),
		}, StraightFlush},
		{"four of a kind", []cards.Card{
			pick(t, cards.Clubs, cards.Nine), pick(t, cards.Diamonds, cards.Nine),
			pick(t, cards.Hearts, cards.Nine), pick(t, cards.Spades, cards.Nine),
			pick(t, cards.Clubs, cards.Two),
		}, FourOfAKind},
		{"full house", []cards.Card{
			pick(t, cards.Clubs, cards.King), pick(t, cards.Diamonds, cards.King),
			pick(t, cards.Hearts, cards.King), pick(t, cards.Spades, cards.Four),
			pick(t, cards.Clubs, cards.Four),
		}, FullHouse},
		{"flush", []cards.Card{
			pick(t, cards.Diamonds, cards.Two), pick(t, cards.Diamonds, cards.Seven),
			pick(t, cards.Diamonds, cards.Nine), pick(t, cards.Diamonds, cards.Jack),
			pick(t, cards.Diamonds, cards.King),
		}, Flush},
		{"ace-high straight", []cards.Card{
			pick(t, cards.Clubs, cards.Ten), pick(t, cards.Diamonds, cards.Jack),
			pick(t, cards.Hearts, cards.Queen), pick(t, cards.Spades, cards.King),
			pick(t, cards.Clubs, cards.Ace),
		}, Straight},
		{"wheel straight", []cards.Card{
			pick(t, cards.Clubs, cards.Ace), pick(t, cards.Diamonds, cards.Two),
			pick(t, cards.Hearts, cards.Three), pick(t, cards.Spades, cards.Four),
			pick(t, cards.Clubs, cards.Five),
		}, Straight},
		{"three of a kind", []cards.Card{
			pick(t, cards.Clubs, cards.Seven), pick(t, cards.Diamonds, cards.Seven),
			pick(t, cards.Hearts, cards.Seven), pick(t, cards.Spades, cards.Two),
			pick(t, cards.Clubs, cards.Nine),
		}, ThreeOfAKind},
		{"two pair", []cards.Card{
			pick(t, cards.Clubs, cards.Six), pick(t, cards.Diamonds, cards.Six),
			pick(t, cards.Hearts, cards.Ten), pick(t, cards.Spades, cards.Ten),
			pick(t, cards.Clubs, cards.Ace),
		}, TwoPair},
		{"jacks or better", []cards.Card{
			pick(t, cards.Clubs, cards.Jack), pick(t, cards.Diamonds, cards.Jack),
			pick(t, cards.Hearts, cards.Three), pick(t, cards.Spades, cards.Seven),
			pick(t, cards.Clubs, cards.Nine),
		}, JacksOrBetter},
		{"low pair pays nothing", []cards.Card{
			pick(t, cards.Clubs, cards.Ten), pick(t, cards.Diamonds, cards.Ten),
			pick(t, cards.Hearts, cards.Three), pick(t, cards.Spades, cards.Seven),
			pick(t, cards.Clubs, cards.Nine),
		}, HighCard},
		{"high card", []cards.Card{
			pick(t, cards.Clubs, cards.Two), pick(t, cards.Diamonds, cards.Seven),
			pick(t, cards.Hearts, cards.Nine), pick(t, cards.Spades, cards.Jack),
			pick(t, cards.Clubs, cards.Ace),
		}, HighCard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.hand))
		})
	}
}

func TestRound_HoldAndDraw(t *testing.T) {
	m := NewMatch(paytables[game.Easy], rand.New(rand.NewSource(1)))

	require.True(t, m.PlaceBet(10))
	assert.Equal(t, StartingTokens-10, m.Tokens)
	require.Len(t, m.Hand, HandSize)

	held := append([]cards.Card(nil), m.Hand...)
	require.True(t, m.DrawCards([HandSize]bool{true, false, true, false, true}))
	assert.Equal(t, held[0].ID, m.Hand[0].ID, "held cards stay")
	assert.Equal(t, held[2].ID, m.Hand[2].ID)
	assert.Equal(t, held[4].ID, m.Hand[4].ID)
	assert.NotEqual(t, held[1].ID, m.Hand[1].ID, "discards are replaced")
	assert.NotEqual(t, held[3].ID, m.Hand[3].ID)

	seen := map[int]bool{}
	for _, c := range m.Hand {
		assert.False(t, seen[c.ID], "no duplicate cards after the draw")
		seen[c.ID] = true
	}
}

func TestRound_Payout(t *testing.T) {
	m := NewMatch(paytables[game.Easy], rand.New(rand.NewSource(1)))
	require.True(t, m.PlaceBet(10))

	// Force a full house and hold everything.
	m.Hand = []cards.Card{
		pick(t, cards.Clubs, cards.King), pick(t, cards.Diamonds, cards.King),
		pick(t, cards.Hearts, cards.King), pick(t, cards.Spades, cards.Four),
		pick(t, cards.Clubs, cards.Four),
	}
	require.True(t, m.DrawCards([HandSize]bool{true, true, true, true, true}))

	assert.Equal(t, FullHouse, m.LastRank)
	assert.Equal(t, 90, m.LastPayout, "full house pays 9x on the full-pay table")
	assert.Equal(t, StartingTokens-10+90, m.Tokens)
	assert.Equal(t, Betting, m.Phase)
}

func TestRound_ShortPayTable(t *testing.T) {
	m := NewMatch(paytables[game.Hard], rand.New(rand.NewSource(1)))
	require.True(t, m.PlaceBet(10))

	m.Hand = []cards.Card{
		pick(t, cards.Clubs, cards.King), pick(t, cards.Diamonds, cards.King),
		pick(t, cards.Hearts, cards.King), pick(t, cards.Spades, cards.Four),
		pick(t, cards.Clubs, cards.Four),
	}
	require.True(t, m.DrawCards([HandSize]bool{true, true, true, true, true}))

	assert.Equal(t, 60, m.LastPayout, "full house pays 6x on the short table")
}

func TestPhaseGuards(t *testing.T) {
	m := NewMatch(paytables[game.Easy], rand.New(rand.NewSource(1)))

	assert.False(t, m.DrawCards([HandSize]bool{}), "no draw before dealing")
	assert.False(t, m.PlaceBet(0))
	assert.False(t, m.PlaceBet(StartingTokens+1))

	require.True(t, m.PlaceBet(10))
	assert.False(t, m.PlaceBet(10), "no betting mid-round")
}

func TestSessionEnds(t *testing.T) {
	m := NewMatch(paytables[game.Easy], rand.New(rand.NewSource(1)))
	m.Tokens = 10
	require.True(t, m.PlaceBet(10))
	m.Hand = []cards.Card{
		pick(t, cards.Clubs, cards.Two), pick(t, cards.Diamonds, cards.Seven),
		pick(t, cards.Hearts, cards.Nine), pick(t, cards.Spades, cards.Jack),
		pick(t, cards.Clubs, cards.Ace),
	}
	require.True(t, m.DrawCards([HandSize]bool{true, true, true, true, true}))

	assert.True(t, m.GameOver())
	assert.Equal(t, game.Lost, m.Outcome())
	assert.Equal(t, int64(0), m.Score())

	m = NewMatch(paytables[game.Easy], rand.New(rand.NewSource(1)))
	m.Tokens = 190
	require.True(t, m.PlaceBet(10))
	m.Hand = []cards.Card{
		pick(t, cards.Clubs, cards.Six), pick(t, cards.Diamonds, cards.Six),
		pick(t, cards.Hearts, cards.Ten), pick(t, cards.Spades, cards.Ten),
		pick(t, cards.Clubs, cards.Ace),
	}
	require.True(t, m.DrawCards([HandSize]bool{true, true, true, true, true}))

	assert.Equal(t, 20, m.LastPayout)
	assert.Equal(t, 200, m.Tokens)
	assert.Equal(t, game.Won, m.Outcome())
	assert.Equal(t, int64(100), m.Score())
}

func TestAdapter(t *testing.T) {
	g := New()
	assert.Equal(t, "poker", g.ID())
	assert.Equal(t, []game.Difficulty{game.Easy, game.Medium, game.Hard}, g.Difficulties())

	_, err := g.NewMatch(game.Expert, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, game.ErrUnknownDifficulty)

	m, err := g.NewMatch(game.Easy, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, game.InProgress, m.Outcome())
}
