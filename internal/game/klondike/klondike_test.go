package klondike

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colindiffer/pocketgames/internal/game"
	"github.com/colindiffer/pocketgames/internal/game/cards"
)

func pick(t *testing.T, suit cards.Suit, rank cards.Rank, faceUp bool) cards.Card {
	t.Helper()
	for _, c := range cards.NewDeck() {
		if c.Suit == suit && c.Rank == rank {
			c.FaceUp = faceUp
			return c
		}
	}
	t.Fatalf("no %v %v in deck", suit, rank)
	return cards.Card{}
}

func bare(t *testing.T, draw int) *Match {
	t.Helper()
	return &Match{Foundations: map[cards.Suit]int{}, draw: draw}
}

func TestDeal(t *testing.T) {
	m := NewMatch(1, rand.New(rand.NewSource(1)))

	dealt := 0
	seen := map[int]bool{}
	for col := 0; col < Columns; col++ {
		require.Len(t, m.Tableau[col], col+1)
		dealt += col + 1
		for i, c := range m.Tableau[col] {
			assert.Equal(t, i == col, c.FaceUp, "only the last card shows")
			assert.False(t, seen[c.ID])
			seen[c.ID] = true
		}
	}
	assert.Equal(t, 28, dealt)
	require.Len(t, m.Stock, 24)
	for _, c := range m.Stock {
		assert.False(t, c.FaceUp)
		assert.False(t, seen[c.ID])
		seen[c.ID] = true
	}
	assert.Len(t, seen, cards.DeckSize)
}

func TestDraw_OneAndThree(t *testing.T) {
	m := NewMatch(1, rand.New(rand.NewSource(1)))
	require.True(t, m.Draw())
	assert.Len(t, m.Waste, 1)
	assert.True(t, m.Waste[0].FaceUp)

	m = NewMatch(3, rand.New(rand.NewSource(1)))
	require.True(t, m.Draw())
	assert.Len(t, m.Waste, 3)
}

func TestDraw_RecyclesWaste(t *testing.T) {
	m := bare(t, 3)
	m.Stock = nil
	m.Waste = []cards.Card{
		pick(t, cards.Clubs, cards.Two, true),
		pick(t, cards.Clubs, cards.Five, true),
		pick(t, cards.Clubs, cards.Nine, true),
	}

	require.True(t, m.Draw())
	assert.Empty(t, m.Stock, "all three recycled and drawn again")
	require.Len(t, m.Waste, 3)
	assert.Equal(t, cards.Two, m.Waste[0].Rank, "recycling preserves order")
	assert.Equal(t, cards.Nine, m.Waste[2].Rank)

	m.Stock, m.Waste = nil, nil
	assert.False(t, m.Draw(), "nothing left to turn")
}

func TestWasteToTableau(t *testing.T) {
	m := bare(t, 1)
	m.Waste = []cards.Card{pick(t, cards.Hearts, cards.Nine, true)}
	m.Tableau[0] = []cards.Card{pick(t, cards.Spades, cards.Ten, true)}
	m.Tableau[1] = []cards.Card{pick(t, cards.Diamonds, cards.Ten, true)}

	assert.False(t, m.WasteToTableau(1), "red on red")
	require.True(t, m.WasteToTableau(0))
	assert.Empty(t, m.Waste)
	assert.Len(t, m.Tableau[0], 2)
}

func TestKingToEmptyColumnOnly(t *testing.T) {
	m := bare(t, 1)
	m.Waste = []cards.Card{pick(t, cards.Hearts, cards.Queen, true)}

	assert.False(t, m.WasteToTableau(2), "only kings open a column")

	m.Waste = []cards.Card{pick(t, cards.Hearts, cards.King, true)}
	require.True(t, m.WasteToTableau(2))
	assert.Len(t, m.Tableau[2], 1)
}

func TestMoveRun_FlipsUncoveredCard(t *testing.T) {
	m := bare(t, 1)
	m.Tableau[0] = []cards.Card{
		pick(t, cards.Clubs, cards.Four, false),
		pick(t, cards.Spades, cards.Nine, true),
		pick(t, cards.Hearts, cards.Eight, true),
	}
	m.Tableau[1] = []cards.Card{pick(t, cards.Diamonds, cards.Ten, true)}

	require.True(t, m.MoveRun(0, 1, 2))
	assert.Len(t, m.Tableau[1], 3)
	require.Len(t, m.Tableau[0], 1)
	assert.True(t, m.Tableau[0][0].FaceUp, "uncovered card flips")
}

func TestMoveRun_RejectsFaceDownAndBrokenRuns(t *testing.T) {
	m := bare(t, 1)
	m.Tableau[0] = []cards.Card{
		pick(t, cards.Clubs, cards.Four, false),
		pick(t, cards.Spades, cards.Nine, true),
	}
	m.Tableau[1] = []cards.Card{pick(t, cards.Hearts, cards.Five, true)}

	assert.False(t, m.MoveRun(0, 1, 2), "face-down cards cannot travel")

	m.Tableau[0] = []cards.Card{
		pick(t, cards.Spades, cards.Nine, true),
		pick(t, cards.Hearts, cards.Three, true),
	}
	assert.False(t, m.MoveRun(0, 1, 2), "not a run")
}

func TestFoundations(t *testing.T) {
	m := bare(t, 1)
	m.Waste = []cards.Card{pick(t, cards.Spades, cards.Ace, true)}
	m.Tableau[0] = []cards.Card{
		pick(t, cards.Clubs, cards.Seven, false),
		pick(t, cards.Spades, cards.Two, true),
	}

	assert.False(t, m.TableauToFoundation(0), "two before ace")
	require.True(t, m.WasteToFoundation())
	require.True(t, m.TableauToFoundation(0))
	assert.Equal(t, 2, m.Foundations[cards.Spades])
	assert.True(t, m.Tableau[0][0].FaceUp, "the seven flipped")
}

func TestOutcome(t *testing.T) {
	m := bare(t, 1)
	assert.Equal(t, game.InProgress, m.Outcome())

	m.GiveUp()
	assert.Equal(t, game.Lost, m.Outcome())
	assert.False(t, m.Draw())

	m = bare(t, 1)
	for _, s := range cards.Suits {
		m.Foundations[s] = 13
	}
	assert.True(t, m.GameOver())
	assert.Equal(t, game.Won, m.Outcome())
	assert.Equal(t, int64(cards.DeckSize), m.Score())
}

func TestAdapter(t *testing.T) {
	g := New()
	assert.Equal(t, "klondike", g.ID())
	assert.Equal(t, []game.Difficulty{game.Easy, game.Hard}, g.Difficulties())

	_, err := g.NewMatch(game.Medium, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, game.ErrUnknownDifficulty)

	m, err := g.NewMatch(game.Easy, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, game.InProgress, m.Outcome())
}
