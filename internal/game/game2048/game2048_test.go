package game2048

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/colindiffer/pocketgames/internal/game"
)

func bare(t *testing.T, target int) *Match {
	t.Helper()
	return &Match{target: target, rng: rand.New(rand.NewSource(1))}
}

func countTiles(b Board) int {
	n := 0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b[r][c] != 0 {
				n++
			}
		}
	}
	return n
}

func TestNewMatch(t *testing.T) {
	m := NewMatch(2048, rand.New(rand.NewSource(1)))
	assert.Equal(t, 2, countTiles(m.Board))
	assert.Equal(t, game.InProgress, m.Outcome())
}

func TestMergeLine(t *testing.T) {
	tests := []struct {
		name   string
		in     [Size]int
		out    [Size]int
		gained int
	}{
		{"slide only", [Size]int{0, 2, 0, 4}, [Size]int{2, 4, 0, 0}, 0},
		{"single merge", [Size]int{2, 2, 0, 0}, [Size]int{4, 0, 0, 0}, 4},
		{"merged tile is final", [Size]int{2, 2, 4, 0}, [Size]int{4, 4, 0, 0}, 4},
		{"pairs merge independently", [Size]int{2, 2, 2, 2}, [Size]int{4, 4, 0, 0}, 8},
		{"three of a kind merges the front pair", [Size]int{4, 4, 4, 0}, [Size]int{8, 4, 0, 0}, 8},
		{"gap does not block a merge", [Size]int{2, 0, 0, 2}, [Size]int{4, 0, 0, 0}, 4},
		{"no merge", [Size]int{2, 4, 2, 4}, [Size]int{2, 4, 2, 4}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, gained := mergeLine(tt.in)
			assert.Equal(t, tt.out, out)
			assert.Equal(t, tt.gained, gained)
		})
	}
}

func TestSwipe_Directions(t *testing.T) {
	start := Board{
		{2, 0, 0, 2},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{2, 0, 0, 2},
	}

	m := bare(t, 2048)
	m.Board = start
	require.True(t, m.Swipe(Left))
	assert.Equal(t, 4, m.Board[0][0])
	assert.Equal(t, 4, m.Board[3][0])

	m = bare(t, 2048)
	m.Board = start
	require.True(t, m.Swipe(Right))
	assert.Equal(t, 4, m.Board[0][3])
	assert.Equal(t, 4, m.Board[3][3])

	m = bare(t, 2048)
	m.Board = start
	require.True(t, m.Swipe(Up))
	assert.Equal(t, 4, m.Board[0][0])
	assert.Equal(t, 4, m.Board[0][3])

	m = bare(t, 2048)
	m.Board = start
	require.True(t, m.Swipe(Down))
	assert.Equal(t, 4, m.Board[3][0])
	assert.Equal(t, 4, m.Board[3][3])
}

func TestSwipe_DeadSwipeSpawnsNothing(t *testing.T) {
	m := bare(t, 2048)
	m.Board[0][0] = 2

	assert.False(t, m.Swipe(Left), "nothing moves")
	assert.Equal(t, 1, countTiles(m.Board), "no spawn on a dead swipe")
	assert.True(t, m.Swipe(Right))
	assert.Equal(t, 2, countTiles(m.Board), "a live swipe spawns one tile")
}

func TestSwipe_AccumulatesScore(t *testing.T) {
	m := bare(t, 2048)
	m.Board[0][0], m.Board[0][1] = 4, 4
	m.Board[1][0], m.Board[1][1] = 8, 8

	require.True(t, m.Swipe(Left))
	assert.Equal(t, int64(24), m.Score())
}

func TestWinAtTarget(t *testing.T) {
	m := bare(t, 2048)
	m.Board[0][0], m.Board[0][1] = 1024, 1024

	require.True(t, m.Swipe(Left))
	assert.Equal(t, 2048, m.Highest())
	assert.True(t, m.GameOver())
	assert.Equal(t, game.Won, m.Outcome())
	assert.False(t, m.Swipe(Left), "no swipes after winning")
}

func TestLossWhenStuck(t *testing.T) {
	m := bare(t, 2048)
	m.Board = Board{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	}

	assert.True(t, m.GameOver())
	assert.Equal(t, game.Lost, m.Outcome())
}

// TestRandomPlay checks structural invariants over random play: tiles
// are powers of two and the score never decreases.
func TestRandomPlay(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.Int64().Draw(t, "seed")
		rng := rand.New(rand.NewSource(seed))
		m := NewMatch(2048, rng)

		prev := int64(0)
		for i := 0; i < 200 && !m.GameOver(); i++ {
			m.Swipe(Direction(rng.Intn(4)))
			require.GreaterOrEqual(t, m.Score(), prev)
			prev = m.Score()
			for r := 0; r < Size; r++ {
				for c := 0; c < Size; c++ {
					v := m.Board[r][c]
					require.True(t, v == 0 || v&(v-1) == 0, "tile %d not a power of two", v)
				}
			}
		}
	})
}

func TestAdapter(t *testing.T) {
	g := New()
	assert.Equal(t, "2048", g.ID())
	assert.Equal(t, []game.Difficulty{game.Easy, game.Medium, game.Hard}, g.Difficulties())

	_, err := g.NewMatch(game.Expert, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, game.ErrUnknownDifficulty)

	m, err := g.NewMatch(game.Easy, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, game.InProgress, m.Outcome())
}
