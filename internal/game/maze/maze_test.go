package maze

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/colindiffer/pocketgames/internal/game"
	"github.com/colindiffer/pocketgames/internal/game/grid"
)

// bfsPath returns the shortest open path from the player to the exit,
// or nil when the exit is unreachable.
func bfsPath(m *Match) []grid.Coord {
	type node struct {
		at   grid.Coord
		path []grid.Coord
	}
	seen := map[grid.Coord]bool{m.Player: true}
	queue := []node{{at: m.Player}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.at == m.Exit {
			return append(cur.path, cur.at)
		}
		for _, n := range m.Walls.Neighbors4(cur.at.Row, cur.at.Col) {
			if seen[n] || m.Walls.At(n.Row, n.Col) {
				continue
			}
			seen[n] = true
			path := append(append([]grid.Coord(nil), cur.path...), cur.at)
			queue = append(queue, node{at: n, path: path})
		}
	}
	return nil
}

// TestGeneratedMazesAreSolvable checks the core generator property: a
// path always exists from start to exit, and the border stays solid.
func TestGeneratedMazesAreSolvable(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.Int64().Draw(t, "seed")
		size := rapid.SampledFrom([]int{11, 21, 31}).Draw(t, "size")
		m := NewMatch(size, rand.New(rand.NewSource(seed)))

		require.NotNil(t, bfsPath(m), "exit unreachable")
		for i := 0; i < size; i++ {
			require.True(t, m.Walls.At(0, i), "top border open at %d", i)
			require.True(t, m.Walls.At(size-1, i))
			require.True(t, m.Walls.At(i, 0))
			require.True(t, m.Walls.At(i, size-1))
		}
	})
}

func TestMove_WallCollision(t *testing.T) {
	m := NewMatch(11, rand.New(rand.NewSource(1)))

	assert.False(t, m.Move(Up), "start room borders the top wall")
	assert.False(t, m.Move(Left))
	assert.Equal(t, 0, m.Moves, "blocked moves do not count")

	moved := m.Move(Right) || m.Move(Down)
	assert.True(t, moved, "at least one passage leaves the start")
	assert.Equal(t, 1, m.Moves)
}

func TestWalkToExitWins(t *testing.T) {
	m := NewMatch(11, rand.New(rand.NewSource(7)))
	path := bfsPath(m)
	require.NotNil(t, path)

	for _, next := range path[1:] {
		var dir Direction
		switch {
		case next.Row < m.Player.Row:
			dir = Up
		case next.Row > m.Player.Row:
			dir = Down
		case next.Col < m.Player.Col:
			dir = Left
		default:
			dir = Right
		}
		require.True(t, m.Move(dir))
	}

	assert.True(t, m.GameOver())
	assert.Equal(t, game.Won, m.Outcome())
	assert.Equal(t, len(path)-1, m.Moves)
	assert.Greater(t, m.Score(), int64(0))
	assert.False(t, m.Move(Up), "no moves after finishing")
}

func TestGiveUp(t *testing.T) {
	m := NewMatch(11, rand.New(rand.NewSource(1)))
	m.GiveUp()

	assert.True(t, m.GameOver())
	assert.Equal(t, game.Lost, m.Outcome())
	assert.Equal(t, int64(0), m.Score())
}

func TestAdapter(t *testing.T) {
	g := New()
	assert.Equal(t, "maze", g.ID())
	assert.Equal(t, []game.Difficulty{game.Easy, game.Medium, game.Hard, game.Expert}, g.Difficulties())

	_, err := g.NewMatch(game.Difficulty("nightmare"), rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, game.ErrUnknownDifficulty)

	m, err := g.NewMatch(game.Easy, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, game.InProgress, m.Outcome())
}
