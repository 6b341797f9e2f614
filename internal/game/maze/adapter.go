package maze

import (
	"math/rand"

	"github.com/colindiffer/pocketgames/internal/game"
)

// Game implements the arcade game.Game interface for the maze.
type Game struct{}

// New creates the maze game definition.
func New() *Game { return &Game{} }

// ID returns the game's persistence identifier.
func (g *Game) ID() string { return "maze" }

// Name returns the game's display name.
func (g *Game) Name() string { return "Maze" }

// Description returns a brief description of the game.
func (g *Game) Description() string {
	return "Find your way from corner to corner. Fewer steps score higher."
}

// Difficulties returns the supported difficulties.
func (g *Game) Difficulties() []game.Difficulty {
	return []game.Difficulty{game.Easy, game.Medium, game.Hard, game.Expert}
}

// NewMatch generates a new maze at the given difficulty's dimensions.
func (g *Game) NewMatch(d game.Difficulty, rng *rand.Rand) (game.Match, error) {
	size, ok := dimensions[d]
	if !ok {
		return nil, game.ErrUnknownDifficulty
	}
	return NewMatch(size, rng), nil
}
