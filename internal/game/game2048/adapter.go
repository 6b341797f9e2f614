package game2048

import (
	"math/rand"

	"github.com/colindiffer/pocketgames/internal/game"
)

// Game implements the arcade game.Game interface for 2048.
type Game struct{}

// New creates the 2048 game definition.
func New() *Game { return &Game{} }

// ID returns the game's persistence identifier.
func (g *Game) ID() string { return "2048" }

// Name returns the game's display name.
func (g *Game) Name() string { return "2048" }

// Description returns a brief description of the game.
func (g *Game) Description() string {
	return "Slide and merge matching tiles until one reaches the target."
}

// Difficulties returns the supported difficulties.
func (g *Game) Difficulties() []game.Difficulty {
	return []game.Difficulty{game.Easy, game.Medium, game.Hard}
}

// NewMatch starts a new match at the given difficulty's target tile.
func (g *Game) NewMatch(d game.Difficulty, rng *rand.Rand) (game.Match, error) {
	target, ok := targetTile[d]
	if !ok {
		return nil, game.ErrUnknownDifficulty
	}
	return NewMatch(target, rng), nil
}
