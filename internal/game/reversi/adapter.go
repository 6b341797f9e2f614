package reversi

import (
	"math/rand"

	"github.com/colindiffer/pocketgames/internal/game"
)

// Game implements the arcade game.Game interface for Reversi.
type Game struct{}

// New creates the Reversi game definition.
func New() *Game { return &Game{} }

// ID returns the game's persistence identifier.
func (g *Game) ID() string { return "reversi" }

// Name returns the game's display name.
func (g *Game) Name() string { return "Reversi" }

// Description returns a brief description of the game.
func (g *Game) Description() string {
	return "Outflank the computer's discs to flip them to your color."
}

// Difficulties returns the supported difficulties.
func (g *Game) Difficulties() []game.Difficulty {
	return []game.Difficulty{game.Easy, game.Medium, game.Hard}
}

// NewMatch starts a new match at the given difficulty.
func (g *Game) NewMatch(d game.Difficulty, rng *rand.Rand) (game.Match, error) {
	depth, ok := searchDepth[d]
	if !ok {
		return nil, game.ErrUnknownDifficulty
	}
	return NewMatch(depth, rng), nil
}
