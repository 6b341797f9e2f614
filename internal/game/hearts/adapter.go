package hearts

import (
	"math/rand"

	"github.com/colindiffer/pocketgames/internal/game"
)

// Game implements the arcade game.Game interface for Hearts.
type Game struct{}

// New creates the Hearts game definition.
func New() *Game { return &Game{} }

// ID returns the game's persistence identifier.
func (g *Game) ID() string { return "hearts" }

// Name returns the game's display name.
func (g *Game) Name() string { return "Hearts" }

// Description returns a brief description of the game.
func (g *Game) Description() string {
	return "Avoid hearts and the queen of spades. Lowest score wins."
}

// Difficulties returns the supported difficulties.
func (g *Game) Difficulties() []game.Difficulty {
	return []game.Difficulty{game.Easy, game.Medium, game.Hard}
}

// NewMatch starts a new match at the given difficulty.
func (g *Game) NewMatch(d game.Difficulty, rng *rand.Rand) (game.Match, error) {
	chance, ok := aiErrorChance[d]
	if !ok {
		return nil, game.ErrUnknownDifficulty
	}
	return NewMatch(chance, rng), nil
}
