package backgammon

import (
	"math/rand"

	"github.com/colindiffer/pocketgames/internal/game"
)

// Game implements the arcade game.Game interface for backgammon.
type Game struct{}

// New creates the backgammon game definition.
func New() *Game { return &Game{} }

// ID returns the game's persistence identifier.
func (g *Game) ID() string { return "backgammon" }

// Name returns the game's display name.
func (g *Game) Name() string { return "Backgammon" }

// Description returns a brief description of the game.
func (g *Game) Description() string {
	return "Race your checkers home and bear them off before the computer does."
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
