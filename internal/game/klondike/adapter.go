package klondike

import (
	"math/rand"

	"github.com/colindiffer/pocketgames/internal/game"
)

// Game implements the arcade game.Game interface for Klondike.
type Game struct{}

// New creates the Klondike game definition.
func New() *Game { return &Game{} }

// ID returns the game's persistence identifier.
func (g *Game) ID() string { return "klondike" }

// Name returns the game's display name.
func (g *Game) Name() string { return "Klondike" }

// Description returns a brief description of the game.
func (g *Game) Description() string {
	return "The classic solitaire. Build the foundations from ace to king."
}

// Difficulties returns the supported difficulties: draw-one and
// draw-three.
func (g *Game) Difficulties() []game.Difficulty {
	return []game.Difficulty{game.Easy, game.Hard}
}

// NewMatch deals a new game at the given difficulty's draw rule.
func (g *Game) NewMatch(d game.Difficulty, rng *rand.Rand) (game.Match, error) {
	draw, ok := drawCount[d]
	if !ok {
		return nil, game.ErrUnknownDifficulty
	}
	return NewMatch(draw, rng), nil
}
