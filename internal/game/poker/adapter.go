package poker

import (
	"math/rand"

	"github.com/colindiffer/pocketgames/internal/game"
)

// Game implements the arcade game.Game interface for five-card draw.
type Game struct{}

// New creates the poker game definition.
func New() *Game { return &Game{} }

// ID returns the game's persistence identifier.
func (g *Game) ID() string { return "poker" }

// Name returns the game's display name.
func (g *Game) Name() string { return "Five-Card Draw" }

// Description returns a brief description of the game.
func (g *Game) Description() string {
	return "Hold and draw for the best poker hand. Jacks or better pays."
}

// Difficulties returns the supported difficulties.
func (g *Game) Difficulties() []game.Difficulty {
	return []game.Difficulty{game.Easy, game.Medium, game.Hard}
}

// NewMatch starts a new session on the given difficulty's paytable.
func (g *Game) NewMatch(d game.Difficulty, rng *rand.Rand) (game.Match, error) {
	table, ok := paytables[d]
	if !ok {
		return nil, game.ErrUnknownDifficulty
	}
	return NewMatch(table, rng), nil
}
