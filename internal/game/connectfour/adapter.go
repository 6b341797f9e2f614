package connectfour

import (
	"math/rand"

	"github.com/colindiffer/pocketgames/internal/game"
)

// Game implements the arcade game.Game interface for Connect Four.
type Game struct{}

// New creates the Connect Four game definition.
func New() *Game { return &Game{} }

// ID returns the game's persistence identifier.
func (g *Game) ID() string { return "connectfour" }

// Name returns the game's display name.
func (g *Game) Name() string { return "Connect Four" }

// Description returns a brief description of the game.
func (g *Game) Description() string {
	return "Drop discs to line up four before the computer does."
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
