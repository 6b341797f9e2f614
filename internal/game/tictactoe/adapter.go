package tictactoe

import (
	"math/rand"

	"github.com/colindiffer/pocketgames/internal/game"
)

// Game implements the arcade game.Game interface for Tic-Tac-Toe.
type Game struct{}

// New creates the Tic-Tac-Toe game definition.
func New() *Game { return &Game{} }

// ID returns the game's persistence identifier.
func (g *Game) ID() string { return "tictactoe" }

// Name returns the game's display name.
func (g *Game) Name() string { return "Tic-Tac-Toe" }

// Description returns a brief description of the game.
func (g *Game) Description() string {
	return "Get three in a row before the computer does."
}

// Difficulties returns the supported difficulties.
func (g *Game) Difficulties() []game.Difficulty {
	return []game.Difficulty{game.Easy, game.Medium, game.Hard}
}

// NewMatch starts a new match at the given difficulty.
func (g *Game) NewMatch(d game.Difficulty, rng *rand.Rand) (game.Match, error) {
	p, ok := optimalChance[d]
	if !ok {
		return nil, game.ErrUnknownDifficulty
	}
	return NewMatch(p, rng), nil
}
