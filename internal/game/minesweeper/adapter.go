package minesweeper

import (
	"math/rand"

	"github.com/colindiffer/pocketgames/internal/game"
)

// Game implements the arcade game.Game interface for Minesweeper.
type Game struct{}

// New creates the Minesweeper game definition.
func New() *Game { return &Game{} }

// ID returns the game's persistence identifier.
func (g *Game) ID() string { return "minesweeper" }

// Name returns the game's display name.
func (g *Game) Name() string { return "Minesweeper" }

// Description returns a brief description of the game.
func (g *Game) Description() string {
	return "Clear the board without setting off a mine."
}

// Difficulties returns the supported difficulties.
func (g *Game) Difficulties() []game.Difficulty {
	return []game.Difficulty{game.Easy, game.Medium, game.Hard, game.Expert}
}

// NewMatch starts a new match at the given difficulty.
func (g *Game) NewMatch(d game.Difficulty, rng *rand.Rand) (game.Match, error) {
	layout, ok := layouts[d]
	if !ok {
		return nil, game.ErrUnknownDifficulty
	}
	return NewMatch(layout, rng), nil
}
