package sudoku

import (
	"math/rand"

	"github.com/colindiffer/pocketgames/internal/game"
)

// Game implements the arcade game.Game interface for Sudoku.
type Game struct{}

// New creates the Sudoku game definition.
func New() *Game { return &Game{} }

// ID returns the game's persistence identifier.
func (g *Game) ID() string { return "sudoku" }

// Name returns the game's display name.
func (g *Game) Name() string { return "Sudoku" }

// Description returns a brief description of the game.
func (g *Game) Description() string {
	return "Fill the grid so every row, column and box holds 1-9."
}

// Difficulties returns the supported difficulties.
func (g *Game) Difficulties() []game.Difficulty {
	return []game.Difficulty{game.Easy, game.Medium, game.Hard, game.Expert}
}

// NewMatch generates a fresh puzzle at the given difficulty.
func (g *Game) NewMatch(d game.Difficulty, rng *rand.Rand) (game.Match, error) {
	remove, ok := removals[d]
	if !ok {
		return nil, game.ErrUnknownDifficulty
	}
	return NewMatch(remove, rng), nil
}
