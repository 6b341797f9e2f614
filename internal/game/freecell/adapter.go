package freecell

import (
	"math/rand"

	"github.com/colindiffer/pocketgames/internal/game"
)

// Game implements the arcade game.Game interface for FreeCell.
type Game struct{}

// New creates the FreeCell game definition.
func New() *Game { return &Game{} }

// ID returns the game's persistence identifier.
func (g *Game) ID() string { return "freecell" }

// Name returns the game's display name.
func (g *Game) Name() string { return "FreeCell" }

// Description returns a brief description of the game.
func (g *Game) Description() string {
	return "Untangle the whole deck onto the foundations, one free cell at a time."
}

// Difficulties returns the supported difficulties.
func (g *Game) Difficulties() []game.Difficulty {
	return []game.Difficulty{game.Easy, game.Medium, game.Hard}
}

// NewMatch deals a new game at the given difficulty's cell count.
func (g *Game) NewMatch(d game.Difficulty, rng *rand.Rand) (game.Match, error) {
	cells, ok := cellCount[d]
	if !ok {
		return nil, game.ErrUnknownDifficulty
	}
	return NewMatch(cells, rng), nil
}
