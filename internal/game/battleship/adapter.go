package battleship

import (
	"math/rand"

	"github.com/colindiffer/pocketgames/internal/game"
)

// Game implements the arcade game.Game interface for Battleship.
type Game struct{}

// New creates the Battleship game definition.
func New() *Game { return &Game{} }

// ID returns the game's persistence identifier.
func (g *Game) ID() string { return "battleship" }

// Name returns the game's display name.
func (g *Game) Name() string { return "Battleship" }

// Description returns a brief description of the game.
func (g *Game) Description() string {
	return "Hunt the enemy fleet before yours goes down."
}

// Difficulties returns the supported difficulties. The enemy gunner
// fires uniformly at random, so there is a single setting.
func (g *Game) Difficulties() []game.Difficulty {
	return []game.Difficulty{game.Medium}
}

// NewMatch starts a new match.
func (g *Game) NewMatch(d game.Difficulty, rng *rand.Rand) (game.Match, error) {
	if d != game.Medium {
		return nil, game.ErrUnknownDifficulty
	}
	return NewMatch(rng), nil
}
