package blackjack

import (
	"math/rand"

	"github.com/colindiffer/pocketgames/internal/game"
)

// Game implements the arcade game.Game interface for blackjack.
type Game struct{}

// New creates the blackjack game definition.
func New() *Game { return &Game{} }

// ID returns the game's persistence identifier.
func (g *Game) ID() string { return "blackjack" }

// Name returns the game's display name.
func (g *Game) Name() string { return "Blackjack" }

// Description returns a brief description of the game.
func (g *Game) Description() string {
	return "Beat the dealer to 21. Double your bankroll to win the table."
}

// Difficulties returns the supported difficulties.
func (g *Game) Difficulties() []game.Difficulty {
	return []game.Difficulty{game.Easy, game.Medium, game.Hard}
}

// NewMatch starts a new session at the given difficulty's table rules.
func (g *Game) NewMatch(d game.Difficulty, rng *rand.Rand) (game.Match, error) {
	rules, ok := tables[d]
	if !ok {
		return nil, game.ErrUnknownDifficulty
	}
	return NewMatch(rules, rng), nil
}
