// Package game defines the engine interfaces and registry shared by every
// rule engine in the collection. Each game lives in its own subpackage and
// exposes a typed API for the presentation layer; the interfaces here are
// the minimal common surface the shell needs to enumerate, launch, and
// score matches.
package game

import (
	"errors"
	"math/rand"
)

// Difficulty selects a game's tuning (board size, search depth,
// optimal-play probability, removed-clue count, and so on).
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
	Expert Difficulty = "expert"
)

// ErrUnknownDifficulty is returned by NewMatch when a game does not
// support the requested difficulty. Construction fails fast rather than
// propagating an undefined board setup.
var ErrUnknownDifficulty = errors.New("unknown difficulty")

// Outcome is the terminal status of a match from the human player's
// point of view.
type Outcome string

const (
	InProgress Outcome = "in_progress"
	Won        Outcome = "won"
	Lost       Outcome = "lost"
	Draw       Outcome = "draw"
)

// Match is a live game instance. The concrete type behind it carries the
// full engine state and transition functions; the shell only needs the
// terminal markers and a score for high-score persistence.
type Match interface {
	// GameOver reports whether the match has reached a terminal state.
	GameOver() bool

	// Outcome returns the result of the match, or InProgress.
	Outcome() Outcome

	// Score returns the match score used for high-score tracking.
	// Games without a natural score return 0.
	Score() int64
}

// Game describes one rule engine. Adding a new game to the collection
// only requires implementing this interface and registering it.
type Game interface {
	// ID returns the stable identifier used for persistence keys
	// (e.g. "minesweeper", "freecell").
	ID() string

	// Name returns the game's display name.
	Name() string

	// Description returns a one-line description of the game.
	Description() string

	// Difficulties returns the difficulties this game accepts,
	// in ascending order.
	Difficulties() []Difficulty

	// NewMatch starts a fresh match. All randomness (shuffles, dice,
	// mine placement, AI tie-breaks) flows through rng so callers can
	// seed it for deterministic replay. Returns ErrUnknownDifficulty
	// for a difficulty not listed by Difficulties.
	NewMatch(d Difficulty, rng *rand.Rand) (Match, error)
}

// SupportsDifficulty reports whether d is one of g's difficulties.
func SupportsDifficulty(g Game, d Difficulty) bool {
	for _, have := range g.Difficulties() {
		if have == d {
			return true
		}
	}
	return false
}
