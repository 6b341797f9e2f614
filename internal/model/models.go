// Package model defines the persisted data models for the arcade.
package model

import "time"

// Progress is the saved progress for one game at one difficulty.
type Progress struct {
	GameID     string    `db:"game_id"`
	Difficulty string    `db:"difficulty"`
	HighScore  int64     `db:"high_score"`
	Level      int       `db:"level"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// ActiveGame marks a game with an unfinished match, so the shell can
// offer to resume it at the difficulty it was started with.
type ActiveGame struct {
	GameID     string    `db:"game_id"`
	Difficulty string    `db:"difficulty"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// GameResult is one finished match.
type GameResult struct {
	ID         int64     `db:"id"`
	GameID     string    `db:"game_id"`
	Difficulty string    `db:"difficulty"`
	Outcome    string    `db:"outcome"`
	Score      int64     `db:"score"`
	CreatedAt  time.Time `db:"created_at"`
}

// GameSummary aggregates the recorded results for one game.
type GameSummary struct {
	GameID string `db:"game_id"`
	Plays  int64  `db:"plays"`
	Wins   int64  `db:"wins"`
	Losses int64  `db:"losses"`
	Draws  int64  `db:"draws"`
	Best   int64  `db:"best"`
}

// WinRate returns the fraction of plays that were wins, zero when
// nothing has been played.
func (s *GameSummary) WinRate() float64 {
	if s.Plays == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Plays)
}
