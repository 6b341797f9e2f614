// Package service provides business logic implementations.
package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/colindiffer/pocketgames/internal/model"
	"github.com/colindiffer/pocketgames/internal/repository"
)

// ProgressService handles saved progress: high scores, level advancement,
// and resuming unfinished matches.
type ProgressService struct {
	progressRepo *repository.ProgressRepository
}

// NewProgressService creates a new ProgressService instance.
func NewProgressService(progressRepo *repository.ProgressRepository) *ProgressService {
	return &ProgressService{progressRepo: progressRepo}
}

// ReportScore records score for a game at a difficulty when it beats the
// saved high score. Returns true when a new high score was set; an equal
// or lower score leaves the saved value untouched.
func (s *ProgressService) ReportScore(ctx context.Context, gameID, difficulty string, score int64) (bool, error) {
	prev, err := s.progressRepo.GetHighScore(ctx, gameID, difficulty)
	if err != nil {
		return false, err
	}

	if !BeatsHighScore(prev, score) {
		return false, nil
	}

	if _, err := s.progressRepo.SetHighScore(ctx, gameID, difficulty, score); err != nil {
		return false, err
	}

	log.Info().
		Str("game", gameID).
		Str("difficulty", difficulty).
		Int64("score", score).
		Msg("New high score")

	return true, nil
}

// HighScore returns the saved high score, or nil when none exists.
func (s *ProgressService) HighScore(ctx context.Context, gameID, difficulty string) (*int64, error) {
	return s.progressRepo.GetHighScore(ctx, gameID, difficulty)
}

// AdvanceLevel bumps the saved level for a game at a difficulty and
// returns the new level.
func (s *ProgressService) AdvanceLevel(ctx context.Context, gameID, difficulty string) (int, error) {
	level, err := s.progressRepo.GetLevel(ctx, gameID, difficulty)
	if err != nil {
		return 0, err
	}

	p, err := s.progressRepo.SetLevel(ctx, gameID, difficulty, level+1)
	if err != nil {
		return 0, err
	}

	return p.Level, nil
}

// Resume returns the unfinished-match marker for a game, or nil when the
// game has nothing to resume.
func (s *ProgressService) Resume(ctx context.Context, gameID string) (*model.ActiveGame, error) {
	active, err := s.progressRepo.GetActiveGame(ctx, gameID)
	if err != nil {
		if errors.Is(err, repository.ErrNoActiveGame) {
			return nil, nil
		}
		return nil, err
	}
	return active, nil
}

// TrackActive marks a game as having an unfinished match.
func (s *ProgressService) TrackActive(ctx context.Context, gameID, difficulty string) error {
	return s.progressRepo.SetActiveGame(ctx, gameID, difficulty)
}

// ClearActive removes a game's unfinished-match marker.
func (s *ProgressService) ClearActive(ctx context.Context, gameID string) error {
	return s.progressRepo.ClearActiveGame(ctx, gameID)
}

// BeatsHighScore reports whether score improves on the saved high
// score. A nil previous score means nothing is saved yet, and any first
// score counts as an improvement.
func BeatsHighScore(prev *int64, score int64) bool {
	return prev == nil || score > *prev
}
