// Package repository provides data access layer implementations.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/colindiffer/pocketgames/internal/model"
)

// Common errors for repository operations.
var (
	ErrProgressNotFound = errors.New("progress not found")
	ErrNoActiveGame     = errors.New("no active game")
)

// ProgressRepository handles per-game progress and active-match persistence.
type ProgressRepository struct {
	pool *pgxpool.Pool
}

// NewProgressRepository creates a new ProgressRepository instance.
func NewProgressRepository(pool *pgxpool.Pool) *ProgressRepository {
	return &ProgressRepository{pool: pool}
}

// Get retrieves the saved progress for a game at a difficulty.
// Returns ErrProgressNotFound if nothing has been recorded yet.
func (r *ProgressRepository) Get(ctx context.Context, gameID, difficulty string) (*model.Progress, error) {
	const query = `
		SELECT game_id, difficulty, high_score, level, updated_at
		FROM progress
		WHERE game_id = $1 AND difficulty = $2
	`

	var p model.Progress
	err := r.pool.QueryRow(ctx, query, gameID, difficulty).Scan(
		&p.GameID,
		&p.Difficulty,
		&p.HighScore,
		&p.Level,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProgressNotFound
		}
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}

	return &p, nil
}

// GetHighScore retrieves the recorded high score for a game at a
// difficulty. Returns nil when no score has been recorded yet.
func (r *ProgressRepository) GetHighScore(ctx context.Context, gameID, difficulty string) (*int64, error) {
	p, err := r.Get(ctx, gameID, difficulty)
	if err != nil {
		if errors.Is(err, ErrProgressNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p.HighScore, nil
}

// SetHighScore records score as the high score for a game at a
// difficulty, creating the progress row if needed. The caller decides
// whether score actually improves on the previous one.
func (r *ProgressRepository) SetHighScore(ctx context.Context, gameID, difficulty string, score int64) (*model.Progress, error) {
	const query = `
		INSERT INTO progress (game_id, difficulty, high_score, level, updated_at)
		VALUES ($1, $2, $3, 0, NOW())
		ON CONFLICT (game_id, difficulty)
		DO UPDATE SET high_score = EXCLUDED.high_score, updated_at = NOW()
		RETURNING game_id, difficulty, high_score, level, updated_at
	`

	var p model.Progress
	err := r.pool.QueryRow(ctx, query, gameID, difficulty, score).Scan(
		&p.GameID,
		&p.Difficulty,
		&p.HighScore,
		&p.Level,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set high score: %w", err)
	}

	return &p, nil
}

// GetLevel retrieves the saved level for a game at a difficulty.
// Returns 0 when no progress has been recorded yet.
func (r *ProgressRepository) GetLevel(ctx context.Context, gameID, difficulty string) (int, error) {
	p, err := r.Get(ctx, gameID, difficulty)
	if err != nil {
		if errors.Is(err, ErrProgressNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return p.Level, nil
}

// SetLevel records the reached level for a game at a difficulty,
// creating the progress row if needed.
func (r *ProgressRepository) SetLevel(ctx context.Context, gameID, difficulty string, level int) (*model.Progress, error) {
	const query = `
		INSERT INTO progress (game_id, difficulty, high_score, level, updated_at)
		VALUES ($1, $2, 0, $3, NOW())
		ON CONFLICT (game_id, difficulty)
		DO UPDATE SET level = EXCLUDED.level, updated_at = NOW()
		RETURNING game_id, difficulty, high_score, level, updated_at
	`

	var p model.Progress
	err := r.pool.QueryRow(ctx, query, gameID, difficulty, level).Scan(
		&p.GameID,
		&p.Difficulty,
		&p.HighScore,
		&p.Level,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set level: %w", err)
	}

	return &p, nil
}

// GetAll retrieves every saved progress row, ordered by game and
// difficulty for stable listings.
func (r *ProgressRepository) GetAll(ctx context.Context) ([]*model.Progress, error) {
	const query = `
		SELECT game_id, difficulty, high_score, level, updated_at
		FROM progress
		ORDER BY game_id, difficulty
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get progress rows: %w", err)
	}
	defer rows.Close()

	var out []*model.Progress
	for rows.Next() {
		var p model.Progress
		err := rows.Scan(
			&p.GameID,
			&p.Difficulty,
			&p.HighScore,
			&p.Level,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan progress: %w", err)
		}
		out = append(out, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating progress: %w", err)
	}

	return out, nil
}

// GetActiveGame retrieves the unfinished-match marker for a game.
// Returns ErrNoActiveGame when the game has no unfinished match.
func (r *ProgressRepository) GetActiveGame(ctx context.Context, gameID string) (*model.ActiveGame, error) {
	const query = `
		SELECT game_id, difficulty, updated_at
		FROM active_games
		WHERE game_id = $1
	`

	var a model.ActiveGame
	err := r.pool.QueryRow(ctx, query, gameID).Scan(&a.GameID, &a.Difficulty, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoActiveGame
		}
		return nil, fmt.Errorf("failed to get active game: %w", err)
	}

	return &a, nil
}

// SetActiveGame marks a game as having an unfinished match at the given
// difficulty. A game carries at most one marker; starting a new match
// replaces the old one.
func (r *ProgressRepository) SetActiveGame(ctx context.Context, gameID, difficulty string) error {
	const query = `
		INSERT INTO active_games (game_id, difficulty, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (game_id)
		DO UPDATE SET difficulty = EXCLUDED.difficulty, updated_at = NOW()
	`

	if _, err := r.pool.Exec(ctx, query, gameID, difficulty); err != nil {
		return fmt.Errorf("failed to set active game: %w", err)
	}

	return nil
}

// ClearActiveGame removes a game's unfinished-match marker. Clearing a
// game with no marker is a no-op.
func (r *ProgressRepository) ClearActiveGame(ctx context.Context, gameID string) error {
	const query = `DELETE FROM active_games WHERE game_id = $1`

	if _, err := r.pool.Exec(ctx, query, gameID); err != nil {
		return fmt.Errorf("failed to clear active game: %w", err)
	}

	return nil
}

// ListActiveGames retrieves every unfinished-match marker, newest first.
func (r *ProgressRepository) ListActiveGames(ctx context.Context) ([]*model.ActiveGame, error) {
	const query = `
		SELECT game_id, difficulty, updated_at
		FROM active_games
		ORDER BY updated_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active games: %w", err)
	}
	defer rows.Close()

	var out []*model.ActiveGame
	for rows.Next() {
		var a model.ActiveGame
		if err := rows.Scan(&a.GameID, &a.Difficulty, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan active game: %w", err)
		}
		out = append(out, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating active games: %w", err)
	}

	return out, nil
}
