package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/colindiffer/pocketgames/internal/model"
)

// ResultRepository handles finished-match records.
type ResultRepository struct {
	pool *pgxpool.Pool
}

// NewResultRepository creates a new ResultRepository instance.
func NewResultRepository(pool *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{pool: pool}
}

// Record stores one finished match.
func (r *ResultRepository) Record(ctx context.Context, gameID, difficulty, outcome string, score int64) (*model.GameResult, error) {
	const query = `
		INSERT INTO results (game_id, difficulty, outcome, score, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, game_id, difficulty, outcome, score, created_at
	`

	var res model.GameResult
	err := r.pool.QueryRow(ctx, query, gameID, difficulty, outcome, score).Scan(
		&res.ID,
		&res.GameID,
		&res.Difficulty,
		&res.Outcome,
		&res.Score,
		&res.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record result: %w", err)
	}

	return &res, nil
}

// RecentByGame retrieves the most recent results for a game, newest
// first.
func (r *ResultRepository) RecentByGame(ctx context.Context, gameID string, limit int) ([]*model.GameResult, error) {
	const query = `
		SELECT id, game_id, difficulty, outcome, score, created_at
		FROM results
		WHERE game_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, gameID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent results: %w", err)
	}
	defer rows.Close()

	var out []*model.GameResult
	for rows.Next() {
		var res model.GameResult
		err := rows.Scan(
			&res.ID,
			&res.GameID,
			&res.Difficulty,
			&res.Outcome,
			&res.Score,
			&res.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		out = append(out, &res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating results: %w", err)
	}

	return out, nil
}

// TallyByGame aggregates recorded results per game: plays, outcome
// counts, and the best score. Games with the most plays come first.
func (r *ResultRepository) TallyByGame(ctx context.Context) ([]*model.GameSummary, error) {
	const query = `
		SELECT
			game_id,
			COUNT(*) AS plays,
			COUNT(*) FILTER (WHERE outcome = 'won') AS wins,
			COUNT(*) FILTER (WHERE outcome = 'lost') AS losses,
			COUNT(*) FILTER (WHERE outcome = 'draw') AS draws,
			COALESCE(MAX(score), 0) AS best
		FROM results
		GROUP BY game_id
		ORDER BY plays DESC, game_id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to tally results: %w", err)
	}
	defer rows.Close()

	var out []*model.GameSummary
	for rows.Next() {
		var s model.GameSummary
		err := rows.Scan(
			&s.GameID,
			&s.Plays,
			&s.Wins,
			&s.Losses,
			&s.Draws,
			&s.Best,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		out = append(out, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating summaries: %w", err)
	}

	return out, nil
}

// TallyFor aggregates recorded results for one game. A game with no
// recorded results yields a zero summary rather than an error.
func (r *ResultRepository) TallyFor(ctx context.Context, gameID string) (*model.GameSummary, error) {
	const query = `
		SELECT
			COUNT(*) AS plays,
			COUNT(*) FILTER (WHERE outcome = 'won') AS wins,
			COUNT(*) FILTER (WHERE outcome = 'lost') AS losses,
			COUNT(*) FILTER (WHERE outcome = 'draw') AS draws,
			COALESCE(MAX(score), 0) AS best
		FROM results
		WHERE game_id = $1
	`

	s := model.GameSummary{GameID: gameID}
	err := r.pool.QueryRow(ctx, query, gameID).Scan(&s.Plays, &s.Wins, &s.Losses, &s.Draws, &s.Best)
	if err != nil {
		return nil, fmt.Errorf("failed to tally results for game: %w", err)
	}

	return &s, nil
}
