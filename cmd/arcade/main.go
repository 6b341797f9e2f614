// Package main runs the arcade's operational exerciser: every
// registered game plays a scripted match against its own engine, with
// results and high scores persisted the same way an interactive shell
// would persist them.
package main

import (
	"context"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/colindiffer/pocketgames/internal/config"
	"github.com/colindiffer/pocketgames/internal/game"
	"github.com/colindiffer/pocketgames/internal/game/backgammon"
	"github.com/colindiffer/pocketgames/internal/game/battleship"
	"github.com/colindiffer/pocketgames/internal/game/blackjack"
	"github.com/colindiffer/pocketgames/internal/game/checkers"
	"github.com/colindiffer/pocketgames/internal/game/chess"
	"github.com/colindiffer/pocketgames/internal/game/connectfour"
	"github.com/colindiffer/pocketgames/internal/game/freecell"
	"github.com/colindiffer/pocketgames/internal/game/game2048"
	"github.com/colindiffer/pocketgames/internal/game/hearts"
	"github.com/colindiffer/pocketgames/internal/game/klondike"
	"github.com/colindiffer/pocketgames/internal/game/maze"
	"github.com/colindiffer/pocketgames/internal/game/minesweeper"
	"github.com/colindiffer/pocketgames/internal/game/poker"
	"github.com/colindiffer/pocketgames/internal/game/reversi"
	"github.com/colindiffer/pocketgames/internal/game/sudoku"
	"github.com/colindiffer/pocketgames/internal/game/tictactoe"
	"github.com/colindiffer/pocketgames/internal/pkg/db"
	"github.com/colindiffer/pocketgames/internal/repository"
	"github.com/colindiffer/pocketgames/internal/service"
	"github.com/colindiffer/pocketgames/internal/session"
)

func main() {
	// Configure zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load configuration
	cfg, err := config.Load("config")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log.Info().Msg("Configuration loaded successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	dbPool, err := db.NewPool(ctx, &cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer dbPool.Close()

	// Run database migrations
	if err := runMigrations(ctx, dbPool); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Initialize repositories and services
	progressRepo := repository.NewProgressRepository(dbPool.Pool)
	resultRepo := repository.NewResultRepository(dbPool.Pool)

	progressService := service.NewProgressService(progressRepo)
	statsService := service.NewStatsService(resultRepo)

	// Initialize game registry and register games
	registry := game.NewRegistry()
	all := []game.Game{
		tictactoe.New(),
		connectfour.New(),
		reversi.New(),
		checkers.New(),
		chess.New(),
		backgammon.New(),
		minesweeper.New(),
		sudoku.New(),
		maze.New(),
		game2048.New(),
		battleship.New(),
		hearts.New(),
		blackjack.New(),
		poker.New(),
		freecell.New(),
		klondike.New(),
	}
	for _, g := range all {
		if !cfg.IsEnabled(g.ID()) {
			continue
		}
		if err := registry.Register(g); err != nil {
			log.Fatal().Err(err).Str("game", g.ID()).Msg("Failed to register game")
		}
	}

	log.Info().
		Int("game_count", registry.Count()).
		Strs("games", registry.IDs()).
		Msg("Games registered")

	// Initialize session manager
	manager := session.NewManager(registry, progressService, resultRepo, cfg.Arcade.Seed)
	if cfg.Arcade.LockTimeout > 0 {
		manager.SetLockTimeout(cfg.Arcade.LockTimeout)
	}

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		defer close(done)
		runExerciser(ctx, cfg, registry, manager)
		logSummaries(ctx, statsService)
	}()

	select {
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
		<-done
	case <-done:
	}

	log.Info().Msg("Arcade stopped gracefully")
}

// pickDifficulty resolves the configured default against what the game
// actually offers.
func pickDifficulty(g game.Game, preferred string) game.Difficulty {
	d := game.Difficulty(preferred)
	if game.SupportsDifficulty(g, d) {
		return d
	}
	return g.Difficulties()[0]
}

// runExerciser plays the configured number of matches per game through
// the session manager.
func runExerciser(ctx context.Context, cfg *config.Config, registry *game.Registry, manager *session.Manager) {
	seed := cfg.Arcade.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	driverRNG := rand.New(rand.NewSource(seed))

	for _, g := range registry.List() {
		d := pickDifficulty(g, cfg.Games.DefaultDifficulty)

		for round := 0; round < cfg.Arcade.Rounds; round++ {
			if ctx.Err() != nil {
				return
			}

			sess, err := manager.CreateMatch(ctx, g.ID(), d)
			if err != nil {
				log.Error().Err(err).Str("game", g.ID()).Msg("Failed to start match")
				continue
			}

			err = manager.Do(ctx, sess.ID, func(match game.Match) error {
				playMatch(match, driverRNG)
				return nil
			})
			if err != nil {
				log.Error().Err(err).Str("game", g.ID()).Msg("Failed to play match")
				_ = manager.End(ctx, sess.ID)
				continue
			}

			if !sess.Match.GameOver() {
				// Engine stalled under the scripted policy; abandon
				// without recording a result.
				log.Warn().Str("game", g.ID()).Msg("Match did not finish, abandoning")
				_ = manager.End(ctx, sess.ID)
				continue
			}

			if _, err := manager.EndWithResult(ctx, sess.ID); err != nil {
				log.Error().Err(err).Str("game", g.ID()).Msg("Failed to settle match")
			}
		}
	}
}

// logSummaries prints the per-game tallies accumulated so far.
func logSummaries(ctx context.Context, stats *service.StatsService) {
	summaries, err := stats.Summaries(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load summaries")
		return
	}

	for _, s := range summaries {
		log.Info().
			Str("game", s.GameID).
			Int64("plays", s.Plays).
			Int64("wins", s.Wins).
			Int64("losses", s.Losses).
			Int64("draws", s.Draws).
			Int64("best", s.Best).
			Float64("win_rate", s.WinRate()).
			Msg("Game summary")
	}
}

// runMigrations executes database migrations.
func runMigrations(ctx context.Context, pool *db.Pool) error {
	log.Info().Msg("Running database migrations...")

	// Migration 1: per-game progress
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS progress (
			game_id TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			high_score BIGINT NOT NULL DEFAULT 0,
			level INT NOT NULL DEFAULT 0,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (game_id, difficulty)
		);
	`)
	if err != nil {
		return err
	}
	log.Info().Msg("Migration 1: progress table created")

	// Migration 2: unfinished-match markers
	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS active_games (
			game_id TEXT PRIMARY KEY,
			difficulty TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`)
	if err != nil {
		return err
	}
	log.Info().Msg("Migration 2: active_games table created")

	// Migration 3: finished-match records
	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS results (
			id BIGSERIAL PRIMARY KEY,
			game_id TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			outcome TEXT NOT NULL,
			score BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_results_game_time ON results(game_id, created_at DESC);
	`)
	if err != nil {
		return err
	}
	log.Info().Msg("Migration 3: results table created")

	log.Info().Msg("All migrations completed successfully")
	return nil
}
