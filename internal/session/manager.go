// Package session tracks live matches and funnels every engine mutation
// through a per-session lock, so each match has a single effective
// caller.
package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/colindiffer/pocketgames/internal/game"
	"github.com/colindiffer/pocketgames/internal/model"
	"github.com/colindiffer/pocketgames/internal/pkg/lock"
)

// Common errors for session operations.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrMatchInProgress = errors.New("match still in progress")
)

// ProgressStore is the slice of the progress service the manager needs.
type ProgressStore interface {
	ReportScore(ctx context.Context, gameID, difficulty string, score int64) (bool, error)
	TrackActive(ctx context.Context, gameID, difficulty string) error
	ClearActive(ctx context.Context, gameID string) error
}

// ResultStore records finished matches.
type ResultStore interface {
	Record(ctx context.Context, gameID, difficulty, outcome string, score int64) (*model.GameResult, error)
}

// Session is one live match.
type Session struct {
	ID         string
	GameID     string
	Difficulty game.Difficulty
	Match      game.Match
	StartedAt  time.Time
}

// Manager creates, looks up, and settles sessions. It is the only
// writer around engine calls: callers mutate a match through Do, which
// holds the session's lock.
type Manager struct {
	registry *game.Registry
	progress ProgressStore
	results  ResultStore
	locks    *lock.SessionLock

	// seed is the base for per-match RNG seeds; zero seeds from the
	// clock. A nonzero base gives reproducible runs.
	seed    int64
	counter atomic.Int64

	lockTimeout time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates a session manager. A zero seed draws match seeds
// from the clock.
func NewManager(registry *game.Registry, progress ProgressStore, results ResultStore, seed int64) *Manager {
	return &Manager{
		registry:    registry,
		progress:    progress,
		results:     results,
		locks:       lock.NewSessionLock(),
		seed:        seed,
		lockTimeout: 5 * time.Second,
		sessions:    make(map[string]*Session),
	}
}

// SetLockTimeout overrides how long a mutation may wait on a session's
// lock.
func (m *Manager) SetLockTimeout(d time.Duration) { m.lockTimeout = d }

// nextSeed returns the seed for the next match RNG.
func (m *Manager) nextSeed() int64 {
	if m.seed == 0 {
		return time.Now().UnixNano()
	}
	return m.seed + m.counter.Add(1)
}

// CreateMatch starts a fresh match of the given game and returns its
// session. The game is marked active so it can be offered for resume
// after a restart.
func (m *Manager) CreateMatch(ctx context.Context, gameID string, d game.Difficulty) (*Session, error) {
	g, ok := m.registry.Get(gameID)
	if !ok {
		return nil, fmt.Errorf("unknown game %q", gameID)
	}

	rng := rand.New(rand.NewSource(m.nextSeed()))
	match, err := g.NewMatch(d, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", gameID, err)
	}

	sess := &Session{
		ID:         uuid.NewString(),
		GameID:     gameID,
		Difficulty: d,
		Match:      match,
		StartedAt:  time.Now(),
	}

	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()

	if err := m.progress.TrackActive(ctx, gameID, string(d)); err != nil {
		m.remove(sess.ID)
		return nil, err
	}

	log.Info().
		Str("session", sess.ID).
		Str("game", gameID).
		Str("difficulty", string(d)).
		Msg("Match started")

	return sess, nil
}

// Get returns the session with the given ID.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	sess, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Do runs fn against the session's match while holding its lock. This
// is the only sanctioned way to mutate a live match.
func (m *Manager) Do(ctx context.Context, id string, fn func(game.Match) error) error {
	sess, err := m.Get(id)
	if err != nil {
		return err
	}
	return m.locks.WithLockContext(ctx, id, m.lockTimeout, func() error {
		return fn(sess.Match)
	})
}

// End abandons a session without recording a result and clears the
// game's unfinished-match marker.
func (m *Manager) End(ctx context.Context, id string) error {
	sess, err := m.Get(id)
	if err != nil {
		return err
	}

	m.remove(id)

	if err := m.progress.ClearActive(ctx, sess.GameID); err != nil {
		return err
	}

	log.Info().Str("session", id).Str("game", sess.GameID).Msg("Match abandoned")
	return nil
}

// EndWithResult settles a finished session: the result is recorded, the
// score is reported for high-score tracking, and the unfinished-match
// marker is cleared. Returns ErrMatchInProgress when the match has not
// reached a terminal state.
func (m *Manager) EndWithResult(ctx context.Context, id string) (*model.GameResult, error) {
	sess, err := m.Get(id)
	if err != nil {
		return nil, err
	}

	var outcome game.Outcome
	var score int64
	err = m.locks.WithLockContext(ctx, id, m.lockTimeout, func() error {
		if !sess.Match.GameOver() {
			return ErrMatchInProgress
		}
		outcome = sess.Match.Outcome()
		score = sess.Match.Score()
		return nil
	})
	if err != nil {
		return nil, err
	}

	res, err := m.results.Record(ctx, sess.GameID, string(sess.Difficulty), string(outcome), score)
	if err != nil {
		return nil, err
	}

	newHigh, err := m.progress.ReportScore(ctx, sess.GameID, string(sess.Difficulty), score)
	if err != nil {
		return nil, err
	}

	if err := m.progress.ClearActive(ctx, sess.GameID); err != nil {
		return nil, err
	}

	m.remove(id)

	log.Info().
		Str("session", id).
		Str("game", sess.GameID).
		Str("outcome", string(outcome)).
		Int64("score", score).
		Bool("high_score", newHigh).
		Msg("Match settled")

	return res, nil
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// remove drops the session and releases its lock entry.
func (m *Manager) remove(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	m.locks.Release(id)
}
