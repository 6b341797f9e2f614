package game

import (
	"fmt"
	"sort"
	"sync"
)

// Registry is a concurrency-safe catalog of games keyed by ID.
type Registry struct {
	games map[string]Game
	mu    sync.RWMutex
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		games: make(map[string]Game),
	}
}

// Register adds g to the catalog, replacing any earlier entry under the
// same ID.
func (r *Registry) Register(g Game) error {
	if g == nil {
		return fmt.Errorf("cannot register nil game")
	}
	if g.ID() == "" {
		return fmt.Errorf("game ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.games[g.ID()] = g
	return nil
}

// Get looks up a game by ID. The second return is false when no game
// is registered under id.
func (r *Registry) Get(id string) (Game, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.games[id]
	return g, ok
}

// List returns a fresh slice of every registered game, ordered by ID.
func (r *Registry) List() []Game {
	r.mu.RLock()
	defer r.mu.RUnlock()

	games := make([]Game, 0, len(r.games))
	for _, g := range r.games {
		games = append(games, g)
	}
	sort.Slice(games, func(i, j int) bool { return games[i].ID() < games[j].ID() })
	return games
}

// IDs returns the registered game IDs in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.games))
	for id := range r.games {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Count reports how many games are registered.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.games)
}

// Unregister drops the game registered under id, reporting whether
// there was one.
func (r *Registry) Unregister(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.games[id]; ok {
		delete(r.games, id)
		return true
	}
	return false
}

// DefaultRegistry is the process-wide catalog.
var DefaultRegistry = NewRegistry()

// Register adds a game to DefaultRegistry.
func Register(g Game) error {
	return DefaultRegistry.Register(g)
}

// GetGame looks a game up in DefaultRegistry.
func GetGame(id string) (Game, bool) {
	return DefaultRegistry.Get(id)
}

// ListGames lists the games in DefaultRegistry.
func ListGames() []Game {
	return DefaultRegistry.List()
}
