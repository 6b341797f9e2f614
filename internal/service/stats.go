package service

import (
	"context"
	"sort"

	"github.com/colindiffer/pocketgames/internal/model"
	"github.com/colindiffer/pocketgames/internal/repository"
)

// StatsService produces per-game win-rate summaries from recorded
// results.
type StatsService struct {
	resultRepo *repository.ResultRepository
}

// NewStatsService creates a new StatsService instance.
func NewStatsService(resultRepo *repository.ResultRepository) *StatsService {
	return &StatsService{resultRepo: resultRepo}
}

// Summaries returns one summary per played game, most-played first.
func (s *StatsService) Summaries(ctx context.Context) ([]*model.GameSummary, error) {
	summaries, err := s.resultRepo.TallyByGame(ctx)
	if err != nil {
		return nil, err
	}
	SortByPlays(summaries)
	return summaries, nil
}

// Summary returns the summary for one game; an unplayed game yields a
// zero summary.
func (s *StatsService) Summary(ctx context.Context, gameID string) (*model.GameSummary, error) {
	return s.resultRepo.TallyFor(ctx, gameID)
}

// Recent returns the most recent results for one game, newest first.
func (s *StatsService) Recent(ctx context.Context, gameID string, limit int) ([]*model.GameResult, error) {
	return s.resultRepo.RecentByGame(ctx, gameID, limit)
}

// SortByPlays orders summaries by play count descending, breaking ties
// by game ID for a stable listing. The repository already returns this
// order; sorting again keeps the service correct for any source.
func SortByPlays(summaries []*model.GameSummary) {
	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].Plays != summaries[j].Plays {
			return summaries[i].Plays > summaries[j].Plays
		}
		return summaries[i].GameID < summaries[j].GameID
	})
}

// Tally folds a list of results into per-game summaries, mirroring the
// repository aggregate for in-memory sources.
func Tally(results []*model.GameResult) []*model.GameSummary {
	byGame := make(map[string]*model.GameSummary)
	var order []string

	for _, res := range results {
		s, ok := byGame[res.GameID]
		if !ok {
			s = &model.GameSummary{GameID: res.GameID}
			byGame[res.GameID] = s
			order = append(order, res.GameID)
		}

		s.Plays++
		switch res.Outcome {
		case "won":
			s.Wins++
		case "lost":
			s.Losses++
		case "draw":
			s.Draws++
		}
		if res.Score > s.Best {
			s.Best = res.Score
		}
	}

	out := make([]*model.GameSummary, 0, len(order))
	for _, id := range order {
		out = append(out, byGame[id])
	}
	SortByPlays(out)
	return out
}
