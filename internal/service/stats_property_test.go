// Property-based tests for the stats aggregation helpers.
package service

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/colindiffer/pocketgames/internal/model"
)

// TestTallyConservationProperty checks that tallying any result list
// conserves counts: every result lands in exactly one summary, and each
// summary's outcome counts add up to its play count.
func TestTallyConservationProperty(t *testing.T) {
	gameIDs := []string{"chess", "maze", "2048", "hearts", "klondike"}
	outcomes := []string{"won", "lost", "draw"}

	rapid.Check(t, func(t *rapid.T) {
		numResults := rapid.IntRange(0, 60).Draw(t, "numResults")

		results := make([]*model.GameResult, numResults)
		for i := range results {
			results[i] = &model.GameResult{
				GameID:  rapid.SampledFrom(gameIDs).Draw(t, "gameID"),
				Outcome: rapid.SampledFrom(outcomes).Draw(t, "outcome"),
				Score:   rapid.Int64Range(0, 10000).Draw(t, "score"),
			}
		}

		summaries := Tally(results)

		var totalPlays int64
		seen := make(map[string]bool)
		for _, s := range summaries {
			if seen[s.GameID] {
				t.Fatalf("game %s appears in two summaries", s.GameID)
			}
			seen[s.GameID] = true

			if s.Wins+s.Losses+s.Draws != s.Plays {
				t.Fatalf("game %s: outcome counts %d+%d+%d do not add up to %d plays",
					s.GameID, s.Wins, s.Losses, s.Draws, s.Plays)
			}
			if s.Plays == 0 {
				t.Fatalf("game %s: summary with zero plays", s.GameID)
			}
			totalPlays += s.Plays
		}

		if totalPlays != int64(numResults) {
			t.Fatalf("expected %d total plays, got %d", numResults, totalPlays)
		}
	})
}

// TestTallyBestScoreProperty checks that a game's Best equals the
// maximum score among its results.
func TestTallyBestScoreProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		numResults := rapid.IntRange(1, 40).Draw(t, "numResults")

		var expectedBest int64
		results := make([]*model.GameResult, numResults)
		for i := range results {
			score := rapid.Int64Range(0, 100000).Draw(t, "score")
			if score > expectedBest {
				expectedBest = score
			}
			results[i] = &model.GameResult{GameID: "reversi", Outcome: "won", Score: score}
		}

		summaries := Tally(results)
		if len(summaries) != 1 {
			t.Fatalf("expected one summary, got %d", len(summaries))
		}
		if summaries[0].Best != expectedBest {
			t.Fatalf("expected best %d, got %d", expectedBest, summaries[0].Best)
		}
	})
}

// TestSortByPlaysProperty checks the listing order: plays descending,
// ties broken by game ID.
func TestSortByPlaysProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		numGames := rapid.IntRange(0, 20).Draw(t, "numGames")

		summaries := make([]*model.GameSummary, numGames)
		for i := range summaries {
			summaries[i] = &model.GameSummary{
				GameID: rapid.StringMatching(`[a-z]{3,10}`).Draw(t, "gameID"),
				Plays:  rapid.Int64Range(0, 100).Draw(t, "plays"),
			}
		}

		SortByPlays(summaries)

		for i := 1; i < len(summaries); i++ {
			prev, cur := summaries[i-1], summaries[i]
			if cur.Plays > prev.Plays {
				t.Fatalf("summaries not sorted by plays descending at %d", i)
			}
			if cur.Plays == prev.Plays && cur.GameID < prev.GameID {
				t.Fatalf("tie at %d plays not broken by game ID", cur.Plays)
			}
		}
	})
}

// TestWinRateBoundsProperty checks that win rates stay within [0, 1]
// and agree with wins/plays.
func TestWinRateBoundsProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		plays := rapid.Int64Range(0, 1000).Draw(t, "plays")
		wins := rapid.Int64Range(0, plays).Draw(t, "wins")

		s := &model.GameSummary{GameID: "poker", Plays: plays, Wins: wins}
		rate := s.WinRate()

		if rate < 0 || rate > 1 {
			t.Fatalf("win rate %f out of bounds", rate)
		}
		if plays == 0 && rate != 0 {
			t.Fatalf("unplayed game should have zero win rate, got %f", rate)
		}
		if plays > 0 && rate != float64(wins)/float64(plays) {
			t.Fatalf("win rate %f disagrees with %d/%d", rate, wins, plays)
		}
	})
}

// TestBeatsHighScoreProperty checks the high-score improvement rule:
// any first score qualifies, and a saved score is only beaten by a
// strictly greater one.
func TestBeatsHighScoreProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		score := rapid.Int64Range(-1000, 1000).Draw(t, "score")

		if !BeatsHighScore(nil, score) {
			t.Fatal("first score must always count as an improvement")
		}

		prev := rapid.Int64Range(-1000, 1000).Draw(t, "prev")
		got := BeatsHighScore(&prev, score)
		if got != (score > prev) {
			t.Fatalf("BeatsHighScore(%d, %d) = %v", prev, score, got)
		}
	})
}
