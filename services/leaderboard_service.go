package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/trungvq/football-predictions/models"
	"github.com/trungvq/football-predictions/repositories"
	"github.com/trungvq/football-predictions/scoring"
)

type LeaderboardService interface {
	Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error)
}

type leaderboardService struct {
	predRepo  repositories.PredictionRepository
	matchRepo repositories.MatchRepository
	logger    *slog.Logger
}

func NewLeaderboardService(
	predRepo repositories.PredictionRepository,
	matchRepo repositories.MatchRepository,
	logger *slog.Logger,
) LeaderboardService {
	return &leaderboardService{
		predRepo:  predRepo,
		matchRepo: matchRepo,
		logger:    logger,
	}
}

func (s *leaderboardService) Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	rows, err := s.predRepo.ScoreRows(ctx)
	if err != nil {
		// The score rows query is the authoritative path. If it fails we can
		// still serve a ranking computed from the match list.
		s.logger.Warn("score rows query failed, serving fallback leaderboard", "error", err)
		return s.fallback(ctx)
	}
	return buildFromRows(rows), nil
}

func (s *leaderboardService) fallback(ctx context.Context) ([]models.LeaderboardEntry, error) {
	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for leaderboard: %w", err)
	}
	predictions, err := s.predRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions for leaderboard: %w", err)
	}

	byMatch := make(map[int][]models.Prediction, len(matches))
	for _, p := range predictions {
		byMatch[p.MatchID] = append(byMatch[p.MatchID], p)
	}
	for i := range matches {
		matches[i].Predictions = byMatch[matches[i].ID]
	}
	return scoring.BuildLeaderboard(matches), nil
}

type tallyEntry struct {
	msv         string
	fullName    string
	points      int
	predictions int
	exact       int
	earlySecs   int64
}

func buildFromRows(rows []repositories.ScoreRow) []models.LeaderboardEntry {
	tally := make(map[string]*tallyEntry)
	order := make([]string, 0)

	for _, row := range rows {
		identity := scoring.ResolveIdentity(scoring.Entry{
			Handle:   row.MSV,
			FullName: row.FullName,
		})
		if scoring.IsAdminIdentity(identity) {
			continue
		}

		entry, ok := tally[identity.Key]
		if !ok {
			entry = &tallyEntry{msv: row.MSV, fullName: identity.Name}
			tally[identity.Key] = entry
			order = append(order, identity.Key)
		}

		points := scoring.Score(row.PredA, row.PredB, row.ActualA, row.ActualB)
		entry.points += points
		entry.predictions++
		if points == scoring.PointsExact {
			entry.exact++
		}
		// Seconds between the prediction and kickoff reward early picks when
		// points and exact hits tie.
		if row.StartTime != nil && row.StartTime.After(row.CreatedAt) {
			entry.earlySecs += int64(row.StartTime.Sub(row.CreatedAt).Seconds())
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		a, b := tally[order[i]], tally[order[j]]
		if a.points != b.points {
			return a.points > b.points
		}
		if a.exact != b.exact {
			return a.exact > b.exact
		}
		if a.earlySecs != b.earlySecs {
			return a.earlySecs > b.earlySecs
		}
		return a.msv < b.msv
	})

	entries := make([]models.LeaderboardEntry, 0, len(order))
	for i, key := range order {
		e := tally[key]
		entries = append(entries, models.LeaderboardEntry{
			Rank:             i + 1,
			MSV:              e.msv,
			FullName:         e.fullName,
			TotalPoints:      e.points,
			PredictionCount:  e.predictions,
			ExactCount:       e.exact,
			TotalTimeSeconds: e.earlySecs,
		})
	}
	return entries
}
