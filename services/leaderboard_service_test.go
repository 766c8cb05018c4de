package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/trungvq/football-predictions/models"
	"github.com/trungvq/football-predictions/repositories"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func scoreRow(msv, name string, predA, predB, actualA, actualB int, early time.Duration) repositories.ScoreRow {
	kickoff := time.Date(2025, 1, 20, 18, 0, 0, 0, time.UTC)
	return repositories.ScoreRow{
		MSV:       msv,
		FullName:  name,
		PredA:     predA,
		PredB:     predB,
		ActualA:   actualA,
		ActualB:   actualB,
		CreatedAt: kickoff.Add(-early),
		StartTime: &kickoff,
	}
}

func TestLeaderboardRanksByPointsThenExact(t *testing.T) {
	svc := NewLeaderboardService(
		&stubPredictionRepo{
			scoreRows: func() ([]repositories.ScoreRow, error) {
				return []repositories.ScoreRow{
					// BH002: two outcome hits, 100 points, no exact.
					scoreRow("BH002", "Tran B", 3, 0, 2, 0, time.Hour),
					scoreRow("BH002", "Tran B", 1, 0, 2, 0, time.Hour),
					// BH001: one exact hit, 100 points.
					scoreRow("BH001", "Nguyen A", 2, 1, 2, 1, time.Hour),
				}, nil
			},
		},
		&stubMatchRepo{},
		discardLogger(),
	)

	entries, err := svc.Leaderboard(context.Background())
	if err != nil {
		t.Fatalf("Leaderboard() unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Leaderboard() returned %d entries, want 2", len(entries))
	}
	if entries[0].MSV != "BH001" {
		t.Fatalf("rank 1 = %s, want BH001 (exact hit breaks the tie)", entries[0].MSV)
	}
	if entries[0].TotalPoints != 100 || entries[0].ExactCount != 1 {
		t.Fatalf("rank 1 totals = %d points, %d exact", entries[0].TotalPoints, entries[0].ExactCount)
	}
	if entries[1].MSV != "BH002" || entries[1].PredictionCount != 2 {
		t.Fatalf("rank 2 = %+v", entries[1])
	}
	if entries[0].Rank != 1 || entries[1].Rank != 2 {
		t.Fatalf("ranks = %d, %d", entries[0].Rank, entries[1].Rank)
	}
}

func TestLeaderboardEarlyPredictionBreaksFullTie(t *testing.T) {
	svc := NewLeaderboardService(
		&stubPredictionRepo{
			scoreRows: func() ([]repositories.ScoreRow, error) {
				return []repositories.ScoreRow{
					scoreRow("BH001", "Nguyen A", 2, 1, 2, 1, time.Hour),
					scoreRow("BH002", "Tran B", 2, 1, 2, 1, 3*time.Hour),
				}, nil
			},
		},
		&stubMatchRepo{},
		discardLogger(),
	)

	entries, err := svc.Leaderboard(context.Background())
	if err != nil {
		t.Fatalf("Leaderboard() unexpected error: %v", err)
	}
	if entries[0].MSV != "BH002" {
		t.Fatalf("rank 1 = %s, want BH002 (earlier prediction)", entries[0].MSV)
	}
	if entries[0].TotalTimeSeconds != int64(3*time.Hour/time.Second) {
		t.Fatalf("TotalTimeSeconds = %d", entries[0].TotalTimeSeconds)
	}
}

func TestLeaderboardExcludesAdmins(t *testing.T) {
	svc := NewLeaderboardService(
		&stubPredictionRepo{
			scoreRows: func() ([]repositories.ScoreRow, error) {
				return []repositories.ScoreRow{
					scoreRow("ADMIN01", "Site Admin", 2, 1, 2, 1, time.Hour),
					scoreRow("BH001", "Nguyen A", 0, 0, 2, 1, time.Hour),
				}, nil
			},
		},
		&stubMatchRepo{},
		discardLogger(),
	)

	entries, err := svc.Leaderboard(context.Background())
	if err != nil {
		t.Fatalf("Leaderboard() unexpected error: %v", err)
	}
	if len(entries) != 1 || entries[0].MSV != "BH001" {
		t.Fatalf("Leaderboard() = %+v, want only BH001", entries)
	}
}

func TestLeaderboardFallsBackOnQueryError(t *testing.T) {
	two, one := 2, 1
	kickoff := time.Date(2025, 1, 18, 18, 0, 0, 0, time.UTC)
	svc := NewLeaderboardService(
		&stubPredictionRepo{
			scoreRows: func() ([]repositories.ScoreRow, error) {
				return nil, errors.New("relation does not exist")
			},
			listAll: func() ([]models.Prediction, error) {
				return []models.Prediction{
					{ID: 1, UserID: 1, MSV: "BH001", FullName: "Nguyen A", MatchID: 10, ScoreA: 2, ScoreB: 1},
				}, nil
			},
		},
		&stubMatchRepo{
			list: func() ([]models.Match, error) {
				return []models.Match{
					{ID: 10, Status: "ft", ScoreA: &two, ScoreB: &one, StartTime: &kickoff},
				}, nil
			},
		},
		discardLogger(),
	)

	entries, err := svc.Leaderboard(context.Background())
	if err != nil {
		t.Fatalf("Leaderboard() fallback unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("fallback returned %d entries, want 1", len(entries))
	}
	if entries[0].MSV != "BH001" || entries[0].TotalPoints != 100 || entries[0].ExactCount != 1 {
		t.Fatalf("fallback entry = %+v", entries[0])
	}
}
