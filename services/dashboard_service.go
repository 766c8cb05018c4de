package services

import (
	"context"
	"fmt"

	"github.com/trungvq/football-predictions/models"
	"github.com/trungvq/football-predictions/repositories"
	"golang.org/x/sync/errgroup"
)

type DashboardService interface {
	GetStats(ctx context.Context) (*models.DashboardStats, error)
}

type dashboardService struct {
	userRepo  repositories.UserRepository
	teamRepo  repositories.TeamRepository
	matchRepo repositories.MatchRepository
	predRepo  repositories.PredictionRepository
}

func NewDashboardService(
	userRepo repositories.UserRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	predRepo repositories.PredictionRepository,
) DashboardService {
	return &dashboardService{
		userRepo:  userRepo,
		teamRepo:  teamRepo,
		matchRepo: matchRepo,
		predRepo:  predRepo,
	}
}

func (s *dashboardService) GetStats(ctx context.Context) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.userRepo.Count(gctx)
		stats.UsersTotal = n
		return err
	})
	g.Go(func() error {
		n, err := s.teamRepo.Count(gctx)
		stats.TeamsTotal = n
		return err
	})
	g.Go(func() error {
		n, err := s.matchRepo.Count(gctx)
		stats.MatchesTotal = n
		return err
	})
	g.Go(func() error {
		n, err := s.matchRepo.CountByStatus(gctx, string(models.StatusLive))
		stats.LiveMatches = n
		return err
	})
	g.Go(func() error {
		n, err := s.matchRepo.CountLocked(gctx)
		stats.LockedMatches = n
		return err
	})
	g.Go(func() error {
		n, err := s.predRepo.Count(gctx)
		stats.PredictionsTotal = n
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to collect dashboard stats: %w", err)
	}
	return stats, nil
}
