package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/trungvq/football-predictions/models"
	"github.com/trungvq/football-predictions/repositories"
)

type PredictionService interface {
	Predict(ctx context.Context, userID int, input PredictionInput) (*models.Prediction, error)
	MyPredictions(ctx context.Context, userID int) ([]models.Prediction, error)
}

type PredictionInput struct {
	MatchID int `json:"match_id"`
	ScoreA  int `json:"score_a"`
	ScoreB  int `json:"score_b"`
}

type predictionService struct {
	predRepo  repositories.PredictionRepository
	matchRepo repositories.MatchRepository
	now       func() time.Time
}

func NewPredictionService(
	predRepo repositories.PredictionRepository,
	matchRepo repositories.MatchRepository,
) PredictionService {
	return &predictionService{
		predRepo:  predRepo,
		matchRepo: matchRepo,
		now:       time.Now,
	}
}

func (s *predictionService) Predict(ctx context.Context, userID int, input PredictionInput) (*models.Prediction, error) {
	if input.ScoreA < 0 || input.ScoreB < 0 {
		return nil, ErrInvalidScore
	}

	match, err := s.matchRepo.GetByID(ctx, input.MatchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %d: %w", input.MatchID, err)
	}

	// Predictions close the moment the match is locked or kickoff has passed.
	if match.IsLocked {
		return nil, ErrPredictionsLocked
	}
	if match.StartTime != nil && !s.now().Before(*match.StartTime) {
		return nil, ErrPredictionsLocked
	}

	prediction := &models.Prediction{
		UserID:  userID,
		MatchID: input.MatchID,
		ScoreA:  input.ScoreA,
		ScoreB:  input.ScoreB,
	}
	if err := s.predRepo.Create(ctx, prediction); err != nil {
		if errors.Is(err, repositories.ErrPredictionExists) {
			return nil, ErrAlreadyPredicted
		}
		return nil, fmt.Errorf("failed to create prediction: %w", err)
	}
	return prediction, nil
}

func (s *predictionService) MyPredictions(ctx context.Context, userID int) ([]models.Prediction, error) {
	predictions, err := s.predRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions for user %d: %w", userID, err)
	}
	return predictions, nil
}
