package services

import (
	"context"
	"time"

	"github.com/trungvq/football-predictions/models"
	"github.com/trungvq/football-predictions/repositories"
)

type stubMatchRepo struct {
	getByID     func(id int) (*models.Match, error)
	list        func() ([]models.Match, error)
	lockStarted func(now time.Time) (int64, error)
}

func (s *stubMatchRepo) Create(ctx context.Context, match *models.Match) error { return nil }
func (s *stubMatchRepo) GetByID(ctx context.Context, id int) (*models.Match, error) {
	if s.getByID != nil {
		return s.getByID(id)
	}
	return nil, repositories.ErrMatchNotFound
}
func (s *stubMatchRepo) List(ctx context.Context) ([]models.Match, error) {
	if s.list != nil {
		return s.list()
	}
	return nil, nil
}
func (s *stubMatchRepo) UpdateInfo(ctx context.Context, match *models.Match) error { return nil }
func (s *stubMatchRepo) UpdateScore(ctx context.Context, id, scoreA, scoreB int) error {
	return nil
}
func (s *stubMatchRepo) SetLocked(ctx context.Context, id int, locked bool) error { return nil }
func (s *stubMatchRepo) LockStarted(ctx context.Context, now time.Time) (int64, error) {
	if s.lockStarted != nil {
		return s.lockStarted(now)
	}
	return 0, nil
}
func (s *stubMatchRepo) Delete(ctx context.Context, id int) error { return nil }
func (s *stubMatchRepo) AddEvent(ctx context.Context, event *models.MatchEvent) error {
	return nil
}
func (s *stubMatchRepo) ListEvents(ctx context.Context, matchID int) ([]models.MatchEvent, error) {
	return nil, nil
}
func (s *stubMatchRepo) Count(ctx context.Context) (int, error) { return 0, nil }
func (s *stubMatchRepo) CountByStatus(ctx context.Context, status string) (int, error) {
	return 0, nil
}
func (s *stubMatchRepo) CountLocked(ctx context.Context) (int, error) { return 0, nil }

type stubPredictionRepo struct {
	create    func(prediction *models.Prediction) error
	listAll   func() ([]models.Prediction, error)
	scoreRows func() ([]repositories.ScoreRow, error)
}

func (s *stubPredictionRepo) Create(ctx context.Context, prediction *models.Prediction) error {
	if s.create != nil {
		return s.create(prediction)
	}
	return nil
}
func (s *stubPredictionRepo) GetByUserAndMatch(ctx context.Context, userID, matchID int) (*models.Prediction, error) {
	return nil, repositories.ErrPredictionNotFound
}
func (s *stubPredictionRepo) ListByMatch(ctx context.Context, matchID int) ([]models.Prediction, error) {
	return nil, nil
}
func (s *stubPredictionRepo) ListByUser(ctx context.Context, userID int) ([]models.Prediction, error) {
	return nil, nil
}
func (s *stubPredictionRepo) ListAll(ctx context.Context) ([]models.Prediction, error) {
	if s.listAll != nil {
		return s.listAll()
	}
	return nil, nil
}
func (s *stubPredictionRepo) ScoreRows(ctx context.Context) ([]repositories.ScoreRow, error) {
	if s.scoreRows != nil {
		return s.scoreRows()
	}
	return nil, nil
}
func (s *stubPredictionRepo) Count(ctx context.Context) (int, error) { return 0, nil }

type stubUserRepo struct {
	create   func(user *models.User) error
	getByMSV func(msv string) (*models.User, error)
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error {
	if s.create != nil {
		return s.create(user)
	}
	return nil
}
func (s *stubUserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	return nil, repositories.ErrUserNotFound
}
func (s *stubUserRepo) GetByMSV(ctx context.Context, msv string) (*models.User, error) {
	if s.getByMSV != nil {
		return s.getByMSV(msv)
	}
	return nil, repositories.ErrUserNotFound
}
func (s *stubUserRepo) Update(ctx context.Context, user *models.User) error { return nil }
func (s *stubUserRepo) Delete(ctx context.Context, id int) error            { return nil }
func (s *stubUserRepo) List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error) {
	return nil, 0, nil
}
func (s *stubUserRepo) Count(ctx context.Context) (int, error) { return 0, nil }

type stubTeamRepo struct {
	getByID func(id int) (*models.Team, error)
}

func (s *stubTeamRepo) Create(ctx context.Context, team *models.Team) error { return nil }
func (s *stubTeamRepo) GetByID(ctx context.Context, id int) (*models.Team, error) {
	if s.getByID != nil {
		return s.getByID(id)
	}
	return nil, repositories.ErrTeamNotFound
}
func (s *stubTeamRepo) GetAll(ctx context.Context) ([]models.Team, error)   { return nil, nil }
func (s *stubTeamRepo) Update(ctx context.Context, team *models.Team) error { return nil }
func (s *stubTeamRepo) Delete(ctx context.Context, id int) error            { return nil }
func (s *stubTeamRepo) Count(ctx context.Context) (int, error)              { return 0, nil }

type stubVoteRepo struct {
	create func(vote *models.FavoriteTeamVote) error
}

func (s *stubVoteRepo) Create(ctx context.Context, vote *models.FavoriteTeamVote) error {
	if s.create != nil {
		return s.create(vote)
	}
	return nil
}
func (s *stubVoteRepo) GetByUser(ctx context.Context, userID int) (*models.FavoriteTeamVote, error) {
	return nil, repositories.ErrVoteNotFound
}
