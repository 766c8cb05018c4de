package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/trungvq/football-predictions/feed"
	"github.com/trungvq/football-predictions/models"
	"github.com/trungvq/football-predictions/repositories"
)

const matchTimeLayout = "2006-01-02 15:04"

// ScoreBroadcaster pushes live match updates to connected websocket clients.
type ScoreBroadcaster interface {
	BroadcastEvent(event string, data interface{})
}

const EventScoreUpdate = "SCORE_UPDATE"

type MatchService interface {
	CreateMatch(ctx context.Context, input MatchInput) (*models.Match, error)
	GetMatchByID(ctx context.Context, id int) (*models.Match, error)
	GetMatchDetail(ctx context.Context, id int) (*models.MatchDetail, error)
	ListMatches(ctx context.Context) ([]models.Match, error)
	Feed(ctx context.Context, now time.Time) ([]feed.DayBucket, error)
	UpdateMatchInfo(ctx context.Context, id int, input MatchInput) (*models.Match, error)
	UpdateScore(ctx context.Context, id int, input ScoreInput) (*models.Match, error)
	SetLocked(ctx context.Context, id int, locked bool) (*models.Match, error)
	AddEvent(ctx context.Context, matchID int, input EventInput) (*models.Match, error)
	DeleteMatch(ctx context.Context, id int) error
	AutoLockStartedMatches(ctx context.Context, now time.Time) (int64, error)
}

type MatchInput struct {
	Competition string  `json:"competition"`
	Stage       *string `json:"stage"`
	Group       *string `json:"group"`
	MatchCode   *string `json:"match_code"`

	TeamAID *int   `json:"team_a_id"`
	TeamBID *int   `json:"team_b_id"`
	TeamA   string `json:"team_a"`
	TeamB   string `json:"team_b"`

	Date    string  `json:"date"`
	Kickoff string  `json:"kickoff"`
	Status  string  `json:"status"`
	Minute  *string `json:"minute"`
}

type ScoreInput struct {
	ScoreA int     `json:"score_a"`
	ScoreB int     `json:"score_b"`
	Minute *string `json:"minute"`
	Status string  `json:"status"`
}

type EventInput struct {
	Minute   string `json:"minute"`
	Player   string `json:"player"`
	Type     string `json:"type"`
	TeamSide string `json:"team_side"`
}

type matchService struct {
	matchRepo repositories.MatchRepository
	teamRepo  repositories.TeamRepository
	predRepo  repositories.PredictionRepository
	hub       ScoreBroadcaster
}

func NewMatchService(
	matchRepo repositories.MatchRepository,
	teamRepo repositories.TeamRepository,
	predRepo repositories.PredictionRepository,
	hub ScoreBroadcaster,
) MatchService {
	return &matchService{
		matchRepo: matchRepo,
		teamRepo:  teamRepo,
		predRepo:  predRepo,
		hub:       hub,
	}
}

func (s *matchService) CreateMatch(ctx context.Context, input MatchInput) (*models.Match, error) {
	match, err := s.matchFromInput(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := s.matchRepo.Create(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	return match, nil
}

func (s *matchService) GetMatchByID(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match by id %d: %w", id, err)
	}
	return match, nil
}

func (s *matchService) GetMatchDetail(ctx context.Context, id int) (*models.MatchDetail, error) {
	match, err := s.GetMatchByID(ctx, id)
	if err != nil {
		return nil, err
	}

	events, err := s.matchRepo.ListEvents(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list events for match %d: %w", id, err)
	}
	match.Events = events

	predictions, err := s.predRepo.ListByMatch(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions for match %d: %w", id, err)
	}
	match.Predictions = predictions

	detail := &models.MatchDetail{
		Match:      *match,
		Stats:      predictionStats(predictions),
		Predictors: make([]models.PredictorInfo, 0, len(predictions)),
	}
	for _, p := range predictions {
		name := p.FullName
		if name == "" {
			name = p.MSV
		}
		detail.Predictors = append(detail.Predictors, models.PredictorInfo{
			Name: name,
			Pick: fmt.Sprintf("%d-%d", p.ScoreA, p.ScoreB),
		})
	}
	return detail, nil
}

func (s *matchService) ListMatches(ctx context.Context) ([]models.Match, error) {
	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}

func (s *matchService) Feed(ctx context.Context, now time.Time) ([]feed.DayBucket, error) {
	matches, err := s.ListMatches(ctx)
	if err != nil {
		return nil, err
	}
	return feed.BuildDays(matches, now), nil
}

func (s *matchService) UpdateMatchInfo(ctx context.Context, id int, input MatchInput) (*models.Match, error) {
	match, err := s.matchFromInput(ctx, input)
	if err != nil {
		return nil, err
	}
	match.ID = id

	if err := s.matchRepo.UpdateInfo(ctx, match); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to update match %d: %w", id, err)
	}
	return s.refreshAndBroadcast(ctx, id)
}

func (s *matchService) UpdateScore(ctx context.Context, id int, input ScoreInput) (*models.Match, error) {
	if input.ScoreA < 0 || input.ScoreB < 0 {
		return nil, ErrInvalidScore
	}

	if err := s.matchRepo.UpdateScore(ctx, id, input.ScoreA, input.ScoreB); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to update score for match %d: %w", id, err)
	}

	if input.Minute != nil || input.Status != "" {
		match, err := s.matchRepo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to reload match %d: %w", id, err)
		}
		if input.Minute != nil {
			match.Minute = input.Minute
		}
		if input.Status != "" {
			match.Status = input.Status
		}
		if err := s.matchRepo.UpdateInfo(ctx, match); err != nil {
			return nil, fmt.Errorf("failed to update match %d: %w", id, err)
		}
	}
	return s.refreshAndBroadcast(ctx, id)
}

func (s *matchService) SetLocked(ctx context.Context, id int, locked bool) (*models.Match, error) {
	if err := s.matchRepo.SetLocked(ctx, id, locked); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to set lock for match %d: %w", id, err)
	}
	return s.refreshAndBroadcast(ctx, id)
}

func (s *matchService) AddEvent(ctx context.Context, matchID int, input EventInput) (*models.Match, error) {
	if strings.TrimSpace(input.Player) == "" || strings.TrimSpace(input.Type) == "" {
		return nil, ErrValidationFailed
	}
	if _, err := s.GetMatchByID(ctx, matchID); err != nil {
		return nil, err
	}

	event := &models.MatchEvent{
		MatchID:  matchID,
		Minute:   strings.TrimSpace(input.Minute),
		Player:   strings.TrimSpace(input.Player),
		Type:     strings.TrimSpace(input.Type),
		TeamSide: strings.TrimSpace(input.TeamSide),
	}
	if err := s.matchRepo.AddEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to add event to match %d: %w", matchID, err)
	}
	return s.refreshAndBroadcast(ctx, matchID)
}

func (s *matchService) DeleteMatch(ctx context.Context, id int) error {
	err := s.matchRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("failed to delete match %d: %w", id, err)
	}
	return nil
}

func (s *matchService) AutoLockStartedMatches(ctx context.Context, now time.Time) (int64, error) {
	return s.matchRepo.LockStarted(ctx, now)
}

// refreshAndBroadcast reloads the match with its events and pushes it to the
// websocket hub so open clients update without polling.
func (s *matchService) refreshAndBroadcast(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload match %d: %w", id, err)
	}
	events, err := s.matchRepo.ListEvents(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list events for match %d: %w", id, err)
	}
	match.Events = events

	if s.hub != nil {
		s.hub.BroadcastEvent(EventScoreUpdate, match)
	}
	return match, nil
}

func (s *matchService) matchFromInput(ctx context.Context, input MatchInput) (*models.Match, error) {
	match := &models.Match{
		Competition: strings.TrimSpace(input.Competition),
		Stage:       input.Stage,
		Group:       input.Group,
		MatchCode:   input.MatchCode,
		TeamA:       strings.TrimSpace(input.TeamA),
		TeamB:       strings.TrimSpace(input.TeamB),
		Date:        strings.TrimSpace(input.Date),
		Kickoff:     strings.TrimSpace(input.Kickoff),
		Status:      strings.TrimSpace(input.Status),
		Minute:      input.Minute,
	}

	// Referencing a registered team copies its name, logo and color onto the
	// match row so the feed renders without joins.
	if input.TeamAID != nil {
		team, err := s.lookupTeam(ctx, *input.TeamAID)
		if err != nil {
			return nil, err
		}
		match.TeamA = team.Name
		match.TeamALogo = team.Logo
		match.TeamAColor = team.Color
	}
	if input.TeamBID != nil {
		team, err := s.lookupTeam(ctx, *input.TeamBID)
		if err != nil {
			return nil, err
		}
		match.TeamB = team.Name
		match.TeamBLogo = team.Logo
		match.TeamBColor = team.Color
	}

	if match.TeamA == "" || match.TeamB == "" {
		return nil, ErrMatchTeamsRequired
	}

	startTime, err := deriveStartTime(match.Date, match.Kickoff)
	if err != nil {
		return nil, err
	}
	match.StartTime = startTime
	return match, nil
}

func (s *matchService) lookupTeam(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %d: %w", id, err)
	}
	return team, nil
}

// deriveStartTime combines the admin-entered date ("2006-01-02") and kickoff
// ("15:04") strings into the timestamp used for ordering and locking.
func deriveStartTime(date, kickoff string) (*time.Time, error) {
	if date == "" || kickoff == "" {
		return nil, nil
	}
	t, err := time.Parse(matchTimeLayout, date+" "+kickoff)
	if err != nil {
		return nil, ErrInvalidMatchTime
	}
	return &t, nil
}

// predictionStats buckets picks into home win, draw and away win. The draw
// percentage takes whatever is left after rounding so the three sum to 100.
func predictionStats(predictions []models.Prediction) models.PredictionStats {
	stats := models.PredictionStats{Total: len(predictions)}
	if stats.Total == 0 {
		return stats
	}

	var home, away int
	for _, p := range predictions {
		switch {
		case p.ScoreA > p.ScoreB:
			home++
		case p.ScoreA < p.ScoreB:
			away++
		}
	}
	stats.HomePercent = home * 100 / stats.Total
	stats.AwayPercent = away * 100 / stats.Total
	stats.DrawPercent = 100 - stats.HomePercent - stats.AwayPercent
	return stats
}
