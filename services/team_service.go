package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/trungvq/football-predictions/models"
	"github.com/trungvq/football-predictions/repositories"
	"github.com/trungvq/football-predictions/storage"
)

var ErrInvalidLogoType = errors.New("logo must be an image")

type TeamService interface {
	CreateTeam(ctx context.Context, input TeamInput) (*models.Team, error)
	GetTeamByID(ctx context.Context, id int) (*models.Team, error)
	GetAllTeams(ctx context.Context) ([]models.Team, error)
	UpdateTeam(ctx context.Context, id int, input TeamInput) (*models.Team, error)
	DeleteTeam(ctx context.Context, id int) error
	UploadLogo(ctx context.Context, id int, filename, contentType string, file io.Reader) (*models.Team, error)
}

type TeamInput struct {
	Name  string  `json:"name"`
	Color *string `json:"color"`
}

type teamService struct {
	teamRepo repositories.TeamRepository
	uploader storage.FileUploader
}

func NewTeamService(teamRepo repositories.TeamRepository, uploader storage.FileUploader) TeamService {
	return &teamService{
		teamRepo: teamRepo,
		uploader: uploader,
	}
}

func (s *teamService) CreateTeam(ctx context.Context, input TeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}

	team := &models.Team{
		Name:  name,
		Color: input.Color,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNameConflict) {
			return nil, ErrTeamNameConflict
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return team, nil
}

func (s *teamService) GetTeamByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team by id %d: %w", id, err)
	}
	return team, nil
}

func (s *teamService) GetAllTeams(ctx context.Context) ([]models.Team, error) {
	teams, err := s.teamRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all teams: %w", err)
	}
	if teams == nil {
		return []models.Team{}, nil
	}
	return teams, nil
}

func (s *teamService) UpdateTeam(ctx context.Context, id int, input TeamInput) (*models.Team, error) {
	team, err := s.GetTeamByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}
	team.Name = name
	team.Color = input.Color

	if err := s.teamRepo.Update(ctx, team); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamNotFound):
			return nil, ErrTeamNotFound
		case errors.Is(err, repositories.ErrTeamNameConflict):
			return nil, ErrTeamNameConflict
		default:
			return nil, fmt.Errorf("failed to update team %d: %w", id, err)
		}
	}
	return team, nil
}

func (s *teamService) DeleteTeam(ctx context.Context, id int) error {
	team, err := s.GetTeamByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.teamRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to delete team %d: %w", id, err)
	}

	// Best effort, the row is already gone.
	if s.uploader != nil && team.LogoKey != nil {
		_ = s.uploader.Delete(ctx, *team.LogoKey)
	}
	return nil
}

func (s *teamService) UploadLogo(ctx context.Context, id int, filename, contentType string, file io.Reader) (*models.Team, error) {
	if s.uploader == nil {
		return nil, errors.New("logo storage is not configured")
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrInvalidLogoType
	}

	team, err := s.GetTeamByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ext := path.Ext(filename)
	key := fmt.Sprintf("team-logos/%d%s", id, ext)

	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload logo for team %d: %w", id, err)
	}

	oldKey := team.LogoKey
	team.Logo = &result.Location
	team.LogoKey = &result.Key

	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, fmt.Errorf("failed to save logo for team %d: %w", id, err)
	}

	if oldKey != nil && *oldKey != result.Key {
		_ = s.uploader.Delete(ctx, *oldKey)
	}
	return team, nil
}
