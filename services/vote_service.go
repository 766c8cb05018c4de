package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/trungvq/football-predictions/models"
	"github.com/trungvq/football-predictions/repositories"
)

const favoriteTeamCount = 3

type VoteService interface {
	VoteFavoriteTeams(ctx context.Context, userID int, teams []string) (*models.FavoriteTeamVote, error)
	MyVote(ctx context.Context, userID int) (*models.FavoriteTeamVote, error)
}

type voteService struct {
	voteRepo repositories.VoteRepository
}

func NewVoteService(voteRepo repositories.VoteRepository) VoteService {
	return &voteService{
		voteRepo: voteRepo,
	}
}

func (s *voteService) VoteFavoriteTeams(ctx context.Context, userID int, teams []string) (*models.FavoriteTeamVote, error) {
	cleaned := make([]string, 0, len(teams))
	seen := make(map[string]bool, len(teams))
	for _, team := range teams {
		name := strings.TrimSpace(team)
		if name == "" || seen[strings.ToLower(name)] {
			continue
		}
		seen[strings.ToLower(name)] = true
		cleaned = append(cleaned, name)
	}
	if len(cleaned) != favoriteTeamCount {
		return nil, ErrInvalidVoteSize
	}

	vote := &models.FavoriteTeamVote{
		UserID: userID,
		Teams:  cleaned,
	}
	if err := s.voteRepo.Create(ctx, vote); err != nil {
		if errors.Is(err, repositories.ErrVoteExists) {
			return nil, ErrAlreadyVoted
		}
		return nil, fmt.Errorf("failed to create vote: %w", err)
	}
	return vote, nil
}

func (s *voteService) MyVote(ctx context.Context, userID int) (*models.FavoriteTeamVote, error) {
	vote, err := s.voteRepo.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrVoteNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get vote for user %d: %w", userID, err)
	}
	return vote, nil
}
