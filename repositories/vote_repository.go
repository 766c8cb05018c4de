package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/trungvq/football-predictions/models"
)

var (
	ErrVoteNotFound = errors.New("vote not found")
	ErrVoteExists   = errors.New("vote already exists")
)

type VoteRepository interface {
	Create(ctx context.Context, vote *models.FavoriteTeamVote) error
	GetByUser(ctx context.Context, userID int) (*models.FavoriteTeamVote, error)
}

type postgresVoteRepository struct {
	db *sql.DB
}

func NewPostgresVoteRepository(db *sql.DB) VoteRepository {
	return &postgresVoteRepository{db: db}
}

func (r *postgresVoteRepository) Create(ctx context.Context, vote *models.FavoriteTeamVote) error {
	query := `
		INSERT INTO favorite_team_votes (user_id, teams)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		vote.UserID,
		pq.Array(vote.Teams),
	).Scan(&vote.ID, &vote.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" && pqErr.Constraint == "favorite_team_votes_user_id_key" {
			return ErrVoteExists
		}
		return err
	}
	return nil
}

func (r *postgresVoteRepository) GetByUser(ctx context.Context, userID int) (*models.FavoriteTeamVote, error) {
	query := `
		SELECT id, user_id, teams, created_at
		FROM favorite_team_votes
		WHERE user_id = $1`

	vote := &models.FavoriteTeamVote{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&vote.ID,
		&vote.UserID,
		pq.Array(&vote.Teams),
		&vote.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVoteNotFound
		}
		return nil, err
	}
	return vote, nil
}
