package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/trungvq/football-predictions/models"
)

var (
	ErrPredictionNotFound = errors.New("prediction not found")
	ErrPredictionExists   = errors.New("prediction already exists")
)

// ScoreRow is one scorable prediction against a settled match. StartTime is
// the match kickoff, used to measure how early the prediction was placed.
type ScoreRow struct {
	MSV       string
	FullName  string
	PredA     int
	PredB     int
	ActualA   int
	ActualB   int
	CreatedAt time.Time
	StartTime *time.Time
}

type PredictionRepository interface {
	Create(ctx context.Context, prediction *models.Prediction) error
	GetByUserAndMatch(ctx context.Context, userID, matchID int) (*models.Prediction, error)
	ListByMatch(ctx context.Context, matchID int) ([]models.Prediction, error)
	ListByUser(ctx context.Context, userID int) ([]models.Prediction, error)
	ListAll(ctx context.Context) ([]models.Prediction, error)
	ScoreRows(ctx context.Context) ([]ScoreRow, error)
	Count(ctx context.Context) (int, error)
}

type postgresPredictionRepository struct {
	db *sql.DB
}

func NewPostgresPredictionRepository(db *sql.DB) PredictionRepository {
	return &postgresPredictionRepository{db: db}
}

func (r *postgresPredictionRepository) Create(ctx context.Context, prediction *models.Prediction) error {
	query := `
		INSERT INTO predictions (user_id, match_id, score_a, score_b)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		prediction.UserID,
		prediction.MatchID,
		prediction.ScoreA,
		prediction.ScoreB,
	).Scan(&prediction.ID, &prediction.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" && pqErr.Constraint == "predictions_user_id_match_id_key" {
			return ErrPredictionExists
		}
		return err
	}
	return nil
}

func (r *postgresPredictionRepository) GetByUserAndMatch(ctx context.Context, userID, matchID int) (*models.Prediction, error) {
	query := `
		SELECT p.id, p.user_id, u.msv, u.full_name, p.match_id, p.score_a, p.score_b, p.created_at
		FROM predictions p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1 AND p.match_id = $2`

	prediction := &models.Prediction{}
	err := r.db.QueryRowContext(ctx, query, userID, matchID).Scan(
		&prediction.ID,
		&prediction.UserID,
		&prediction.MSV,
		&prediction.FullName,
		&prediction.MatchID,
		&prediction.ScoreA,
		&prediction.ScoreB,
		&prediction.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPredictionNotFound
		}
		return nil, err
	}
	return prediction, nil
}

func (r *postgresPredictionRepository) ListByMatch(ctx context.Context, matchID int) ([]models.Prediction, error) {
	query := `
		SELECT p.id, p.user_id, u.msv, u.full_name, p.match_id, p.score_a, p.score_b, p.created_at
		FROM predictions p
		JOIN users u ON u.id = p.user_id
		WHERE p.match_id = $1
		ORDER BY p.created_at ASC`
	return r.listPredictions(ctx, query, matchID)
}

func (r *postgresPredictionRepository) ListByUser(ctx context.Context, userID int) ([]models.Prediction, error) {
	query := `
		SELECT p.id, p.user_id, u.msv, u.full_name, p.match_id, p.score_a, p.score_b, p.created_at
		FROM predictions p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1
		ORDER BY p.created_at DESC`
	return r.listPredictions(ctx, query, userID)
}

func (r *postgresPredictionRepository) ListAll(ctx context.Context) ([]models.Prediction, error) {
	query := `
		SELECT p.id, p.user_id, u.msv, u.full_name, p.match_id, p.score_a, p.score_b, p.created_at
		FROM predictions p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at ASC`
	return r.listPredictions(ctx, query)
}

func (r *postgresPredictionRepository) ScoreRows(ctx context.Context) ([]ScoreRow, error) {
	query := `
		SELECT u.msv, u.full_name, p.score_a, p.score_b, m.score_a, m.score_b, p.created_at, m.start_time
		FROM predictions p
		JOIN users u ON u.id = p.user_id
		JOIN matches m ON m.id = p.match_id
		WHERE m.score_a IS NOT NULL
		  AND m.score_b IS NOT NULL
		  AND (m.status = 'ft' OR m.is_locked)
		ORDER BY p.created_at ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]ScoreRow, 0)
	for rows.Next() {
		var row ScoreRow
		scanErr := rows.Scan(
			&row.MSV,
			&row.FullName,
			&row.PredA,
			&row.PredB,
			&row.ActualA,
			&row.ActualB,
			&row.CreatedAt,
			&row.StartTime,
		)
		if scanErr != nil {
			return nil, scanErr
		}
		result = append(result, row)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresPredictionRepository) Count(ctx context.Context) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM predictions`).Scan(&total)
	return total, err
}

func (r *postgresPredictionRepository) listPredictions(ctx context.Context, query string, args ...interface{}) ([]models.Prediction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	predictions := make([]models.Prediction, 0)
	for rows.Next() {
		var prediction models.Prediction
		scanErr := rows.Scan(
			&prediction.ID,
			&prediction.UserID,
			&prediction.MSV,
			&prediction.FullName,
			&prediction.MatchID,
			&prediction.ScoreA,
			&prediction.ScoreB,
			&prediction.CreatedAt,
		)
		if scanErr != nil {
			return nil, scanErr
		}
		predictions = append(predictions, prediction)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return predictions, nil
}
