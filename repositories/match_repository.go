package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/trungvq/football-predictions/models"
)

var (
	ErrMatchNotFound = errors.New("match not found")
	ErrEventNotFound = errors.New("match event not found")
)

type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	List(ctx context.Context) ([]models.Match, error)
	UpdateInfo(ctx context.Context, match *models.Match) error
	UpdateScore(ctx context.Context, id, scoreA, scoreB int) error
	SetLocked(ctx context.Context, id int, locked bool) error
	// LockStarted locks every unlocked match whose kickoff has passed and
	// returns how many rows changed.
	LockStarted(ctx context.Context, now time.Time) (int64, error)
	Delete(ctx context.Context, id int) error
	AddEvent(ctx context.Context, event *models.MatchEvent) error
	ListEvents(ctx context.Context, matchID int) ([]models.MatchEvent, error)
	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status string) (int, error)
	CountLocked(ctx context.Context) (int, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `
	id, competition, stage, group_name, match_code,
	team_a, team_a_logo, team_a_color,
	team_b, team_b_logo, team_b_color,
	date, kickoff, start_time, status, minute, is_locked, score_a, score_b`

func (r *postgresMatchRepository) Create(ctx context.Context, match *models.Match) error {
	query := `
		INSERT INTO matches (
			competition, stage, group_name, match_code,
			team_a, team_a_logo, team_a_color,
			team_b, team_b_logo, team_b_color,
			date, kickoff, start_time, status, minute, is_locked, score_a, score_b
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id`

	return r.db.QueryRowContext(ctx, query,
		match.Competition,
		match.Stage,
		match.Group,
		match.MatchCode,
		match.TeamA,
		match.TeamALogo,
		match.TeamAColor,
		match.TeamB,
		match.TeamBLogo,
		match.TeamBColor,
		match.Date,
		match.Kickoff,
		match.StartTime,
		match.Status,
		match.Minute,
		match.IsLocked,
		match.ScoreA,
		match.ScoreB,
	).Scan(&match.ID)
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`

	match := &models.Match{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(matchFields(match)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

func (r *postgresMatchRepository) List(ctx context.Context) ([]models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches ORDER BY start_time ASC NULLS LAST, id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		var match models.Match
		if scanErr := rows.Scan(matchFields(&match)...); scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, match)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *postgresMatchRepository) UpdateInfo(ctx context.Context, match *models.Match) error {
	query := `
		UPDATE matches SET
			competition = $1,
			stage = $2,
			group_name = $3,
			match_code = $4,
			team_a = $5,
			team_a_logo = $6,
			team_a_color = $7,
			team_b = $8,
			team_b_logo = $9,
			team_b_color = $10,
			date = $11,
			kickoff = $12,
			start_time = $13,
			status = $14,
			minute = $15
		WHERE id = $16`

	result, err := r.db.ExecContext(ctx, query,
		match.Competition,
		match.Stage,
		match.Group,
		match.MatchCode,
		match.TeamA,
		match.TeamALogo,
		match.TeamAColor,
		match.TeamB,
		match.TeamBLogo,
		match.TeamBColor,
		match.Date,
		match.Kickoff,
		match.StartTime,
		match.Status,
		match.Minute,
		match.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) UpdateScore(ctx context.Context, id, scoreA, scoreB int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE matches SET score_a = $1, score_b = $2 WHERE id = $3`,
		scoreA, scoreB, id,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) SetLocked(ctx context.Context, id int, locked bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE matches SET is_locked = $1 WHERE id = $2`,
		locked, id,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) LockStarted(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE matches SET is_locked = TRUE WHERE is_locked = FALSE AND start_time IS NOT NULL AND start_time <= $1`,
		now,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *postgresMatchRepository) Delete(ctx context.Context, id int) error {
	// Events and predictions go with the match via ON DELETE CASCADE.
	result, err := r.db.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) AddEvent(ctx context.Context, event *models.MatchEvent) error {
	query := `
		INSERT INTO match_events (match_id, minute, player, type, team_side)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	return r.db.QueryRowContext(ctx, query,
		event.MatchID,
		event.Minute,
		event.Player,
		event.Type,
		event.TeamSide,
	).Scan(&event.ID)
}

func (r *postgresMatchRepository) ListEvents(ctx context.Context, matchID int) ([]models.MatchEvent, error) {
	query := `
		SELECT id, match_id, minute, player, type, team_side
		FROM match_events
		WHERE match_id = $1
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]models.MatchEvent, 0)
	for rows.Next() {
		var event models.MatchEvent
		scanErr := rows.Scan(
			&event.ID,
			&event.MatchID,
			&event.Minute,
			&event.Player,
			&event.Type,
			&event.TeamSide,
		)
		if scanErr != nil {
			return nil, scanErr
		}
		events = append(events, event)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *postgresMatchRepository) Count(ctx context.Context) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM matches`).Scan(&total)
	return total, err
}

func (r *postgresMatchRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM matches WHERE status = $1`, status).Scan(&total)
	return total, err
}

func (r *postgresMatchRepository) CountLocked(ctx context.Context) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM matches WHERE is_locked`).Scan(&total)
	return total, err
}

// matchFields lists scan destinations in matchColumns order.
func matchFields(m *models.Match) []interface{} {
	return []interface{}{
		&m.ID,
		&m.Competition,
		&m.Stage,
		&m.Group,
		&m.MatchCode,
		&m.TeamA,
		&m.TeamALogo,
		&m.TeamAColor,
		&m.TeamB,
		&m.TeamBLogo,
		&m.TeamBColor,
		&m.Date,
		&m.Kickoff,
		&m.StartTime,
		&m.Status,
		&m.Minute,
		&m.IsLocked,
		&m.ScoreA,
		&m.ScoreB,
	}
}
