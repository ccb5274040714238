package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/ecotrack-api/internal/core/domain"
)

var _ domain.GoalRepository = (*PostgresGoalRepository)(nil)

type PostgresGoalRepository struct {
	db *sqlx.DB
}

func NewPostgresGoalRepository(db *sqlx.DB) *PostgresGoalRepository {
	return &PostgresGoalRepository{db: db}
}

// ReplaceActive runs in one transaction. The partial unique index on
// (user_id) WHERE status = 'active' rejects a concurrent second insert.
func (r *PostgresGoalRepository) ReplaceActive(ctx context.Context, next *domain.WeeklyGoal) (*domain.WeeklyGoal, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var superseded *domain.WeeklyGoal
	var current domain.WeeklyGoal
	err = tx.GetContext(ctx, &current, `
		SELECT * FROM weekly_goals
		WHERE user_id = $1 AND status = 'active'
		FOR UPDATE`, next.UserID)

	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, err
	default:
		if err := current.Supersede(); err != nil {
			return nil, err
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE weekly_goals SET status = $1 WHERE id = $2`,
			current.Status, current.ID,
		); err != nil {
			return nil, err
		}
		superseded = &current
	}

	query := `
		INSERT INTO weekly_goals (
			id, user_id, goal, start_date, end_date,
			status, actual_emission, created_at
		) VALUES (
			:id, :user_id, :goal, :start_date, :end_date,
			:status, :actual_emission, :created_at
		)`

	if _, err := tx.NamedExecContext(ctx, query, next); err != nil {
		switch pgCode(err) {
		case codeForeignKeyViolation:
			return nil, domain.ErrGoalInvalidOwner
		case codeUniqueViolation:
			return nil, fmt.Errorf("repository: concurrent goal update for user %s: %w", next.UserID, err)
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return superseded, nil
}

func (r *PostgresGoalRepository) GetActive(ctx context.Context, userID string) (*domain.WeeklyGoal, error) {
	var goal domain.WeeklyGoal
	err := r.db.GetContext(ctx, &goal, `SELECT * FROM weekly_goals WHERE user_id = $1 AND status = 'active'`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, err
	}
	return &goal, nil
}

func (r *PostgresGoalRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.WeeklyGoal, error) {
	goals := []*domain.WeeklyGoal{}
	query := `
		SELECT * FROM weekly_goals
		WHERE user_id = $1
		ORDER BY start_date DESC, created_at DESC`

	if err := r.db.SelectContext(ctx, &goals, query, userID); err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *PostgresGoalRepository) ListExpiredActive(ctx context.Context, userID string, now time.Time) ([]*domain.WeeklyGoal, error) {
	goals := []*domain.WeeklyGoal{}
	query := `
		SELECT * FROM weekly_goals
		WHERE status = 'active'
		  AND end_date < $1
		  AND ($2 = '' OR user_id = $2)
		ORDER BY end_date`

	if err := r.db.SelectContext(ctx, &goals, query, now, userID); err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *PostgresGoalRepository) Close(ctx context.Context, goal *domain.WeeklyGoal) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE weekly_goals
		SET status = $1, actual_emission = $2
		WHERE id = $3 AND status = 'active'`,
		goal.Status, goal.ActualEmission, goal.ID,
	)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrGoalNotActive
	}
	return nil
}
