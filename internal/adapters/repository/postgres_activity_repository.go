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

var _ domain.ActivityRepository = (*PostgresActivityRepository)(nil)

type PostgresActivityRepository struct {
	db *sqlx.DB
}

func NewPostgresActivityRepository(db *sqlx.DB) *PostgresActivityRepository {
	return &PostgresActivityRepository{db: db}
}

func (r *PostgresActivityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	query := `
		INSERT INTO activities (
			id, user_id, date, category,
			details, description, co2e, created_at
		) VALUES (
			:id, :user_id, :date, :category,
			:details, :description, :co2e, :created_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, activity)
	if err != nil {
		switch pgCode(err) {
		case codeForeignKeyViolation:
			return domain.ErrUserNotFound
		case codeUniqueViolation:
			return fmt.Errorf("repository: duplicate activity id %s", activity.ID)
		}
		return fmt.Errorf("repository: create activity failed: %w", err)
	}
	return nil
}

// CreateWithinLimit locks the owner's row so concurrent inserts for the same
// user are serialized behind the count.
func (r *PostgresActivityRepository) CreateWithinLimit(ctx context.Context, activity *domain.Activity, limit int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("repository: begin capped insert failed: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var owner string
	err = tx.GetContext(ctx, &owner, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, activity.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("repository: lock owner failed: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO activities (
			id, user_id, date, category,
			details, description, co2e, created_at
		)
		SELECT $1, $2, $3, $4, $5, $6, $7, $8
		WHERE (SELECT COUNT(*) FROM activities WHERE user_id = $2) < $9`,
		activity.ID, activity.UserID, activity.Date, activity.Category,
		activity.Details, activity.Description, activity.CO2e, activity.CreatedAt,
		limit,
	)
	if err != nil {
		return fmt.Errorf("repository: capped insert failed: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrGuestLimitReached
	}
	return tx.Commit()
}

func (r *PostgresActivityRepository) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	var activity domain.Activity
	query := `SELECT * FROM activities WHERE id = $1`

	err := r.db.GetContext(ctx, &activity, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrActivityNotFound
		}
		return nil, err
	}
	return &activity, nil
}

func (r *PostgresActivityRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Activity, error) {
	activities := []*domain.Activity{}
	query := `
		SELECT * FROM activities
		WHERE user_id = $1
		ORDER BY date DESC, created_at DESC`

	if err := r.db.SelectContext(ctx, &activities, query, userID); err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *PostgresActivityRepository) ListByUserIDAndDateRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.Activity, error) {
	activities := []*domain.Activity{}
	query := `
		SELECT * FROM activities
		WHERE user_id = $1
		  AND date >= $2
		  AND date <= $3
		ORDER BY date DESC, created_at DESC`

	if err := r.db.SelectContext(ctx, &activities, query, userID, from, to); err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *PostgresActivityRepository) Delete(ctx context.Context, id string, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM activities WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrActivityNotFound
	}
	return nil
}

func (r *PostgresActivityRepository) DeleteAllByUserID(ctx context.Context, userID string) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM activities WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(rows), nil
}
