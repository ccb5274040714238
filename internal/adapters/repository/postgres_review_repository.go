package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/ecotrack-api/internal/core/domain"
)

var _ domain.ReviewRepository = (*PostgresReviewRepository)(nil)

type PostgresReviewRepository struct {
	db *sqlx.DB
}

func NewPostgresReviewRepository(db *sqlx.DB) *PostgresReviewRepository {
	return &PostgresReviewRepository{db: db}
}

func (r *PostgresReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	query := `
		INSERT INTO reviews (id, user_id, name, rating, comment, avatar_url, created_at)
		VALUES (:id, :user_id, :name, :rating, :comment, :avatar_url, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, review); err != nil {
		if pgCode(err) == codeForeignKeyViolation {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("repository: create review failed: %w", err)
	}
	return nil
}

func (r *PostgresReviewRepository) List(ctx context.Context, limit int) ([]*domain.Review, error) {
	reviews := []*domain.Review{}
	query := `
		SELECT * FROM reviews
		ORDER BY created_at DESC, id
		LIMIT $1`

	if err := r.db.SelectContext(ctx, &reviews, query, limit); err != nil {
		return nil, err
	}
	return reviews, nil
}
