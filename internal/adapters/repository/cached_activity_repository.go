package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/comitanigiacomo/ecotrack-api/internal/adapters/cache"
	"github.com/comitanigiacomo/ecotrack-api/internal/core/domain"
)

var _ domain.ActivityRepository = (*CachedActivityRepository)(nil)

// CachedActivityRepository keeps each user's full activity list in the
// cache. Dashboards, badges and suggestions all read that list, and any
// write for the user drops it.
type CachedActivityRepository struct {
	next   domain.ActivityRepository
	cache  *cache.JSONStore
	logger zerolog.Logger
}

func NewCachedActivityRepository(next domain.ActivityRepository, store *cache.JSONStore, logger zerolog.Logger) *CachedActivityRepository {
	return &CachedActivityRepository{
		next:   next,
		cache:  store,
		logger: logger.With().Str("component", "activity_cache").Logger(),
	}
}

func (r *CachedActivityRepository) invalidate(ctx context.Context, userID string) {
	if err := r.cache.Delete(ctx, userID); err != nil {
		r.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to invalidate activity cache")
	}
}

func (r *CachedActivityRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Activity, error) {
	var activities []*domain.Activity
	err := r.cache.GetJSON(ctx, userID, &activities)
	if err == nil {
		return activities, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		r.logger.Warn().Err(err).Msg("activity cache read error")
	}

	activities, err = r.next.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if setErr := r.cache.SetJSON(ctx, userID, activities); setErr != nil {
		r.logger.Warn().Err(setErr).Msg("activity cache write error")
	}

	return activities, nil
}

func (r *CachedActivityRepository) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	return r.next.GetByID(ctx, id)
}

func (r *CachedActivityRepository) ListByUserIDAndDateRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.Activity, error) {
	return r.next.ListByUserIDAndDateRange(ctx, userID, from, to)
}

func (r *CachedActivityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	if err := r.next.Create(ctx, activity); err != nil {
		return err
	}
	r.invalidate(ctx, activity.UserID)
	return nil
}

func (r *CachedActivityRepository) CreateWithinLimit(ctx context.Context, activity *domain.Activity, limit int) error {
	if err := r.next.CreateWithinLimit(ctx, activity, limit); err != nil {
		return err
	}
	r.invalidate(ctx, activity.UserID)
	return nil
}

func (r *CachedActivityRepository) Delete(ctx context.Context, id string, userID string) error {
	defer r.invalidate(ctx, userID)
	return r.next.Delete(ctx, id, userID)
}

func (r *CachedActivityRepository) DeleteAllByUserID(ctx context.Context, userID string) (int, error) {
	defer r.invalidate(ctx, userID)
	return r.next.DeleteAllByUserID(ctx, userID)
}
