package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/comitanigiacomo/ecotrack-api/internal/core/domain"
)

const (
	DefaultReviewPageSize = 20
	MaxReviewPageSize     = 100
)

type ReviewService struct {
	repo   domain.ReviewRepository
	events domain.EventPublisher
	logger zerolog.Logger
}

func NewReviewService(repo domain.ReviewRepository, events domain.EventPublisher, logger zerolog.Logger) *ReviewService {
	return &ReviewService{
		repo:   repo,
		events: events,
		logger: logger.With().Str("component", "review_service").Logger(),
	}
}

type SubmitReviewInput struct {
	UserID  string
	Name    string
	Rating  int
	Comment string
}

func (s *ReviewService) Submit(ctx context.Context, input SubmitReviewInput) (*domain.Review, error) {
	review, err := domain.NewReview(input.UserID, input.Name, input.Rating, input.Comment, time.Now())
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("review service: failed to create review: %w", err)
	}

	s.logger.Info().Str("user_id", input.UserID).Int("rating", review.Rating).Msg("review submitted")
	publish(ctx, s.events, s.logger, domain.Event{
		Type:     domain.EventReviewSubmitted,
		UserID:   review.UserID,
		EntityID: review.ID,
	})

	return review, nil
}

// List returns the newest reviews. Out-of-range limits are clamped.
func (s *ReviewService) List(ctx context.Context, limit int) ([]*domain.Review, error) {
	switch {
	case limit <= 0:
		limit = DefaultReviewPageSize
	case limit > MaxReviewPageSize:
		limit = MaxReviewPageSize
	}
	return s.repo.List(ctx, limit)
}
