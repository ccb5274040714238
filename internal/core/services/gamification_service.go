package services

import (
	"context"
	"time"

	"github.com/comitanigiacomo/ecotrack-api/internal/core/domain"
)

type GamificationService struct {
	activityRepo domain.ActivityRepository
}

func NewGamificationService(activityRepo domain.ActivityRepository) *GamificationService {
	return &GamificationService{activityRepo: activityRepo}
}

func (s *GamificationService) Get(ctx context.Context, userID string, now time.Time) (*domain.Gamification, error) {
	activities, err := s.activityRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	g := domain.EvaluateBadges(activities, now)
	return &g, nil
}
