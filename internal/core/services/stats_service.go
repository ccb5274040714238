package services

import (
	"context"
	"errors"
	"time"

	"github.com/comitanigiacomo/ecotrack-api/internal/core/domain"
)

type StatsService struct {
	activityRepo domain.ActivityRepository
	goalRepo     domain.GoalRepository
}

func NewStatsService(activityRepo domain.ActivityRepository, goalRepo domain.GoalRepository) *StatsService {
	return &StatsService{
		activityRepo: activityRepo,
		goalRepo:     goalRepo,
	}
}

type Dashboard struct {
	Stats               domain.Rollup        `json:"stats"`
	Chart               []domain.ChartPoint  `json:"chart"`
	DailyChangePercent  float64              `json:"daily_change_percent"`
	WeeklyChangePercent float64              `json:"weekly_change_percent"`
	Goal                *domain.GoalProgress `json:"goal,omitempty"`
	GeneratedAt         time.Time            `json:"generated_at"`
}

// Dashboard aggregates the user's activities relative to now. Day and week
// boundaries are evaluated in now's location.
func (s *StatsService) Dashboard(ctx context.Context, userID string, now time.Time) (*Dashboard, error) {
	activities, err := s.activityRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	rollup := domain.Aggregate(activities, now)

	d := &Dashboard{
		Stats:               rollup,
		Chart:               rollup.ChartData(),
		DailyChangePercent:  domain.ChangePercent(rollup.Daily, rollup.PreviousDay),
		WeeklyChangePercent: domain.ChangePercent(rollup.Weekly, rollup.LastWeekly),
		GeneratedAt:         now,
	}

	goal, err := s.goalRepo.GetActive(ctx, userID)
	switch {
	case errors.Is(err, domain.ErrGoalNotFound):
	case err != nil:
		return nil, err
	default:
		progress := domain.EvaluateGoal(goal, domain.TotalInWindow(activities, goal.Week()), now)
		d.Goal = &progress
	}

	return d, nil
}
