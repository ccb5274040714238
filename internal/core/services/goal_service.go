package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/comitanigiacomo/ecotrack-api/internal/core/domain"
	"github.com/comitanigiacomo/ecotrack-api/internal/observability"
)

type GoalService struct {
	repo         domain.GoalRepository
	activityRepo domain.ActivityRepository
	events       domain.EventPublisher
	logger       zerolog.Logger
}

func NewGoalService(repo domain.GoalRepository, activityRepo domain.ActivityRepository, events domain.EventPublisher, logger zerolog.Logger) *GoalService {
	return &GoalService{
		repo:         repo,
		activityRepo: activityRepo,
		events:       events,
		logger:       logger.With().Str("component", "goal_service").Logger(),
	}
}

// Set starts a new weekly goal for the week containing now. Any goal that
// was still active is marked failed.
func (s *GoalService) Set(ctx context.Context, userID string, target float64, now time.Time) (*domain.WeeklyGoal, error) {
	goal, err := domain.NewWeeklyGoal(userID, target, now)
	if err != nil {
		return nil, err
	}

	superseded, err := s.repo.ReplaceActive(ctx, goal)
	if err != nil {
		return nil, fmt.Errorf("goal service: failed to replace active goal: %w", err)
	}

	if superseded != nil {
		observability.RecordGoalTransition(string(domain.GoalFailed), "superseded")
		publish(ctx, s.events, s.logger, domain.Event{
			Type:     domain.EventGoalClosed,
			UserID:   userID,
			EntityID: superseded.ID,
			Status:   string(domain.GoalFailed),
		})
	}

	publish(ctx, s.events, s.logger, domain.Event{
		Type:     domain.EventGoalSet,
		UserID:   userID,
		EntityID: goal.ID,
		Status:   string(goal.Status),
	})

	return goal, nil
}

func (s *GoalService) Active(ctx context.Context, userID string) (*domain.WeeklyGoal, error) {
	return s.repo.GetActive(ctx, userID)
}

func (s *GoalService) History(ctx context.Context, userID string) ([]*domain.WeeklyGoal, error) {
	goals, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if goals == nil {
		goals = []*domain.WeeklyGoal{}
	}
	return goals, nil
}

// Progress evaluates the active goal against the emissions logged in its week.
func (s *GoalService) Progress(ctx context.Context, userID string, now time.Time) (*domain.GoalProgress, error) {
	goal, err := s.repo.GetActive(ctx, userID)
	if err != nil {
		return nil, err
	}

	total, err := s.weekTotal(ctx, goal)
	if err != nil {
		return nil, err
	}

	progress := domain.EvaluateGoal(goal, total, now)
	return &progress, nil
}

// CloseExpired settles every active goal whose week ended before now. An
// empty userID sweeps all users. It returns how many goals were closed.
func (s *GoalService) CloseExpired(ctx context.Context, userID string, now time.Time) (int, error) {
	expired, err := s.repo.ListExpiredActive(ctx, userID, now)
	if err != nil {
		return 0, err
	}

	closed := 0
	for _, goal := range expired {
		total, err := s.weekTotal(ctx, goal)
		if err != nil {
			return closed, err
		}

		if err := goal.Close(total); err != nil {
			continue
		}

		if err := s.repo.Close(ctx, goal); err != nil {
			if errors.Is(err, domain.ErrGoalNotActive) {
				continue
			}
			return closed, fmt.Errorf("goal service: failed to close goal %s: %w", goal.ID, err)
		}

		closed++
		observability.RecordGoalTransition(string(goal.Status), "week_ended")
		s.logger.Info().
			Str("goal_id", goal.ID).
			Str("user_id", goal.UserID).
			Str("status", string(goal.Status)).
			Float64("actual", total).
			Float64("goal", goal.Goal).
			Msg("weekly goal closed")

		publish(ctx, s.events, s.logger, domain.Event{
			Type:     domain.EventGoalClosed,
			UserID:   goal.UserID,
			EntityID: goal.ID,
			CO2e:     total,
			Status:   string(goal.Status),
		})
	}

	return closed, nil
}

func (s *GoalService) weekTotal(ctx context.Context, goal *domain.WeeklyGoal) (float64, error) {
	week := goal.Week()
	activities, err := s.activityRepo.ListByUserIDAndDateRange(ctx, goal.UserID, week.Start, week.End)
	if err != nil {
		return 0, err
	}
	return domain.TotalInWindow(activities, week), nil
}
