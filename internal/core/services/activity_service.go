package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/comitanigiacomo/ecotrack-api/internal/core/domain"
	"github.com/comitanigiacomo/ecotrack-api/internal/core/workers"
	"github.com/comitanigiacomo/ecotrack-api/internal/observability"
)

const DefaultGuestActivityLimit = 10

type ActivityService struct {
	repo       domain.ActivityRepository
	userRepo   domain.UserRepository
	events     domain.EventPublisher
	worker     *workers.GoalWorker
	guestLimit int
	logger     zerolog.Logger
}

func NewActivityService(
	repo domain.ActivityRepository,
	userRepo domain.UserRepository,
	events domain.EventPublisher,
	worker *workers.GoalWorker,
	guestLimit int,
	logger zerolog.Logger,
) *ActivityService {
	return &ActivityService{
		repo:       repo,
		userRepo:   userRepo,
		events:     events,
		worker:     worker,
		guestLimit: guestLimit,
		logger:     logger.With().Str("component", "activity_service").Logger(),
	}
}

type LogActivityInput struct {
	UserID   string
	Category domain.Category
	Details  domain.ActivityDetails
	Date     time.Time
}

func (s *ActivityService) Log(ctx context.Context, input LogActivityInput) (*domain.Activity, error) {
	activity, err := domain.NewActivity(input.UserID, input.Category, input.Details, input.Date, time.Now())
	if err != nil {
		return nil, err
	}

	limit, err := s.quotaFor(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if limit > 0 {
		err = s.repo.CreateWithinLimit(ctx, activity, limit)
	} else {
		err = s.repo.Create(ctx, activity)
	}
	if errors.Is(err, domain.ErrGuestLimitReached) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("activity service: failed to create activity: %w", err)
	}

	observability.RecordActivityLogged(string(activity.Category), activity.CO2e)
	publish(ctx, s.events, s.logger, domain.Event{
		Type:     domain.EventActivityLogged,
		UserID:   activity.UserID,
		EntityID: activity.ID,
		Category: activity.Category,
		CO2e:     activity.CO2e,
	})

	if s.worker != nil {
		s.worker.Enqueue(activity.UserID)
	}

	return activity, nil
}

// quotaFor returns the activity cap of the user, 0 meaning uncapped. Only
// guests are capped.
func (s *ActivityService) quotaFor(ctx context.Context, userID string) (int, error) {
	if s.guestLimit <= 0 || s.userRepo == nil {
		return 0, nil
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	if !user.IsGuest {
		return 0, nil
	}
	return s.guestLimit, nil
}

// Preview estimates an activity without storing it.
func (s *ActivityService) Preview(category domain.Category, details domain.ActivityDetails) (domain.Estimate, error) {
	in, err := details.Input(category)
	if err != nil {
		return domain.Estimate{}, err
	}
	return domain.EstimateEmission(in), nil
}

func (s *ActivityService) List(ctx context.Context, userID string) ([]*domain.Activity, error) {
	activities, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if activities == nil {
		activities = []*domain.Activity{}
	}
	return activities, nil
}

func (s *ActivityService) Delete(ctx context.Context, id string, userID string) error {
	activity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if activity.UserID != userID {
		return domain.ErrUnauthorized
	}

	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return err
	}

	publish(ctx, s.events, s.logger, domain.Event{
		Type:     domain.EventActivityDeleted,
		UserID:   userID,
		EntityID: id,
		Category: activity.Category,
		CO2e:     activity.CO2e,
	})

	return nil
}

// Clear removes the whole history of the user.
func (s *ActivityService) Clear(ctx context.Context, userID string) (int, error) {
	n, err := s.repo.DeleteAllByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}

	s.logger.Info().Str("user_id", userID).Int("deleted", n).Msg("activity history cleared")
	publish(ctx, s.events, s.logger, domain.Event{
		Type:   domain.EventHistoryCleared,
		UserID: userID,
	})

	return n, nil
}

// ExportCSV renders the history with dates in loc.
func (s *ActivityService) ExportCSV(ctx context.Context, userID string, loc *time.Location, w io.Writer) error {
	activities, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return err
	}
	return domain.WriteActivitiesCSV(w, activities, loc)
}
