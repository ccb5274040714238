package domain

import (
	"context"
	"time"
)

type ActivityRepository interface {
	// Create persists a new activity. Activities are never updated afterwards.
	Create(ctx context.Context, activity *Activity) error

	// GetByID retrieves a single activity by its ID.
	GetByID(ctx context.Context, id string) (*Activity, error)

	// ListByUserID returns every activity of the user, newest first.
	ListByUserID(ctx context.Context, userID string) ([]*Activity, error)

	// ListByUserIDAndDateRange returns activities whose date lies in [from, to].
	ListByUserIDAndDateRange(ctx context.Context, userID string, from, to time.Time) ([]*Activity, error)

	// CreateWithinLimit persists activity only while the user owns fewer
	// than limit activities, otherwise ErrGuestLimitReached. The count and
	// the insert are atomic.
	CreateWithinLimit(ctx context.Context, activity *Activity, limit int) error

	// Delete removes an activity owned by userID.
	Delete(ctx context.Context, id string, userID string) error

	// DeleteAllByUserID clears the user's history and reports how many rows went.
	DeleteAllByUserID(ctx context.Context, userID string) (int, error)
}

type GoalRepository interface {
	// ReplaceActive atomically marks any active goal of next.UserID as failed
	// and stores next as the only active goal. It returns the superseded goal,
	// or nil if there was none.
	ReplaceActive(ctx context.Context, next *WeeklyGoal) (*WeeklyGoal, error)

	// GetActive returns the user's active goal or ErrGoalNotFound.
	GetActive(ctx context.Context, userID string) (*WeeklyGoal, error)

	// ListByUserID returns all goals of the user ordered by start date, newest first.
	ListByUserID(ctx context.Context, userID string) ([]*WeeklyGoal, error)

	// ListExpiredActive returns active goals whose week ended before now.
	// An empty userID matches every user.
	ListExpiredActive(ctx context.Context, userID string, now time.Time) ([]*WeeklyGoal, error)

	// Close persists the final status and actual emission of a goal that is
	// still active. It returns ErrGoalNotActive if it was settled meanwhile.
	Close(ctx context.Context, goal *WeeklyGoal) error
}

type ReviewRepository interface {
	Create(ctx context.Context, review *Review) error

	// List returns at most limit reviews, newest first.
	List(ctx context.Context, limit int) ([]*Review, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, user *User) error
}
