package domain

import (
	"context"
	"time"
)

const (
	EventActivityLogged  = "activity.logged"
	EventActivityDeleted = "activity.deleted"
	EventHistoryCleared  = "activity.history_cleared"
	EventGoalSet         = "goal.set"
	EventGoalClosed      = "goal.closed"
	EventReviewSubmitted = "review.submitted"
)

// Event is a domain notification emitted after a successful write.
type Event struct {
	Type       string    `json:"type"`
	UserID     string    `json:"user_id"`
	EntityID   string    `json:"entity_id,omitempty"`
	Category   Category  `json:"category,omitempty"`
	CO2e       float64   `json:"co2e,omitempty"`
	Status     string    `json:"status,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
