package domain

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrGoalNotFound     = errors.New("weekly goal not found")
	ErrInvalidGoal      = errors.New("goal must be at least 1 kg CO2e")
	ErrGoalNotActive    = errors.New("weekly goal is not active")
	ErrGoalInvalidOwner = errors.New("invalid user id")
)

const MinGoalKg = 1.0

type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalFailed    GoalStatus = "failed"
)

type WeeklyGoal struct {
	ID             string     `json:"id" db:"id"`
	UserID         string     `json:"user_id" db:"user_id"`
	Goal           float64    `json:"goal" db:"goal"`
	StartDate      time.Time  `json:"start_date" db:"start_date"`
	EndDate        time.Time  `json:"end_date" db:"end_date"`
	Status         GoalStatus `json:"status" db:"status"`
	ActualEmission *float64   `json:"actual_emission,omitempty" db:"actual_emission"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
}

// NewWeeklyGoal creates an active goal covering the Monday-to-Sunday week
// that contains now.
func NewWeeklyGoal(userID string, target float64, now time.Time) (*WeeklyGoal, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrGoalInvalidOwner
	}
	if math.IsNaN(target) || target < MinGoalKg {
		return nil, ErrInvalidGoal
	}

	week := ThisWeek(now)
	return &WeeklyGoal{
		ID:        uuid.NewString(),
		UserID:    userID,
		Goal:      target,
		StartDate: week.Start,
		EndDate:   week.End,
		Status:    GoalActive,
		CreatedAt: now.UTC(),
	}, nil
}

func (g *WeeklyGoal) Week() Window {
	return Window{Start: g.StartDate, End: g.EndDate}
}

// Elapsed reports whether the goal's week is fully over at now.
func (g *WeeklyGoal) Elapsed(now time.Time) bool {
	return now.After(g.EndDate)
}

// Close records the week's actual emission and settles the status.
func (g *WeeklyGoal) Close(actual float64) error {
	if g.Status != GoalActive {
		return ErrGoalNotActive
	}
	g.ActualEmission = &actual
	if actual <= g.Goal {
		g.Status = GoalCompleted
	} else {
		g.Status = GoalFailed
	}
	return nil
}

// Supersede retires an active goal replaced by a newer one. The prior goal
// is always marked failed, whether or not it was on track.
func (g *WeeklyGoal) Supersede() error {
	if g.Status != GoalActive {
		return ErrGoalNotActive
	}
	g.Status = GoalFailed
	return nil
}

type GoalProgress struct {
	Goal            *WeeklyGoal `json:"goal"`
	WeeklyTotal     float64     `json:"weekly_total"`
	RawPercent      float64     `json:"raw_percent"`
	ProgressPercent float64     `json:"progress_percent"`
	OnTrack         bool        `json:"on_track"`
	Final           bool        `json:"final"`
}

// EvaluateGoal compares a weekly total against the goal. ProgressPercent is
// clamped to [0, 100] for display; RawPercent keeps the unclamped ratio.
// Before the week has elapsed OnTrack is a projection, not a verdict.
func EvaluateGoal(goal *WeeklyGoal, weeklyTotal float64, now time.Time) GoalProgress {
	p := GoalProgress{Goal: goal, WeeklyTotal: weeklyTotal}
	if goal == nil || goal.Goal <= 0 {
		return p
	}

	p.RawPercent = weeklyTotal / goal.Goal * 100
	p.ProgressPercent = math.Min(100, math.Max(0, p.RawPercent))
	p.OnTrack = weeklyTotal <= goal.Goal
	p.Final = goal.Elapsed(now)
	return p
}
