package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/comitanigiacomo/ecotrack-api/internal/core/domain"
)

var (
	_ domain.ActivityRepository = (*InMemoryActivityRepository)(nil)
	_ domain.GoalRepository     = (*InMemoryGoalRepository)(nil)
	_ domain.UserRepository     = (*InMemoryUserRepository)(nil)
	_ domain.ReviewRepository   = (*InMemoryReviewRepository)(nil)
)

type InMemoryActivityRepository struct {
	store map[string]*domain.Activity

	mu sync.RWMutex
}

func NewInMemoryActivityRepository() *InMemoryActivityRepository {
	return &InMemoryActivityRepository{
		store: make(map[string]*domain.Activity),
	}
}

func (r *InMemoryActivityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a := *activity
	r.store[activity.ID] = &a
	return nil
}

func (r *InMemoryActivityRepository) CreateWithinLimit(ctx context.Context, activity *domain.Activity, limit int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.countLocked(activity.UserID) >= limit {
		return domain.ErrGuestLimitReached
	}
	a := *activity
	r.store[activity.ID] = &a
	return nil
}

func (r *InMemoryActivityRepository) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	activity, ok := r.store[id]
	if !ok {
		return nil, domain.ErrActivityNotFound
	}
	a := *activity
	return &a, nil
}

func (r *InMemoryActivityRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Activity, error) {
	return r.filter(userID, func(*domain.Activity) bool { return true }), nil
}

func (r *InMemoryActivityRepository) ListByUserIDAndDateRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.Activity, error) {
	return r.filter(userID, func(a *domain.Activity) bool {
		return !a.Date.Before(from) && !a.Date.After(to)
	}), nil
}

func (r *InMemoryActivityRepository) filter(userID string, keep func(*domain.Activity) bool) []*domain.Activity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	activities := []*domain.Activity{}
	for _, a := range r.store {
		if a.UserID == userID && keep(a) {
			cp := *a
			activities = append(activities, &cp)
		}
	}

	sort.Slice(activities, func(i, j int) bool {
		if activities[i].Date.Equal(activities[j].Date) {
			return activities[i].CreatedAt.After(activities[j].CreatedAt)
		}
		return activities[i].Date.After(activities[j].Date)
	})

	return activities
}

func (r *InMemoryActivityRepository) countLocked(userID string) int {
	n := 0
	for _, a := range r.store {
		if a.UserID == userID {
			n++
		}
	}
	return n
}

func (r *InMemoryActivityRepository) Delete(ctx context.Context, id string, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.store[id]
	if !ok || a.UserID != userID {
		return domain.ErrActivityNotFound
	}

	delete(r.store, id)
	return nil
}

func (r *InMemoryActivityRepository) DeleteAllByUserID(ctx context.Context, userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, a := range r.store {
		if a.UserID == userID {
			delete(r.store, id)
			n++
		}
	}
	return n, nil
}

type InMemoryGoalRepository struct {
	store map[string]*domain.WeeklyGoal

	mu sync.Mutex
}

func NewInMemoryGoalRepository() *InMemoryGoalRepository {
	return &InMemoryGoalRepository{
		store: make(map[string]*domain.WeeklyGoal),
	}
}

func (r *InMemoryGoalRepository) ReplaceActive(ctx context.Context, next *domain.WeeklyGoal) (*domain.WeeklyGoal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var superseded *domain.WeeklyGoal
	for _, g := range r.store {
		if g.UserID == next.UserID && g.Status == domain.GoalActive {
			if err := g.Supersede(); err != nil {
				return nil, err
			}
			cp := *g
			superseded = &cp
		}
	}

	g := *next
	r.store[next.ID] = &g
	return superseded, nil
}

func (r *InMemoryGoalRepository) GetActive(ctx context.Context, userID string) (*domain.WeeklyGoal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, g := range r.store {
		if g.UserID == userID && g.Status == domain.GoalActive {
			cp := *g
			return &cp, nil
		}
	}
	return nil, domain.ErrGoalNotFound
}

func (r *InMemoryGoalRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.WeeklyGoal, error) {
	return r.filter(func(g *domain.WeeklyGoal) bool { return g.UserID == userID }, false), nil
}

func (r *InMemoryGoalRepository) ListExpiredActive(ctx context.Context, userID string, now time.Time) ([]*domain.WeeklyGoal, error) {
	return r.filter(func(g *domain.WeeklyGoal) bool {
		return g.Status == domain.GoalActive && g.EndDate.Before(now) && (userID == "" || g.UserID == userID)
	}, true), nil
}

func (r *InMemoryGoalRepository) filter(keep func(*domain.WeeklyGoal) bool, ascending bool) []*domain.WeeklyGoal {
	r.mu.Lock()
	defer r.mu.Unlock()

	goals := []*domain.WeeklyGoal{}
	for _, g := range r.store {
		if keep(g) {
			cp := *g
			goals = append(goals, &cp)
		}
	}

	sort.Slice(goals, func(i, j int) bool {
		if !goals[i].StartDate.Equal(goals[j].StartDate) {
			return goals[i].StartDate.After(goals[j].StartDate) != ascending
		}
		return goals[i].CreatedAt.After(goals[j].CreatedAt) != ascending
	})
	return goals
}

func (r *InMemoryGoalRepository) Close(ctx context.Context, goal *domain.WeeklyGoal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.store[goal.ID]
	if !ok {
		return domain.ErrGoalNotFound
	}
	if stored.Status != domain.GoalActive {
		return domain.ErrGoalNotActive
	}

	stored.Status = goal.Status
	stored.ActualEmission = goal.ActualEmission
	return nil
}

type InMemoryUserRepository struct {
	byID map[string]*domain.User

	mu sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		byID: make(map[string]*domain.User),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.Email != nil && r.emailTaken(*user.Email, user.ID) {
		return domain.ErrEmailAlreadyExists
	}

	u := *user
	r.byID[user.ID] = &u
	return nil
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.byID {
		if u.Email != nil && *u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *InMemoryUserRepository) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	if user.Email != nil && r.emailTaken(*user.Email, user.ID) {
		return domain.ErrEmailAlreadyExists
	}

	user.UpdatedAt = time.Now().UTC()
	u := *user
	r.byID[user.ID] = &u
	return nil
}

func (r *InMemoryUserRepository) emailTaken(email, exceptID string) bool {
	for id, u := range r.byID {
		if id != exceptID && u.Email != nil && *u.Email == email {
			return true
		}
	}
	return false
}

// InMemoryReviewRepository keeps reviews in submission order.
type InMemoryReviewRepository struct {
	reviews []*domain.Review

	mu sync.RWMutex
}

func NewInMemoryReviewRepository() *InMemoryReviewRepository {
	return &InMemoryReviewRepository{}
}

func (r *InMemoryReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *review
	r.reviews = append(r.reviews, &cp)
	return nil
}

func (r *InMemoryReviewRepository) List(ctx context.Context, limit int) ([]*domain.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Review, 0, len(r.reviews))
	for i := len(r.reviews) - 1; i >= 0; i-- {
		cp := *r.reviews[i]
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
