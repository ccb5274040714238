package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/comitanigiacomo/ecotrack-api/internal/core/domain"
)

type MockActivityRepo struct {
	mock.Mock
}

func (m *MockActivityRepo) Create(ctx context.Context, a *domain.Activity) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockActivityRepo) CreateWithinLimit(ctx context.Context, a *domain.Activity, limit int) error {
	return m.Called(ctx, a, limit).Error(0)
}

func (m *MockActivityRepo) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Activity), args.Error(1)
}

func (m *MockActivityRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Activity, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Activity), args.Error(1)
}

func (m *MockActivityRepo) ListByUserIDAndDateRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.Activity, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Activity), args.Error(1)
}

func (m *MockActivityRepo) Delete(ctx context.Context, id string, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *MockActivityRepo) DeleteAllByUserID(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

type MockGoalRepo struct {
	mock.Mock
}

func (m *MockGoalRepo) ReplaceActive(ctx context.Context, next *domain.WeeklyGoal) (*domain.WeeklyGoal, error) {
	args := m.Called(ctx, next)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeeklyGoal), args.Error(1)
}

func (m *MockGoalRepo) GetActive(ctx context.Context, userID string) (*domain.WeeklyGoal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeeklyGoal), args.Error(1)
}

func (m *MockGoalRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.WeeklyGoal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.WeeklyGoal), args.Error(1)
}

func (m *MockGoalRepo) ListExpiredActive(ctx context.Context, userID string, now time.Time) ([]*domain.WeeklyGoal, error) {
	args := m.Called(ctx, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.WeeklyGoal), args.Error(1)
}

func (m *MockGoalRepo) Close(ctx context.Context, goal *domain.WeeklyGoal) error {
	return m.Called(ctx, goal).Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event domain.Event) error {
	return m.Called(ctx, event).Error(0)
}

type MockLanguageModel struct {
	mock.Mock
}

func (m *MockLanguageModel) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) GenerateToken(userID string) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

func eventOfType(eventType string) any {
	return mock.MatchedBy(func(e domain.Event) bool { return e.Type == eventType })
}

func f(v float64) *float64 { return &v }

type MockReviewRepo struct {
	mock.Mock
}

func (m *MockReviewRepo) Create(ctx context.Context, r *domain.Review) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockReviewRepo) List(ctx context.Context, limit int) ([]*domain.Review, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Review), args.Error(1)
}
