package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/ecotrack-api/internal/core/domain"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
)

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func testDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		getEnv("DB_USER", "ecotrack_user"),
		getEnv("DB_PASSWORD", "secret"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "ecotrack_db"),
	)
}

func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Connect("pgx", testDSN())
	if err != nil {
		t.Skipf("Skipping integration tests: database connection failed: %v", err)
	}
	require.NoError(t, Migrate(context.Background(), db))
	return db
}

func cleanup(t *testing.T, db *sqlx.DB) {
	_, err := db.Exec("TRUNCATE TABLE reviews, weekly_goals, activities, users CASCADE")
	require.NoError(t, err, "Failed to clean up database")
}

func createUserFixture(t *testing.T, db *sqlx.DB) *domain.User {
	t.Helper()
	user, err := domain.NewUser(uuid.NewString(), fmt.Sprintf("fixture_%s@ecotrack.app", uuid.NewString()), "")
	require.NoError(t, err)
	require.NoError(t, NewPostgresUserRepository(db.DB).Create(context.Background(), user))
	return user
}

func TestPostgresActivityRepository_Integration(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	cleanup(t, db)
	defer cleanup(t, db)

	repo := NewPostgresActivityRepository(db)
	ctx := context.Background()
	user := createUserFixture(t, db)
	now := time.Now().UTC().Truncate(time.Microsecond)

	older, err := domain.NewActivity(user.ID, domain.CategoryTravel, domain.ActivityDetails{
		FuelType: "petrol", VehicleType: "car", DistanceKm: ptr(50),
	}, now.Add(-48*time.Hour), now)
	require.NoError(t, err)

	newer, err := domain.NewActivity(user.ID, domain.CategoryWaste, domain.ActivityDetails{
		WasteGeneratedKg: ptr(1), WasteRecycledKg: ptr(3),
	}, now, now)
	require.NoError(t, err)

	t.Run("Create and GetByID round-trips details", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, older))
		require.NoError(t, repo.Create(ctx, newer))

		got, err := repo.GetByID(ctx, older.ID)
		require.NoError(t, err)
		assert.Equal(t, older.Details, got.Details)
		assert.Equal(t, older.Description, got.Description)
		assert.InDelta(t, older.CO2e, got.CO2e, 1e-9)
		assert.True(t, older.Date.Equal(got.Date))
	})

	t.Run("Create for unknown user", func(t *testing.T) {
		orphan, _ := domain.NewActivity(uuid.NewString(), domain.CategoryFood, domain.ActivityDetails{}, now, now)
		assert.ErrorIs(t, repo.Create(ctx, orphan), domain.ErrUserNotFound)
	})

	t.Run("Lists newest first and by range", func(t *testing.T) {
		list, err := repo.ListByUserID(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, newer.ID, list[0].ID)

		ranged, err := repo.ListByUserIDAndDateRange(ctx, user.ID, now.Add(-time.Hour), now.Add(time.Hour))
		require.NoError(t, err)
		require.Len(t, ranged, 1)
		assert.Equal(t, newer.ID, ranged[0].ID)
	})

	t.Run("Delete enforces ownership", func(t *testing.T) {
		assert.ErrorIs(t, repo.Delete(ctx, newer.ID, "someone-else"), domain.ErrActivityNotFound)
		require.NoError(t, repo.Delete(ctx, newer.ID, user.ID))

		_, err := repo.GetByID(ctx, newer.ID)
		assert.ErrorIs(t, err, domain.ErrActivityNotFound)
	})

	t.Run("DeleteAllByUserID reports count", func(t *testing.T) {
		n, err := repo.DeleteAllByUserID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})
}

func TestPostgresActivityRepository_CreateWithinLimit(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	cleanup(t, db)
	defer cleanup(t, db)

	repo := NewPostgresActivityRepository(db)
	ctx := context.Background()
	guest := createUserFixture(t, db)
	now := time.Now().UTC()

	const limit, attempts = 3, 12
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a, err := domain.NewActivity(guest.ID, domain.CategoryFood, domain.ActivityDetails{}, now, now)
			if err != nil {
				errs <- err
				return
			}
			errs <- repo.CreateWithinLimit(ctx, a, limit)
		}()
	}
	wg.Wait()
	close(errs)

	accepted, rejected := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			accepted++
		case errors.Is(err, domain.ErrGuestLimitReached):
			rejected++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, limit, accepted)
	assert.Equal(t, attempts-limit, rejected)

	list, err := repo.ListByUserID(ctx, guest.ID)
	require.NoError(t, err)
	assert.Len(t, list, limit)

	t.Run("Unknown owner", func(t *testing.T) {
		orphan, _ := domain.NewActivity(uuid.NewString(), domain.CategoryFood, domain.ActivityDetails{}, now, now)
		assert.ErrorIs(t, repo.CreateWithinLimit(ctx, orphan, limit), domain.ErrUserNotFound)
	})
}

func TestPostgresReviewRepository_Integration(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	cleanup(t, db)
	defer cleanup(t, db)

	repo := NewPostgresReviewRepository(db)
	ctx := context.Background()
	user := createUserFixture(t, db)
	now := time.Now().UTC().Truncate(time.Microsecond)

	older, err := domain.NewReview(user.ID, "Ada", 5, "Great", now.Add(-time.Hour))
	require.NoError(t, err)
	newer, err := domain.NewReview(user.ID, "Grace", 2, "Meh", now)
	require.NoError(t, err)

	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	t.Run("Lists newest first with a limit", func(t *testing.T) {
		list, err := repo.List(ctx, 10)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, newer.ID, list[0].ID)
		assert.Equal(t, older.AvatarURL, list[1].AvatarURL)

		one, err := repo.List(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, one, 1)
	})

	t.Run("Unknown author", func(t *testing.T) {
		orphan, _ := domain.NewReview(uuid.NewString(), "Nobody", 3, "hi", now)
		assert.ErrorIs(t, repo.Create(ctx, orphan), domain.ErrUserNotFound)
	})
}

func TestPostgresGoalRepository_Integration(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	cleanup(t, db)
	defer cleanup(t, db)

	repo := NewPostgresGoalRepository(db)
	ctx := context.Background()
	user := createUserFixture(t, db)
	now := time.Now().UTC()

	first, err := domain.NewWeeklyGoal(user.ID, 20, now.AddDate(0, 0, -7))
	require.NoError(t, err)

	t.Run("First goal supersedes nothing", func(t *testing.T) {
		superseded, err := repo.ReplaceActive(ctx, first)
		require.NoError(t, err)
		assert.Nil(t, superseded)
	})

	t.Run("Second goal fails the first", func(t *testing.T) {
		second, _ := domain.NewWeeklyGoal(user.ID, 15, now)

		superseded, err := repo.ReplaceActive(ctx, second)
		require.NoError(t, err)
		require.NotNil(t, superseded)
		assert.Equal(t, first.ID, superseded.ID)
		assert.Equal(t, domain.GoalFailed, superseded.Status)

		active, err := repo.GetActive(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, second.ID, active.ID)

		history, err := repo.ListByUserID(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, second.ID, history[0].ID)
	})

	t.Run("Expired goals are closed exactly once", func(t *testing.T) {
		later := now.AddDate(0, 0, 8)

		expired, err := repo.ListExpiredActive(ctx, "", later)
		require.NoError(t, err)
		require.Len(t, expired, 1)

		goal := expired[0]
		require.NoError(t, goal.Close(10))
		require.NoError(t, repo.Close(ctx, goal))
		assert.ErrorIs(t, repo.Close(ctx, goal), domain.ErrGoalNotActive)

		_, err = repo.GetActive(ctx, user.ID)
		assert.ErrorIs(t, err, domain.ErrGoalNotFound)
	})
}

func TestPostgresUserRepository_Integration(t *testing.T) {
	sqlxDB := setupTestDB(t)
	sqlxDB.Close()

	db, err := sql.Open("postgres", testDSN())
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresUserRepository(db)
	ctx := context.Background()

	t.Run("Should create and fetch a user", func(t *testing.T) {
		email := fmt.Sprintf("test_%s@example.com", uuid.NewString())
		user, err := domain.NewUser(uuid.NewString(), email, "Jane")
		require.NoError(t, err)
		require.NoError(t, user.SetPassword("passwordStrong123"))

		require.NoError(t, repo.Create(ctx, user))

		byEmail, err := repo.GetByEmail(ctx, email)
		require.NoError(t, err)
		assert.Equal(t, user.ID, byEmail.ID)
		assert.Equal(t, "Jane", byEmail.DisplayName)

		byID, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, email, *byID.Email)
	})

	t.Run("Should fail on duplicate email", func(t *testing.T) {
		email := fmt.Sprintf("duplicate_%s@example.com", uuid.NewString())
		user1, _ := domain.NewUser(uuid.NewString(), email, "")
		require.NoError(t, repo.Create(ctx, user1))

		user2, _ := domain.NewUser(uuid.NewString(), email, "")
		assert.ErrorIs(t, repo.Create(ctx, user2), domain.ErrEmailAlreadyExists)
	})

	t.Run("Should upgrade a guest in place", func(t *testing.T) {
		guest := domain.NewGuestUser(uuid.NewString())
		require.NoError(t, repo.Create(ctx, guest))

		require.NoError(t, guest.Upgrade(fmt.Sprintf("up_%s@example.com", uuid.NewString()), "password123", ""))
		require.NoError(t, repo.Update(ctx, guest))

		got, err := repo.GetByID(ctx, guest.ID)
		require.NoError(t, err)
		assert.False(t, got.IsGuest)
		assert.NotEmpty(t, got.PasswordHash)
	})

	t.Run("Should return ErrUserNotFound", func(t *testing.T) {
		_, err := repo.GetByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, domain.ErrUserNotFound)

		_, err = repo.GetByEmail(ctx, "nonexistent@ghost.com")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func ptr(v float64) *float64 { return &v }
