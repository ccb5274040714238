package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/comitanigiacomo/ecotrack-api/internal/adapters/handler/http"
	"github.com/comitanigiacomo/ecotrack-api/internal/adapters/repository"
	"github.com/comitanigiacomo/ecotrack-api/internal/core/services"
	"github.com/comitanigiacomo/ecotrack-api/internal/core/workers"
)

const testGuestLimit = 3

type stubModel struct {
	reply  string
	err    error
	prompt string
}

func (m *stubModel) Generate(ctx context.Context, prompt string) (string, error) {
	m.prompt = prompt
	return m.reply, m.err
}

type testApp struct {
	router     *gin.Engine
	activities *repository.InMemoryActivityRepository
	goals      *repository.InMemoryGoalRepository
	users      *repository.InMemoryUserRepository
	reviews    *repository.InMemoryReviewRepository
}

// newTestApp wires the real router over in-memory storage. A nil model
// leaves the assistant unconfigured.
func newTestApp(t *testing.T, model services.LanguageModel) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zerolog.Nop()
	activities := repository.NewInMemoryActivityRepository()
	goals := repository.NewInMemoryGoalRepository()
	users := repository.NewInMemoryUserRepository()
	reviews := repository.NewInMemoryReviewRepository()

	tokenService := services.NewTokenService("handler-test-secret", "ecotrack-test", time.Hour, users)
	authService := services.NewAuthService(users, tokenService)
	goalService := services.NewGoalService(goals, activities, nil, logger)
	worker := workers.NewGoalWorker(goalService, 0, logger)
	activityService := services.NewActivityService(activities, users, nil, worker, testGuestLimit, logger)
	statsService := services.NewStatsService(activities, goals)
	gamificationService := services.NewGamificationService(activities)

	assistantService := services.NewAssistantService(model, activities, logger)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:      adapterHTTP.NewAuthHandler(authService),
		ActivityHandler:  adapterHTTP.NewActivityHandler(activityService),
		StatsHandler:     adapterHTTP.NewStatsHandler(statsService, gamificationService),
		GoalHandler:      adapterHTTP.NewGoalHandler(goalService),
		AssistantHandler: adapterHTTP.NewAssistantHandler(assistantService),
		ReviewHandler:    adapterHTTP.NewReviewHandler(services.NewReviewService(reviews, nil, logger)),
		TokenService:     tokenService,
		Logger:           logger,
		Location:         time.UTC,
		StartTime:        time.Now(),
	})

	return &testApp{router: router, activities: activities, goals: goals, users: users, reviews: reviews}
}

func (a *testApp) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return a.doWithHeaders(t, method, path, token, nil, body)
}

func (a *testApp) doWithHeaders(t *testing.T, method, path, token string, headers map[string]string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

type sessionBody struct {
	Token string `json:"token"`
	User  struct {
		ID      string `json:"id"`
		Email   string `json:"email"`
		IsGuest bool   `json:"is_guest"`
	} `json:"user"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// signUp registers and logs in a user, returning the bearer token.
func (a *testApp) signUp(t *testing.T, email string) string {
	t.Helper()

	w := a.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email": email, "password": "supersecret",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": email, "password": "supersecret",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode[sessionBody](t, w).Token
}

func (a *testApp) guest(t *testing.T) sessionBody {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/v1/auth/guest", "", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[sessionBody](t, w)
}

func wasteActivity(generated, recycled float64) map[string]any {
	return map[string]any{
		"category": "waste",
		"details": map[string]any{
			"waste_generated_kg": generated,
			"waste_recycled_kg":  recycled,
		},
	}
}

func newPreflight(path string) *http.Request {
	req := httptest.NewRequest(http.MethodOptions, path, nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	return req
}

func serve(a *testApp, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}
