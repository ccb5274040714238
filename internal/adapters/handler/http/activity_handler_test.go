package http_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/ecotrack-api/internal/core/domain"
)

func TestActivityHandler_Create(t *testing.T) {
	app := newTestApp(t, nil)
	token := app.signUp(t, "create@example.com")

	t.Run("Success: 201 Created with estimate", func(t *testing.T) {
		body := wasteActivity(2, 1)
		body["date"] = "2024-07-17"

		w := app.do(t, http.MethodPost, "/api/v1/activities", token, body)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		a := decode[domain.Activity](t, w)
		assert.NotEmpty(t, a.ID)
		assert.InDelta(t, 0.7, a.CO2e, 1e-9)
		assert.Equal(t, "Generated 2kg of waste, recycled 1kg", a.Description)
		assert.Equal(t, "2024-07-17", a.Date.Format("2006-01-02"))
	})

	t.Run("Fail: Unknown category returns 400", func(t *testing.T) {
		w := app.do(t, http.MethodPost, "/api/v1/activities", token, map[string]any{"category": "shopping"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Fail: Negative quantity returns 400", func(t *testing.T) {
		w := app.do(t, http.MethodPost, "/api/v1/activities", token, map[string]any{
			"category": "travel",
			"details":  map[string]any{"fuel_type": "petrol", "vehicle_type": "car", "distance_km": -4},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Fail: Missing category returns 400", func(t *testing.T) {
		w := app.do(t, http.MethodPost, "/api/v1/activities", token, map[string]any{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestActivityHandler_CreateDateOnlyInCallerZone(t *testing.T) {
	la, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Skipf("tzdata not available: %v", err)
	}

	app := newTestApp(t, nil)
	token := app.signUp(t, "pacific@example.com")
	headers := map[string]string{"X-Timezone": "America/Los_Angeles"}

	today := time.Now().In(la).Format("2006-01-02")
	body := wasteActivity(2, 0)
	body["date"] = today

	w := app.doWithHeaders(t, http.MethodPost, "/api/v1/activities", token, headers, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	a := decode[domain.Activity](t, w)
	assert.Equal(t, today, a.Date.In(la).Format("2006-01-02"))
	assert.Equal(t, 0, a.Date.In(la).Hour())

	d := decode[dashboardBody](t, app.doWithHeaders(t, http.MethodGet, "/api/v1/stats/dashboard", token, headers, nil))
	assert.InDelta(t, 1.0, d.Stats.Daily, 1e-9)
	assert.Zero(t, d.Stats.PreviousDay)

	t.Run("Export renders the caller's calendar day", func(t *testing.T) {
		w := app.doWithHeaders(t, http.MethodGet, "/api/v1/activities/export", token, headers, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), today+`,"Generated 2kg of waste, recycled 0kg",waste,1.00`)
	})
}

func TestActivityHandler_Estimate(t *testing.T) {
	app := newTestApp(t, nil)
	token := app.signUp(t, "estimate@example.com")

	w := app.do(t, http.MethodPost, "/api/v1/activities/estimate", token, wasteActivity(1, 3))

	require.Equal(t, http.StatusOK, w.Code)
	est := decode[domain.Estimate](t, w)
	assert.Less(t, est.CO2e, 0.0)

	list := app.do(t, http.MethodGet, "/api/v1/activities", token, nil)
	assert.JSONEq(t, "[]", list.Body.String())
}

func TestActivityHandler_ListDeleteClear(t *testing.T) {
	app := newTestApp(t, nil)
	owner := app.signUp(t, "owner@example.com")
	other := app.signUp(t, "other@example.com")

	older := wasteActivity(1, 0)
	older["date"] = "2024-07-01"
	newer := wasteActivity(2, 0)
	newer["date"] = "2024-07-10"

	w := app.do(t, http.MethodPost, "/api/v1/activities", owner, older)
	require.Equal(t, http.StatusCreated, w.Code)
	first := decode[domain.Activity](t, w)
	require.Equal(t, http.StatusCreated, app.do(t, http.MethodPost, "/api/v1/activities", owner, newer).Code)

	t.Run("List is newest first and scoped to the user", func(t *testing.T) {
		list := decode[[]domain.Activity](t, app.do(t, http.MethodGet, "/api/v1/activities", owner, nil))
		require.Len(t, list, 2)
		assert.True(t, list[0].Date.After(list[1].Date))

		empty := decode[[]domain.Activity](t, app.do(t, http.MethodGet, "/api/v1/activities", other, nil))
		assert.Empty(t, empty)
	})

	t.Run("Fail: Deleting someone else's activity returns 403", func(t *testing.T) {
		w := app.do(t, http.MethodDelete, "/api/v1/activities/"+first.ID, other, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Fail: Unknown activity returns 404", func(t *testing.T) {
		w := app.do(t, http.MethodDelete, "/api/v1/activities/missing", owner, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Success: Delete returns 204", func(t *testing.T) {
		w := app.do(t, http.MethodDelete, "/api/v1/activities/"+first.ID, owner, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Clear reports the deleted count", func(t *testing.T) {
		w := app.do(t, http.MethodDelete, "/api/v1/activities", owner, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"deleted":1}`, w.Body.String())
	})
}

func TestActivityHandler_Export(t *testing.T) {
	app := newTestApp(t, nil)
	token := app.signUp(t, "export@example.com")

	body := wasteActivity(2, 1)
	body["date"] = "2024-07-17"
	require.Equal(t, http.StatusCreated, app.do(t, http.MethodPost, "/api/v1/activities", token, body).Code)

	w := app.do(t, http.MethodGet, "/api/v1/activities/export", token, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/csv"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "ecotrack-activities.csv")

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,date,description,category,co2e", lines[0])
	assert.Contains(t, lines[1], `2024-07-17,"Generated 2kg of waste, recycled 1kg",waste,0.70`)
}

func TestActivityHandler_GuestLimit(t *testing.T) {
	app := newTestApp(t, nil)
	session := app.guest(t)

	for i := 0; i < testGuestLimit; i++ {
		w := app.do(t, http.MethodPost, "/api/v1/activities", session.Token, wasteActivity(1, 0))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := app.do(t, http.MethodPost, "/api/v1/activities", session.Token, wasteActivity(1, 0))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "guest limit reached")

	t.Run("Upgraded accounts are not capped", func(t *testing.T) {
		up := app.do(t, http.MethodPost, "/api/v1/auth/upgrade", session.Token, map[string]string{
			"email": "was-guest@example.com", "password": "supersecret",
		})
		require.Equal(t, http.StatusOK, up.Code)

		w := app.do(t, http.MethodPost, "/api/v1/activities", session.Token, wasteActivity(1, 0))
		assert.Equal(t, http.StatusCreated, w.Code)
	})
}
