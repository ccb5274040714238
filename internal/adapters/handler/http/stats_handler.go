package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/ecotrack-api/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/ecotrack-api/internal/core/services"
)

type StatsHandler struct {
	svc          *services.StatsService
	gamification *services.GamificationService
}

func NewStatsHandler(svc *services.StatsService, gamification *services.GamificationService) *StatsHandler {
	return &StatsHandler{svc: svc, gamification: gamification}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/stats/dashboard", h.GetDashboard)
	r.GET("/badges", h.GetBadges)
}

// GetDashboard godoc
// @Summary  Daily and weekly emission rollup with goal progress
// @Tags     stats
// @Produce  json
// @Security BearerAuth
// @Param    X-Timezone header string false "IANA time zone"
// @Success  200 {object} services.Dashboard
// @Router   /stats/dashboard [get]
func (h *StatsHandler) GetDashboard(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	dashboard, err := h.svc.Dashboard(c.Request.Context(), userID, middleware.Now(c))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// GetBadges godoc
// @Summary  Badges and logging streaks
// @Tags     stats
// @Produce  json
// @Security BearerAuth
// @Param    X-Timezone header string false "IANA time zone"
// @Success  200 {object} domain.Gamification
// @Router   /badges [get]
func (h *StatsHandler) GetBadges(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	g, err := h.gamification.Get(c.Request.Context(), userID, middleware.Now(c))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, g)
}
