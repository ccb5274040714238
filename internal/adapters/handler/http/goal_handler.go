package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/ecotrack-api/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/ecotrack-api/internal/core/services"
)

type GoalHandler struct {
	svc *services.GoalService
}

func NewGoalHandler(svc *services.GoalService) *GoalHandler {
	return &GoalHandler{svc: svc}
}

type setGoalRequest struct {
	// Goal is the weekly budget in kg CO2e.
	Goal float64 `json:"goal" binding:"required"`
}

func (h *GoalHandler) RegisterRoutes(router *gin.RouterGroup) {
	goals := router.Group("/goals")
	{
		goals.POST("", h.Set)
		goals.GET("", h.History)
		goals.GET("/active", h.Active)
	}
}

// Set godoc
// @Summary  Set this week's emission goal, replacing any active one
// @Tags     goals
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body setGoalRequest true "goal"
// @Success  201 {object} domain.WeeklyGoal
// @Failure  400 {object} map[string]string
// @Router   /goals [post]
func (h *GoalHandler) Set(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req setGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	goal, err := h.svc.Set(c.Request.Context(), userID, req.Goal, middleware.Now(c))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, goal)
}

// History godoc
// @Summary  All goals, newest week first
// @Tags     goals
// @Produce  json
// @Security BearerAuth
// @Success  200 {array} domain.WeeklyGoal
// @Router   /goals [get]
func (h *GoalHandler) History(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	goals, err := h.svc.History(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, goals)
}

// Active godoc
// @Summary  Active goal with progress for its week
// @Tags     goals
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} domain.GoalProgress
// @Failure  404 {object} map[string]string
// @Router   /goals/active [get]
func (h *GoalHandler) Active(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	progress, err := h.svc.Progress(c.Request.Context(), userID, middleware.Now(c))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}
