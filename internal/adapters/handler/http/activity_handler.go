package http

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/ecotrack-api/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/ecotrack-api/internal/core/domain"
	"github.com/comitanigiacomo/ecotrack-api/internal/core/services"
)

const exportFilename = "ecotrack-activities.csv"

type ActivityHandler struct {
	svc *services.ActivityService
}

func NewActivityHandler(svc *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		svc: svc,
	}
}

type activityRequest struct {
	Category string                 `json:"category" binding:"required"`
	Details  domain.ActivityDetails `json:"details"`
	// Date is RFC3339 or YYYY-MM-DD (midnight in the caller's zone);
	// empty means now.
	Date string `json:"date"`
}

func (h *ActivityHandler) RegisterRoutes(router *gin.RouterGroup) {
	activities := router.Group("/activities")
	{
		activities.POST("", h.Create)
		activities.POST("/estimate", h.Estimate)
		activities.GET("", h.List)
		activities.GET("/export", h.Export)
		activities.DELETE("/:id", h.Delete)
		activities.DELETE("", h.Clear)
	}
}

// Create godoc
// @Summary  Log an activity
// @Tags     activities
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body activityRequest true "activity"
// @Success  201 {object} domain.Activity
// @Failure  400,403 {object} map[string]string
// @Router   /activities [post]
func (h *ActivityHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req activityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		handleError(c, err)
		return
	}

	activity, err := h.svc.Log(c.Request.Context(), services.LogActivityInput{
		UserID:   userID,
		Category: category,
		Details:  req.Details,
		Date:     domain.ParseActivityDate(req.Date, middleware.Now(c)),
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, activity)
}

// Estimate godoc
// @Summary  Estimate an activity without logging it
// @Tags     activities
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body activityRequest true "activity"
// @Success  200 {object} domain.Estimate
// @Failure  400 {object} map[string]string
// @Router   /activities/estimate [post]
func (h *ActivityHandler) Estimate(c *gin.Context) {
	var req activityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		handleError(c, err)
		return
	}

	estimate, err := h.svc.Preview(category, req.Details)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, estimate)
}

// List godoc
// @Summary  Activity history, newest first
// @Tags     activities
// @Produce  json
// @Security BearerAuth
// @Success  200 {array} domain.Activity
// @Router   /activities [get]
func (h *ActivityHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	list, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// Delete godoc
// @Summary  Delete one activity
// @Tags     activities
// @Security BearerAuth
// @Param    id path string true "activity id"
// @Success  204
// @Failure  403,404 {object} map[string]string
// @Router   /activities/{id} [delete]
func (h *ActivityHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Clear godoc
// @Summary  Delete the whole activity history
// @Tags     activities
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} map[string]int
// @Router   /activities [delete]
func (h *ActivityHandler) Clear(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	n, err := h.svc.Clear(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": n})
}

// Export godoc
// @Summary  Download the activity history as CSV
// @Tags     activities
// @Produce  text/csv
// @Security BearerAuth
// @Success  200 {string} string
// @Router   /activities/export [get]
func (h *ActivityHandler) Export(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.svc.ExportCSV(c.Request.Context(), userID, middleware.Location(c), &buf); err != nil {
		handleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+exportFilename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
