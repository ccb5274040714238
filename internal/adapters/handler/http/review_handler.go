package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/ecotrack-api/internal/core/services"
)

type ReviewHandler struct {
	svc *services.ReviewService
}

func NewReviewHandler(svc *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

type reviewRequest struct {
	Name    string `json:"name"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// RegisterPublicRoutes exposes the review wall without a token.
func (h *ReviewHandler) RegisterPublicRoutes(router *gin.RouterGroup) {
	router.GET("/reviews", h.List)
}

func (h *ReviewHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/reviews", h.Submit)
}

// Submit godoc
// @Summary  Rate the app
// @Tags     reviews
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body reviewRequest true "review"
// @Success  201 {object} domain.Review
// @Failure  400 {object} map[string]string
// @Router   /reviews [post]
func (h *ReviewHandler) Submit(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	review, err := h.svc.Submit(c.Request.Context(), services.SubmitReviewInput{
		UserID:  userID,
		Name:    req.Name,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

// List godoc
// @Summary  Latest reviews, newest first
// @Tags     reviews
// @Produce  json
// @Param    limit query int false "page size (default 20, max 100)"
// @Success  200 {array} domain.Review
// @Failure  400 {object} map[string]string
// @Router   /reviews [get]
func (h *ReviewHandler) List(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	reviews, err := h.svc.List(c.Request.Context(), limit)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}
