package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/ecotrack-api/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/ecotrack-api/internal/core/services"
)

type AssistantHandler struct {
	svc *services.AssistantService
}

func NewAssistantHandler(svc *services.AssistantService) *AssistantHandler {
	return &AssistantHandler{svc: svc}
}

type chatRequest struct {
	Message string `json:"message"`
}

// RegisterPublicRoutes mounts the endpoints that need no account.
func (h *AssistantHandler) RegisterPublicRoutes(router *gin.RouterGroup) {
	router.GET("/assistant/faqs", h.FAQs)
}

func (h *AssistantHandler) RegisterRoutes(router *gin.RouterGroup) {
	assistant := router.Group("/assistant")
	{
		assistant.POST("/chat", h.Chat)
		assistant.POST("/suggestions", h.Suggestions)
	}
}

// Chat godoc
// @Summary  Ask the sustainability assistant
// @Tags     assistant
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body chatRequest true "message"
// @Success  200 {object} map[string]string
// @Failure  400,503 {object} map[string]string
// @Router   /assistant/chat [post]
func (h *AssistantHandler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	reply, err := h.svc.Ask(c.Request.Context(), req.Message)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// Suggestions godoc
// @Summary  Personalised reduction tips from this week's activities
// @Tags     assistant
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} map[string]string
// @Failure  503 {object} map[string]string
// @Router   /assistant/suggestions [post]
func (h *AssistantHandler) Suggestions(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	suggestions, err := h.svc.Suggest(c.Request.Context(), userID, middleware.Now(c))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// FAQs godoc
// @Summary  Frequently asked questions
// @Tags     assistant
// @Produce  json
// @Success  200 {object} map[string][]string
// @Router   /assistant/faqs [get]
func (h *AssistantHandler) FAQs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"faqs": h.svc.FAQs()})
}
