package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/ecotrack-api/internal/core/domain"
	"github.com/comitanigiacomo/ecotrack-api/internal/core/services"
)

type AuthHandler struct {
	service *services.AuthService
}

func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{
		service: service,
	}
}

type registerRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"display_name"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email,omitempty"`
	DisplayName string    `json:"display_name"`
	IsGuest     bool      `json:"is_guest"`
	CreatedAt   time.Time `json:"created_at"`
}

type sessionResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func newUserResponse(u *domain.User) userResponse {
	resp := userResponse{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		IsGuest:     u.IsGuest,
		CreatedAt:   u.CreatedAt,
	}
	if u.Email != nil {
		resp.Email = *u.Email
	}
	return resp
}

func newSessionResponse(s *services.Session) sessionResponse {
	return sessionResponse{Token: s.Token, User: newUserResponse(s.User)}
}

// RegisterRoutes mounts the public endpoints.
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/guest", h.Guest)
	}
}

// RegisterProtectedRoutes mounts the endpoints that need a signed-in user.
func (h *AuthHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	router.POST("/auth/upgrade", h.Upgrade)
	router.GET("/me", h.Me)
}

// Register godoc
// @Summary  Create an account
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body registerRequest true "credentials"
// @Success  201 {object} userResponse
// @Failure  400,409 {object} map[string]string
// @Router   /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.service.Register(c.Request.Context(), services.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newUserResponse(user))
}

// Login godoc
// @Summary  Sign in with email and password
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body loginRequest true "credentials"
// @Success  200 {object} sessionResponse
// @Failure  400,401 {object} map[string]string
// @Router   /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.service.Login(c.Request.Context(), services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, newSessionResponse(session))
}

// Guest godoc
// @Summary  Start an anonymous session
// @Tags     auth
// @Produce  json
// @Success  201 {object} sessionResponse
// @Router   /auth/guest [post]
func (h *AuthHandler) Guest(c *gin.Context) {
	session, err := h.service.Guest(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newSessionResponse(session))
}

// Upgrade godoc
// @Summary  Turn the current guest account into a registered one
// @Tags     auth
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body registerRequest true "credentials"
// @Success  200 {object} userResponse
// @Failure  400,409 {object} map[string]string
// @Router   /auth/upgrade [post]
func (h *AuthHandler) Upgrade(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.service.Upgrade(c.Request.Context(), services.UpgradeInput{
		UserID:      userID,
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

// Me godoc
// @Summary  Current user profile
// @Tags     auth
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} userResponse
// @Router   /me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	user, err := h.service.Profile(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}
