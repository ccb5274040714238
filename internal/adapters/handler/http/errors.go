package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/ecotrack-api/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/ecotrack-api/internal/core/domain"
)

// handleError maps domain errors to status codes. Unknown errors are attached
// to the gin context so the request logger reports them.
func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUnknownCategory),
		errors.Is(err, domain.ErrNegativeQuantity),
		errors.Is(err, domain.ErrInvalidActivity),
		errors.Is(err, domain.ErrInvalidGoal),
		errors.Is(err, domain.ErrGoalInvalidOwner),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrPasswordTooShort),
		errors.Is(err, domain.ErrEmptyMessage),
		errors.Is(err, domain.ErrIncompleteReview),
		errors.Is(err, domain.ErrInvalidRating),
		errors.Is(err, domain.ErrReviewTooLong):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})

	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "unauthorized access"})

	case errors.Is(err, domain.ErrGuestLimitReached):
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "guest limit reached",
			"message": "create an account to keep logging activities",
		})

	case errors.Is(err, domain.ErrActivityNotFound),
		errors.Is(err, domain.ErrGoalNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})

	case errors.Is(err, domain.ErrEmailAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "email already exists"})

	case errors.Is(err, domain.ErrNotGuest):
		c.JSON(http.StatusConflict, gin.H{"error": "account is already registered"})

	case errors.Is(err, domain.ErrAssistantUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "assistant is currently unavailable"})

	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// currentUser reads the authenticated user id or aborts with 401.
func currentUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return "", false
	}
	return userID, true
}
