package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	TimezoneHeader     = "X-Timezone"
	ContextLocationKey = "location"
)

// Timezone resolves the caller's IANA zone from the X-Timezone header so day
// and week boundaries are computed in local time. Requests without the header
// use fallback.
func Timezone(fallback *time.Location) gin.HandlerFunc {
	if fallback == nil {
		fallback = time.UTC
	}
	return func(c *gin.Context) {
		loc := fallback
		if name := c.GetHeader(TimezoneHeader); name != "" {
			parsed, err := time.LoadLocation(name)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid timezone"})
				return
			}
			loc = parsed
		}
		c.Set(ContextLocationKey, loc)
		c.Next()
	}
}

// Location returns the request's zone, UTC when Timezone did not run.
func Location(c *gin.Context) *time.Location {
	if v, ok := c.Get(ContextLocationKey); ok {
		if loc, ok := v.(*time.Location); ok {
			return loc
		}
	}
	return time.UTC
}

// Now returns the current time in the request's location.
func Now(c *gin.Context) time.Time {
	return time.Now().In(Location(c))
}
