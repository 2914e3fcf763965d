package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"riskspin-backend/internal/services"
)

const (
	ContextSessionID = "session_id"
	ContextUserName  = "user_name"
)

func AuthMiddleware(jwtService *services.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		var tokenString string

		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization format"})
				c.Abort()
				return
			}
			tokenString = parts[1]
		} else {
			// browsers cannot set headers on a websocket upgrade
			tokenString = c.Query("token")
			if tokenString == "" {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
				c.Abort()
				return
			}
		}

		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(ContextSessionID, claims.SessionID)
		c.Set(ContextUserName, claims.Name)

		c.Next()
	}
}

type RateLimiter interface {
	CheckRateLimit(ctx context.Context, sessionID, action string, limit int, window time.Duration) (bool, error)
}

// RateLimitMiddleware caps spins and begs per session.
func RateLimitMiddleware(limiter RateLimiter, spinLimit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetString(ContextSessionID)
		if sessionID == "" || limiter == nil {
			c.Next()
			return
		}

		path := c.Request.URL.Path

		var action string
		var limit int
		window := time.Minute

		switch {
		case strings.HasSuffix(path, "/spin"):
			action = "spin"
			limit = spinLimit
		case strings.HasSuffix(path, "/beg"):
			action = "beg"
			limit = 5 // beg is one-shot; a handful covers retries after failed saves
		default:
			c.Next()
			return
		}

		allowed, err := limiter.CheckRateLimit(c.Request.Context(), sessionID, action, limit, window)
		if err != nil || !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"retry_after": window.Seconds(),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
