package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"riskspin-backend/internal/gateway"
	"riskspin-backend/internal/middleware"
	"riskspin-backend/internal/services"
)

func currentSession(c *gin.Context, registry *services.SessionRegistry) (string, *services.Controller, bool) {
	sessionID := c.GetString(middleware.ContextSessionID)
	ctrl, ok := registry.Get(sessionID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired or invalid"})
		return "", nil, false
	}
	return sessionID, ctrl, true
}

func statusFor(err error) int {
	var remoteErr *gateway.RemoteError
	switch {
	case errors.Is(err, services.ErrInvalidName),
		errors.Is(err, services.ErrInvalidPIN),
		errors.Is(err, services.ErrInvalidRisk),
		errors.Is(err, services.ErrNoRiskSelected),
		errors.Is(err, services.ErrInvalidBet),
		errors.Is(err, services.ErrInsufficientPoints):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrUpdatePending),
		errors.Is(err, services.ErrBegUnavailable):
		return http.StatusConflict
	case errors.Is(err, services.ErrSaveFailed), errors.As(err, &remoteErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	body := gin.H{"success": false, "error": err.Error()}
	if errors.Is(err, services.ErrSaveFailed) {
		body["error"] = services.ErrSaveFailed.Error()
		body["details"] = err.Error()
	}
	c.JSON(statusFor(err), body)
}
