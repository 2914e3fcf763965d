package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"riskspin-backend/internal/models"
	"riskspin-backend/internal/services"
)

type BusyReporter interface {
	Busy() bool
}

type UserHandler struct {
	registry *services.SessionRegistry
	busy     BusyReporter
}

func NewUserHandler(registry *services.SessionRegistry, busy BusyReporter) *UserHandler {
	return &UserHandler{
		registry: registry,
		busy:     busy,
	}
}

func (h *UserHandler) GetState(c *gin.Context) {
	_, ctrl, ok := currentSession(c, h.registry)
	if !ok {
		return
	}

	state := ctrl.Snapshot()
	if state.User == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	busy := false
	if h.busy != nil {
		busy = h.busy.Busy()
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    state.User,
		"display": gin.H{
			"name":   state.User.Name,
			"points": models.FormatPoints(state.User.Points),
		},
		"betMax":       models.TruncatePoints(state.User.Points),
		"selectedRisk": state.SelectedRisk,
		"canBeg":       state.CanBeg,
		"pending":      state.Pending,
		"busy":         busy,
	})
}

func (h *UserHandler) Logout(c *gin.Context) {
	sessionID, _, ok := currentSession(c, h.registry)
	if !ok {
		return
	}

	h.registry.Remove(sessionID)
	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}
