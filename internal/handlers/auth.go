package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"riskspin-backend/internal/gateway"
	"riskspin-backend/internal/models"
	"riskspin-backend/internal/services"
)

type AuthHandler struct {
	registry   *services.SessionRegistry
	jwtService *services.JWTService
}

func NewAuthHandler(registry *services.SessionRegistry, jwtService *services.JWTService) *AuthHandler {
	return &AuthHandler{
		registry:   registry,
		jwtService: jwtService,
	}
}

// Authenticate is the name/PIN gate. A session only exists once the remote
// service accepted the credentials.
func (h *AuthHandler) Authenticate(c *gin.Context) {
	var req models.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	ctrl := h.registry.NewController()
	res, err := ctrl.Authenticate(c.Request.Context(), req.Name, req.PIN)
	if err != nil {
		var remoteErr *gateway.RemoteError
		if errors.As(err, &remoteErr) {
			msg := remoteErr.Message
			if msg == "" {
				msg = "Authentication failed"
			}
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": msg})
			return
		}
		writeError(c, err)
		return
	}

	sessionID := h.registry.Add(ctrl)
	token, err := h.jwtService.GenerateToken(res.User.Name, sessionID)
	if err != nil {
		h.registry.Remove(sessionID)
		log.Printf("Failed to issue token for %s: %v", res.User.Name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"token":     token,
		"isNewUser": res.IsNewUser,
		"message":   models.WelcomeMessage(res.User.Name, res.IsNewUser),
		"user":      res.User,
	})
}
