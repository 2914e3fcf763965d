package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"riskspin-backend/internal/middleware"
	"riskspin-backend/internal/models"
	"riskspin-backend/internal/services"
)

// SpinLocker serializes spins for one player name across tabs and instances.
type SpinLocker interface {
	AcquireSpinLock(ctx context.Context, name string) (string, bool, error)
	ReleaseSpinLock(ctx context.Context, name, token string) error
}

type BonusNotifier interface {
	NotifyBonus(sessionID string, bonus int64)
}

const DefaultBonusDelay = 300 * time.Millisecond

type GameHandler struct {
	registry   *services.SessionRegistry
	locker     SpinLocker
	notifier   BonusNotifier
	bonusDelay time.Duration
}

func NewGameHandler(registry *services.SessionRegistry, locker SpinLocker, notifier BonusNotifier) *GameHandler {
	return &GameHandler{
		registry:   registry,
		locker:     locker,
		notifier:   notifier,
		bonusDelay: DefaultBonusDelay,
	}
}

func (h *GameHandler) SetBonusDelay(d time.Duration) {
	h.bonusDelay = d
}

func (h *GameHandler) SelectRisk(c *gin.Context) {
	_, ctrl, ok := currentSession(c, h.registry)
	if !ok {
		return
	}

	var req models.RiskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	if err := ctrl.SelectRisk(models.RiskTier(req.Risk)); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"selectedRisk": req.Risk,
	})
}

// ValidateSpin backs the spin button; unparsable bets count as disabled.
func (h *GameHandler) ValidateSpin(c *gin.Context) {
	_, ctrl, ok := currentSession(c, h.registry)
	if !ok {
		return
	}

	bet, _ := strconv.ParseInt(c.Query("bet"), 10, 64)
	err := ctrl.ValidateSpin(bet)

	resp := gin.H{
		"success": true,
		"enabled": err == nil,
	}
	if err != nil {
		resp["reason"] = err.Error()
	}
	c.JSON(http.StatusOK, resp)
}

func (h *GameHandler) Spin(c *gin.Context) {
	sessionID, ctrl, ok := currentSession(c, h.registry)
	if !ok {
		return
	}

	var req models.SpinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	name := c.GetString(middleware.ContextUserName)
	if h.locker != nil {
		token, acquired, err := h.locker.AcquireSpinLock(c.Request.Context(), name)
		switch {
		case err != nil:
			log.Printf("Spin lock unavailable for %s, relying on session guard: %v", name, err)
		case !acquired:
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Another spin is in progress"})
			return
		default:
			defer func() {
				if err := h.locker.ReleaseSpinLock(context.Background(), name, token); err != nil {
					log.Printf("Failed to release spin lock for %s: %v", name, err)
				}
			}()
		}
	}

	result, err := ctrl.Spin(c.Request.Context(), req.Bet)
	if err != nil {
		writeError(c, err)
		return
	}

	if result.Bonus > 0 && h.notifier != nil {
		bonus := result.Bonus
		time.AfterFunc(h.bonusDelay, func() {
			h.notifier.NotifyBonus(sessionID, bonus)
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  result,
		"display": gin.H{
			"message": fmt.Sprintf("Reward: %sp (%sp)", models.FormatPoints(float64(result.Reward)), models.FormatDelta(result.Delta)),
			"outcome": outcome(result),
			"effect":  result.Effect(),
			"points":  models.FormatPoints(result.FinalPoints),
		},
	})
}

func (h *GameHandler) Beg(c *gin.Context) {
	_, ctrl, ok := currentSession(c, h.registry)
	if !ok {
		return
	}

	result, err := ctrl.Beg(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  result,
		"display": gin.H{
			"message": fmt.Sprintf("You received %sp!", models.FormatPoints(float64(result.Granted))),
			"points":  models.FormatPoints(result.FinalPoints),
		},
	})
}

func outcome(r *models.SpinResult) string {
	if r.Win() {
		return "win"
	}
	return "lose"
}
