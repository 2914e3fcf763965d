package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"riskspin-backend/internal/middleware"
	"riskspin-backend/internal/services"
)

type Router struct {
	Auth      *AuthHandler
	User      *UserHandler
	Game      *GameHandler
	Ranking   *RankingHandler
	WebSocket *WebSocketHandler

	JWT       *services.JWTService
	Limiter   middleware.RateLimiter
	SpinLimit int
}

func (r *Router) Setup(router *gin.Engine) {
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	router.POST("/auth", r.Auth.Authenticate)
	router.GET("/api/ranking", r.Ranking.GetRanking)

	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware(r.JWT))
	protected.Use(middleware.RateLimitMiddleware(r.Limiter, r.SpinLimit))
	{
		protected.GET("/state", r.User.GetState)
		protected.POST("/logout", r.User.Logout)

		protected.POST("/risk", r.Game.SelectRisk)
		protected.GET("/spin/validate", r.Game.ValidateSpin)
		protected.POST("/spin", r.Game.Spin)
		protected.POST("/beg", r.Game.Beg)

		if r.WebSocket != nil {
			protected.GET("/ws", r.WebSocket.HandleWebSocket)
		}
	}
}
