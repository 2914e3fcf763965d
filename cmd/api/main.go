package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"riskspin-backend/internal/config"
	"riskspin-backend/internal/gateway"
	"riskspin-backend/internal/handlers"
	"riskspin-backend/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	redisService, err := services.NewRedisService(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisService.Close()

	jwtService := services.NewJWTService(cfg)

	wsHandler := handlers.NewWebSocketHandler()
	defer wsHandler.Close()

	var broadcaster services.Broadcaster = wsHandler

	gw := gateway.NewClient(cfg.ScriptURL, cfg.GatewayTimeout, gateway.WithBusyHook(broadcaster.BroadcastBusy))

	board := services.NewBoard()
	poller := services.NewRankingPoller(gw, board, cfg.RankingInterval,
		services.WithRankingCache(redisService),
		services.WithRankingBroadcaster(broadcaster),
	)

	registry := services.NewSessionRegistry(gw, services.NewRandRoller(), poller)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go poller.Run(ctx)

	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := registry.CleanupIdle(cfg.SessionTTL); n > 0 {
					log.Printf("Dropped %d idle sessions", n)
				}
			}
		}
	}()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	routes := &handlers.Router{
		Auth:      handlers.NewAuthHandler(registry, jwtService),
		User:      handlers.NewUserHandler(registry, gw),
		Game:      handlers.NewGameHandler(registry, redisService, broadcaster),
		Ranking:   handlers.NewRankingHandler(board, redisService),
		WebSocket: wsHandler,
		JWT:       jwtService,
		Limiter:   redisService,
		SpinLimit: cfg.SpinRateLimit,
	}
	routes.Setup(router)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on port %s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
}
