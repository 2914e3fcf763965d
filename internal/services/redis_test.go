package services_test

import (
	"context"
	"testing"
	"time"

	"riskspin-backend/internal/config"
	"riskspin-backend/internal/models"
	"riskspin-backend/internal/services"
)

func TestRedisService(t *testing.T) {
	cfg := &config.Config{
		RedisURL:  "localhost:6379",
		RedisPass: "",
		RedisDB:   0,
	}

	redisService, err := services.NewRedisService(cfg)
	if err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	defer redisService.Close()

	ctx := context.Background()

	rows := []models.RankingRow{
		{Name: "Cid", Points: 15000, GamesPlayed: 12},
		{Name: "Ann", Points: 10200, GamesPlayed: 1},
	}
	if err := redisService.CacheRanking(ctx, rows); err != nil {
		t.Fatalf("Failed to cache ranking: %v", err)
	}

	cached, err := redisService.GetCachedRanking(ctx)
	if err != nil {
		t.Fatalf("Failed to read cached ranking: %v", err)
	}
	if len(cached) != 2 || cached[0].Name != "Cid" || cached[1].Name != "Ann" {
		t.Errorf("Cached ranking mismatch: %+v", cached)
	}

	name := "redis_test_player"
	token, ok, err := redisService.AcquireSpinLock(ctx, name)
	if err != nil || !ok {
		t.Fatalf("Failed to acquire spin lock: ok=%v err=%v", ok, err)
	}

	if _, ok, _ := redisService.AcquireSpinLock(ctx, name); ok {
		t.Error("Second acquire should fail while the lock is held")
	}

	if err := redisService.ReleaseSpinLock(ctx, name, "wrong-token"); err != nil {
		t.Errorf("Release with a foreign token errored: %v", err)
	}
	if _, ok, _ := redisService.AcquireSpinLock(ctx, name); ok {
		t.Error("Foreign token must not release the lock")
	}

	if err := redisService.ReleaseSpinLock(ctx, name, token); err != nil {
		t.Errorf("Failed to release spin lock: %v", err)
	}
	token, ok, _ = redisService.AcquireSpinLock(ctx, name)
	if !ok {
		t.Error("Lock should be free after release")
	}
	redisService.ReleaseSpinLock(ctx, name, token)

	sessionID := "sess_redis_test"
	allowed, err := redisService.CheckRateLimit(ctx, sessionID, "spin", 2, time.Minute)
	if err != nil {
		t.Errorf("Failed to check rate limit: %v", err)
	}
	if !allowed {
		t.Error("First spin should be allowed")
	}
	redisService.CheckRateLimit(ctx, sessionID, "spin", 2, time.Minute)
	if allowed, _ := redisService.CheckRateLimit(ctx, sessionID, "spin", 2, time.Minute); allowed {
		t.Error("Third spin should exceed the limit")
	}

	redisService.ClearRateLimit(ctx, sessionID, "spin")
}
