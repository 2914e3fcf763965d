package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"riskspin-backend/internal/config"
	"riskspin-backend/internal/models"
)

type RedisService struct {
	client *redis.Client
}

func NewRedisService(cfg *config.Config) (*RedisService, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %v", err)
	}

	return &RedisService{client: client}, nil
}

func (s *RedisService) Close() error {
	return s.client.Close()
}

// CacheRanking stores the last good board so a fresh instance can serve it
// before its first poll lands.
func (s *RedisService) CacheRanking(ctx context.Context, rows []models.RankingRow) error {
	data, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to marshal ranking: %v", err)
	}
	return s.client.Set(ctx, KeyRankingSnapshot, data, TTLRankingSnapshot).Err()
}

func (s *RedisService) GetCachedRanking(ctx context.Context) ([]models.RankingRow, error) {
	data, err := s.client.Get(ctx, KeyRankingSnapshot).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached ranking: %v", err)
	}

	var rows []models.RankingRow
	if err := json.Unmarshal([]byte(data), &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ranking: %v", err)
	}
	return rows, nil
}

func (s *RedisService) CheckRateLimit(ctx context.Context, sessionID, action string, limit int, window time.Duration) (bool, error) {
	key := fmt.Sprintf(KeyRateLimit, sessionID, action)

	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit: %v", err)
	}

	if count == 1 {
		s.client.Expire(ctx, key, window)
	}

	return count <= int64(limit), nil
}

func (s *RedisService) ClearRateLimit(ctx context.Context, sessionID, action string) error {
	return s.client.Del(ctx, fmt.Sprintf(KeyRateLimit, sessionID, action)).Err()
}

// AcquireSpinLock guards a player name against a second spin from another
// tab or instance. The returned token must be passed to ReleaseSpinLock.
func (s *RedisService) AcquireSpinLock(ctx context.Context, name string) (string, bool, error) {
	key := fmt.Sprintf(KeySpinLock, name)
	token := uuid.New().String()

	ok, err := s.client.SetNX(ctx, key, token, TTLSpinLock).Result()
	if err != nil {
		return "", false, fmt.Errorf("failed to acquire spin lock: %v", err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

var releaseLockScript = redis.NewScript(`
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("DEL", KEYS[1])
	end
	return 0
`)

func (s *RedisService) ReleaseSpinLock(ctx context.Context, name, token string) error {
	key := fmt.Sprintf(KeySpinLock, name)
	return releaseLockScript.Run(ctx, s.client, []string{key}, token).Err()
}
