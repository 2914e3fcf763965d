package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	DefaultPort            = "8080"
	DefaultGatewayTimeout  = 15 * time.Second
	DefaultRankingInterval = 15 * time.Second
	DefaultSessionTTL      = 2 * time.Hour
	DefaultSpinRateLimit   = 30 // spins per minute per session
)

type Config struct {
	Port string
	Env  string

	// ScriptURL is the single remote endpoint every gateway action is POSTed to.
	ScriptURL       string
	GatewayTimeout  time.Duration
	RankingInterval time.Duration

	RedisURL  string
	RedisPass string
	RedisDB   int

	JWTSecret     string
	SessionTTL    time.Duration
	SpinRateLimit int
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:            getenv("PORT", DefaultPort),
		Env:             getenv("ENV", "development"),
		ScriptURL:       os.Getenv("SCRIPT_URL"),
		RedisURL:        getenv("REDIS_URL", "localhost:6379"),
		RedisPass:       os.Getenv("REDIS_PASSWORD"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		GatewayTimeout:  DefaultGatewayTimeout,
		RankingInterval: DefaultRankingInterval,
		SessionTTL:      DefaultSessionTTL,
		SpinRateLimit:   DefaultSpinRateLimit,
	}

	var err error
	if cfg.RedisDB, err = intEnv("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.SpinRateLimit, err = intEnv("SPIN_RATE_LIMIT", DefaultSpinRateLimit); err != nil {
		return nil, err
	}
	if cfg.GatewayTimeout, err = durationEnv("GATEWAY_TIMEOUT", DefaultGatewayTimeout); err != nil {
		return nil, err
	}
	if cfg.RankingInterval, err = durationEnv("RANKING_INTERVAL", DefaultRankingInterval); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = durationEnv("SESSION_TTL", DefaultSessionTTL); err != nil {
		return nil, err
	}

	if cfg.ScriptURL == "" {
		return nil, fmt.Errorf("SCRIPT_URL is required")
	}
	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("JWT_SECRET is required in production")
		}
		cfg.JWTSecret = "dev-secret-change-me"
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %v", key, v, err)
	}
	return n, nil
}

// durationEnv accepts Go duration strings ("15s") or a bare number of seconds.
func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %v", key, v, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return d, nil
}
