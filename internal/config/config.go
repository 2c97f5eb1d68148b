package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds runtime configuration for the review worker service.
type Config struct {
	DBURL      string
	RedisURL   string
	RedisQueue string

	CoachAPIURL string
	CoachAPIKey string

	WorkerCount    int
	JobBufferSize  int
	ReportCacheTTL time.Duration
}

// Load builds a Config from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		DBURL:       os.Getenv("DB_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		RedisQueue:  os.Getenv("REDIS_QUEUE"),
		CoachAPIURL: os.Getenv("COACH_API_URL"),
		CoachAPIKey: os.Getenv("COACH_API_KEY"),
	}

	if cfg.DBURL == "" {
		return nil, fmt.Errorf("DB_URL is required")
	}

	if cfg.RedisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}

	if cfg.CoachAPIURL == "" {
		return nil, fmt.Errorf("COACH_API_URL is required")
	}

	if cfg.RedisQueue == "" {
		cfg.RedisQueue = "review_matches"
	}

	var err error
	if cfg.WorkerCount, err = intEnv("WORKER_COUNT", 1); err != nil {
		return nil, err
	}
	if cfg.WorkerCount < 1 {
		return nil, fmt.Errorf("WORKER_COUNT must be at least 1")
	}

	if cfg.JobBufferSize, err = intEnv("JOB_BUFFER_SIZE", 16); err != nil {
		return nil, err
	}
	if cfg.JobBufferSize < 1 {
		return nil, fmt.Errorf("JOB_BUFFER_SIZE must be at least 1")
	}

	cfg.ReportCacheTTL = 6 * time.Hour
	if raw := os.Getenv("REPORT_CACHE_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid REPORT_CACHE_TTL: %w", err)
		}
		cfg.ReportCacheTTL = ttl
	}

	return cfg, nil
}

func intEnv(name string, fallback int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return v, nil
}
