package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost/rewind")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("COACH_API_URL", "https://coach.example.com/coach_match")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RedisQueue != "review_matches" {
		t.Errorf("RedisQueue = %q", cfg.RedisQueue)
	}
	if cfg.WorkerCount != 1 || cfg.JobBufferSize != 16 {
		t.Errorf("pool defaults = %d/%d", cfg.WorkerCount, cfg.JobBufferSize)
	}
	if cfg.ReportCacheTTL != 6*time.Hour {
		t.Errorf("ReportCacheTTL = %v", cfg.ReportCacheTTL)
	}
}

func TestLoadRequiredFields(t *testing.T) {
	for _, missing := range []string{"DB_URL", "REDIS_URL", "COACH_API_URL"} {
		t.Run(missing, func(t *testing.T) {
			setRequired(t)
			t.Setenv(missing, "")
			if _, err := Load(); err == nil {
				t.Fatalf("expected error with %s unset", missing)
			}
		})
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("REDIS_QUEUE", "review_backfill")
	t.Setenv("WORKER_COUNT", "4")
	t.Setenv("JOB_BUFFER_SIZE", "32")
	t.Setenv("REPORT_CACHE_TTL", "30m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RedisQueue != "review_backfill" || cfg.WorkerCount != 4 || cfg.JobBufferSize != 32 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.ReportCacheTTL != 30*time.Minute {
		t.Errorf("ReportCacheTTL = %v", cfg.ReportCacheTTL)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := map[string]string{
		"WORKER_COUNT":     "zero",
		"JOB_BUFFER_SIZE":  "-1",
		"REPORT_CACHE_TTL": "soon",
	}
	for name, value := range tests {
		t.Run(name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(name, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", name, value)
			}
		})
	}
}
