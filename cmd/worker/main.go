package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"rewind/internal/coach"
	"rewind/internal/config"
	"rewind/internal/db"
	"rewind/internal/logging"
	"rewind/internal/processor"
	"rewind/internal/queue"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := logging.Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf("config load failed: %v", err)
		os.Exit(1)
	}

	pool, err := db.NewPool(ctx, cfg.DBURL)
	if err != nil {
		logger.Errorf("db connection failed: %v", err)
		os.Exit(1)
	}
	defer pool.Close()

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Errorf("invalid redis url: %v", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	rosterReader := db.NewRosterReader(pool)
	reviewWriter := db.NewReviewWriter(pool)
	coachClient := coach.NewClient(cfg.CoachAPIURL, cfg.CoachAPIKey, redisClient, cfg.ReportCacheTTL)

	proc := processor.NewReviewProcessor(ctx, rosterReader, reviewWriter, coachClient)
	q := queue.NewRedisQueue(redisClient)

	logger.Infof("review worker starting on queue %s", cfg.RedisQueue)
	err = q.Consume(ctx, cfg.RedisQueue, cfg.WorkerCount, cfg.JobBufferSize, proc.Handle)
	if err != nil && ctx.Err() == nil {
		logger.Errorf("queue consumption ended: %v", err)
		os.Exit(1)
	}
}
