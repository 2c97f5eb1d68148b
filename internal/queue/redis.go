package queue

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"rewind/internal/logging"
)

const (
	defaultReviewQueueKey = "review_matches"
	retrySuffix           = ":retry"
	dlqSuffix             = ":dlq"
	retryCounterSuffix    = ":retry-count:"
	maxRetryAttempts      = 3
	popBlock              = 5 * time.Second
)

// Handler processes one job payload. A non-nil error sends the payload
// through the retry queue and, after maxRetryAttempts, to the DLQ.
type Handler func(payload []byte) error

// RedisQueue consumes review jobs from Redis lists. Retried payloads live on
// "<queue>:retry" and are popped ahead of fresh ones; poisoned payloads land
// on "<queue>:dlq".
type RedisQueue struct {
	client *redis.Client
	log    logging.Interface
}

// NewRedisQueue builds a Redis-backed queue consumer.
func NewRedisQueue(client *redis.Client) *RedisQueue {
	return &RedisQueue{client: client, log: logging.Component("queue")}
}

// Consume feeds jobs from the named queue to a pool of workers until the
// context is canceled. workers must be at least 1; a pool of one behaves as
// a plain single-threaded consumer.
func (q *RedisQueue) Consume(ctx context.Context, queueName string, workers, buffer int, handler Handler) error {
	if queueName == "" {
		queueName = defaultReviewQueueKey
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan []byte, buffer)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for payload := range jobs {
				q.dispatch(ctx, queueName, payload, handler, id)
			}
		}(i)
	}
	q.log.Infof("consuming %s with %d worker(s)", queueName, workers)

	defer func() {
		close(jobs)
		wg.Wait()
	}()

	retryKey := queueName + retrySuffix
	for {
		if ctx.Err() != nil {
			q.log.Warnf("consumer stopping: %v", ctx.Err())
			return ctx.Err()
		}

		result, err := q.client.BRPop(ctx, popBlock, retryKey, queueName).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			if ctx.Err() != nil {
				q.log.Warnf("consumer stopping: %v", ctx.Err())
				return ctx.Err()
			}
			q.log.Warnf("BRPOP error: %v", err)
			continue
		}
		if len(result) < 2 {
			continue
		}

		select {
		case jobs <- []byte(result[1]):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (q *RedisQueue) dispatch(ctx context.Context, queueName string, payload []byte, handler Handler, workerID int) {
	if err := handler(payload); err != nil {
		q.log.Warnf("worker %d: handler error, scheduling retry: %v", workerID, err)
		if err := q.scheduleRetry(ctx, queueName, payload); err != nil {
			q.log.Errorf("worker %d: retry handling failed: %v", workerID, err)
		}
		return
	}
	_ = q.client.Del(ctx, retryCounterKey(queueName, payload)).Err()
}

func (q *RedisQueue) scheduleRetry(ctx context.Context, queueName string, payload []byte) error {
	counterKey := retryCounterKey(queueName, payload)
	attempt, err := q.client.Incr(ctx, counterKey).Result()
	if err != nil {
		return err
	}
	_ = q.client.Expire(ctx, counterKey, 24*time.Hour).Err()

	if attempt > maxRetryAttempts {
		q.log.Warnf("moving job to DLQ after %d attempts", attempt-1)
		_ = q.client.LPush(ctx, queueName+dlqSuffix, payload).Err()
		return q.client.Del(ctx, counterKey).Err()
	}
	return q.client.LPush(ctx, queueName+retrySuffix, payload).Err()
}

// retryCounterKey hashes the payload so arbitrary job bodies make valid,
// bounded Redis keys.
func retryCounterKey(queue string, payload []byte) string {
	sum := sha256.Sum256(payload)
	return fmt.Sprintf("%s%s%s", queue, retryCounterSuffix, hex.EncodeToString(sum[:]))
}
