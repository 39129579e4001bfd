package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/config"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/logging"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/pkg/models"
)

// ErrLockHeld is returned when another holder owns a build lock
var ErrLockHeld = errors.New("lock is held by another request")

// RedisClient wraps the Redis client with generation history and build lock management
type RedisClient struct {
	client       *redis.Client
	historyLimit int64
	historyTTL   time.Duration
	logger       logging.Logger
}

// NewRedisClient creates a new Redis client instance
func NewRedisClient(cfg *config.Config) *RedisClient {
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		opts = &redis.Options{Addr: "localhost:6379"}
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	if cfg.Redis.DB != 0 {
		opts.DB = cfg.Redis.DB
	}

	timeout := cfg.Redis.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	opts.DialTimeout = timeout
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	limit := int64(cfg.Resume.HistoryLimit)
	if limit <= 0 {
		limit = 20
	}
	ttl := cfg.Resume.HistoryTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &RedisClient{
		client:       redis.NewClient(opts),
		historyLimit: limit,
		historyTTL:   ttl,
		logger:       logging.GetGlobalLogger().WithField("component", "redis"),
	}
}

// Ping tests the Redis connection
func (r *RedisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (r *RedisClient) Close() error {
	return r.client.Close()
}

// RecordGeneration prepends rec to the job's history, keeping the most recent entries only
func (r *RedisClient) RecordGeneration(ctx context.Context, rec models.GenerationRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal generation record: %w", err)
	}

	key := generationKey(rec.JobID)
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, key, data)
		pipe.LTrim(ctx, key, 0, r.historyLimit-1)
		pipe.Expire(ctx, key, r.historyTTL)
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to save generation record", map[string]interface{}{
			"job_id":    rec.JobID,
			"record_id": rec.ID,
			"error":     err.Error(),
		})
		return fmt.Errorf("failed to save generation record: %w", err)
	}
	return nil
}

// GetGenerationHistory returns the job's generation records, newest first
func (r *RedisClient) GetGenerationHistory(ctx context.Context, jobID int64) ([]models.GenerationRecord, error) {
	entries, err := r.client.LRange(ctx, generationKey(jobID), 0, r.historyLimit-1).Result()
	if err != nil {
		if err == redis.Nil {
			return []models.GenerationRecord{}, nil
		}
		return nil, fmt.Errorf("failed to get generation history: %w", err)
	}

	records := make([]models.GenerationRecord, 0, len(entries))
	for _, entry := range entries {
		var rec models.GenerationRecord
		if err := json.Unmarshal([]byte(entry), &rec); err != nil {
			r.logger.Warn("Skipping unreadable generation record", map[string]interface{}{
				"job_id": jobID,
				"error":  err.Error(),
			})
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// releaseScript deletes the lock only if it still holds our token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// AcquireBuildLock takes the per-job build lock without waiting. The returned
// release func is safe to call once the lock has expired.
func (r *RedisClient) AcquireBuildLock(ctx context.Context, jobID int64, ttl time.Duration) (func(), error) {
	key := buildLockKey(jobID)
	token := GenerateRequestID()

	ok, err := r.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire build lock: %w", err)
	}
	if !ok {
		return nil, ErrLockHeld
	}

	release := func() {
		// the request context may already be cancelled
		releaseCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := releaseScript.Run(releaseCtx, r.client, []string{key}, token).Err(); err != nil && err != redis.Nil {
			r.logger.Warn("Failed to release build lock", map[string]interface{}{
				"job_id": jobID,
				"error":  err.Error(),
			})
		}
	}
	return release, nil
}

func generationKey(jobID int64) string {
	return fmt.Sprintf("generations:job:%d", jobID)
}

func buildLockKey(jobID int64) string {
	return fmt.Sprintf("lock:resume-build:job:%d", jobID)
}
