package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"StockPulse/internal/domain/models"
	domrepo "StockPulse/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

// ErrJobNotFound indicates an unknown or expired training job id.
var ErrJobNotFound = errors.New("job not found")

// RedisJobStore keeps training job status in Redis with a TTL, so status
// survives restarts and is visible to every instance.
type RedisJobStore struct {
	cli *redis.Client
	ttl time.Duration
}

func NewRedisJobStore(cli *redis.Client, ttl time.Duration) domrepo.JobStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisJobStore{cli: cli, ttl: ttl}
}

func jobKey(id string) string { return "stockpulse:job:" + id }

func (s *RedisJobStore) Put(ctx context.Context, job *models.TrainJob) error {
	job.UpdatedAt = time.Now().UTC()
	b, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}
	if err := s.cli.Set(ctx, jobKey(job.ID), b, s.ttl).Err(); err != nil {
		return fmt.Errorf("store job: %w", err)
	}
	return nil
}

func (s *RedisJobStore) Get(ctx context.Context, id string) (*models.TrainJob, error) {
	b, err := s.cli.Get(ctx, jobKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("job %s: %w", id, ErrJobNotFound)
		}
		return nil, fmt.Errorf("get job: %w", err)
	}
	var job models.TrainJob
	if err := json.Unmarshal(b, &job); err != nil {
		return nil, fmt.Errorf("unmarshal job: %w", err)
	}
	return &job, nil
}
