package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-schedule-engine/internal/models"
	appErrors "github.com/noah-isme/sma-schedule-engine/pkg/errors"
)

const (
	snapshotPrefix        = "schedule:snapshot"
	snapshotGenerationKey = snapshotPrefix + ":generation"
)

// CacheRepository stores JSON snapshots in Redis, namespaced by a generation counter.
// Invalidation advances the generation; entries written under an older generation are
// never read again and expire with their TTL.
type CacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewCacheRepository constructs a snapshot cache over client. A nil client behaves as an
// always-empty cache.
func NewCacheRepository(client *redis.Client, logger *zap.Logger) *CacheRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheRepository{client: client, logger: logger}
}

func snapshotKey(generation int64, name models.SnapshotName) string {
	return fmt.Sprintf("%s:g%d:%s", snapshotPrefix, generation, name)
}

func (r *CacheRepository) generation(ctx context.Context) (int64, error) {
	gen, err := r.client.Get(ctx, snapshotGenerationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get snapshot generation: %w", err)
	}
	return gen, nil
}

// GetSnapshot loads the current generation of name into dest.
func (r *CacheRepository) GetSnapshot(ctx context.Context, name models.SnapshotName, dest interface{}) error {
	if r.client == nil {
		return appErrors.ErrCacheMiss
	}
	gen, err := r.generation(ctx)
	if err != nil {
		return err
	}

	key := snapshotKey(gen, name)
	raw, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return appErrors.ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("redis get %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		r.logger.Warn("dropping unreadable snapshot", zap.String("key", key), zap.Error(err))
		_ = r.client.Del(ctx, key).Err()
		return appErrors.ErrCacheMiss
	}
	return nil
}

// SetSnapshot stores value as the current generation of name.
func (r *CacheRepository) SetSnapshot(ctx context.Context, name models.SnapshotName, value interface{}, ttl time.Duration) error {
	if r.client == nil {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal snapshot %s: %w", name, err)
	}
	gen, err := r.generation(ctx)
	if err != nil {
		return err
	}

	key := snapshotKey(gen, name)
	if err := r.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// NextGeneration retires every stored snapshot and returns the new generation.
func (r *CacheRepository) NextGeneration(ctx context.Context) (int64, error) {
	if r.client == nil {
		return 0, nil
	}
	gen, err := r.client.Incr(ctx, snapshotGenerationKey).Result()
	if err != nil {
		return 0, fmt.Errorf("redis incr snapshot generation: %w", err)
	}
	return gen, nil
}
