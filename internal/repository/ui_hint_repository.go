package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const uiHintKeyPrefix = "ui-hint"

// UIHintRepository stores one-time UI hint flags in Redis.
type UIHintRepository struct {
	client *redis.Client
}

// NewUIHintRepository constructs the repository.
func NewUIHintRepository(client *redis.Client) *UIHintRepository {
	return &UIHintRepository{client: client}
}

func uiHintKey(subject, key string) string {
	return fmt.Sprintf("%s:%s:%s", uiHintKeyPrefix, subject, key)
}

// Seen reports whether subject has dismissed the hint.
func (r *UIHintRepository) Seen(ctx context.Context, subject, key string) (bool, error) {
	if r.client == nil {
		return false, nil
	}
	n, err := r.client.Exists(ctx, uiHintKey(subject, key)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists %s: %w", key, err)
	}
	return n > 0, nil
}

// MarkSeen records or clears the dismissal of a hint.
func (r *UIHintRepository) MarkSeen(ctx context.Context, subject, key string, seen bool, ttl time.Duration) error {
	if r.client == nil {
		return nil
	}
	redisKey := uiHintKey(subject, key)
	if !seen {
		if err := r.client.Del(ctx, redisKey).Err(); err != nil {
			return fmt.Errorf("redis delete %s: %w", redisKey, err)
		}
		return nil
	}
	if err := r.client.Set(ctx, redisKey, time.Now().UTC().Format(time.RFC3339), ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", redisKey, err)
	}
	return nil
}
