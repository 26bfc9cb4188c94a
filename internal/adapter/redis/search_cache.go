package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yogeshkhant77/Booksy/internal/repository"
)

type searchCacheRepository struct {
	client *redis.Client
}

// NewSearchCacheRepository caches arbitrary JSON payloads under a string
// key. Used for external search responses.
func NewSearchCacheRepository(client *redis.Client) repository.SearchCache {
	return &searchCacheRepository{client: client}
}

func (r *searchCacheRepository) GetJSON(ctx context.Context, key string, out interface{}) error {
	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("failed to get %s from cache: %w", key, err)
	}
	if err := json.Unmarshal(val, out); err != nil {
		return fmt.Errorf("failed to unmarshal cached %s: %w", key, err)
	}
	return nil
}

func (r *searchCacheRepository) SetJSON(ctx context.Context, key string, val interface{}, ttl time.Duration) error {
	data, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("failed to marshal %s for cache: %w", key, err)
	}
	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache %s: %w", key, err)
	}
	return nil
}
