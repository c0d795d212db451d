package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/abhisek/trivia/internal/trivia"
)

// DefaultRedisKey is where the category list lives unless overridden.
const DefaultRedisKey = "trivia:categories"

// Redis stores the category list as a JSON string under one key.
type Redis struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedis creates a Redis cache. An empty key uses DefaultRedisKey and a
// zero TTL stores the list without expiry.
func NewRedis(client *redis.Client, key string, ttl time.Duration) *Redis {
	if key == "" {
		key = DefaultRedisKey
	}
	return &Redis{client: client, key: key, ttl: ttl}
}

// Get returns (nil, false, nil) when the key is absent.
func (r *Redis) Get(ctx context.Context) ([]trivia.Category, bool, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var cats []trivia.Category
	if err := json.Unmarshal(data, &cats); err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", r.key, err)
	}
	return cats, true, nil
}

func (r *Redis) Set(ctx context.Context, cats []trivia.Category) error {
	data, err := json.Marshal(cats)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key, data, r.ttl).Err()
}
