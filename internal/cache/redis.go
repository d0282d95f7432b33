package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/actuallystonmai/recipe-predictor/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	defaultTTL = 10 * time.Minute
	keyPrefix  = "predict:model:"
)

// Cache stores classifier predictions keyed by the exact text the classifier
// was given.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{client: client, ttl: ttl}
}

func buildKey(text string) string {
	h := sha256.Sum256([]byte(text))
	return keyPrefix + hex.EncodeToString(h[:])
}

// Get a cached prediction. found is false on a miss.
func (c *Cache) Get(ctx context.Context, text string) (domain.Prediction, bool, error) {
	key := buildKey(text)
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return domain.Prediction{}, false, nil
	}
	if err != nil {
		return domain.Prediction{}, false, fmt.Errorf("failed to get prediction from cache: %w", err)
	}

	var pred domain.Prediction
	if err := json.Unmarshal([]byte(val), &pred); err != nil {
		return domain.Prediction{}, false, fmt.Errorf("failed to unmarshal prediction %s: %w", key, err)
	}
	return pred, true, nil
}

// Store a prediction in cache
func (c *Cache) Set(ctx context.Context, text string, pred domain.Prediction) error {
	val, err := json.Marshal(pred)
	if err != nil {
		return fmt.Errorf("failed to marshal prediction: %w", err)
	}
	if err := c.client.Set(ctx, buildKey(text), val, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set prediction in cache: %w", err)
	}
	return nil
}

// Clear drops every cached prediction: used when the model artifacts change.
func (c *Cache) Clear(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("cache delete %s: %w", iter.Val(), err)
		}
	}
	return iter.Err()
}

// Ping connectivity
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
