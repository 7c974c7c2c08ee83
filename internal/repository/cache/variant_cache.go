// Package cache remembers which cancellation and variant a user was given, so repeat
// visits to the cancel flow skip the record store.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cancelflow-be/internal/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Assignment is what the create endpoint returns, and all that is cached.
type Assignment struct {
	CancellationID uuid.UUID              `json:"cancellation_id"`
	Variant        entity.DownsellVariant `json:"variant"`
}

type VariantCache interface {
	// Get returns (nil, nil) on a miss.
	Get(ctx context.Context, userId uuid.UUID) (*Assignment, error)
	Set(ctx context.Context, userId uuid.UUID, a Assignment) error
}

type RedisVariantCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisVariantCache(rdb *redis.Client, ttl time.Duration) *RedisVariantCache {
	return &RedisVariantCache{
		rdb:    rdb,
		ttl:    ttl,
		prefix: "cancelflow:variant:",
	}
}

func (c *RedisVariantCache) key(userId uuid.UUID) string {
	return c.prefix + userId.String()
}

func (c *RedisVariantCache) Get(ctx context.Context, userId uuid.UUID) (*Assignment, error) {
	raw, err := c.rdb.Get(ctx, c.key(userId)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var a Assignment
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("decode cached assignment: %w", err)
	}
	if !a.Variant.Valid() || a.CancellationID == uuid.Nil {
		return nil, nil
	}
	return &a, nil
}

// Set writes only if no assignment is cached yet; the first assignment always wins.
func (c *RedisVariantCache) Set(ctx context.Context, userId uuid.UUID, a Assignment) error {
	raw, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return c.rdb.SetNX(ctx, c.key(userId), raw, c.ttl).Err()
}

// NoopVariantCache always misses. Used when redis is unavailable and for stores whose
// records expire on their own.
type NoopVariantCache struct{}

func (NoopVariantCache) Get(context.Context, uuid.UUID) (*Assignment, error) { return nil, nil }
func (NoopVariantCache) Set(context.Context, uuid.UUID, Assignment) error    { return nil }
