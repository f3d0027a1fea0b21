package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const tagKeyPrefix = "cache-tag:"

// Redis is a Store backed by a shared Redis instance, for deployments running
// more than one API replica. Tag membership is a Redis set per tag; Flush
// reads the set and deletes its members in one pipeline.
type Redis struct {
	rdb *redis.Client
}

// RedisConfig holds connection settings for the Redis cache backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedis connects to Redis and verifies the connection.
func NewRedis(ctx context.Context, cfg RedisConfig) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Addr, err)
	}
	return &Redis{rdb: rdb}, nil
}

// TryGet returns the cached value for key. Redis handles TTL expiry itself,
// so a missing key covers both "never stored" and "expired".
func (r *Redis) TryGet(ctx context.Context, key string) ([]byte, bool) {
	value, err := r.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return value, true
}

// Put stores value under key for ttl and registers the key in each tag set.
// Tag sets outlive their members slightly; Flush and TryGet both tolerate
// stale set members.
func (r *Redis) Put(ctx context.Context, key string, value []byte, tags []string, ttl time.Duration) error {
	pipe := r.rdb.TxPipeline()
	pipe.Set(ctx, key, value, ttl)
	for _, tag := range tags {
		tagKey := tagKeyPrefix + tag
		pipe.SAdd(ctx, tagKey, key)
		// Keep the tag set around at least as long as its newest member.
		pipe.Expire(ctx, tagKey, ttl+time.Minute)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache put %s: %w", key, err)
	}
	return nil
}

// Flush deletes every key registered under tag, then the tag set itself.
func (r *Redis) Flush(ctx context.Context, tag string) error {
	tagKey := tagKeyPrefix + tag
	members, err := r.rdb.SMembers(ctx, tagKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("cache flush %s: %w", tag, err)
	}

	pipe := r.rdb.TxPipeline()
	if len(members) > 0 {
		pipe.Del(ctx, members...)
	}
	pipe.Del(ctx, tagKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache flush %s: %w", tag, err)
	}
	return nil
}

// Ping checks that the Redis backend is still reachable.
func (r *Redis) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

// Close releases the underlying Redis connection.
func (r *Redis) Close() error {
	return r.rdb.Close()
}
