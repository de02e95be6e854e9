package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const scanBatchSize = 100

// ErrCacheMiss is returned by Get when the key does not exist.
var ErrCacheMiss = errors.New("cache miss")

// Cache is a JSON value cache on top of a redis client.
type Cache struct {
	client *redis.Client
	logger *zap.Logger
}

func New(addr, password string, db int, logger *zap.Logger) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("successfully connected to Redis", zap.String("addr", addr), zap.Int("db", db))

	return NewWithClient(client, logger), nil
}

// NewWithClient wraps an existing client without pinging it.
func NewWithClient(client *redis.Client, logger *zap.Logger) *Cache {
	return &Cache{
		client: client,
		logger: logger.Named("cache"),
	}
}

func (c *Cache) Close() error {
	return c.client.Close()
}

// Set stores value as JSON under key with the given TTL.
func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		c.logger.Error("failed to set cache",
			zap.String("key", key),
			zap.Error(err),
		)
		return fmt.Errorf("set cache: %w", err)
	}

	return nil
}

// Get decodes the JSON stored under key into dest.
func (c *Cache) Get(ctx context.Context, key string, dest any) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		c.logger.Error("failed to get cache",
			zap.String("key", key),
			zap.Error(err),
		)
		return fmt.Errorf("get cache: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal value: %w", err)
	}

	return nil
}

func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Error("failed to delete cache",
			zap.Strings("keys", keys),
			zap.Error(err),
		)
		return fmt.Errorf("delete cache: %w", err)
	}

	return nil
}

// DeletePattern removes every key matching pattern. The keyspace is walked
// with SCAN to completion before anything is deleted, since deleting during
// the walk can move unvisited keys behind the cursor.
func (c *Cache) DeletePattern(ctx context.Context, pattern string) (int, error) {
	var (
		cursor uint64
		keys   []string
		seen   = make(map[string]struct{})
	)

	for {
		batch, next, err := c.client.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			c.logger.Error("failed to scan keys",
				zap.String("pattern", pattern),
				zap.Error(err),
			)
			return 0, fmt.Errorf("scan: %w", err)
		}
		for _, key := range batch {
			if _, ok := seen[key]; !ok {
				seen[key] = struct{}{}
				keys = append(keys, key)
			}
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	deleted := 0
	for len(keys) > 0 {
		n := min(len(keys), scanBatchSize)
		if err := c.Delete(ctx, keys[:n]...); err != nil {
			return deleted, err
		}
		deleted += n
		keys = keys[n:]
	}

	return deleted, nil
}
