package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisNamespace prefixes every key so a shared instance can host other
// applications alongside the explorer.
const redisNamespace = "polynav:"

// RedisStore is a redis-backed Store for shared deployments. The graph and
// history blobs are kept without expiry; entity records carry an optional
// TTL since the upstream API can change them between releases.
type RedisStore struct {
	client    *redis.Client
	entityTTL time.Duration
}

// RedisConfig configures a RedisStore.
type RedisConfig struct {
	Addr      string        // host:port
	Password  string        // optional
	DB        int           // optional
	EntityTTL time.Duration // optional; 0 means entities never expire
}

// NewRedisStore connects to redis and verifies the connection with a ping.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return &RedisStore{client: client, entityTTL: cfg.EntityTTL}, nil
}

func (s *RedisStore) get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, redisNamespace+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *RedisStore) set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return s.client.Set(ctx, redisNamespace+key, data, ttl).Err()
}

func (s *RedisStore) GetGraph(ctx context.Context) ([]byte, bool, error) {
	return s.get(ctx, keyGraph)
}

func (s *RedisStore) PutGraph(ctx context.Context, data []byte) error {
	return s.set(ctx, keyGraph, data, 0)
}

func (s *RedisStore) GetEntity(ctx context.Context, id string) ([]byte, bool, error) {
	return s.get(ctx, keyEntity+id)
}

func (s *RedisStore) PutEntity(ctx context.Context, id string, data []byte) error {
	return s.set(ctx, keyEntity+id, data, s.entityTTL)
}

func (s *RedisStore) GetHistory(ctx context.Context) ([]byte, bool, error) {
	return s.get(ctx, keyHistory)
}

func (s *RedisStore) PutHistory(ctx context.Context, data []byte) error {
	return s.set(ctx, keyHistory, data, 0)
}

func (s *RedisStore) Clear(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, redisNamespace+"*", 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

func (s *RedisStore) Close() error { return s.client.Close() }

var _ Store = (*RedisStore)(nil)
