package querycache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const redisKeyPrefix = "homeserve:query:"

// RedisCache shares cached query results between instances
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects and pings the server
func NewRedisCache(addr, password string, db int, ttl time.Duration) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: 2 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}

	return &RedisCache{client: client, ttl: ttl}, nil
}

func (r *RedisCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, redisKeyPrefix+key, data, r.ttl).Err()
}

// Invalidate walks matching keys with SCAN so large keyspaces never block
func (r *RedisCache) Invalidate(ctx context.Context, names ...string) error {
	for _, name := range names {
		var doomed []string
		iter := r.client.Scan(ctx, 0, redisKeyPrefix+name+"*", 200).Iterator()
		for iter.Next(ctx) {
			if belongsTo(iter.Val()[len(redisKeyPrefix):], name) {
				doomed = append(doomed, iter.Val())
			}
		}
		if err := iter.Err(); err != nil {
			return fmt.Errorf("scan %s: %w", name, err)
		}
		if len(doomed) == 0 {
			continue
		}
		if err := r.client.Del(ctx, doomed...).Err(); err != nil {
			return fmt.Errorf("invalidate %s: %w", name, err)
		}
	}
	return nil
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
