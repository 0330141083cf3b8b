package config

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var (
	redisClient *redis.Client
	redisMu     sync.RWMutex
)

// ConnectRedis connects the process Redis client. It returns nil without error when
// Redis is disabled or the environment is test.
func ConnectRedis(cfg *Config) (*redis.Client, error) {
	if cfg.IsTest() || !cfg.RedisEnabled {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	setRedisClient(rdb)
	log.Info().Str("addr", cfg.RedisAddr).Msg("connected to redis")
	return rdb, nil
}

func setRedisClient(client *redis.Client) {
	redisMu.Lock()
	defer redisMu.Unlock()
	redisClient = client
}

// GetRedisClient returns the connected Redis client, or nil if there is none.
func GetRedisClient() *redis.Client {
	redisMu.RLock()
	defer redisMu.RUnlock()
	return redisClient
}
