package redisdb

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"coldreach/internal/config"
)

func NewClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

// Ping reports whether the server is reachable. Callers treat a false
// result as "run without the research cache", not as a fatal error.
func Ping(client *redis.Client) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}
