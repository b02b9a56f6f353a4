package db

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tsm98/social-mern/internal/config"
)

// ConnectRedis returns nil when no address is configured or the server does
// not answer a ping. Callers treat nil as "deliver events in process only".
func ConnectRedis(cfg config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil
	}
	return client
}
