package db

import (
	"context"
	"log"
	"time"

	"github.com/iamFear/mapty/internal/config"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis returns nil when redis is not configured or not reachable;
// the stream hub then serves local clients only.
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
		log.Printf("redis unavailable at %s: %v", cfg.RedisAddr, err)
		_ = client.Close()
		return nil
	}
	return client
}
