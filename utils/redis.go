package utils

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/matty-app/matty-backend/config"
)

var RedisClient *redis.Client

// InitRedis connects the shared Redis client. Redis backs the interest
// catalog cache and the delete-confirmation tokens.
func InitRedis(cfg *config.Config) error {
	addr := cfg.RedisAddr
	if addr == "" {
		addr = "localhost:6379"
	}

	RedisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := RedisClient.Ping(context.Background()).Err(); err != nil {
		return err
	}

	log.Println("✅ Redis connected:", addr)
	return nil
}
