package initializers

import (
	"context"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

var Client *redis.Client

// ConnectRedis opens the client used for token metadata and the credential
// cache. A failed ping is logged but not fatal; login falls back to the
// database.
func ConnectRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	Client = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	if err := Client.Ping(context.Background()).Err(); err != nil {
		log.Println("redis connection establishment failed", err)
	}
}
