// file: database/redis.go
package database

import (
	"CTFQuest/config"
	"context"
	"github.com/redis/go-redis/v9"
	"log"
	"time"
)

// InitRedis 初始化排行榜缓存用的 Redis 客户端。
// 未配置 REDIS_ADDR 时返回 nil，查询会直接落库。
func InitRedis(cfg *config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		log.Println("REDIS_ADDR not set, leaderboard cache disabled.")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: "",
		DB:       0,
		PoolSize: 100,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	log.Println("Redis connection successfully established.")
	return rdb
}
