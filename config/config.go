// file: config/config.go
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config 全部配置从环境变量读取，均有默认值
type Config struct {
	ServerAddr       string
	DBDSN            string
	RedisAddr        string // 留空则禁用排行榜缓存
	JWTSecret        string
	JWTExpireMinutes int
}

func Load() *Config {
	// .env 文件可选，不存在时直接使用进程环境变量
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env file.")
	}

	return &Config{
		ServerAddr:       getEnv("SERVER_ADDR", ":8080"),
		DBDSN:            getEnv("DB_DSN", "root:123456@tcp(localhost:3306)/ctfquest?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		JWTSecret:        getEnv("JWT_SECRET", "supersecretkey"),
		JWTExpireMinutes: getEnvInt("JWT_EXPIRE_MINUTES", 60),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		log.Printf("Invalid value for %s: %q, using default %d", key, val, fallback)
		return fallback
	}
	return n
}
