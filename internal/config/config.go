package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config 进程配置
// 启动时加载一次，显式传给各组件构造函数，不做包级缓存
type Config struct {
	ServerPort string

	// 数据库
	PostgresHost     string
	PostgresPort     int
	PostgresDB       string
	PostgresUser     string
	PostgresPassword string

	// 认证
	JWTSecret      string
	JWTIssuer      string
	AccessTokenTTL time.Duration

	// 购物车清理任务
	CartCleanupSpec    string
	CartRetentionHours int
}

// Load 读取 .env 与环境变量
func Load() *Config {
	// .env 不存在时直接用已有环境变量
	_ = godotenv.Load()

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnvInt("POSTGRES_PORT", 5432),
		PostgresDB:       getEnv("POSTGRES_DB", "digistore"),
		PostgresUser:     getEnv("POSTGRES_USER", "postgres"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", ""),

		JWTSecret:      getEnv("JWT_SECRET", "digistore-secret-key-change-in-production"),
		JWTIssuer:      getEnv("JWT_ISSUER", "digistore"),
		AccessTokenTTL: time.Duration(getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute,

		CartCleanupSpec:    getEnv("CART_CLEANUP_SPEC", "0 3 * * *"),
		CartRetentionHours: getEnvInt("CART_RETENTION_HOURS", 7*24),
	}
}

// DSN 拼接 PostgreSQL 连接串
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		c.PostgresHost, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
