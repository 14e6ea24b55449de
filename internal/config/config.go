package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	DBHost string
	DBPort string
	DBUser string
	DBPass string
	DBName string

	RedisURL string

	MeiliSearchHost string
	MeiliMasterKey  string

	JWTSecret string
	JWTTTL    time.Duration

	LoginMaxAttempts int
	LoginLockWindow  time.Duration
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		DBHost: getEnv("DB_HOST", "localhost"),
		DBPort: getEnv("DB_PORT", "5432"),
		DBUser: getEnv("DB_USER", "postgres"),
		DBPass: os.Getenv("DB_PASS"),
		DBName: getEnv("DB_NAME", "pharmatrack"),

		RedisURL: os.Getenv("REDIS_URL"),

		MeiliSearchHost: os.Getenv("MEILISEARCH_HOST"),
		MeiliMasterKey:  os.Getenv("MEILI_MASTER_KEY"),

		JWTSecret: getEnv("JWT_SECRET", "change-me"),

		LoginMaxAttempts: 5,
	}

	var err error
	cfg.JWTTTL, err = time.ParseDuration(getEnv("JWT_TTL", "8h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}
	cfg.LoginLockWindow, err = time.ParseDuration(getEnv("LOGIN_LOCK_WINDOW", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOGIN_LOCK_WINDOW: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
