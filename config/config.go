package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string

	FrontendURL string
}

const defaultJWTSecret = "dev-secret-change-me"

// JWTSecret returns the token signing key. The dev fallback keeps local runs
// working; production must set JWT_SECRET. An empty key is never used.
func JWTSecret() []byte {
	return []byte(getEnv("JWT_SECRET", defaultJWTSecret))
}

// TokenTTL returns the session token lifetime, 7 days unless JWT_EXPIRES_HOURS
// overrides it.
func TokenTTL() time.Duration {
	hours := 7 * 24
	if v := os.Getenv("JWT_EXPIRES_HOURS"); v != "" {
		if h, err := strconv.Atoi(v); err == nil && h > 0 {
			hours = h
		}
	}
	return time.Duration(hours) * time.Hour
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads .env (if present) and resolves all settings from the environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      getEnv("DB_NAME", "ecommerce"),

		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:4200"),
	}
}
