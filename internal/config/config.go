package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting, loaded once at startup from the
// environment (with optional .env file support for local development).
type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	JWTSecret  string
	AdminToken string

	// RedisURL enables the leaderboard cache when set; empty disables it.
	RedisURL string
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first when present.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("[config] loaded .env file")
	}

	return &Config{
		Port: getEnv("PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "studybuddy"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:  getEnv("JWT_SECRET", "studybuddy-dev-signing-key"),
		AdminToken: getEnv("ADMIN_TOKEN", ""),

		RedisURL: getEnv("REDIS_URL", ""),
	}
}

// DSN builds the lib/pq connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
