package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver   string // postgres or sqlite
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	SQLitePath string

	JWTSecret       string
	SessionTTLHours int
	ServerPort      string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		DBDriver:        getEnv("DB_DRIVER", "sqlite"),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBUser:          getEnv("DB_USER", "postgres"),
		DBPassword:      getEnv("DB_PASSWORD", "postgres"),
		DBName:          getEnv("DB_NAME", "lms"),
		SQLitePath:      getEnv("SQLITE_PATH", "lms.db"),
		JWTSecret:       getEnv("JWT_SECRET", "dev-secret-change-in-prod"),
		SessionTTLHours: getEnvInt("SESSION_TTL_HOURS", 72),
		ServerPort:      getEnv("SERVER_PORT", "8080"),
	}

	if cfg.JWTSecret == "dev-secret-change-in-prod" {
		log.Println("Warning: using default JWT_SECRET, set it in your environment")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid value for %s: %v", key, err)
		return defaultValue
	}
	return n
}
