package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Auth
	JWTSecret string

	// Events (optional; publishing is disabled when AMQPURL is empty)
	AMQPURL      string
	AMQPExchange string

	// Server
	ServerPort string
}

// Load loads configuration from environment variables
func Load() *Config {
	// Try to load .env file (optional for local development)
	_ = godotenv.Load()

	config := &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "stationpass123"),
		DBName:     getEnv("DB_NAME", "trainstation"),

		JWTSecret: getEnv("JWT_SECRET", "dev_secret"),

		AMQPURL:      os.Getenv("AMQP_URL"),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "station.events"),

		ServerPort: getEnv("SERVER_PORT", "8080"),
	}

	if config.JWTSecret == "dev_secret" {
		log.Println("WARNING: JWT_SECRET not set, using development secret")
	}

	return config
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
