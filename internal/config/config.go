package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Dataset DatasetConfig
	Chat    ChatConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatasetConfig struct {
	// Path to a local delimited-text file; takes precedence when set.
	Path string
	// URL to fetch the payload from when no local path is configured.
	URL string
}

type ChatConfig struct {
	// Base URL of the analysis backend that answers questions over the
	// dataset. The service only consumes its streamed response protocol.
	BackendURL string
	// Seconds before an in-flight stream is abandoned.
	TimeoutSeconds int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Dataset: DatasetConfig{
			Path: getEnv("DATASET_PATH", "./data/promotions.csv"),
			URL:  getEnv("DATASET_URL", ""),
		},
		Chat: ChatConfig{
			BackendURL:     getEnv("CHAT_BACKEND_URL", "http://localhost:8000"),
			TimeoutSeconds: getEnvAsInt("CHAT_TIMEOUT_SECONDS", 120),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
