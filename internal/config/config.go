package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort int

	StatsInterval time.Duration
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: Could not load .env file")
	}

	config := &Config{}

	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.ServerPort = p
		}
	}
	if config.ServerPort == 0 {
		config.ServerPort = 8000
	}

	raw := getEnvOrDefault("STATS_INTERVAL", "1m")
	interval, err := time.ParseDuration(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid STATS_INTERVAL %q: %w", raw, err)
	}
	config.StatsInterval = interval

	return config, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
