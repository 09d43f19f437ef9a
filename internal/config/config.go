package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App         App
	Environment Environment
	Database    Database
	Cache       Cache
	Server      Server
	Otel        Otel
}

func Load() (*Config, error) {
	// .env is optional; real deployments set variables directly
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var err error
	config := &Config{}

	config.App, err = loadAppConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load app config: %w", err)
	}

	config.Environment, err = loadEnvironment()
	if err != nil {
		return nil, fmt.Errorf("failed to load environment settings: %w", err)
	}

	config.Database, err = loadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	config.Cache, err = loadCacheConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load cache config: %w", err)
	}

	config.Server, err = loadServerConfig(config.Environment)
	if err != nil {
		return nil, fmt.Errorf("failed to load server config: %w", err)
	}

	config.Otel, err = loadOtelConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load otel config: %w", err)
	}

	return config, nil
}

func getEnv(key string) (string, error) {
	if value := os.Getenv(key); value != "" {
		return value, nil
	}

	return "", fmt.Errorf("required environment variable %s is not set", key)
}

func getEnvOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}

func getIntEnv(key string) (int, error) {
	value, err := getEnv(key)
	if err != nil {
		return 0, err
	}

	intVal, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s is not an integer: %w", key, err)
	}

	return intVal, nil
}

func getBoolEnv(key string, fallback bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}

	boolVal, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("environment variable %s is not a boolean: %w", key, err)
	}

	return boolVal, nil
}

func getFloatEnv(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}

	floatVal, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s is not a number: %w", key, err)
	}

	return floatVal, nil
}
