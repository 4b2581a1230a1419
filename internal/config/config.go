package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	DatasetPath string

	HTTPAddr        string
	ShutdownTimeout time.Duration

	CacheBackend  string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	TracingEnabled   bool
	OTELCollectorURL string
}

func LoadConfig() (*Config, error) {
	config := &Config{
		DatasetPath: getEnvString("DATASET_PATH", "data/business_analyst_jobs.csv"),

		HTTPAddr:        getEnvString("HTTP_ADDR", ":8080"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		CacheBackend:  getEnvString("CACHE_BACKEND", "memory"),
		RedisAddr:     getEnvString("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnvString("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		CacheTTL:      getEnvDuration("CACHE_TTL", 24*time.Hour),

		TracingEnabled:   getEnvBool("TRACING_ENABLED", false),
		OTELCollectorURL: getEnvString("OTEL_COLLECTOR_URL", "localhost:4317"),
	}

	return config, nil
}

func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
