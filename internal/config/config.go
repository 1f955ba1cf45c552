package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	DataDir         string
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
	CacheYears      int

	// Map rendering configuration.
	MapWidth  int
	MapHeight int
	MapFormat string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	mapWidth, err := parsePixels("MAP_WIDTH", 1024)
	if err != nil {
		return nil, err
	}

	mapHeight, err := parsePixels("MAP_HEIGHT", 768)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DataDir:         envOrDefault("FARS_DATA_DIR", "./data"),
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		CacheYears:      parseCacheYears(),

		MapWidth:  mapWidth,
		MapHeight: mapHeight,
		MapFormat: envOrDefault("MAP_FORMAT", "png"),
	}

	if cfg.DataDir == "" {
		return nil, errors.New("FARS_DATA_DIR is required")
	}
	if cfg.MapFormat != "png" && cfg.MapFormat != "svg" {
		return nil, fmt.Errorf("MAP_FORMAT must be png or svg, got %q", cfg.MapFormat)
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseShutdownTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault("SHUTDOWN_TIMEOUT", "10s"))
	if err != nil || d <= 0 {
		return 0, errors.New("invalid SHUTDOWN_TIMEOUT")
	}
	return d, nil
}

func parseCacheYears() int {
	if s := os.Getenv("CACHE_YEARS"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 8
}

func parsePixels(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 64 || n > 4096 {
		return 0, fmt.Errorf("%s must be an integer between 64 and 4096", key)
	}
	return n, nil
}
