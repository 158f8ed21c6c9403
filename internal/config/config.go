package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines client and console configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Storage StorageConfig `yaml:"storage"`
	Routes  RoutesConfig  `yaml:"routes"`
	Log     LogConfig     `yaml:"log"`
}

type APIConfig struct {
	BaseURL      string        `yaml:"base_url"`
	Timeout      time.Duration `yaml:"timeout"`
	TokenTTL     time.Duration `yaml:"token_ttl"`
	RateLimitRPS float64       `yaml:"rate_limit_rps"`
}

type StorageConfig struct {
	Backend   string `yaml:"backend"` // memory, file, sqlite, redis
	Path      string `yaml:"path"`
	RedisAddr string `yaml:"redis_addr"`
}

type RoutesConfig struct {
	Login string `yaml:"login"`
	Home  string `yaml:"home"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		API: APIConfig{
			BaseURL:  "https://api.imtda.com/api",
			Timeout:  15 * time.Second,
			TokenTTL: 24 * time.Hour,
		},
		Storage: StorageConfig{
			Backend: "file",
			Path:    defaultStatePath(),
		},
		Routes: RoutesConfig{
			Login: "/login",
			Home:  "/",
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("EDUSITE_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if base := os.Getenv("EDUSITE_API_BASE_URL"); base != "" {
		cfg.API.BaseURL = base
	}
	if timeoutStr := os.Getenv("EDUSITE_API_TIMEOUT"); timeoutStr != "" {
		timeout, err := time.ParseDuration(timeoutStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid EDUSITE_API_TIMEOUT: %w", err)
		}
		cfg.API.Timeout = timeout
	}
	if ttlStr := os.Getenv("EDUSITE_TOKEN_TTL"); ttlStr != "" {
		ttl, err := time.ParseDuration(ttlStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid EDUSITE_TOKEN_TTL: %w", err)
		}
		cfg.API.TokenTTL = ttl
	}
	if rpsStr := os.Getenv("EDUSITE_RATE_LIMIT_RPS"); rpsStr != "" {
		rps, err := strconv.ParseFloat(rpsStr, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid EDUSITE_RATE_LIMIT_RPS: %w", err)
		}
		cfg.API.RateLimitRPS = rps
	}
	if backend := os.Getenv("EDUSITE_STORAGE_BACKEND"); backend != "" {
		cfg.Storage.Backend = backend
	}
	if path := os.Getenv("EDUSITE_STORAGE_PATH"); path != "" {
		cfg.Storage.Path = path
	}
	if addr := os.Getenv("EDUSITE_REDIS_ADDR"); addr != "" {
		cfg.Storage.RedisAddr = addr
	}
	if level := os.Getenv("EDUSITE_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func defaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".edusite"
	}
	return home + "/.edusite"
}
