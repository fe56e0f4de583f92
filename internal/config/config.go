package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from .env files and environment variables.
type Config struct {
	AppName                string        `mapstructure:"app_name"`
	Env                    string        `mapstructure:"app_env"`
	LogLevel               string        `mapstructure:"log_level"`
	NASAAPIKey             string        `mapstructure:"nasa_api_key"`
	SourcesFile            string        `mapstructure:"sources_file"`
	BindAddr               string        `mapstructure:"bind_addr"`
	RefreshIntervalSeconds int64         `mapstructure:"refresh_interval"`
	HTTPTimeoutSeconds     int64         `mapstructure:"http_timeout"`
	RefreshInterval        time.Duration `mapstructure:"-"`
	HTTPTimeout            time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")
	_ = godotenv.Load(".env")

	v := viper.New()

	v.SetDefault("app_name", "skywatch-dashboard")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("nasa_api_key", "")
	v.SetDefault("sources_file", "./configs/sources.yaml")
	v.SetDefault("bind_addr", ":8501")
	v.SetDefault("refresh_interval", 60) // seconds
	v.SetDefault("http_timeout", 15)     // seconds

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.RefreshIntervalSeconds <= 0 {
		return nil, fmt.Errorf("invalid refresh_interval (must be positive seconds)")
	}
	if cfg.HTTPTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid http_timeout (must be positive seconds)")
	}
	cfg.RefreshInterval = time.Duration(cfg.RefreshIntervalSeconds) * time.Second
	cfg.HTTPTimeout = time.Duration(cfg.HTTPTimeoutSeconds) * time.Second

	return &cfg, nil
}

// Redacted returns a copy safe to log.
func (c Config) Redacted() Config {
	if c.NASAAPIKey != "" {
		c.NASAAPIKey = "***"
	}
	return c
}
