package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ClientConfig configures postsctl.
type ClientConfig struct {
	APIBaseURL        string `mapstructure:"API_BASE_URL"`
	APITimeoutSeconds int    `mapstructure:"API_TIMEOUT_SECONDS"`
	RedisURL          string `mapstructure:"REDIS_URL"`
}

// Timeout returns the per-request timeout.
func (c *ClientConfig) Timeout() time.Duration {
	return time.Duration(c.APITimeoutSeconds) * time.Second
}

// LoadClientConfig reads the client settings from the environment (and an
// optional .env file). It uses its own viper instance so it never mixes with
// server configuration.
func LoadClientConfig() (*ClientConfig, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("API_BASE_URL", "http://localhost:3000/api/v1")
	v.SetDefault("API_TIMEOUT_SECONDS", 10)
	v.SetDefault("REDIS_URL", "")

	var cfg ClientConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode client config: %w", err)
	}
	cfg.APIBaseURL = strings.TrimRight(strings.TrimSpace(cfg.APIBaseURL), "/")

	if cfg.APIBaseURL == "" {
		return nil, errors.New("API_BASE_URL is required")
	}
	if cfg.APITimeoutSeconds <= 0 {
		return nil, errors.New("API_TIMEOUT_SECONDS must be positive")
	}
	return &cfg, nil
}
