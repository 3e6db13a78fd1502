// Package config loads the portal's runtime configuration.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the settings shared by the server and the CLI. Values come
// from an optional config.yaml, overridden by environment variables named
// after the upper-cased keys (PORT, DATABASE_URL, ...).
type Config struct {
	Port              int           `mapstructure:"port"`
	DatabaseURL       string        `mapstructure:"database_url"`
	RedisURL          string        `mapstructure:"redis_url"`
	APIURL            string        `mapstructure:"api_url"`
	PredictURL        string        `mapstructure:"predict_url"`
	LogLevel          string        `mapstructure:"log_level"`
	LogFormat         string        `mapstructure:"log_format"`
	DebounceMS        int           `mapstructure:"debounce_ms"`
	DictionaryRefresh time.Duration `mapstructure:"dictionary_refresh"`
	PredictCacheTTL   time.Duration `mapstructure:"predict_cache_ttl"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 8080)
	v.SetDefault("database_url", "")
	v.SetDefault("redis_url", "")
	v.SetDefault("api_url", "http://localhost:8080")
	v.SetDefault("predict_url", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("debounce_ms", 200)
	v.SetDefault("dictionary_refresh", "15m")
	v.SetDefault("predict_cache_ttl", "10m")
}

// Load reads configuration. path names a config file; when empty,
// config.yaml is looked up in the working directory and ./configs, and a
// missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: port out of range: %d", c.Port)
	}
	if c.DebounceMS < 0 {
		return fmt.Errorf("config error: debounce_ms must be non-negative")
	}
	if c.DictionaryRefresh < time.Second {
		return fmt.Errorf("config error: dictionary_refresh must be at least 1s, got %s", c.DictionaryRefresh)
	}
	if c.PredictCacheTTL < 0 {
		return fmt.Errorf("config error: predict_cache_ttl must be non-negative")
	}
	return nil
}

// Addr is the listen address for the configured port.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Debounce is the suggestion debounce window.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// PredictEndpoint is the URL the CLI sends prediction requests to. It
// defaults to the API's own /predict route.
func (c *Config) PredictEndpoint() string {
	if c.PredictURL != "" {
		return c.PredictURL
	}
	return strings.TrimRight(c.APIURL, "/") + "/predict"
}
