// Package config provides Viper-based configuration loading for the
// loadout API server.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	// Host is the bind address for the HTTP listener.
	Host string `mapstructure:"host"`
	// Port is the TCP port for the HTTP listener.
	Port int `mapstructure:"port"`
	// ReadTimeout is the per-request read timeout.
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
	// WriteTimeout is the per-request write timeout.
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	// ShutdownGrace is how long in-flight requests get to drain on
	// shutdown.
	ShutdownGrace time.Duration `mapstructure:"shutdown_grace"`
}

// Addr returns the "host:port" listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	// Address is the "host:port" of the Redis instance.
	Address string `mapstructure:"address"`
	// PoolSize is the connection pool size.
	PoolSize int `mapstructure:"pool_size"`
	// MinIdleConns is the minimum number of idle connections.
	MinIdleConns int `mapstructure:"min_idle_conns"`
	// MaxRetries is the per-command retry budget.
	MaxRetries int `mapstructure:"max_retries"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "text".
	Format string `mapstructure:"format"`
}

// SearchConfig bounds the combination search.
type SearchConfig struct {
	// MaxItems caps the combination size.
	MaxItems int `mapstructure:"max_items"`
	// MaxLockedItems caps how many locked-without-penalty items a
	// subset may carry before it is skipped.
	MaxLockedItems int `mapstructure:"max_locked_items"`
}

// Config is the top-level application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Logging LoggingConfig `mapstructure:"logging"`
	Search  SearchConfig  `mapstructure:"search"`
}

// Validate checks all configuration invariants.
func (c Config) Validate() error {
	var errs []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout < 0 {
		errs = append(errs, "server.read_timeout must not be negative")
	}
	if c.Server.WriteTimeout < 0 {
		errs = append(errs, "server.write_timeout must not be negative")
	}
	if c.Redis.Address == "" {
		errs = append(errs, "redis.address must not be empty")
	}
	if c.Redis.PoolSize < 0 {
		errs = append(errs, fmt.Sprintf("redis.pool_size must be >= 0, got %d", c.Redis.PoolSize))
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		errs = append(errs, fmt.Sprintf("logging.level must be one of [debug, info, warn, error], got %q", c.Logging.Level))
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		errs = append(errs, fmt.Sprintf("logging.format must be one of [json, text], got %q", c.Logging.Format))
	}

	if c.Search.MaxItems < 1 {
		errs = append(errs, fmt.Sprintf("search.max_items must be >= 1, got %d", c.Search.MaxItems))
	}
	if c.Search.MaxLockedItems < 1 {
		errs = append(errs, fmt.Sprintf("search.max_locked_items must be >= 1, got %d", c.Search.MaxLockedItems))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from an optional file path, applies environment
// variable overrides with the LOADOUT_ prefix, and validates the result.
// An empty path loads defaults and environment only.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetEnvPrefix("LOADOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_grace", "30s")

	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 2)
	v.SetDefault("redis.max_retries", 3)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("search.max_items", 5)
	v.SetDefault("search.max_locked_items", 3)
}
