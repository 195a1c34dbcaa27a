package config

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

/* Config is a helper package. It reads the .env file (TOML) when there is one,
 * and environment variables override it.
 */

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

type Config struct {
	Port            string        `mapstructure:"PORT"`
	Store           string        `mapstructure:"STORE"`
	IDStrategy      string        `mapstructure:"ID_STRATEGY"`
	SeedFile        string        `mapstructure:"SEED_FILE"`
	RedisAddr       string        `mapstructure:"REDIS_ADDR"`
	RedisPassword   string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB         int           `mapstructure:"REDIS_DB"`
	RedisPrefix     string        `mapstructure:"REDIS_PREFIX"`
	LogJSON         bool          `mapstructure:"LOG_JSON"`
	MetricsEnabled  bool          `mapstructure:"METRICS_ENABLED"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

var defaults = map[string]interface{}{
	"PORT":             "8080",
	"STORE":            StoreMemory,
	"ID_STRATEGY":      "monotonic",
	"SEED_FILE":        "",
	"REDIS_ADDR":       "localhost:6379",
	"REDIS_PASSWORD":   "",
	"REDIS_DB":         0,
	"REDIS_PREFIX":     "books",
	"LOG_JSON":         true,
	"METRICS_ENABLED":  true,
	"SHUTDOWN_TIMEOUT": "30s",
}

func GetConfig() (*Config, error) {
	return Load(".")
}

// Load reads .env from the given directories. A missing file is not an error.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("toml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()
	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	var config Config
	err = v.Unmarshal(&config)
	if err != nil {
		return nil, fmt.Errorf("parsing config data: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &config, nil
}

func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port <= 0 {
		return fmt.Errorf("invalid port: %q", c.Port)
	}
	switch c.Store {
	case StoreMemory, StoreRedis:
	default:
		return fmt.Errorf("unknown store: %q", c.Store)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive (got %s)", c.ShutdownTimeout)
	}
	return nil
}
