// Package config loads service configuration from an optional .env file,
// an optional config file and BACKOFFICE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "BACKOFFICE"

// Storage drivers.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Notifier drivers.
const (
	NotifyLog     = "log"
	NotifyWebhook = "webhook"
)

// Config holds all application configuration.
type Config struct {
	App       AppConfig
	Log       LogConfig
	Storage   StorageConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Notify    NotifyConfig
	Scheduler SchedulerConfig
}

type AppConfig struct {
	Env  string
	Port string
}

// IsDevelopment reports whether the service runs with dev defaults (console logs, gin debug).
func (a AppConfig) IsDevelopment() bool {
	return a.Env == "development"
}

type LogConfig struct {
	Level string
}

type StorageConfig struct {
	Driver string // memory, postgres
}

type DatabaseConfig struct {
	URL      string
	MaxConns int32
	MinConns int32
}

// RedisConfig configures the report cache. Empty Addr disables caching.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type JWTConfig struct {
	Secret string
}

type NotifyConfig struct {
	Driver        string // log, webhook
	WebhookURL    string
	Token         string
	RatePerSecond float64
	Burst         int
	Timeout       time.Duration
}

type SchedulerConfig struct {
	LowStockCron string
	Branch       string
	JobTimeout   time.Duration
}

// Load reads configuration. envFile may be empty; a missing file is not an error.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/backoffice")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Log: LogConfig{
			Level: v.GetString("log.level"),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(v.GetString("storage.driver")),
		},
		Database: DatabaseConfig{
			URL:      v.GetString("database.url"),
			MaxConns: v.GetInt32("database.max_conns"),
			MinConns: v.GetInt32("database.min_conns"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			TTL:      v.GetDuration("redis.ttl"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("jwt.secret"),
		},
		Notify: NotifyConfig{
			Driver:        strings.ToLower(v.GetString("notify.driver")),
			WebhookURL:    v.GetString("notify.webhook_url"),
			Token:         v.GetString("notify.token"),
			RatePerSecond: v.GetFloat64("notify.rate_per_second"),
			Burst:         v.GetInt("notify.burst"),
			Timeout:       v.GetDuration("notify.timeout"),
		},
		Scheduler: SchedulerConfig{
			LowStockCron: v.GetString("scheduler.low_stock_cron"),
			Branch:       v.GetString("scheduler.branch"),
			JobTimeout:   v.GetDuration("scheduler.job_timeout"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("storage.driver", StorageMemory)
	v.SetDefault("database.url", "")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", time.Minute)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("notify.driver", NotifyLog)
	v.SetDefault("notify.webhook_url", "")
	v.SetDefault("notify.token", "")
	v.SetDefault("notify.rate_per_second", 2.0)
	v.SetDefault("notify.burst", 5)
	v.SetDefault("notify.timeout", 15*time.Second)
	v.SetDefault("scheduler.low_stock_cron", "0 7 * * *")
	v.SetDefault("scheduler.branch", "")
	v.SetDefault("scheduler.job_timeout", 2*time.Minute)
}

// Validate checks option combinations that would fail at startup.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageMemory:
	case StoragePostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("database.url is required for storage driver %q", StoragePostgres)
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	switch c.Notify.Driver {
	case NotifyLog:
	case NotifyWebhook:
		if c.Notify.WebhookURL == "" {
			return fmt.Errorf("notify.webhook_url is required for notifier %q", NotifyWebhook)
		}
		if c.Notify.RatePerSecond <= 0 {
			return fmt.Errorf("notify.rate_per_second must be positive")
		}
	default:
		return fmt.Errorf("unknown notifier driver %q", c.Notify.Driver)
	}

	if c.App.Port == "" {
		return fmt.Errorf("app.port is required")
	}
	return nil
}
