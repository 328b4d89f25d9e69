package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, NotifyLog, cfg.Notify.Driver)
	assert.Equal(t, time.Minute, cfg.Redis.TTL)
	assert.Equal(t, "0 7 * * *", cfg.Scheduler.LowStockCron)
	assert.True(t, cfg.App.IsDevelopment())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BACKOFFICE_APP_PORT", "9090")
	t.Setenv("BACKOFFICE_STORAGE_DRIVER", "postgres")
	t.Setenv("BACKOFFICE_DATABASE_URL", "postgres://localhost/backoffice")
	t.Setenv("BACKOFFICE_NOTIFY_BURST", "10")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, StoragePostgres, cfg.Storage.Driver)
	assert.Equal(t, "postgres://localhost/backoffice", cfg.Database.URL)
	assert.Equal(t, 10, cfg.Notify.Burst)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("BACKOFFICE_LOG_LEVEL=debug\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("BACKOFFICE_LOG_LEVEL") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_MissingEnvFileIsIgnored(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			App:     AppConfig{Port: "8080"},
			Storage: StorageConfig{Driver: StorageMemory},
			Notify:  NotifyConfig{Driver: NotifyLog},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"postgres without url", func(c *Config) { c.Storage.Driver = StoragePostgres }, "database.url"},
		{"unknown storage", func(c *Config) { c.Storage.Driver = "sqlite" }, "unknown storage driver"},
		{"webhook without url", func(c *Config) { c.Notify.Driver = NotifyWebhook }, "webhook_url"},
		{"webhook without rate", func(c *Config) {
			c.Notify.Driver = NotifyWebhook
			c.Notify.WebhookURL = "http://hooks"
		}, "rate_per_second"},
		{"unknown notifier", func(c *Config) { c.Notify.Driver = "sms" }, "unknown notifier"},
		{"missing port", func(c *Config) { c.App.Port = "" }, "app.port"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
