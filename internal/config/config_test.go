package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, "data/uploads", cfg.UploadsDir)
	assert.Equal(t, "data/generated_letters", cfg.GeneratedDir)
	assert.Equal(t, "letters.db", cfg.DatabasePath)
	assert.Equal(t, 10, cfg.MaxOpenConns)
	assert.Equal(t, int64(50), cfg.MaxUploadSizeMB)
	assert.Equal(t, 2.0, cfg.RateLimitPerSec)
	assert.Equal(t, 5, cfg.RateLimitBurst)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "INFO", cfg.LogLevel)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("UPLOADS_DIR", "/tmp/up")
	t.Setenv("MAX_UPLOAD_SIZE_MB", "10")
	t.Setenv("RATE_LIMIT_PER_SEC", "0.5")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "/tmp/up", cfg.UploadsDir)
	assert.Equal(t, int64(10), cfg.MaxUploadSizeMB)
	assert.Equal(t, 0.5, cfg.RateLimitPerSec)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
}

func TestLoadConfig_InvalidValuesFallBackToDefaults(t *testing.T) {
	t.Setenv("MAX_UPLOAD_SIZE_MB", "не число")
	t.Setenv("SHUTDOWN_TIMEOUT", "вечность")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, int64(50), cfg.MaxUploadSizeMB)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Port:            "9999",
			UploadsDir:      "data/uploads",
			GeneratedDir:    "data/generated",
			DatabasePath:    "letters.db",
			MaxUploadSizeMB: 50,
			RateLimitPerSec: 2,
			RateLimitBurst:  5,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"валидная конфигурация", func(c *Config) {}, false},
		{"пустой порт", func(c *Config) { c.Port = "" }, true},
		{"порт не число", func(c *Config) { c.Port = "abc" }, true},
		{"порт вне диапазона", func(c *Config) { c.Port = "70000" }, true},
		{"пустой каталог загрузок", func(c *Config) { c.UploadsDir = "" }, true},
		{"пустой путь к базе", func(c *Config) { c.DatabasePath = "" }, true},
		{"нулевой лимит загрузки", func(c *Config) { c.MaxUploadSizeMB = 0 }, true},
		{"нулевой rate limit", func(c *Config) { c.RateLimitPerSec = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
