package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "turing:run:", cfg.RedisPrefix)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Zero(t, cfg.TapeCapacity)
	assert.Zero(t, cfg.CacheTTL)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("TURING_DIR", "/srv/machines")
	t.Setenv("TURING_TAPE_CAPACITY", "256")
	t.Setenv("TURING_CACHE_TTL", "90s")
	t.Setenv("TURING_REDIS_ADDR", "localhost:6379")
	t.Setenv("TURING_LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/srv/machines", cfg.Dir)
	assert.Equal(t, 256, cfg.TapeCapacity)
	assert.Equal(t, 90*time.Second, cfg.CacheTTL)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_Errors(t *testing.T) {
	tests := map[string]string{
		"TURING_TAPE_CAPACITY": "-1",
		"TURING_CONCURRENCY":   "0",
		"TURING_LOG_FORMAT":    "xml",
		"TURING_CACHE_TTL":     "soon",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg Config
	t.Setenv("TURING_TAPE_CAPACITY", "many")

	err := ParseEnv(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}
