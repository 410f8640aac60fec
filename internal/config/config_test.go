package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Store.Backend)
	assert.Equal(t, "BRIDGES", cfg.Store.Partition)
	assert.Equal(t, "objectid", cfg.Store.IDStrategy)
	assert.Equal(t, "5001", cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("STORE_BACKEND", "Mongo")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("MONGODB_DATABASE", "bridges_test")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("JWT_SECRET", "testsecret123456789012345678901234")
	t.Setenv("ID_STRATEGY", "snowflake")
	t.Setenv("SNOWFLAKE_NODE", "7")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com,")
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_USE_REDIS", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "mongo", cfg.Store.Backend)
	assert.Equal(t, "bridges_test", cfg.MongoDB.Database)
	assert.Equal(t, int64(7), cfg.Store.SnowflakeNode)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.HasVerifier())
}

func TestLoadConfig_DotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("BRIDGES_PARTITION=FROM_FILE\n"), 0o600))
	t.Setenv("ENV_FILE", path)
	// godotenv does not override, so clear the key after the test
	t.Setenv("BRIDGES_PARTITION", "")
	require.NoError(t, os.Unsetenv("BRIDGES_PARTITION"))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "FROM_FILE", cfg.Store.Partition)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{Store: StoreConfig{Backend: "memory", Partition: "P", IDStrategy: "objectid"}}
	}
	require.NoError(t, valid().Validate())

	tests := map[string]func(c *Config){
		"mongo without uri":     func(c *Config) { c.Store.Backend = "mongo" },
		"postgres without dsn":  func(c *Config) { c.Store.Backend = "postgres" },
		"unknown backend":       func(c *Config) { c.Store.Backend = "dynamo" },
		"empty partition":       func(c *Config) { c.Store.Partition = "" },
		"unknown id strategy":   func(c *Config) { c.Store.IDStrategy = "uuid" },
		"auth without verifier": func(c *Config) { c.Auth.Required = true },
		"redis limiter no host": func(c *Config) { c.RateLimit = RateLimitConfig{Enabled: true, UseRedis: true, RPS: 1} },
		"zero rps":              func(c *Config) { c.RateLimit = RateLimitConfig{Enabled: true} },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			c := valid()
			mutate(c)
			require.Error(t, c.Validate())
		})
	}
}
