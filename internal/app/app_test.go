package app

import (
	"context"
	"testing"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/gogotex/bridges/internal/bridge"
	"github.com/gogotex/bridges/internal/bridge/repository"
	"github.com/gogotex/bridges/internal/bridge/service"
	"github.com/gogotex/bridges/internal/config"
	"github.com/gogotex/bridges/internal/identity"
	"github.com/gogotex/bridges/internal/ids"
	"github.com/gogotex/bridges/internal/oidc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() *config.Config {
	return &config.Config{Store: config.StoreConfig{
		Backend: "memory", Partition: "TEST", IDStrategy: "snowflake", SnowflakeNode: 2, Version: "9.9.9",
	}}
}

func TestOpenMemory(t *testing.T) {
	res, err := Open(context.Background(), memoryConfig(), identity.ContextProvider{})
	require.NoError(t, err)
	defer res.Close(context.Background())

	assert.IsType(t, &repository.MemoryStore{}, res.Env.Store)
	assert.IsType(t, &ids.Snowflake{}, res.Env.IDs)
	assert.Equal(t, "TEST", res.Env.Partition)
	require.NoError(t, res.Ping(context.Background()))

	b, err := service.Create(context.Background(), res.Env, bridge.CreateInput{Title: "Millau"})
	require.NoError(t, err)
	assert.Equal(t, "9.9.9", b.Version)
	assert.Len(t, b.ID, 19)
}

func TestOpenRejectsUnknown(t *testing.T) {
	cfg := memoryConfig()
	cfg.Store.Backend = "dynamo"
	_, err := Open(context.Background(), cfg, nil)
	require.Error(t, err)

	cfg = memoryConfig()
	cfg.Store.IDStrategy = "uuid"
	_, err = Open(context.Background(), cfg, nil)
	require.Error(t, err)
}

func TestOpenRedis(t *testing.T) {
	require.Nil(t, OpenRedis(context.Background(), config.RedisConfig{}))

	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()
	client := OpenRedis(context.Background(), config.RedisConfig{Host: m.Host(), Port: m.Port()})
	require.NotNil(t, client)
	_ = client.Close()

	m.Close()
	require.Nil(t, OpenRedis(context.Background(), config.RedisConfig{Host: m.Host(), Port: m.Port()}))
}

func TestNewVerifier(t *testing.T) {
	cfg := memoryConfig()
	ver, err := NewVerifier(context.Background(), cfg)
	require.NoError(t, err)
	assert.Nil(t, ver)

	cfg.Auth.AllowInsecure = true
	ver, err = NewVerifier(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &oidc.InsecureVerifier{}, ver)

	cfg.JWT.Secret = "s3cret-s3cret-s3cret-s3cret-s3cret"
	ver, err = NewVerifier(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &oidc.HMACVerifier{}, ver)
}
