// Package app assembles the runtime dependencies shared by the API server
// and bridgesctl from configuration.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/gogotex/bridges/internal/bridge/repository"
	"github.com/gogotex/bridges/internal/bridge/service"
	"github.com/gogotex/bridges/internal/config"
	"github.com/gogotex/bridges/internal/database"
	"github.com/gogotex/bridges/internal/identity"
	"github.com/gogotex/bridges/internal/ids"
	"github.com/gogotex/bridges/internal/oidc"
	"github.com/gogotex/bridges/pkg/logger"
	"github.com/gogotex/bridges/pkg/middleware"
	"github.com/redis/go-redis/v9"
)

const mongoConnectAttempts = 5

// Resources owns the store connection behind an Env.
type Resources struct {
	Env     *service.Env
	Backend string
	closers []func(context.Context) error
}

// Open connects the configured store and builds the operation Env.
func Open(ctx context.Context, cfg *config.Config, who identity.Provider) (*Resources, error) {
	gen, err := ids.New(cfg.Store.IDStrategy, cfg.Store.SnowflakeNode)
	if err != nil {
		return nil, err
	}
	res := &Resources{Backend: cfg.Store.Backend}
	store, err := res.openStore(ctx, cfg)
	if err != nil {
		_ = res.Close(ctx)
		return nil, err
	}
	res.Env = &service.Env{
		Store:     store,
		Identity:  who,
		IDs:       gen,
		Partition: cfg.Store.Partition,
		Version:   cfg.Store.Version,
	}
	logger.Infof("store ready: backend=%s partition=%s ids=%s", cfg.Store.Backend, cfg.Store.Partition, cfg.Store.IDStrategy)
	return res, nil
}

func (r *Resources) openStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	switch cfg.Store.Backend {
	case "memory":
		return repository.NewMemoryStore(), nil
	case "mongo":
		client, err := database.ConnectMongoWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, mongoConnectAttempts)
		if err != nil {
			return nil, err
		}
		r.closers = append(r.closers, client.Disconnect)
		store := repository.NewMongoStore(client.Database(cfg.MongoDB.Database).Collection(cfg.MongoDB.Collection))
		if err := store.EnsureIndexes(ctx); err != nil {
			return nil, fmt.Errorf("mongo indexes: %w", err)
		}
		return store, nil
	case "postgres":
		db, err := database.OpenPostgres(cfg.Postgres)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		r.closers = append(r.closers, func(context.Context) error { return sqlDB.Close() })
		store := repository.NewSQLStore(db)
		if cfg.Postgres.AutoMigrate {
			if err := store.Migrate(ctx); err != nil {
				return nil, fmt.Errorf("postgres migrate: %w", err)
			}
		}
		return store, nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}

// Ping checks the store connection when the backend is remote.
func (r *Resources) Ping(ctx context.Context) error {
	if p, ok := r.Env.Store.(repository.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

func (r *Resources) Close(ctx context.Context) error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		errs = append(errs, r.closers[i](ctx))
	}
	r.closers = nil
	return errors.Join(errs...)
}

// OpenRedis returns a connected client, or nil when Redis is not configured
// or unreachable. Redis only backs optional features.
func OpenRedis(ctx context.Context, cfg config.RedisConfig) *redis.Client {
	if cfg.Host == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.Addr(), Password: cfg.Password, DB: cfg.DB})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warnf("failed to connect to Redis (%s): %v", cfg.Addr(), err)
		_ = client.Close()
		return nil
	}
	logger.Infof("connected to Redis: %s", cfg.Addr())
	return client
}

// NewVerifier picks the token verifier: Keycloak OIDC when configured, then
// the HS256 shared secret, then the insecure decoder on explicit opt-in.
// It returns nil when nothing is configured.
func NewVerifier(ctx context.Context, cfg *config.Config) (middleware.Verifier, error) {
	if cfg.Keycloak.URL != "" && cfg.Keycloak.ClientID != "" {
		issuer := oidc.KeycloakIssuer(cfg.Keycloak.URL, cfg.Keycloak.Realm)
		ver, err := oidc.NewVerifier(ctx, issuer, cfg.Keycloak.ClientID)
		if err != nil {
			return nil, err
		}
		logger.Infof("token verification: OIDC issuer %s", issuer)
		return ver, nil
	}
	if cfg.JWT.Secret != "" {
		ver, err := oidc.NewHMACVerifier(cfg.JWT.Secret)
		if err != nil {
			return nil, err
		}
		logger.Infof("token verification: HS256 shared secret")
		return ver, nil
	}
	if cfg.Auth.AllowInsecure {
		logger.Warn("enabling insecure token verifier (integration mode)")
		return oidc.NewInsecureVerifier(), nil
	}
	return nil, nil
}
