package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/bridges/handlers"
	"github.com/gogotex/bridges/internal/app"
	"github.com/gogotex/bridges/internal/config"
	"github.com/gogotex/bridges/internal/gql"
	"github.com/gogotex/bridges/internal/identity"
	"github.com/gogotex/bridges/internal/sessions"
	"github.com/gogotex/bridges/pkg/logger"
	"github.com/gogotex/bridges/pkg/metrics"
	"github.com/gogotex/bridges/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
)

var startTime = time.Now()

// server holds what the router needs at request time.
type server struct {
	cfg      *config.Config
	res      *app.Resources
	redis    *redis.Client
	verifier middleware.Verifier
}

func main() {
	// LOG_LEVEL / LOG_FORMAT apply before config so config errors are visible
	logger.Init(os.Getenv("LOG_LEVEL"))
	logger.SetFormat(os.Getenv("LOG_FORMAT"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.Log.Level)
	logger.SetFormat(cfg.Log.Format)
	logger.Infof("config loaded: store=%s keycloak=%v redis=%v jwt_secret_set=%v",
		cfg.Store.Backend, cfg.Keycloak.URL != "", cfg.Redis.Host != "", cfg.JWT.Secret != "")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := app.Open(ctx, cfg, identity.ContextProvider{})
	if err != nil {
		logger.Fatalf("failed to open store: %v", err)
	}
	defer func() { _ = res.Close(context.Background()) }()

	s := &server{cfg: cfg, res: res, redis: app.OpenRedis(ctx, cfg.Redis)}
	if s.redis != nil {
		defer s.redis.Close()
	}
	if s.verifier, err = app.NewVerifier(ctx, cfg); err != nil {
		logger.Fatalf("failed to initialize token verifier: %v", err)
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r, err := s.router()
	if err != nil {
		logger.Fatalf("failed to build router: %v", err)
	}

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Infof("starting bridges API on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	}
}

func (s *server) router() (*gin.Engine, error) {
	cfg := s.cfg
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())
	r.Use(middleware.CORS(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: !contains(cfg.CORS.AllowedOrigins, "*"),
	}))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})
	r.GET("/ready", s.ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	schema, err := gql.NewSchema(s.res.Env)
	if err != nil {
		return nil, err
	}
	handlers.RegisterPlayground(r, gql.SDL)

	// auth runs before the limiter so limits are per caller when possible
	api := r.Group("/")
	blacklist := sessions.NewBlacklist(s.redis)
	if cfg.Auth.Required {
		api.Use(middleware.AuthMiddleware(s.verifier, blacklist))
	} else {
		api.Use(middleware.OptionalAuthMiddleware(s.verifier, blacklist))
	}
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && s.redis != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			api.Use(middleware.RedisRateLimitMiddleware(s.redis, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			api.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}
	gql.Register(api, schema)
	return r, nil
}

// ready returns 200 only when critical dependencies are available.
func (s *server) ready(c *gin.Context) {
	deps := map[string]bool{}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	deps["store"] = s.res.Ping(ctx) == nil
	if s.cfg.Auth.Required {
		deps["auth"] = s.verifier != nil
	}
	if s.cfg.Redis.Host != "" && s.cfg.RateLimit.UseRedis {
		deps["redis"] = s.redis != nil && s.redis.Ping(ctx).Err() == nil
	}

	status, code := "ready", http.StatusOK
	for _, ok := range deps {
		if !ok {
			status, code = "not_ready", http.StatusServiceUnavailable
		}
	}
	c.JSON(code, gin.H{"status": status, "deps": deps, "uptime": time.Since(startTime).String()})
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
