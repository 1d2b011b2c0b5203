// janusd es el servidor del servicio de identidad y acceso.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	rdb "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	authsvc "github.com/dropDatabas3/janus/internal/auth"
	"github.com/dropDatabas3/janus/internal/blacklist"
	"github.com/dropDatabas3/janus/internal/bootstrap"
	"github.com/dropDatabas3/janus/internal/config"
	authctrl "github.com/dropDatabas3/janus/internal/http/controllers/auth"
	identityctrl "github.com/dropDatabas3/janus/internal/http/controllers/identity"
	"github.com/dropDatabas3/janus/internal/http/router"
	jwtx "github.com/dropDatabas3/janus/internal/jwt"
	"github.com/dropDatabas3/janus/internal/metrics"
	"github.com/dropDatabas3/janus/internal/observability/logger"
	"github.com/dropDatabas3/janus/internal/rate"
	"github.com/dropDatabas3/janus/internal/rbac"
	"github.com/dropDatabas3/janus/internal/security/password"
	"github.com/dropDatabas3/janus/internal/store/pg"
)

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server exited with error", logger.Err(err))
	}
}

func run() error {
	// .env es opcional: en contenedores la config viene del entorno
	_ = godotenv.Load()

	cfgPath := os.Getenv("JANUS_CONFIG")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       cfg.Log.Level,
		ServiceName: "janusd",
	})
	defer func() { _ = logger.Sync() }()

	log := logger.L().With(logger.Component("janusd"))

	secret, err := config.JWTSecret()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ─── Storage ───

	store, err := pg.New(ctx, cfg.Storage.DSN, pg.Config{
		MaxOpenConns:    cfg.Storage.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Storage.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Storage.Postgres.ConnMaxLifetime,
	})
	if err != nil {
		return err
	}
	defer store.Close()

	redisClient := rdb.NewClient(&rdb.Options{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	defer func() { _ = redisClient.Close() }()

	// ─── Dominio ───

	hasher, err := password.New(cfg.Security.PasswordScheme)
	if err != nil {
		return err
	}

	accessTTL := cfg.AccessTTL()
	issuer := jwtx.NewIssuer(cfg.JWT.Issuer, secret, accessTTL)
	bl := blacklist.New(redisClient, cfg.Redis.BlacklistKey, accessTTL)
	manager := authsvc.NewLocalUserManager(store, hasher)
	resolver := rbac.NewResolver(store)

	service := authsvc.NewService(authsvc.Deps{
		Manager:   manager,
		Issuer:    issuer,
		Blacklist: bl,
		Resolver:  resolver,
		Store:     store,
	})

	// ─── Métricas ───

	registry := prometheus.NewRegistry()
	if err := metrics.Register(registry); err != nil {
		return err
	}

	// ─── Bootstrap de admin ───

	if err := bootstrap.CheckAndCreateAdmin(ctx, bootstrap.AdminBootstrapConfig{
		Store:      store,
		Hasher:     hasher,
		SkipPrompt: os.Getenv("JANUS_BOOTSTRAP_NONINTERACTIVE") != "",
	}); err != nil {
		log.Warn("admin bootstrap failed", logger.Err(err))
	}

	// ─── HTTP ───

	limiter := rate.Open(rate.Config{
		Enabled:     cfg.Rate.Enabled,
		Kind:        cfg.Rate.Kind,
		MaxRequests: cfg.Rate.MaxRequests,
		Window:      cfg.RateWindow(),
	}, redisClient)

	handler := router.New(router.Deps{
		Auth:     service,
		AuthCtrl: authctrl.NewControllers(service),
		Identity: identityctrl.NewControllers(store, hasher),
		Store:    store,
		Registry: registry,
		Limiter:  limiter,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("server listening", logger.Any("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
