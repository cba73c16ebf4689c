package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"freight/cmd"
	httpadapter "freight/internal/adapters/in/http"
	"freight/internal/adapters/out/metrics"
	"freight/internal/adapters/out/postgres"
	"freight/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Module wires the freight service and its lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		cmd.LoadConfig,
		newLogger,
		newDatabase,
		newRedis,
		newNotifier,
		newRecorder,
		newCompositionRoot,
		newRouter,
		newHTTPServer,
		newJobManager,
	),
	fx.Invoke(registerLifecycle),
)

func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil)).With("service", "freight")
}

func newDatabase(lc fx.Lifecycle, cfg *cmd.Config) (*gorm.DB, error) {
	db, err := gorm.Open(gorm_postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err = postgres.Migrate(db); err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})
	return db, nil
}

// newRedis returns nil when no address is configured.
func newRedis(lc fx.Lifecycle, cfg *cmd.Config) redis.UniversalClient {
	if cfg.Redis.Addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	return client
}

func newNotifier(lc fx.Lifecycle, cfg *cmd.Config, logger *slog.Logger) (cmd.ClosableNotifier, error) {
	n, err := cmd.NewNotifier(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect notifier: %w", err)
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return n.Close()
		},
	})
	return n, nil
}

func newRecorder() *metrics.Recorder {
	return metrics.NewRecorder(prometheus.DefaultRegisterer)
}

type rootParams struct {
	fx.In

	Config   *cmd.Config
	DB       *gorm.DB
	Notifier cmd.ClosableNotifier
	Recorder *metrics.Recorder
	Logger   *slog.Logger
}

func newCompositionRoot(p rootParams) (*cmd.CompositionRoot, error) {
	return cmd.NewCompositionRoot(p.Config, p.DB, p.Notifier, p.Recorder, p.Logger)
}

type routerParams struct {
	fx.In

	Ctx      context.Context
	Config   *cmd.Config
	Root     *cmd.CompositionRoot
	Redis    redis.UniversalClient
	Recorder *metrics.Recorder
}

func newRouter(p routerParams) (*echo.Echo, error) {
	spec, err := httpadapter.LoadSpec(p.Ctx)
	if err != nil {
		return nil, fmt.Errorf("load openapi spec: %w", err)
	}

	cfg := httpadapter.RouterConfig{
		Spec:          spec,
		Authenticator: httpadapter.NewAuthenticator(p.Config.Auth.JWTSecret),
		Recorder:      p.Recorder,
		Metrics:       httpadapter.DefaultMetricsHandler(),
	}
	if p.Redis != nil {
		cfg.Idempotency = httpadapter.NewRedisIdempotencyStore(p.Redis, p.Config.Redis.LockTTL, p.Config.Redis.IdempotencyTTL)
	}
	return httpadapter.NewRouter(httpadapter.NewServer(p.Root.HTTPHandlers()), cfg)
}

func newHTTPServer(cfg *cmd.Config, router *echo.Echo) *http.Server {
	return &http.Server{
		Addr:    fmt.Sprintf("0.0.0.0:%s", cfg.HTTP.Port),
		Handler: router,
	}
}

func newJobManager(root *cmd.CompositionRoot) *jobs.JobManager {
	return root.JobManager()
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Jobs       *jobs.JobManager
	Config     *cmd.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := p.Jobs.StartAll(); err != nil {
				return err
			}

			p.Logger.InfoContext(ctx, "Starting freight", "addr", p.Server.Addr)
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("HTTP server terminated", "error", err)
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.HTTP.ShutdownTimeout)
			}
			defer cancel()

			err := p.Server.Shutdown(shutdownCtx)
			p.Jobs.StopAll()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.InfoContext(ctx, "Freight stopped")
			return nil
		},
	})
}
