// Package persistence selects the key-value backend from configuration.
package persistence

import (
	"context"
	"log/slog"

	"storefront/config"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/infra/persistence/memory"
	"storefront/internal/infra/persistence/postgres"
	"storefront/internal/infra/persistence/redis"
	"storefront/internal/infra/persistence/sqlite"

	"go.uber.org/fx"
)

const defaultSQLitePath = "storefront.db"

// Params holds dependencies for the key-value store, injected by Fx
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewKVStore opens the configured backend and registers its shutdown hook.
func NewKVStore(params Params) (repository.KeyValueStore, error) {
	cfg := params.Config.Store
	logger := params.Logger.With(slog.String("driver", cfg.Driver))

	switch cfg.Driver {
	case "", config.StoreDriverMemory:
		logger.Info("Using in-memory key-value store; state is lost on exit")

		return memory.NewKVStore(), nil

	case config.StoreDriverSQLite:
		path := cfg.SQLite.Path
		if path == "" {
			path = defaultSQLitePath
		}
		store, err := sqlite.Open(params.Ctx, path)
		if err != nil {
			return nil, err
		}
		params.Lc.Append(fx.Hook{OnStop: func(context.Context) error { return store.Close() }})
		logger.Info("Using SQLite key-value store", slog.String("path", path))

		return store, nil

	case config.StoreDriverRedis:
		if cfg.Redis.Addr == "" {
			return nil, errors.New("store.redis.addr is required for the redis driver")
		}
		store, err := redis.Dial(params.Ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Prefix)
		if err != nil {
			return nil, err
		}
		params.Lc.Append(fx.Hook{OnStop: func(context.Context) error { return store.Close() }})
		logger.Info("Using Redis key-value store", slog.String("addr", cfg.Redis.Addr))

		return store, nil

	case config.StoreDriverPostgres:
		if cfg.Postgres.DSN == "" {
			return nil, errors.New("store.postgres.dsn is required for the postgres driver")
		}
		db, err := postgres.Open(params.Ctx, params.Config, logger)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
		}

		monitorCtx, cancelMonitor := context.WithCancel(context.Background())
		params.Lc.Append(fx.Hook{
			OnStart: func(context.Context) error {
				go postgres.MonitorPool(monitorCtx, logger, db)

				return nil
			},
			OnStop: func(context.Context) error {
				cancelMonitor()

				return sqlDB.Close()
			},
		})
		logger.Info("Using PostgreSQL key-value store")

		return postgres.NewKVStore(db), nil

	default:
		return nil, errors.Errorf("unknown store driver %q", cfg.Driver)
	}
}
