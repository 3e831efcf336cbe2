// Package app opens the backends selected by configuration. The server and
// the statsctl CLI share it.
package app

import (
	"context"
	"fmt"
	"log/slog"

	accident "accidentstats/internal/accident/models"
	"accidentstats/internal/accident/store"
	"accidentstats/internal/platform/config"
	"accidentstats/internal/platform/mongo"
	"accidentstats/internal/platform/postgres"
	"accidentstats/internal/platform/redis"
	"accidentstats/internal/stats/cache"
	statsservice "accidentstats/internal/stats/service"
)

// RecordStore is the full surface every backend implements.
type RecordStore interface {
	statsservice.Store
	ReplaceAll(ctx context.Context, records []accident.Record) error
	Count(ctx context.Context) (int64, error)
	Health(ctx context.Context) error
}

// OpenStore connects the configured record store. The returned close func is
// never nil.
func OpenStore(ctx context.Context, cfg config.Server, logger *slog.Logger) (RecordStore, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, err := mongo.Connect(ctx, cfg.Mongo)
		if err != nil {
			return nil, nil, err
		}
		s := store.NewMongo(client.DB, cfg.Mongo.Collection)
		if err := s.EnsureIndexes(ctx); err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		logger.InfoContext(ctx, "record store ready", "driver", cfg.StoreDriver, "database", cfg.Mongo.Database)
		return s, func() {
			if err := client.Close(); err != nil {
				logger.Error("failed to disconnect mongo", "error", err)
			}
		}, nil

	case config.DriverPostgres:
		pool, err := postgres.Open(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}
		s := store.NewPostgres(pool)
		if err := s.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		logger.InfoContext(ctx, "record store ready", "driver", cfg.StoreDriver)
		return s, pool.Close, nil

	case config.DriverMemory:
		logger.WarnContext(ctx, "using in-memory record store, data is lost on restart")
		return store.NewInMemory(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// HealthChecker reports whether a backend can serve traffic.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// ReportCache is the cache chosen for reports. Health is nil for the
// in-process cache.
type ReportCache struct {
	Cache  statsservice.Cache
	Health HealthChecker
	Close  func()
}

// OpenReportCache uses Redis when configured and the in-process cache
// otherwise.
func OpenReportCache(ctx context.Context, cfg config.Server, logger *slog.Logger) (ReportCache, error) {
	client, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return ReportCache{}, err
	}
	if client == nil {
		return ReportCache{Cache: cache.NewMemory(cfg.Stats.CacheTTL), Close: func() {}}, nil
	}
	logger.InfoContext(ctx, "report cache ready", "backend", "redis")
	return ReportCache{
		Cache:  cache.NewRedis(client.Client, cfg.Stats.CacheTTL),
		Health: client,
		Close: func() {
			if err := client.Close(); err != nil {
				logger.Error("failed to close redis", "error", err)
			}
		},
	}, nil
}
