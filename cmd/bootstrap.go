package cmd

import (
	"context"
	"fmt"

	"product-images/core/cache"
	"product-images/core/config"
	"product-images/core/database"
	"product-images/core/logger"
	"product-images/core/metrics"
	"product-images/core/storage"
	"product-images/feature/images"
	"product-images/feature/images/collector"
	"product-images/feature/images/folders"
	"product-images/feature/images/persistence"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// linker bundles the dependencies shared by every command.
type linker struct {
	cfg      *config.Config
	logger   *zap.Logger
	registry *prometheus.Registry
	service  *images.Service
	closers  []func()
}

// bootstrap loads configuration and wires storage, database, cache and
// metrics into an image service. Overrides run before validation.
func bootstrap(ctx context.Context, overrides ...func(*config.Config)) (*linker, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	for _, override := range overrides {
		override(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	rt := &linker{cfg: cfg, logger: logg}
	rt.closers = append(rt.closers, func() { _ = logg.Sync() })

	client, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	handle, err := rt.openProducts(ctx)
	if err != nil {
		rt.Close()
		return nil, err
	}

	folderCache, err := rt.openCache(ctx)
	if err != nil {
		rt.Close()
		return nil, err
	}

	rt.registry = prometheus.NewRegistry()
	rt.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewImages(rt.registry)

	rt.service = images.NewService(
		persistence.NewAdapter(handle, cfg.Product, logg),
		folders.NewResolver(client, folderCache, logg, m),
		collector.New(client),
		cfg.Images,
		logg,
		m,
	)

	logg.Info("Image linker ready",
		zap.String("storage", cfg.Storage.Backend),
		zap.String("database", cfg.Database.Driver),
		zap.String("cache", cfg.Images.CacheBackend),
	)
	return rt, nil
}

// openProducts returns the database handle products are read from.
func (rt *linker) openProducts(ctx context.Context) (any, error) {
	cfg := rt.cfg.Database
	switch cfg.Driver {
	case database.DriverMySQL, database.DriverSQLite:
		db, err := database.Connect(cfg)
		if err != nil {
			return nil, err
		}
		if sqlDB, err := db.DB(); err == nil {
			rt.closers = append(rt.closers, func() { _ = sqlDB.Close() })
		}
		catalog := persistence.NewCatalog(db)
		if cfg.Driver == database.DriverSQLite {
			if err := catalog.Migrate(ctx); err != nil {
				return nil, fmt.Errorf("failed to migrate catalog: %w", err)
			}
		}
		rt.logger.Info("Connected to product catalog", zap.String("driver", cfg.Driver))
		return catalog, nil
	default:
		db, err := database.ConnectMongo(ctx, cfg)
		if err != nil {
			return nil, err
		}
		rt.closers = append(rt.closers, func() { _ = db.Client().Disconnect(context.Background()) })
		rt.logger.Info("Connected to product database", zap.String("database", cfg.Name))
		return db, nil
	}
}

// openCache returns the folder cache selected by images.cache_backend.
func (rt *linker) openCache(ctx context.Context) (folders.Cache, error) {
	if rt.cfg.Images.CacheBackend != images.CacheRedis {
		return folders.NewMemoryCache(), nil
	}

	client, err := cache.NewRedis(ctx, rt.cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	rt.closers = append(rt.closers, func() { _ = client.Close() })
	return folders.NewRedisCache(client, rt.cfg.Redis.KeyPrefix), nil
}

// Close releases connections in reverse order of creation.
func (rt *linker) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		rt.closers[i]()
	}
	rt.closers = nil
}
