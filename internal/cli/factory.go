package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/infobot"
	"github.com/aretw0/infobot/internal/config"
	"github.com/aretw0/infobot/internal/logging"
	"github.com/aretw0/infobot/pkg/adapters/dataset"
	"github.com/aretw0/infobot/pkg/adapters/file"
	"github.com/aretw0/infobot/pkg/adapters/memory"
	"github.com/aretw0/infobot/pkg/adapters/redis"
	"github.com/aretw0/infobot/pkg/catalog"
	"github.com/aretw0/infobot/pkg/domain"
	"github.com/aretw0/infobot/pkg/observability"
	"github.com/aretw0/infobot/pkg/persistence/middleware"
	"github.com/aretw0/infobot/pkg/ports"
	"github.com/aretw0/infobot/pkg/runner"
	"github.com/prometheus/client_golang/prometheus"
)

// DefaultLockTTL bounds how long one turn may hold a distributed session lock.
const DefaultLockTTL = 10 * time.Second

// Runtime is a fully wired bot plus the resources it owns.
type Runtime struct {
	Bot      *infobot.Bot
	Metrics  *observability.Metrics
	Sessions ports.SessionStore
	Logger   *slog.Logger

	closers []func() error
}

// Close releases backend connections.
func (r *Runtime) Close() error {
	var errs []error
	for _, c := range r.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// NewLogger configures the application logger.
// Text goes to Stderr so stdout stays free for the chat transcript and MCP stdio.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	level := logging.Level(cfg.Debug)
	if cfg.JSON {
		return logging.NewJSON(os.Stderr, level)
	}
	return logging.New(level)
}

// LoadCatalog reads the configured dataset into a catalog.
func LoadCatalog(ctx context.Context, cfg config.CatalogConfig) (*catalog.Store, error) {
	records, err := dataset.Load(ctx, cfg.Path,
		dataset.WithTable(cfg.Table),
		dataset.WithSheet(cfg.Sheet),
	)
	if err != nil {
		return nil, err
	}
	store, err := catalog.New(records)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Path, err)
	}
	return store, nil
}

// OpenSessionStore builds the configured session backend with its store middleware.
// The locker is nil unless the backend is shared between processes.
func OpenSessionStore(ctx context.Context, cfg *config.Config) (ports.SessionStore, ports.DistributedLocker, func() error, error) {
	var (
		store  ports.SessionStore
		locker ports.DistributedLocker
		closer = func() error { return nil }
	)

	switch cfg.Session.Backend {
	case config.BackendRedis:
		rs := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithPrefix(cfg.Redis.Prefix),
			redis.WithTTL(cfg.Redis.TTL),
		)
		if err := rs.Ping(ctx); err != nil {
			_ = rs.Close()
			return nil, nil, nil, fmt.Errorf("redis %s: %w", cfg.Redis.Addr, err)
		}
		store = rs
		locker = redis.NewLocker(rs.Client(), rs.Prefix())
		closer = rs.Close
	case config.BackendFile:
		store = file.New(cfg.Session.Dir)
	default:
		store = memory.NewStore()
	}

	var mws []middleware.Middleware
	if cfg.Session.Redact {
		mw, err := middleware.NewPIIMiddleware(middleware.DefaultPIIPatterns)
		if err != nil {
			_ = closer()
			return nil, nil, nil, err
		}
		mws = append(mws, mw)
	}
	key, err := cfg.Session.Key()
	if err != nil {
		_ = closer()
		return nil, nil, nil, err
	}
	if key != nil {
		mw, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})
		if err != nil {
			_ = closer()
			return nil, nil, nil, err
		}
		mws = append(mws, mw)
	}

	return middleware.Chain(store, mws...), locker, closer, nil
}

// Build wires the catalog, session backend, metrics and hooks into a Runtime.
// A nil registerer skips metrics.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger, reg prometheus.Registerer) (*Runtime, error) {
	if cfg.Input.MaxSize > 0 {
		runner.SetMaxInputSize(cfg.Input.MaxSize)
	}

	cat, err := LoadCatalog(ctx, cfg.Catalog)
	if err != nil {
		return nil, err
	}
	logger.Debug("catalog loaded", "path", cfg.Catalog.Path, "records", cat.Len())

	store, locker, closer, err := OpenSessionStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	rt := &Runtime{
		Sessions: store,
		Logger:   logger,
		closers:  []func() error{closer},
	}

	var hooks []domain.LifecycleHooks
	if cfg.Log.Debug {
		hooks = append(hooks, observability.LogHooks(logger))
	}
	if reg != nil {
		rt.Metrics = observability.NewMetrics(reg)
		hooks = append(hooks, rt.Metrics.Hooks())
	}

	opts := []infobot.Option{
		infobot.WithLogger(logger),
		infobot.WithSessionStore(store),
		infobot.WithLifecycleHooks(observability.Chain(hooks...)),
	}
	if locker != nil {
		opts = append(opts, infobot.WithLocker(locker, DefaultLockTTL))
	}

	rt.Bot, err = infobot.New(cat, opts...)
	if err != nil {
		_ = rt.Close()
		return nil, err
	}
	return rt, nil
}
