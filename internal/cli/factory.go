package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/config"
	"github.com/aretw0/turing/pkg/adapters/loam"
	"github.com/aretw0/turing/pkg/adapters/redis"
	"github.com/aretw0/turing/pkg/adapters/sqlite"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/library"
	"github.com/aretw0/turing/pkg/observability"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/aretw0/turing/pkg/registry"
)

// Options is the configuration of one CLI invocation: the environment
// layer with flags applied on top, plus hooks contributed by the command.
type Options struct {
	config.Config

	// Trace logs every applied transition at Debug.
	Trace bool
	Hooks []domain.LifecycleHooks
}

// Stack is everything a command needs to reach the machines.
type Stack struct {
	Registry *registry.Registry
	Loader   ports.DefinitionLoader
	Store    ports.RunStore
	Logger   *slog.Logger

	closers []io.Closer
}

// NewStack wires the loader, the optional run store and the engine options.
// A Loam directory replaces the built-in library. Redis is preferred over
// SQLite when both are configured.
func NewStack(ctx context.Context, opts Options) (*Stack, error) {
	logger, err := createLogger(opts.LogLevel, opts.LogFormat)
	if err != nil {
		return nil, err
	}
	s := &Stack{Logger: logger}

	if s.Loader, err = newLoader(opts.Dir); err != nil {
		return nil, err
	}
	if err := s.openStore(ctx, opts.Config); err != nil {
		return nil, err
	}

	hooks := append([]domain.LifecycleHooks{observability.LogHooks(logger, opts.Trace)}, opts.Hooks...)
	engineOpts := []turing.Option{
		turing.WithLogger(logger),
		turing.WithLifecycleHooks(observability.Merge(hooks...)),
	}
	if opts.TapeCapacity > 0 {
		engineOpts = append(engineOpts, turing.WithTapeCapacity(opts.TapeCapacity))
	}
	if s.Store != nil {
		engineOpts = append(engineOpts, turing.WithStore(s.Store))
	}

	s.Registry = registry.NewRegistry(s.Loader,
		registry.WithEngineOptions(engineOpts...),
		registry.WithLogger(logger),
	)
	return s, nil
}

// Engine returns the engine for name.
func (s *Stack) Engine(name string) (*turing.Engine, error) {
	return s.Registry.Get(name)
}

// Close releases the run store.
func (s *Stack) Close() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

func newLoader(dir string) (ports.DefinitionLoader, error) {
	if dir == "" {
		return library.Loader()
	}
	return loam.Open(dir)
}

func (s *Stack) openStore(ctx context.Context, cfg config.Config) error {
	switch {
	case cfg.RedisAddr != "":
		store := redis.New(cfg.RedisAddr, redis.WithPrefix(cfg.RedisPrefix), redis.WithTTL(cfg.CacheTTL))
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return fmt.Errorf("connect redis %s: %w", cfg.RedisAddr, err)
		}
		s.Logger.Debug("run store ready", "store", store.String())
		s.Store = store
		s.closers = append(s.closers, store)
	case cfg.SQLitePath != "":
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return err
		}
		s.Logger.Debug("run store ready", "store", "sqlite", "path", cfg.SQLitePath)
		s.Store = store
		s.closers = append(s.closers, store)
	}
	return nil
}
