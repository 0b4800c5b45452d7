// Package registry keeps one compiled Engine per machine name.
package registry

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
)

// Registry compiles machines from a loader on first use and caches them.
// Engines registered directly take precedence over the loader.
type Registry struct {
	mu      sync.RWMutex
	loader  ports.DefinitionLoader
	engines map[string]*turing.Engine
	pinned  map[string]bool
	opts    []turing.Option
	logger  *slog.Logger

	// gen counts invalidations per name so a load that raced one is not cached.
	gen map[string]uint64
}

// Option configures a Registry.
type Option func(*Registry)

// WithEngineOptions are applied to every engine the registry compiles.
func WithEngineOptions(opts ...turing.Option) Option {
	return func(r *Registry) {
		r.opts = append(r.opts, opts...)
	}
}

// WithLogger sets the registry logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// NewRegistry creates a registry over loader. loader may be nil, in which
// case only registered engines are available.
func NewRegistry(loader ports.DefinitionLoader, opts ...Option) *Registry {
	r := &Registry{
		loader:  loader,
		engines: make(map[string]*turing.Engine),
		pinned:  make(map[string]bool),
		gen:     make(map[string]uint64),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r
}

// Register adds an engine under its name.
// If an engine with the same name exists, it is overwritten.
func (r *Registry) Register(eng *turing.Engine) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.engines[eng.Name] = eng
	r.pinned[eng.Name] = true
}

// Get returns the engine for name, compiling it on first use.
// Returns an error wrapping domain.ErrMachineNotFound if the loader does not know it.
func (r *Registry) Get(name string) (*turing.Engine, error) {
	for {
		r.mu.RLock()
		eng, ok := r.engines[name]
		gen := r.gen[name]
		r.mu.RUnlock()
		if ok {
			return eng, nil
		}

		if r.loader == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrMachineNotFound, name)
		}
		def, err := r.loader.GetDefinition(name)
		if err != nil {
			return nil, err
		}
		eng, err = turing.New(def, r.opts...)
		if err != nil {
			return nil, fmt.Errorf("compile %s: %w", name, err)
		}

		r.mu.Lock()
		// Another caller may have won the race; keep the first engine.
		if existing, ok := r.engines[name]; ok {
			r.mu.Unlock()
			return existing, nil
		}
		if r.gen[name] != gen {
			r.mu.Unlock()
			r.logger.Debug("machine changed while loading, reloading", "machine", name)
			continue
		}
		r.engines[name] = eng
		r.mu.Unlock()
		r.logger.Debug("machine compiled", "machine", name, "digest", eng.Digest())
		return eng, nil
	}
}

// List returns the names served by the registry, sorted.
func (r *Registry) List() ([]string, error) {
	seen := make(map[string]bool)
	if r.loader != nil {
		names, err := r.loader.ListDefinitions()
		if err != nil {
			return nil, err
		}
		for _, n := range names {
			seen[n] = true
		}
	}

	r.mu.RLock()
	for n := range r.pinned {
		seen[n] = true
	}
	r.mu.RUnlock()

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

// Invalidate drops the compiled engine for name so the next Get reloads it.
// Registered engines are kept.
func (r *Registry) Invalidate(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pinned[name] {
		return
	}
	r.gen[name]++
	delete(r.engines, name)
}

// Watch invalidates engines as the loader reports changes, until ctx ends.
// It returns an error if the loader does not support watching.
func (r *Registry) Watch(ctx context.Context) error {
	w, ok := r.loader.(ports.Watchable)
	if !ok {
		return fmt.Errorf("current loader does not support watching")
	}
	changes, err := w.Watch(ctx)
	if err != nil {
		return err
	}
	go func() {
		for name := range changes {
			r.logger.Info("machine changed, recompiling on next use", "machine", name)
			r.Invalidate(name)
		}
	}()
	return nil
}
