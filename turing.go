package turing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Version is the release of the turing module.
const Version = "0.4.0"

// DefaultConcurrency bounds Batch when no limit is given.
const DefaultConcurrency = 4

// Engine is the high-level entry point for the turing library.
// It wraps a compiled machine together with the conventions of its
// Definition (framing, verdicts) and an optional run store.
// An Engine is safe for concurrent use; every Execute forks the machine.
type Engine struct {
	def      *domain.Definition
	digest   string
	machine  *machine.Machine
	store    ports.RunStore
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	capacity int
	Name     string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithTapeCapacity overrides the capacity declared by the definition.
// Zero keeps the declared value.
func WithTapeCapacity(capacity int) Option {
	return func(e *Engine) {
		e.capacity = capacity
	}
}

// WithStore enables run memoisation and history.
func WithStore(store ports.RunStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// New compiles def and returns an Engine for it.
func New(def *domain.Definition, opts ...Option) (*Engine, error) {
	if def == nil {
		return nil, fmt.Errorf("definition is required")
	}

	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	// Copy so later edits by the caller do not desync the digest.
	local := *def
	local.States = append([]domain.StateDefinition(nil), def.States...)
	for i := range local.States {
		local.States[i].Transitions = append([]domain.TransitionDefinition(nil), def.States[i].Transitions...)
	}
	if eng.capacity > 0 {
		local.TapeCapacity = eng.capacity
	}
	eng.def = &local
	eng.Name = local.Name

	m, err := compiler.Compile(eng.def)
	if err != nil {
		return nil, err
	}
	eng.machine = m
	eng.digest = eng.def.Digest()

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	eng.logger = eng.logger.With("machine", eng.Name)

	return eng, nil
}

// Definition returns the definition the engine was compiled from.
func (e *Engine) Definition() *domain.Definition {
	return e.def
}

// Digest identifies the compiled table, tape capacity included.
func (e *Engine) Digest() string {
	return e.digest
}

// Capacity is the tape size every run gets.
func (e *Engine) Capacity() int {
	return e.machine.Capacity()
}

// Store returns the configured run store, or nil.
func (e *Engine) Store() ports.RunStore {
	return e.store
}

// Execute frames input with the definition's sentinel and runs it.
func (e *Engine) Execute(ctx context.Context, input string) (*domain.Run, error) {
	return e.run(ctx, input, e.def.Frame(input), nil)
}

// ExecuteRaw runs tape exactly as given.
func (e *Engine) ExecuteRaw(ctx context.Context, tape string) (*domain.Run, error) {
	return e.run(ctx, tape, tape, nil)
}

// Trace is Execute that also reports every applied transition to fn,
// after any OnStep hook.
func (e *Engine) Trace(ctx context.Context, input string, raw bool, fn func(domain.StepEvent)) (*domain.Run, error) {
	tape := input
	if !raw {
		tape = e.def.Frame(input)
	}
	return e.run(ctx, input, tape, fn)
}

// run executes one tape. The returned Run is populated on failure too;
// the error is then the engine's typed error.
//
// A stored run is reused only when it halted. Failures are kept for
// history but re-executed, so callers still get the typed error.
func (e *Engine) run(ctx context.Context, input, tape string, trace func(domain.StepEvent)) (*domain.Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := domain.RunKey(e.digest, tape)
	if e.store != nil && trace == nil {
		if cached, err := e.store.Load(ctx, key); err == nil && !cached.Failed() {
			// The same tape may be reached from different inputs.
			cached.Input = input
			cached.Cached = true
			e.logger.Debug("run served from store", "run", cached.ID, "key", key)
			e.fire(ctx, e.hooks.OnRunHalt, cached, domain.EventRunHalt, nil)
			return cached, nil
		} else if err != nil && !errors.Is(err, domain.ErrRunNotFound) {
			e.logger.Warn("run store lookup failed", "key", key, "err", err)
		}
	}

	run := &domain.Run{
		ID:      uuid.NewString(),
		Key:     key,
		Machine: e.Name,
		Input:   input,
		Tape:    tape,
		Started: time.Now(),
	}

	var m *machine.Machine
	if e.hooks.OnStep != nil || trace != nil {
		m = e.machine.Fork(machine.WithTracer(func(ev domain.StepEvent) {
			if e.hooks.OnStep != nil {
				e.hooks.OnStep(ctx, &ev)
			}
			if trace != nil {
				trace(ev)
			}
		}))
	} else {
		m = e.machine.Fork()
	}

	e.logger.Debug("run started", "run", run.ID, "input", input)
	e.fire(ctx, e.hooks.OnRunStart, run, domain.EventRunStart, nil)

	out, err := m.Execute(domain.Symbols(tape))
	run.Steps = m.Steps()
	run.Head = m.Head()
	run.Duration = time.Since(run.Started)

	if err != nil {
		run.ErrKind = domain.ErrorKind(err)
		run.Error = err.Error()
		e.logger.Warn("run failed", "run", run.ID, "steps", run.Steps, "kind", run.ErrKind, "err", err)
		e.fire(ctx, e.hooks.OnRunFail, run, domain.EventRunFail, err)
		e.save(ctx, run)
		return run, err
	}

	run.Output = domain.SymbolString(out)
	run.Verdict = e.def.Verdict(run.Output)
	e.logger.Debug("run halted", "run", run.ID, "steps", run.Steps, "verdict", run.Verdict)
	e.fire(ctx, e.hooks.OnRunHalt, run, domain.EventRunHalt, nil)
	e.save(ctx, run)
	return run, nil
}

func (e *Engine) fire(ctx context.Context, hook func(context.Context, *domain.RunEvent), run *domain.Run, typ domain.EventType, err error) {
	if hook == nil {
		return
	}
	hook(ctx, &domain.RunEvent{
		Timestamp: time.Now(),
		Type:      typ,
		RunID:     run.ID,
		Machine:   run.Machine,
		Input:     run.Input,
		Steps:     run.Steps,
		Duration:  run.Duration,
		Verdict:   run.Verdict,
		Cached:    run.Cached,
		Err:       err,
	})
}

func (e *Engine) save(ctx context.Context, run *domain.Run) {
	if e.store == nil {
		return
	}
	if err := e.store.Save(ctx, run.Key, run); err != nil {
		e.logger.Warn("run store save failed", "run", run.ID, "err", err)
	}
}

// Batch executes inputs with at most concurrency runs in flight and
// returns one Run per input, in input order. Execution failures are
// recorded on each Run; the error is only set when ctx ends early.
func (e *Engine) Batch(ctx context.Context, inputs []string, concurrency int) ([]*domain.Run, error) {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}

	runs := make([]*domain.Run, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, input := range inputs {
		g.Go(func() error {
			run, err := e.Execute(gctx, input)
			if run == nil {
				return err
			}
			runs[i] = run
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return runs, err
	}
	return runs, nil
}
