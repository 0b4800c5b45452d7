package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/turing/pkg/domain"
)

// Merge returns hooks that call each of hooks in order.
// A merged hook is nil when no input sets it.
func Merge(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks

	var starts, halts, fails []func(context.Context, *domain.RunEvent)
	var steps []func(context.Context, *domain.StepEvent)
	for _, h := range hooks {
		if h.OnRunStart != nil {
			starts = append(starts, h.OnRunStart)
		}
		if h.OnRunHalt != nil {
			halts = append(halts, h.OnRunHalt)
		}
		if h.OnRunFail != nil {
			fails = append(fails, h.OnRunFail)
		}
		if h.OnStep != nil {
			steps = append(steps, h.OnStep)
		}
	}

	out.OnRunStart = fanRun(starts)
	out.OnRunHalt = fanRun(halts)
	out.OnRunFail = fanRun(fails)
	if len(steps) > 0 {
		out.OnStep = func(ctx context.Context, e *domain.StepEvent) {
			for _, fn := range steps {
				fn(ctx, e)
			}
		}
	}
	return out
}

func fanRun(fns []func(context.Context, *domain.RunEvent)) func(context.Context, *domain.RunEvent) {
	if len(fns) == 0 {
		return nil
	}
	return func(ctx context.Context, e *domain.RunEvent) {
		for _, fn := range fns {
			fn(ctx, e)
		}
	}
}

// LogHooks logs run completion at Info and failures at Warn.
// With trace set, every step is logged at Debug.
func LogHooks(logger *slog.Logger, trace bool) domain.LifecycleHooks {
	hooks := domain.LifecycleHooks{
		OnRunHalt: func(ctx context.Context, e *domain.RunEvent) {
			logger.InfoContext(ctx, "run_halt",
				"run_id", e.RunID,
				"machine", e.Machine,
				"steps", e.Steps,
				"verdict", e.Verdict,
				"cached", e.Cached,
				"duration", e.Duration,
			)
		},
		OnRunFail: func(ctx context.Context, e *domain.RunEvent) {
			logger.WarnContext(ctx, "run_fail",
				"run_id", e.RunID,
				"machine", e.Machine,
				"steps", e.Steps,
				"kind", domain.ErrorKind(e.Err),
				"err", e.Err,
			)
		},
	}
	if trace {
		hooks.OnStep = func(ctx context.Context, e *domain.StepEvent) {
			logger.DebugContext(ctx, "step",
				"step", e.Step,
				"state", e.State,
				"head", e.Head,
				"read", e.Read.String(),
				"write", e.Write.String(),
				"move", e.Move.String(),
				"next", e.Next,
			)
		}
	}
	return hooks
}
