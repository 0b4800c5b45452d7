package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/library"
	"github.com/aretw0/turing/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)

	eng, err := turing.New(library.MustGet(library.EqualRuns),
		turing.WithTapeCapacity(6),
		turing.WithStore(memory.NewStore()),
		turing.WithLifecycleHooks(metrics.Hooks()),
	)
	require.NoError(t, err)
	ctx := context.Background()

	for _, input := range []string{"01", "01", "0", "0011"} {
		_, _ = eng.Execute(ctx, input)
	}

	machine := library.EqualRuns
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Runs.WithLabelValues(machine, domain.VerdictAccept)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Runs.WithLabelValues(machine, observability.OutcomeCached)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Runs.WithLabelValues(machine, domain.VerdictReject)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Runs.WithLabelValues(machine, domain.KindInputTooLarge)))

	// The histogram sees executed runs only: two halts and one failure.
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.RunSteps))
	assert.Positive(t, testutil.ToFloat64(metrics.Steps.WithLabelValues(machine)))

	count, err := testutil.GatherAndCount(reg, "turing_runs_total")
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestNewMetrics_Unregistered(t *testing.T) {
	m := observability.NewMetrics(nil)
	m.Hooks().OnRunFail(context.Background(), &domain.RunEvent{Machine: "m", Err: domain.ErrTapeOverrun})
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("m", domain.KindTapeOverrun)))
}

func TestMerge(t *testing.T) {
	var order []string
	a := domain.LifecycleHooks{
		OnRunStart: func(context.Context, *domain.RunEvent) { order = append(order, "a-start") },
		OnStep:     func(context.Context, *domain.StepEvent) { order = append(order, "a-step") },
	}
	b := domain.LifecycleHooks{
		OnRunStart: func(context.Context, *domain.RunEvent) { order = append(order, "b-start") },
	}

	merged := observability.Merge(a, b)
	assert.Nil(t, merged.OnRunHalt)
	assert.Nil(t, merged.OnRunFail)

	ctx := context.Background()
	merged.OnRunStart(ctx, &domain.RunEvent{})
	merged.OnStep(ctx, &domain.StepEvent{})
	assert.Equal(t, []string{"a-start", "b-start", "a-step"}, order)

	assert.Nil(t, observability.Merge().OnStep)
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	eng, err := turing.New(library.MustGet(library.EqualRuns),
		turing.WithLifecycleHooks(observability.LogHooks(logger, true)),
	)
	require.NoError(t, err)

	_, err = eng.Execute(context.Background(), "01")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "msg=run_halt")
	assert.Contains(t, out, "verdict=accept")
	assert.Contains(t, out, "msg=step")
	assert.Contains(t, out, "read=E")

	buf.Reset()
	quiet := observability.LogHooks(logger, false)
	assert.Nil(t, quiet.OnStep)
	quiet.OnRunFail(context.Background(), &domain.RunEvent{Machine: "m", Err: domain.ErrNoTransition})
	assert.Contains(t, buf.String(), "kind=no_transition")
}
