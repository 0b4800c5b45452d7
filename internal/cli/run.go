package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/muesli/termenv"
)

// RunOptions contains the flags of the run command.
type RunOptions struct {
	Raw   bool
	Trace bool
	JSON  bool
}

// RunResult is the --json document.
type RunResult struct {
	Run   *domain.Run        `json:"run"`
	Trace []domain.StepEvent `json:"trace,omitempty"`
}

// Run executes one input and prints the tapes before and after, preceded by
// one line per step with --trace. The returned error is the run's error.
func Run(ctx context.Context, eng *turing.Engine, input string, opts RunOptions, out io.Writer) error {
	var trace []domain.StepEvent
	var run *domain.Run
	var err error
	if opts.Trace {
		run, err = eng.Trace(ctx, input, opts.Raw, func(ev domain.StepEvent) {
			trace = append(trace, ev)
		})
	} else if opts.Raw {
		run, err = eng.ExecuteRaw(ctx, input)
	} else {
		run, err = eng.Execute(ctx, input)
	}
	if run == nil {
		return err
	}

	if opts.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(RunResult{Run: run, Trace: trace}); encErr != nil {
			return encErr
		}
		return err
	}

	WriteRun(out, eng, run, trace, Profile(out))
	return err
}

// WriteRun prints a finished run in the human format.
func WriteRun(w io.Writer, eng *turing.Engine, run *domain.Run, trace []domain.StepEvent, p termenv.Profile) {
	blank := eng.Definition().BlankSymbol()
	for _, ev := range trace {
		fmt.Fprintln(w, FormatStep(ev))
	}

	fmt.Fprintln(w, tui.RenderTape(run.Tape, 0, blank, p))
	if run.Failed() {
		printSystemMessage(w, "%s after %d steps: %s", run.ErrKind, run.Steps, run.Error)
		return
	}
	fmt.Fprintln(w, tui.RenderTape(run.Output, run.Head, blank, p))
	cached := ""
	if run.Cached {
		cached = ", cached"
	}
	printSystemMessage(w, "%s in %d steps%s", run.Verdict, run.Steps, cached)
}

// FormatStep renders one applied transition.
func FormatStep(ev domain.StepEvent) string {
	return fmt.Sprintf("step %d: state %d, head %d: %s -> %s,%s -> %d",
		ev.Step, ev.State, ev.Head, ev.Read, ev.Write, ev.Move, ev.Next)
}
