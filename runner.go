package turing

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
)

// Runner feeds an Engine one input per line and writes one result per line.
// This allows for easy testing and integration with different frontends (CLI, pipes, etc).
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Raw      bool
	Renderer RunRenderer
}

// RunRenderer formats a finished run for output.
// This allows for TUI rendering (coloured tapes, JSON) without coupling the core package.
type RunRenderer func(*domain.Run) (string, error)

// NewRunner creates a Runner over the given streams.
func NewRunner(in io.Reader, out io.Writer) *Runner {
	return &Runner{
		Input:  in,
		Output: out,
	}
}

// PlainRenderer prints "<input>\t<verdict or error kind>\t<output>",
// trimming trailing default blanks from the output.
func PlainRenderer(run *domain.Run) (string, error) {
	return plain(run, domain.DefaultBlank)
}

// PlainRendererFor is PlainRenderer for a machine with its own blank symbol.
func PlainRendererFor(engine *Engine) RunRenderer {
	blank := engine.Definition().BlankSymbol()
	return func(run *domain.Run) (string, error) {
		return plain(run, blank)
	}
}

func plain(run *domain.Run, blank domain.Symbol) (string, error) {
	if run.Failed() {
		return fmt.Sprintf("%s\t%s\t%s", run.Input, run.ErrKind, run.Error), nil
	}
	return fmt.Sprintf("%s\t%s\t%s", run.Input, run.Verdict, strings.TrimRight(run.Output, blank.String())), nil
}

// Run executes every non-empty line until EOF and returns the number of
// failed runs. Blank lines and lines starting with '#' are skipped.
func (r *Runner) Run(ctx context.Context, engine *Engine) (int, error) {
	if r.Input == nil {
		return 0, fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return 0, fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	render := r.Renderer
	if render == nil {
		render = PlainRendererFor(engine)
	}

	failed := 0
	scanner := bufio.NewScanner(r.Input)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var run *domain.Run
		var err error
		if r.Raw {
			run, err = engine.ExecuteRaw(ctx, line)
		} else {
			run, err = engine.Execute(ctx, line)
		}
		if run == nil {
			return failed, err
		}
		if run.Failed() {
			failed++
		}

		text, err := render(run)
		if err != nil {
			return failed, fmt.Errorf("render failed: %w", err)
		}
		if _, err := fmt.Fprintln(r.Output, text); err != nil {
			return failed, err
		}
	}
	if err := scanner.Err(); err != nil {
		return failed, fmt.Errorf("read input: %w", err)
	}
	return failed, nil
}
