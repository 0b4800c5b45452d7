package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch <machine> [inputs...]",
	Short: "Run a machine on many inputs",
	Long: `Runs every input given as an argument concurrently, or every line of
--file (or stdin) in order. Prints one line per input:

  <input>	<verdict>	<output>     or     <input>	<error kind>	<message>

The exit code is 1 when any run fails.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := loadOptions(cmd)
		if err != nil {
			return err
		}
		if n, _ := cmd.Flags().GetInt("concurrency"); cmd.Flags().Changed("concurrency") {
			opts.Concurrency = n
		}
		raw, _ := cmd.Flags().GetBool("raw")
		jsonMode, _ := cmd.Flags().GetBool("json")
		file, _ := cmd.Flags().GetString("file")

		stack, err := openStack(cmd, opts)
		if err != nil {
			return err
		}
		defer stack.Close()

		eng, err := stack.Engine(args[0])
		if err != nil {
			return err
		}

		render := turing.PlainRendererFor(eng)
		if jsonMode {
			render = jsonRenderer
		}

		var failed int
		if len(args) > 1 && !raw {
			failed, err = batchArgs(cmd, eng, args[1:], opts.Concurrency, render)
		} else {
			failed, err = batchLines(cmd, eng, args[1:], file, raw, render)
		}
		if err != nil {
			return err
		}
		if failed > 0 {
			return fmt.Errorf("%d runs failed", failed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringP("file", "f", "", "Read inputs from a file, one per line ('-' for stdin)")
	batchCmd.Flags().Bool("raw", false, "Load each input as the whole tape, without sentinels")
	batchCmd.Flags().Bool("json", false, "Print one JSON run record per line")
	batchCmd.Flags().Int("concurrency", turing.DefaultConcurrency, "Parallel runs for argument inputs")
}

func batchArgs(cmd *cobra.Command, eng *turing.Engine, inputs []string, concurrency int, render turing.RunRenderer) (int, error) {
	runs, err := eng.Batch(cmd.Context(), inputs, concurrency)
	if err != nil {
		return 0, err
	}
	failed := 0
	for _, run := range runs {
		if run.Failed() {
			failed++
		}
		line, err := render(run)
		if err != nil {
			return failed, err
		}
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	return failed, nil
}

// batchLines feeds the Runner from the arguments, --file or stdin.
func batchLines(cmd *cobra.Command, eng *turing.Engine, inputs []string, file string, raw bool, render turing.RunRenderer) (int, error) {
	var in io.Reader
	switch {
	case len(inputs) > 0:
		in = linesReader(inputs)
	case file != "" && file != "-":
		f, err := os.Open(file)
		if err != nil {
			return 0, err
		}
		defer f.Close()
		in = f
	default:
		in = cmd.InOrStdin()
	}

	runner := turing.NewRunner(in, cmd.OutOrStdout())
	runner.Raw = raw
	runner.Renderer = render
	return runner.Run(cmd.Context(), eng)
}

func jsonRenderer(run *domain.Run) (string, error) {
	data, err := json.Marshal(run)
	return string(data), err
}

func linesReader(lines []string) io.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}
