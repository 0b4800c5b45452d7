package main

import (
	"fmt"

	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph <machine>",
	Short: "Export the state diagram",
	Long: `Outputs a Mermaid flowchart (graph LR) of the states and rules. With
--input the states visited by that run are highlighted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := loadOptions(cmd)
		if err != nil {
			return err
		}
		stack, err := openStack(cmd, opts)
		if err != nil {
			return err
		}
		defer stack.Close()

		eng, err := stack.Engine(args[0])
		if err != nil {
			return err
		}

		var overlay *graph.GraphOverlay
		if cmd.Flags().Changed("input") {
			input, _ := cmd.Flags().GetString("input")
			var trace []domain.StepEvent
			// A failed run still yields the partial path.
			_, _ = eng.Trace(cmd.Context(), input, false, func(ev domain.StepEvent) {
				trace = append(trace, ev)
			})
			overlay = graph.OverlayFromTrace(trace)
		}

		chart, err := graph.GenerateMermaid(eng.Definition(), overlay)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), chart)
		return err
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("input", "", "Highlight the states visited on this input")
}
