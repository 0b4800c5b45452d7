package main

import (
	"github.com/aretw0/turing/internal/cli"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <machine> [input]",
	Short: "Run a machine on one input",
	Long: `Frames the input with the machine's sentinel, runs it and prints the
tape before and after. The exit code is 1 when the run fails.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := loadOptions(cmd)
		if err != nil {
			return err
		}
		var runOpts cli.RunOptions
		runOpts.Raw, _ = cmd.Flags().GetBool("raw")
		runOpts.Trace, _ = cmd.Flags().GetBool("trace")
		runOpts.JSON, _ = cmd.Flags().GetBool("json")

		stack, err := openStack(cmd, opts)
		if err != nil {
			return err
		}
		defer stack.Close()

		eng, err := stack.Engine(args[0])
		if err != nil {
			return err
		}
		input := ""
		if len(args) > 1 {
			input = args[1]
		}
		return cli.Run(cmd.Context(), eng, input, runOpts, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("raw", false, "Load the input as the whole tape, without sentinels")
	runCmd.Flags().Bool("trace", false, "Print every applied transition")
	runCmd.Flags().Bool("json", false, "Print the run record as JSON")
}
