package main

import (
	"fmt"

	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe <machine>",
	Short: "Print a machine's conventions and transition table",
	Long:  `Renders the definition as Markdown. On a terminal the document is styled with glamour.`,
	Args:  cobra.ExactArgs(1),
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

		doc := tui.Describe(eng.Definition())
		out := cmd.OutOrStdout()
		if cli.IsTerminal(out) {
			if styled, err := tui.NewRenderer()(doc); err == nil {
				doc = styled
			}
		}
		_, err = fmt.Fprint(out, doc)
		return err
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}
