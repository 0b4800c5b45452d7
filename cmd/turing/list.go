package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available machines",
	Args:  cobra.NoArgs,
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

		names, err := stack.Registry.List()
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, name := range names {
			eng, err := stack.Engine(name)
			if err != nil {
				fmt.Fprintf(tw, "%s\t(invalid: %v)\n", name, err)
				continue
			}
			fmt.Fprintf(tw, "%s\t%s\n", name, firstLine(eng.Definition().Description))
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}
