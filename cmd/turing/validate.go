package main

import (
	"fmt"

	"github.com/aretw0/turing/internal/validator"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [machine...]",
	Short: "Check machines for consistency",
	Long: `Compiles each machine (all of them when none is named) and reports
unreachable states, states that cannot reach halt and missing rules.
The exit code is 1 when any error is found.`,
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

		names := args
		if len(names) == 0 {
			if names, err = stack.Loader.ListDefinitions(); err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		errorsFound := 0
		for _, name := range names {
			def, err := stack.Loader.GetDefinition(name)
			if err != nil {
				fmt.Fprintf(out, "%s: error: %v\n", name, err)
				errorsFound++
				continue
			}
			findings := validator.Lint(def)
			for _, f := range findings {
				fmt.Fprintf(out, "%s: %s\n", name, f)
				if f.Severity == validator.SeverityError {
					errorsFound++
				}
			}
			if len(findings) == 0 {
				fmt.Fprintf(out, "%s: ok\n", name)
			}
		}
		if errorsFound > 0 {
			return fmt.Errorf("validation failed: %d errors", errorsFound)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
