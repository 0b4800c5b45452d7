package main

import (
	"context"
	"fmt"

	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "turing",
	Short: "turing executes deterministic single-tape Turing machines",
	Long: `turing loads transition tables from the built-in library or from a
directory of Markdown, YAML or JSON documents and runs them on input words.

Flags override the TURING_* environment variables.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		config.Exitf("Error: %v", err)
	}
}

func init() {
	// Persistent flags (available to all commands)
	flags := rootCmd.PersistentFlags()
	flags.String("dir", "", "Directory containing machine documents (default: built-in library)")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.String("log-format", "", "Log format: text or json")
	flags.Int("tape-capacity", 0, "Override the tape capacity of every machine")
}

// loadOptions reads the environment and applies the persistent flags on top.
func loadOptions(cmd *cobra.Command) (cli.Options, error) {
	cfg, err := config.Load()
	if err != nil {
		return cli.Options{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("dir") {
		cfg.Dir, _ = flags.GetString("dir")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		cfg.LogFormat, _ = flags.GetString("log-format")
	}
	if flags.Changed("tape-capacity") {
		cfg.TapeCapacity, _ = flags.GetInt("tape-capacity")
	}
	if err := cfg.Validate(); err != nil {
		return cli.Options{}, err
	}
	return cli.Options{Config: cfg}, nil
}

// openStack builds the stack for cmd. Callers must Close it.
func openStack(cmd *cobra.Command, opts cli.Options) (*cli.Stack, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	stack, err := cli.NewStack(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("error initializing turing: %w", err)
	}
	return stack, nil
}
