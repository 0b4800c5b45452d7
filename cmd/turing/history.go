package main

import (
	"fmt"
	"sort"

	"github.com/aretw0/turing/pkg/adapters/sqlite"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history <machine>",
	Short: "Summarise the stored runs of a machine by outcome",
	Long: `Counts the runs recorded in the SQLite store (TURING_SQLITE_PATH or
--sqlite) by verdict or error kind.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := loadOptions(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("sqlite") {
			opts.SQLitePath, _ = cmd.Flags().GetString("sqlite")
		}
		if opts.SQLitePath == "" {
			return fmt.Errorf("history needs a SQLite store: set TURING_SQLITE_PATH or --sqlite")
		}

		store, err := sqlite.Open(opts.SQLitePath)
		if err != nil {
			return err
		}
		defer store.Close()

		counts, err := store.CountByVerdict(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		outcomes := make([]string, 0, len(counts))
		for k := range counts {
			outcomes = append(outcomes, k)
		}
		sort.Strings(outcomes)
		for _, k := range outcomes {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", k, counts[k])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().String("sqlite", "", "Path of the SQLite run store")
}
