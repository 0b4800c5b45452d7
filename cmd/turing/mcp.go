package main

import (
	"log"
	"os"

	"github.com/aretw0/turing/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Serves the machines as MCP tools over stdio, so agents can list,
describe and execute them. Logs go to stderr.`,
	Args: cobra.NoArgs,
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

		// Ensure logs don't corrupt JSON-RPC on Stdout
		log.SetOutput(os.Stderr)
		stack.Logger.Info("Starting turing MCP Server (Stdio)...")
		return mcp.NewServer(stack.Registry, mcp.WithLogger(stack.Logger)).ServeStdio()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
