package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/turlang/tur/pkg/adapters/mcp"
	"github.com/turlang/tur/pkg/registry"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts Tur as an MCP server over stdio.
This lets AI agents run, inspect and encode programs as tools.`,
	Run: func(cmd *cobra.Command, args []string) {
		catalog, err := registry.Builtin()
		if err != nil {
			log.Fatalf("Error loading builtin programs: %v", err)
		}

		logger := newLogger(cmd)
		slog.SetDefault(logger)

		srv := mcp.NewServer(catalog, catalog)

		// Ensure logs don't corrupt JSON-RPC on Stdout.
		log.SetOutput(os.Stderr)
		slog.Info("Starting Tur MCP Server (Stdio)...")
		if err := srv.ServeStdio(); err != nil {
			slog.Error("MCP Server execution failed", "error", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
