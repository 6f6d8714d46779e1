// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs a stdio-based MCP server for AI assistant integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harperreed/trainlog/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant
integration. The server communicates via stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "trainlog": {
        "command": "trainlog",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  add_training      Log a training session
  list_trainings    List trainings with pagination
  delete_training   Delete a training by ID
  log_readiness     Record the daily readiness survey
  get_readiness     Get the readiness entry for a date
  readiness_range   List readiness entries between two dates`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(trainings, readiness)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
