// ABOUTME: MCP server setup for the training journal.
// ABOUTME: Wraps the MCP server with the training and readiness stores.
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/trainlog/internal/store"
)

// Server wraps the MCP server with store access.
type Server struct {
	mcpServer *mcp.Server
	trainings *store.TrainingStore
	readiness *store.ReadinessStore
}

// NewServer creates a new MCP server over the given stores.
func NewServer(trainings *store.TrainingStore, readiness *store.ReadinessStore) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "trainlog",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		trainings: trainings,
		readiness: readiness,
	}

	s.registerTools()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
