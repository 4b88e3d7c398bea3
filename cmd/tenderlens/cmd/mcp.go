package cmd

import (
	"fmt"

	"github.com/mfenderov/tenderlens/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the MCP server for tool-based access to tender Q&A.

The server communicates via stdio and provides two tools:
  - ask_tender: ask a question about a tender's documents
  - get_tender: get metadata about a stored tender

Example:
  tenderlens mcp`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	svc, esClient, err := buildService(cfg)
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(mcp.Config{
		Name:    cfg.MCP.Name,
		Version: cfg.MCP.Version,
	}, svc, esClient)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	fmt.Fprintln(cmd.ErrOrStderr(), "Starting MCP server...")

	return server.ServeStdio()
}
