package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/formmap/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC.

Tools:
  extract_form      extract the field map of a form
  list_extractions  list saved extractions (history enabled only)

Resources:
  formmap://extractions/{id}  field map of a saved extraction

Use --http to serve over HTTP instead, for the MCP Inspector or
remote access.

Examples:
  # Stdio mode (default)
  formmap mcp

  # HTTP mode
  formmap mcp --http :8080

Client configuration:
  {
    "mcpServers": {
      "formmap": {
        "command": "/path/to/formmap",
        "args": ["mcp"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpCmd.Flags().String("http", "", "HTTP listen address (empty = use stdio)")
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	addr, err := cmd.Flags().GetString("http")
	if err != nil {
		return fmt.Errorf("getting http flag: %w", err)
	}

	extract, err := defaultExtract(true)
	if err != nil {
		return err
	}

	ports := &mcp.Ports{
		Extract: extract,
		History: appServices.History,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if addr != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
