package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/transport/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve boards as MCP tools over stdio",
	Long: `Run a Model Context Protocol server on stdin/stdout.

Tools:
  new_game       - Start a board (mode, seed)
  shift          - Slide a board (session_id, direction)
  board_state    - Show a board
  legal_moves    - List directions that would change a board
  list_sessions  - List active boards

Logs go to stderr. Finished games are written to the results database.

Example client config:
  {"command": "t2048", "args": ["mcp"]}`,
	RunE: runMCP,
}

func runMCP(_ *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		logger.Warn("results will not be saved", "error", err)
	} else {
		defer store.Close()
	}

	logger.Debug("starting MCP server on stdio")
	return mcp.NewServer(newManager(store), version).ServeStdio()
}
