// Package mcp exposes the session manager as MCP tools, so an external
// agent can start boards and shift them. The server holds no strategy.
package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/session"
)

const instructions = `2048 - MCP Interface

Slide the 4x4 board up, down, left or right. Equal neighbours merge into
one tile of double value, once per move. After every accepted move a new
2 or 4 appears on an empty cell. Reach a 2048 tile to win; the game is lost
when the board is full and no neighbours match.

TOOLS:
- new_game: start a board (mode classic|endless, optional seed)
- shift: move a board in one direction
- board_state: current board, counters and outcome
- legal_moves: directions that would change the board
- list_sessions: all boards`

// Server serves MCP tools backed by a session manager.
type Server struct {
	sessions  *session.Manager
	mcpServer *server.MCPServer
}

// NewServer creates the MCP server and registers its tools.
func NewServer(mgr *session.Manager, version string) *Server {
	s := &Server{sessions: mgr}
	s.mcpServer = server.NewMCPServer(
		"2048",
		version,
		server.WithToolCapabilities(true),
		server.WithInstructions(instructions),
	)
	s.registerTools()
	return s
}

// MCPServer returns the underlying MCP server for serving.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves MCP over stdin/stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func sessionIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID returned by new_game",
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "new_game",
		Description: "Start a new 2048 board",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"mode": map[string]interface{}{
					"type":        "string",
					"description": "classic (ends at 2048) or endless",
					"enum":        []string{"classic", "endless"},
				},
				"seed": map[string]interface{}{
					"type":        "number",
					"description": "RNG seed for a reproducible board (optional)",
				},
			},
		},
	}, s.handleNewGame)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "shift",
		Description: "Slide every tile of a board in one direction",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"direction": map[string]interface{}{
					"type":        "string",
					"description": "Direction to shift",
					"enum":        []string{"up", "down", "left", "right"},
				},
			},
			Required: []string{"session_id", "direction"},
		},
	}, s.handleShift)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "board_state",
		Description: "Get the current board of a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, s.handleBoardState)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "legal_moves",
		Description: "List the directions that would change the board",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, s.handleLegalMoves)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all boards",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListSessions)
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

// Tool handlers

func (s *Server) handleNewGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	modeName, _ := args["mode"].(string)
	seed, _ := args["seed"].(float64)

	mode, err := t2048.ParseMode(modeName)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	st, err := s.sessions.Create(int64(seed), mode)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Created session: %s\n\n%s", st.ID, formatState(st))), nil
}

func (s *Server) handleShift(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	dirName, _ := args["direction"].(string)

	dir, err := t2048.ParseDirection(dirName)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := s.sessions.Shift(sessionID, dir)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatShift(res)), nil
}

func (s *Server) handleBoardState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	st, err := s.sessions.Get(sessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatState(st)), nil
}

func (s *Server) handleLegalMoves(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	legal, err := s.sessions.LegalMoves(sessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(legal) == 0 {
		return mcp.NewToolResultText("No legal moves."), nil
	}
	return mcp.NewToolResultText("Legal moves: " + joinDirections(legal)), nil
}

func (s *Server) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	states := s.sessions.List()

	var sb strings.Builder
	fmt.Fprintf(&sb, "Active Sessions (%d):\n", len(states))
	for _, st := range states {
		fmt.Fprintf(&sb, "- %s (%s, moves %d, max %d, %s, created %s)\n",
			st.ID, st.Mode, st.Moves, st.MaxTile, st.Outcome, st.CreatedAt.Format("15:04:05"))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// Formatting

func formatState(st session.State) string {
	var sb strings.Builder
	sb.WriteString(st.Board.String())
	fmt.Fprintf(&sb, "\nMode: %s\nMoves: %d\nTiles: %d/%d\nMax tile: %d\nOutcome: %s\n",
		st.Mode, st.Moves, st.Tiles, t2048.CellCount, st.MaxTile, st.Outcome)
	if len(st.LegalMoves) > 0 {
		fmt.Fprintf(&sb, "Legal moves: %s\n", joinDirections(st.LegalMoves))
	}
	return sb.String()
}

func formatShift(res session.ShiftResult) string {
	if !res.Move.Accepted {
		return fmt.Sprintf("Move %s rejected: no tile can move that way.\n\n%s", res.Move.Direction, formatState(res.State))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Moved %s: %d merge(s)", res.Move.Direction, res.Move.Merges)
	if sp := res.Move.Spawned; sp != nil {
		fmt.Fprintf(&sb, ", new %d at (%d,%d)", sp.Value, sp.Row, sp.Col)
	}
	sb.WriteString("\n\n")
	sb.WriteString(formatState(res.State))
	return sb.String()
}

func joinDirections(dirs []t2048.Direction) string {
	names := make([]string, len(dirs))
	for i, d := range dirs {
		names[i] = d.String()
	}
	return strings.Join(names, ", ")
}
