package mcpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"slate/internal/domain"
	"slate/internal/service"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server is the MCP server for the Slate app.
// It exposes tools, resources, and prompts so AI agents can work on boards.
type Server struct {
	mcp      *server.MCPServer
	emitter  EventEmitter
	approval *ApprovalQueue
	layout   *LayoutEngine

	// Services (injected from app layer)
	boards  *service.BoardService
	items   *service.ItemService
	strokes *service.StrokeService
	conns   *service.ConnectionService

	// Active board context (set by set_active_board tool)
	activeBoardID string
}

// Deps holds all dependencies passed from the App layer to the MCP server.
type Deps struct {
	Emitter     EventEmitter
	Boards      *service.BoardService
	Items       *service.ItemService
	Strokes     *service.StrokeService
	Connections *service.ConnectionService
	ApprovalDB  *sql.DB // When set, use SQLite-based approval (standalone mode)
}

// New creates and configures a new MCP server with all tools and resources.
func New(ctx context.Context, deps Deps) *Server {
	approval := NewApprovalQueue(ctx, deps.Emitter)
	if deps.ApprovalDB != nil {
		approval.SetDB(deps.ApprovalDB)
	}
	s := &Server{
		emitter:  deps.Emitter,
		approval: approval,
		layout:   NewLayoutEngine(),
		boards:   deps.Boards,
		items:    deps.Items,
		strokes:  deps.Strokes,
		conns:    deps.Connections,
	}

	s.mcp = server.NewMCPServer(
		"slate-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
		server.WithPromptCapabilities(true),
	)

	s.registerBoardTools()
	s.registerItemTools()
	s.registerStrokeTools()
	s.registerConnectionTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	log.Println("[MCP] Starting stdio server...")
	return server.ServeStdio(s.mcp)
}

// Approve forwards a user approval to the approval queue.
func (s *Server) Approve(actionID string) {
	s.approval.Approve(actionID)
}

// Reject forwards a user rejection to the approval queue.
func (s *Server) Reject(actionID string) {
	s.approval.Reject(actionID)
}

// ── Helpers ────────────────────────────────────────────────

// emitCanvasChanged notifies the frontend that board content has changed.
func (s *Server) emitCanvasChanged(ctx context.Context, boardID string) {
	s.emitter.Emit(ctx, "mcp:canvas-changed", map[string]string{"boardId": boardID})
}

// textResult creates a simple text tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

// jsonResult serializes v to JSON and wraps it in a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil
}

// resolveBoardID returns the boardID from tool args or falls back to activeBoardID.
func (s *Server) resolveBoardID(args map[string]any) (string, error) {
	if bid, ok := args["boardId"].(string); ok && bid != "" {
		return bid, nil
	}
	if s.activeBoardID != "" {
		return s.activeBoardID, nil
	}
	return "", fmt.Errorf("no boardId provided and no active board set (use set_active_board first)")
}

// getItemForTool retrieves an item and validates it exists.
func (s *Server) getItemForTool(args map[string]any) (*domain.Item, error) {
	itemID, ok := args["itemId"].(string)
	if !ok || itemID == "" {
		return nil, fmt.Errorf("itemId is required")
	}
	return s.items.GetItem(itemID)
}
