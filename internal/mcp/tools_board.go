package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerBoardTools() {
	// ── list_notebooks ─────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_notebooks",
		mcp.WithDescription("List all notebooks in the workspace"),
	), s.handleListNotebooks)

	// ── list_boards ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_boards",
		mcp.WithDescription("List all boards in a notebook"),
		mcp.WithString("notebookId",
			mcp.Description("ID of the notebook"),
			mcp.Required(),
		),
	), s.handleListBoards)

	// ── create_board ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("create_board",
		mcp.WithDescription("Create a new board in a notebook"),
		mcp.WithString("notebookId",
			mcp.Description("ID of the notebook"),
			mcp.Required(),
		),
		mcp.WithString("name",
			mcp.Description("Name of the new board"),
			mcp.Required(),
		),
	), s.handleCreateBoard)

	// ── set_active_board ───────────────────────────────
	s.mcp.AddTool(mcp.NewTool("set_active_board",
		mcp.WithDescription("Set the active board for subsequent tool calls. Tools that accept boardId will default to this."),
		mcp.WithString("boardId",
			mcp.Description("ID of the board to make active"),
			mcp.Required(),
		),
	), s.handleSetActiveBoard)
}

func (s *Server) handleListNotebooks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	notebooks, err := s.boards.ListNotebooks()
	if err != nil {
		return nil, fmt.Errorf("list notebooks: %w", err)
	}
	return jsonResult(notebooks)
}

func (s *Server) handleListBoards(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	notebookID := req.GetString("notebookId", "")
	if notebookID == "" {
		return nil, fmt.Errorf("notebookId is required")
	}
	boards, err := s.boards.ListBoards(notebookID)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	return jsonResult(boards)
}

func (s *Server) handleCreateBoard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	notebookID := req.GetString("notebookId", "")
	name := req.GetString("name", "")
	if notebookID == "" || name == "" {
		return nil, fmt.Errorf("notebookId and name are required")
	}
	board, err := s.boards.CreateBoard(notebookID, name)
	if err != nil {
		return nil, fmt.Errorf("create board: %w", err)
	}
	// Auto-set as active board
	s.activeBoardID = board.ID
	return jsonResult(board)
}

func (s *Server) handleSetActiveBoard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	boardID := req.GetString("boardId", "")
	if boardID == "" {
		return nil, fmt.Errorf("boardId is required")
	}
	s.activeBoardID = boardID
	return textResult(fmt.Sprintf("Active board set to %s", boardID)), nil
}
