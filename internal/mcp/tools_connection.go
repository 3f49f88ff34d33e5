package mcpserver

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"slate/internal/domain"
)

func (s *Server) registerConnectionTools() {
	// ── connect_items ──────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("connect_items",
		mcp.WithDescription("Create a directed connection between two items. Anchor sides default to whichever edges face each other."),
		mcp.WithString("fromItemId", mcp.Description("Source item ID"), mcp.Required()),
		mcp.WithString("toItemId", mcp.Description("Target item ID"), mcp.Required()),
		mcp.WithString("fromSide", mcp.Description("Source anchor side: top, bottom, left, right (optional)")),
		mcp.WithString("toSide", mcp.Description("Target anchor side: top, bottom, left, right (optional)")),
		mcp.WithString("color", mcp.Description("Line color hex (optional, default #666666)")),
	), s.handleConnectItems)

	// ── list_connections ───────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_connections",
		mcp.WithDescription("List all connections on a board"),
		mcp.WithString("boardId", mcp.Description("Board ID (optional, defaults to active board)")),
	), s.handleListConnections)

	// ── delete_connection (destructive) ────────────────
	s.mcp.AddTool(mcp.NewTool("delete_connection",
		mcp.WithDescription("🛑 DESTRUCTIVE: Delete a connection. Requires user approval."),
		mcp.WithString("connectionId", mcp.Description("Connection ID to delete"), mcp.Required()),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleDeleteConnection)
}

// facingSides picks anchor sides for a connection based on the relative
// position of the two items: vertical separation wins over horizontal.
func facingSides(from, to *domain.Item) (domain.Side, domain.Side) {
	dx := (to.X + to.Width/2) - (from.X + from.Width/2)
	dy := (to.Y + to.Height/2) - (from.Y + from.Height/2)

	if math.Abs(dy) > math.Abs(dx) {
		if dy > 0 {
			return domain.SideBottom, domain.SideTop
		}
		return domain.SideTop, domain.SideBottom
	}
	if dx > 0 {
		return domain.SideRight, domain.SideLeft
	}
	return domain.SideLeft, domain.SideRight
}

func parseSide(v string) (domain.Side, bool) {
	switch domain.Side(v) {
	case domain.SideTop, domain.SideBottom, domain.SideLeft, domain.SideRight:
		return domain.Side(v), true
	}
	return "", false
}

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handleConnectItems(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	fromID, _ := args["fromItemId"].(string)
	toID, _ := args["toItemId"].(string)
	if fromID == "" || toID == "" {
		return nil, fmt.Errorf("fromItemId and toItemId are required")
	}
	if fromID == toID {
		return nil, fmt.Errorf("cannot connect an item to itself")
	}

	from, err := s.items.GetItem(fromID)
	if err != nil {
		return nil, fmt.Errorf("get source item: %w", err)
	}
	to, err := s.items.GetItem(toID)
	if err != nil {
		return nil, fmt.Errorf("get target item: %w", err)
	}

	fromSide, toSide := facingSides(from, to)
	if v, ok := args["fromSide"].(string); ok && v != "" {
		side, ok := parseSide(v)
		if !ok {
			return nil, fmt.Errorf("invalid fromSide: %s", v)
		}
		fromSide = side
	}
	if v, ok := args["toSide"].(string); ok && v != "" {
		side, ok := parseSide(v)
		if !ok {
			return nil, fmt.Errorf("invalid toSide: %s", v)
		}
		toSide = side
	}

	color := "#666666"
	if c, ok := args["color"].(string); ok && c != "" {
		color = c
	}

	conn, err := s.conns.CreateConnection(&domain.Connection{
		ID:          uuid.New().String(),
		FromItemID:  fromID,
		ToItemID:    toID,
		FromSide:    fromSide,
		ToSide:      toSide,
		Color:       color,
		StrokeWidth: 2,
	})
	if err != nil {
		return nil, fmt.Errorf("connect items: %w", err)
	}

	s.emitCanvasChanged(ctx, conn.BoardID)
	return jsonResult(conn)
}

func (s *Server) handleListConnections(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	boardID, err := s.resolveBoardID(args)
	if err != nil {
		return nil, err
	}

	conns, err := s.conns.ListConnections(boardID)
	if err != nil {
		return nil, fmt.Errorf("list connections: %w", err)
	}
	return jsonResult(conns)
}

func (s *Server) handleDeleteConnection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	connID, _ := args["connectionId"].(string)
	if connID == "" {
		return nil, fmt.Errorf("connectionId is required")
	}

	conn, err := s.conns.GetConnection(connID)
	if err != nil {
		return nil, fmt.Errorf("get connection: %w", err)
	}

	meta := fmt.Sprintf(`{"connectionIds":["%s"]}`, connID)
	approved, err := s.approval.Request("delete_connection",
		fmt.Sprintf("Delete connection %s → %s", conn.FromItemID, conn.ToItemID), meta)
	if err != nil || !approved {
		return textResult("Action rejected by user"), nil
	}

	if err := s.conns.DeleteConnection(connID); err != nil {
		return nil, fmt.Errorf("delete connection: %w", err)
	}

	s.emitCanvasChanged(ctx, conn.BoardID)
	return textResult(fmt.Sprintf("Connection %s deleted", connID)), nil
}
