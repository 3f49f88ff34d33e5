package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"slate/internal/domain"
)

func (s *Server) registerItemTools() {
	// ── create_item ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("create_item",
		mcp.WithDescription("Create a new item on the board. Position is auto-calculated if not provided."),
		mcp.WithString("type",
			mcp.Description("Item type: text, shape, image, audio"),
			mcp.Required(),
		),
		mcp.WithString("boardId",
			mcp.Description("Board ID (optional, defaults to active board)"),
		),
		mcp.WithNumber("x", mcp.Description("X position (optional, auto-layout if omitted)")),
		mcp.WithNumber("y", mcp.Description("Y position (optional, auto-layout if omitted)")),
		mcp.WithNumber("width", mcp.Description("Width (optional, uses type default)")),
		mcp.WithNumber("height", mcp.Description("Height (optional, uses type default)")),
		mcp.WithString("content", mcp.Description("Text content (optional)")),
		mcp.WithString("strokeColor", mcp.Description("Outline color hex (optional)")),
		mcp.WithString("fillColor", mcp.Description("Fill color hex (optional)")),
	), s.handleCreateItem)

	// ── update_item_content ────────────────────────────
	s.mcp.AddTool(mcp.NewTool("update_item_content",
		mcp.WithDescription("Update the text content of an existing item"),
		mcp.WithString("itemId", mcp.Description("Item ID"), mcp.Required()),
		mcp.WithString("content", mcp.Description("New content"), mcp.Required()),
	), s.handleUpdateItemContent)

	// ── list_items ─────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_items",
		mcp.WithDescription("List all items on a board, optionally filtered by type"),
		mcp.WithString("boardId", mcp.Description("Board ID (optional, defaults to active board)")),
		mcp.WithString("type", mcp.Description("Filter by item type (optional)")),
	), s.handleListItems)

	// ── delete_item (destructive) ──────────────────────
	s.mcp.AddTool(mcp.NewTool("delete_item",
		mcp.WithDescription("🛑 DESTRUCTIVE: Delete an item and its connections. Requires user approval."),
		mcp.WithString("itemId", mcp.Description("Item ID to delete"), mcp.Required()),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleDeleteItem)

	// ── move_item ──────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("move_item",
		mcp.WithDescription("Move an item to a new position on the board"),
		mcp.WithString("itemId", mcp.Description("Item ID"), mcp.Required()),
		mcp.WithNumber("x", mcp.Description("New X position"), mcp.Required()),
		mcp.WithNumber("y", mcp.Description("New Y position"), mcp.Required()),
	), s.handleMoveItem)

	// ── resize_item ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("resize_item",
		mcp.WithDescription("Resize an item"),
		mcp.WithString("itemId", mcp.Description("Item ID"), mcp.Required()),
		mcp.WithNumber("width", mcp.Description("New width"), mcp.Required()),
		mcp.WithNumber("height", mcp.Description("New height"), mcp.Required()),
	), s.handleResizeItem)

	// ── batch_move_items ───────────────────────────────
	s.mcp.AddTool(mcp.NewTool("batch_move_items",
		mcp.WithDescription("Move multiple items by a relative offset (dx, dy) in a single transaction"),
		mcp.WithString("itemIds",
			mcp.Description("Comma-separated item IDs"),
			mcp.Required(),
		),
		mcp.WithNumber("dx", mcp.Description("Horizontal offset"), mcp.Required()),
		mcp.WithNumber("dy", mcp.Description("Vertical offset"), mcp.Required()),
	), s.handleBatchMoveItems)

	// ── batch_update_items ─────────────────────────────
	s.mcp.AddTool(mcp.NewTool("batch_update_items",
		mcp.WithDescription("Update multiple items at once (move and/or resize). Pass a JSON array of patch objects with itemId and optional x, y, width, height."),
		mcp.WithString("patches",
			mcp.Description("JSON array of patch objects [{itemId, x?, y?, width?, height?}, ...]"),
			mcp.Required(),
		),
	), s.handleBatchUpdateItems)

	// ── batch_delete_items ─────────────────────────────
	s.mcp.AddTool(mcp.NewTool("batch_delete_items",
		mcp.WithDescription("🛑 DESTRUCTIVE: Delete multiple items at once with a single approval. Requires user approval."),
		mcp.WithString("itemIds",
			mcp.Description("Comma-separated item IDs to delete"),
			mcp.Required(),
		),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleBatchDeleteItems)

	// ── arrange_items ──────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("arrange_items",
		mcp.WithDescription("Auto-arrange all items on a board using a grid layout"),
		mcp.WithString("boardId", mcp.Description("Board ID (optional, defaults to active board)")),
		mcp.WithNumber("startX", mcp.Description("Starting X position (default 0)")),
		mcp.WithNumber("startY", mcp.Description("Starting Y position (default 0)")),
	), s.handleArrangeItems)

	// ── group_items ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("group_items",
		mcp.WithDescription("Assign a shared group to items so they select and move together"),
		mcp.WithString("itemIds",
			mcp.Description("Comma-separated item IDs to group"),
			mcp.Required(),
		),
	), s.handleGroupItems)

	// ── ungroup_items ──────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("ungroup_items",
		mcp.WithDescription("Clear group membership from items"),
		mcp.WithString("itemIds",
			mcp.Description("Comma-separated item IDs to ungroup"),
			mcp.Required(),
		),
	), s.handleUngroupItems)
}

func boolPtr(v bool) *bool { return &v }

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handleCreateItem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	itemType, _ := args["type"].(string)
	if itemType == "" {
		return nil, fmt.Errorf("type is required")
	}

	boardID, err := s.resolveBoardID(args)
	if err != nil {
		return nil, err
	}

	// Default sizes per item type
	defaultSizes := map[string][2]float64{
		"text":  {240, 120},
		"shape": {200, 140},
		"image": {300, 300},
		"audio": {280, 80},
	}

	defaults := defaultSizes[itemType]
	if defaults == [2]float64{} {
		defaults = [2]float64{240, 120} // fallback
	}

	w := getFloat(args, "width", defaults[0])
	h := getFloat(args, "height", defaults[1])

	// Auto-layout if position not provided
	x, hasX := args["x"].(float64)
	y, hasY := args["y"].(float64)
	if !hasX || !hasY {
		existing, _ := s.items.ListItems(boardID)
		x, y = s.layout.NextPosition(existing, w, h)
	}

	it := &domain.Item{
		ID:      uuid.New().String(),
		BoardID: boardID,
		Type:    domain.ItemType(itemType),
		X:       x,
		Y:       y,
		Width:   w,
		Height:  h,
	}
	if content, ok := args["content"].(string); ok {
		it.Content = content
	}
	if sc, ok := args["strokeColor"].(string); ok {
		it.StrokeColor = sc
	}
	if fc, ok := args["fillColor"].(string); ok {
		it.FillColor = fc
	}

	created, err := s.items.CreateItem(it)
	if err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	s.emitCanvasChanged(ctx, boardID)
	return jsonResult(created)
}

func (s *Server) handleUpdateItemContent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	it, err := s.getItemForTool(args)
	if err != nil {
		return nil, err
	}

	content, _ := args["content"].(string)
	if err := s.items.UpdateItemContent(it.ID, content); err != nil {
		return nil, fmt.Errorf("update content: %w", err)
	}

	s.emitCanvasChanged(ctx, it.BoardID)
	return textResult(fmt.Sprintf("Item %s content updated", it.ID)), nil
}

func (s *Server) handleListItems(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	boardID, err := s.resolveBoardID(args)
	if err != nil {
		return nil, err
	}

	items, err := s.items.ListItems(boardID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	// Filter by type if provided
	if filterType, ok := args["type"].(string); ok && filterType != "" {
		var filtered []itemSummary
		for _, it := range items {
			if string(it.Type) == filterType {
				filtered = append(filtered, summarizeItem(it))
			}
		}
		return jsonResult(filtered)
	}

	summaries := make([]itemSummary, len(items))
	for i, it := range items {
		summaries[i] = summarizeItem(it)
	}
	return jsonResult(summaries)
}

func (s *Server) handleDeleteItem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	it, err := s.getItemForTool(args)
	if err != nil {
		return nil, err
	}

	// Require approval (with metadata for frontend highlight)
	meta := fmt.Sprintf(`{"itemIds":["%s"]}`, it.ID)
	approved, err := s.approval.Request("delete_item",
		fmt.Sprintf("Delete %s item %s", it.Type, it.ID), meta)
	if err != nil || !approved {
		return textResult("Action rejected by user"), nil
	}

	if err := s.items.DeleteItem(ctx, it.ID); err != nil {
		return nil, fmt.Errorf("delete item: %w", err)
	}

	s.emitCanvasChanged(ctx, it.BoardID)
	return textResult(fmt.Sprintf("Item %s deleted", it.ID)), nil
}

func (s *Server) handleMoveItem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	it, err := s.getItemForTool(args)
	if err != nil {
		return nil, err
	}

	x := getFloat(args, "x", it.X)
	y := getFloat(args, "y", it.Y)

	if err := s.items.UpdateItemPosition(it.ID, x, y, it.Width, it.Height); err != nil {
		return nil, fmt.Errorf("move item: %w", err)
	}

	s.emitCanvasChanged(ctx, it.BoardID)
	return textResult(fmt.Sprintf("Item %s moved to (%.0f, %.0f)", it.ID, x, y)), nil
}

func (s *Server) handleResizeItem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	it, err := s.getItemForTool(args)
	if err != nil {
		return nil, err
	}

	w := getFloat(args, "width", it.Width)
	h := getFloat(args, "height", it.Height)

	if err := s.items.UpdateItemPosition(it.ID, it.X, it.Y, w, h); err != nil {
		return nil, fmt.Errorf("resize item: %w", err)
	}

	s.emitCanvasChanged(ctx, it.BoardID)
	return textResult(fmt.Sprintf("Item %s resized to (%.0f × %.0f)", it.ID, w, h)), nil
}

func (s *Server) handleBatchMoveItems(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	idsStr, _ := args["itemIds"].(string)
	dx := getFloat(args, "dx", 0)
	dy := getFloat(args, "dy", 0)

	ids := splitIDs(idsStr)
	if len(ids) == 0 {
		return nil, fmt.Errorf("itemIds is required")
	}

	var boardID string
	positions := make([]domain.ItemPosition, 0, len(ids))
	for _, id := range ids {
		it, err := s.items.GetItem(id)
		if err != nil {
			return nil, fmt.Errorf("get item %s: %w", id, err)
		}
		if boardID == "" {
			boardID = it.BoardID
		}
		positions = append(positions, domain.ItemPosition{
			ID:     it.ID,
			X:      it.X + dx,
			Y:      it.Y + dy,
			Width:  it.Width,
			Height: it.Height,
		})
	}

	if err := s.items.BatchUpdatePositions(positions); err != nil {
		return nil, fmt.Errorf("batch move: %w", err)
	}

	if boardID != "" {
		s.emitCanvasChanged(ctx, boardID)
	}
	return textResult(fmt.Sprintf("Moved %d items by (%.0f, %.0f)", len(ids), dx, dy)), nil
}

func (s *Server) handleBatchUpdateItems(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	patchesJSON, _ := args["patches"].(string)

	var patches []struct {
		ItemID string   `json:"itemId"`
		X      *float64 `json:"x"`
		Y      *float64 `json:"y"`
		Width  *float64 `json:"width"`
		Height *float64 `json:"height"`
	}
	if err := json.Unmarshal([]byte(patchesJSON), &patches); err != nil {
		return nil, fmt.Errorf("parse patches JSON: %w", err)
	}
	if len(patches) == 0 {
		return nil, fmt.Errorf("patches array is empty")
	}

	var boardID string
	positions := make([]domain.ItemPosition, 0, len(patches))
	for _, p := range patches {
		it, err := s.items.GetItem(p.ItemID)
		if err != nil {
			return nil, fmt.Errorf("get item %s: %w", p.ItemID, err)
		}
		if boardID == "" {
			boardID = it.BoardID
		}
		x, y, w, h := it.X, it.Y, it.Width, it.Height
		if p.X != nil {
			x = *p.X
		}
		if p.Y != nil {
			y = *p.Y
		}
		if p.Width != nil {
			w = *p.Width
		}
		if p.Height != nil {
			h = *p.Height
		}
		positions = append(positions, domain.ItemPosition{ID: it.ID, X: x, Y: y, Width: w, Height: h})
	}

	if err := s.items.BatchUpdatePositions(positions); err != nil {
		return nil, fmt.Errorf("batch update: %w", err)
	}

	if boardID != "" {
		s.emitCanvasChanged(ctx, boardID)
	}
	return textResult(fmt.Sprintf("Updated %d items", len(patches))), nil
}

func (s *Server) handleBatchDeleteItems(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	idsStr, _ := args["itemIds"].(string)
	ids := splitIDs(idsStr)
	if len(ids) == 0 {
		return nil, fmt.Errorf("itemIds is required")
	}

	// Single approval for all (with metadata for frontend highlight)
	quotedIDs := make([]string, len(ids))
	for i, id := range ids {
		quotedIDs[i] = `"` + id + `"`
	}
	meta := fmt.Sprintf(`{"itemIds":[%s]}`, strings.Join(quotedIDs, ","))
	approved, err := s.approval.Request("batch_delete_items",
		fmt.Sprintf("Delete %d items: %s", len(ids), idsStr), meta)
	if err != nil || !approved {
		return textResult("Action rejected by user"), nil
	}

	// Skip missing items so a stale ID doesn't abort the whole batch
	var boardID string
	existing := make([]string, 0, len(ids))
	for _, id := range ids {
		it, err := s.items.GetItem(id)
		if err != nil {
			continue
		}
		if boardID == "" {
			boardID = it.BoardID
		}
		existing = append(existing, id)
	}

	if err := s.items.BatchDelete(existing, nil); err != nil {
		return nil, fmt.Errorf("batch delete: %w", err)
	}

	if boardID != "" {
		s.emitCanvasChanged(ctx, boardID)
	}
	return textResult(fmt.Sprintf("Deleted %d items", len(existing))), nil
}

func (s *Server) handleArrangeItems(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	boardID, err := s.resolveBoardID(args)
	if err != nil {
		return nil, err
	}

	items, err := s.items.ListItems(boardID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	startX := getFloat(args, "startX", 0)
	startY := getFloat(args, "startY", 0)

	arranged := s.layout.ArrangeGroup(items, startX, startY)
	positions := make([]domain.ItemPosition, len(arranged))
	for i, it := range arranged {
		positions[i] = domain.ItemPosition{ID: it.ID, X: it.X, Y: it.Y, Width: it.Width, Height: it.Height}
	}
	if err := s.items.BatchUpdatePositions(positions); err != nil {
		return nil, fmt.Errorf("arrange items: %w", err)
	}

	s.emitCanvasChanged(ctx, boardID)
	return textResult(fmt.Sprintf("Arranged %d items", len(arranged))), nil
}

func (s *Server) handleGroupItems(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	idsStr, _ := args["itemIds"].(string)
	ids := splitIDs(idsStr)
	if len(ids) < 2 {
		return nil, fmt.Errorf("at least two itemIds are required")
	}

	it, err := s.items.GetItem(ids[0])
	if err != nil {
		return nil, fmt.Errorf("get item %s: %w", ids[0], err)
	}

	gid := uuid.New().String()
	if err := s.items.SetGroup(ids, nil, &gid); err != nil {
		return nil, fmt.Errorf("group items: %w", err)
	}

	s.emitCanvasChanged(ctx, it.BoardID)
	return textResult(fmt.Sprintf("Grouped %d items as %s", len(ids), gid)), nil
}

func (s *Server) handleUngroupItems(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	idsStr, _ := args["itemIds"].(string)
	ids := splitIDs(idsStr)
	if len(ids) == 0 {
		return nil, fmt.Errorf("itemIds is required")
	}

	it, err := s.items.GetItem(ids[0])
	if err != nil {
		return nil, fmt.Errorf("get item %s: %w", ids[0], err)
	}

	if err := s.items.SetGroup(ids, nil, nil); err != nil {
		return nil, fmt.Errorf("ungroup items: %w", err)
	}

	s.emitCanvasChanged(ctx, it.BoardID)
	return textResult(fmt.Sprintf("Ungrouped %d items", len(ids))), nil
}

// ── Helper types ───────────────────────────────────────────

type itemSummary struct {
	ID      string  `json:"id"`
	Type    string  `json:"type"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	GroupID string  `json:"groupId,omitempty"`
	Preview string  `json:"preview"` // first 200 chars of content
}

func summarizeItem(it domain.Item) itemSummary {
	preview := it.Content
	if len(preview) > 200 {
		preview = preview[:200] + "..."
	}
	sum := itemSummary{
		ID:      it.ID,
		Type:    string(it.Type),
		X:       it.X,
		Y:       it.Y,
		Width:   it.Width,
		Height:  it.Height,
		Preview: preview,
	}
	if it.GroupID != nil {
		sum.GroupID = *it.GroupID
	}
	return sum
}

func getFloat(args map[string]any, key string, fallback float64) float64 {
	if v, ok := args[key].(float64); ok {
		return v
	}
	return fallback
}

func splitIDs(s string) []string {
	if s == "" {
		return nil
	}
	var ids []string
	for _, part := range strings.Split(s, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	return ids
}
