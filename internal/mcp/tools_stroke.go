package mcpserver

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"slate/internal/domain"
	"slate/internal/geom"
)

func (s *Server) registerStrokeTools() {
	// ── add_stroke ─────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("add_stroke",
		mcp.WithDescription(`Add a freehand stroke to the board. Path data uses the compact "M10,10 L20,25 L30,40" form.`),
		mcp.WithString("boardId", mcp.Description("Board ID (optional, defaults to active board)")),
		mcp.WithString("pathData", mcp.Description("Stroke path, e.g. \"M0,0 L100,50\""), mcp.Required()),
		mcp.WithString("color", mcp.Description("Stroke color hex (optional, default #e8e8e8)")),
		mcp.WithNumber("width", mcp.Description("Stroke width (optional, default 3)")),
		mcp.WithNumber("opacity", mcp.Description("Opacity 0-1 (optional, default 1)")),
	), s.handleAddStroke)

	// ── list_strokes ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_strokes",
		mcp.WithDescription("List all strokes on a board with their bounds"),
		mcp.WithString("boardId", mcp.Description("Board ID (optional, defaults to active board)")),
	), s.handleListStrokes)

	// ── translate_stroke ───────────────────────────────
	s.mcp.AddTool(mcp.NewTool("translate_stroke",
		mcp.WithDescription("Move a stroke by a relative offset without rewriting its path"),
		mcp.WithString("strokeId", mcp.Description("Stroke ID"), mcp.Required()),
		mcp.WithNumber("dx", mcp.Description("Horizontal offset"), mcp.Required()),
		mcp.WithNumber("dy", mcp.Description("Vertical offset"), mcp.Required()),
	), s.handleTranslateStroke)

	// ── delete_stroke (destructive) ────────────────────
	s.mcp.AddTool(mcp.NewTool("delete_stroke",
		mcp.WithDescription("🛑 DESTRUCTIVE: Delete a stroke. Requires user approval."),
		mcp.WithString("strokeId", mcp.Description("Stroke ID to delete"), mcp.Required()),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleDeleteStroke)
}

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handleAddStroke(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	boardID, err := s.resolveBoardID(args)
	if err != nil {
		return nil, err
	}

	pathData, _ := args["pathData"].(string)
	if len(geom.ParsePath(pathData)) == 0 {
		return nil, fmt.Errorf("pathData contains no valid points")
	}

	st := &domain.Stroke{
		ID:       uuid.New().String(),
		BoardID:  boardID,
		PathData: pathData,
		Color:    "#e8e8e8",
		Width:    getFloat(args, "width", 3),
		Opacity:  getFloat(args, "opacity", 1),
	}
	if c, ok := args["color"].(string); ok && c != "" {
		st.Color = c
	}

	created, err := s.strokes.CreateStroke(st)
	if err != nil {
		return nil, fmt.Errorf("add stroke: %w", err)
	}

	s.emitCanvasChanged(ctx, boardID)
	return jsonResult(created)
}

func (s *Server) handleListStrokes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	boardID, err := s.resolveBoardID(args)
	if err != nil {
		return nil, err
	}

	strokes, err := s.strokes.ListStrokes(boardID)
	if err != nil {
		return nil, fmt.Errorf("list strokes: %w", err)
	}

	type strokeSummary struct {
		ID     string    `json:"id"`
		Color  string    `json:"color"`
		Width  float64   `json:"width"`
		Bounds geom.Rect `json:"bounds"`
	}

	summaries := make([]strokeSummary, len(strokes))
	for i, st := range strokes {
		bounds, _ := geom.PathBounds(st.PathData, st.XOffset, st.YOffset)
		summaries[i] = strokeSummary{
			ID:     st.ID,
			Color:  st.Color,
			Width:  st.Width,
			Bounds: bounds,
		}
	}
	return jsonResult(summaries)
}

func (s *Server) handleTranslateStroke(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	strokeID, _ := args["strokeId"].(string)
	if strokeID == "" {
		return nil, fmt.Errorf("strokeId is required")
	}

	st, err := s.strokes.GetStroke(strokeID)
	if err != nil {
		return nil, fmt.Errorf("get stroke: %w", err)
	}

	dx := getFloat(args, "dx", 0)
	dy := getFloat(args, "dy", 0)
	if err := s.strokes.UpdateStrokeOffset(strokeID, st.XOffset+dx, st.YOffset+dy); err != nil {
		return nil, fmt.Errorf("translate stroke: %w", err)
	}

	s.emitCanvasChanged(ctx, st.BoardID)
	return textResult(fmt.Sprintf("Stroke %s moved by (%.0f, %.0f)", strokeID, dx, dy)), nil
}

func (s *Server) handleDeleteStroke(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	strokeID, _ := args["strokeId"].(string)
	if strokeID == "" {
		return nil, fmt.Errorf("strokeId is required")
	}

	st, err := s.strokes.GetStroke(strokeID)
	if err != nil {
		return nil, fmt.Errorf("get stroke: %w", err)
	}

	meta := fmt.Sprintf(`{"strokeIds":["%s"]}`, strokeID)
	approved, err := s.approval.Request("delete_stroke",
		fmt.Sprintf("Delete stroke %s", strokeID), meta)
	if err != nil || !approved {
		return textResult("Action rejected by user"), nil
	}

	if err := s.strokes.DeleteStroke(strokeID); err != nil {
		return nil, fmt.Errorf("delete stroke: %w", err)
	}

	s.emitCanvasChanged(ctx, st.BoardID)
	return textResult(fmt.Sprintf("Stroke %s deleted", strokeID)), nil
}
