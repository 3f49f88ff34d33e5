package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerResources() {
	// ── slate://notebooks ──────────────────────────────
	s.mcp.AddResource(mcp.NewResource(
		"slate://notebooks",
		"All Notebooks",
		mcp.WithMIMEType("application/json"),
	), s.handleNotebooksResource)

	// ── slate://board/{boardId}/state ──────────────────
	s.mcp.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"slate://board/{boardId}/state",
			"Full Board State",
		),
		s.handleBoardStateResource,
	)
}

func (s *Server) handleNotebooksResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	notebooks, err := s.boards.ListNotebooks()
	if err != nil {
		return nil, err
	}

	type notebookSummary struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	var summaries []notebookSummary
	for _, n := range notebooks {
		summaries = append(summaries, notebookSummary{ID: n.ID, Name: n.Name})
	}

	data, _ := json.MarshalIndent(summaries, "", "  ")
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "slate://notebooks",
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (s *Server) handleBoardStateResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	boardID := extractBoardIDFromURI(uri)
	if boardID == "" {
		return nil, fmt.Errorf("could not extract boardId from URI: %s", uri)
	}

	state, err := s.boards.GetBoardState(boardID)
	if err != nil {
		return nil, err
	}

	data, _ := json.MarshalIndent(state, "", "  ")
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// extractBoardIDFromURI extracts the board ID from "slate://board/{id}/state"
func extractBoardIDFromURI(uri string) string {
	const prefix = "slate://board/"
	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	rest := strings.TrimPrefix(uri, prefix)
	if idx := strings.IndexByte(rest, '/'); idx > 0 {
		return rest[:idx]
	}
	return ""
}
