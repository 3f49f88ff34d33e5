package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPrompts() {
	s.mcp.AddPrompt(mcp.NewPrompt("mind_map",
		mcp.WithPromptDescription("Build a mind map of connected text items around a central topic"),
		mcp.WithArgument("topic",
			mcp.ArgumentDescription("Central topic of the mind map"),
			mcp.RequiredArgument(),
		),
	), s.handleMindMapPrompt)

	s.mcp.AddPrompt(mcp.NewPrompt("system_diagram",
		mcp.WithPromptDescription("Create a system architecture diagram using shape items and connections"),
		mcp.WithArgument("systemName",
			mcp.ArgumentDescription("Name of the system to diagram"),
			mcp.RequiredArgument(),
		),
	), s.handleSystemDiagramPrompt)
}

func (s *Server) handleMindMapPrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	topic := req.Params.Arguments["topic"]
	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Build a mind map for: %s", topic),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf(`Build a mind map about "%s" on the active board. Follow these steps:

1. Create a central text item with the topic "%s" (create_item, type "text")
2. Create one text item per main branch, placed around the center — omit x/y so auto-layout avoids overlap
3. Connect each branch to the center using connect_items; let the sides default to the facing edges
4. Group each branch with its sub-items using group_items so they move together

Keep branch labels under one line; put detail in sub-items connected to the branch.`, topic, topic),
				},
			},
		},
	}, nil
}

func (s *Server) handleSystemDiagramPrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	systemName := req.Params.Arguments["systemName"]
	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Create a system diagram for: %s", systemName),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf(`Create a system architecture diagram for "%s" using items and connections. Follow these steps:

1. Identify the main components of the system
2. Use create_item (type "shape") for each component, with the component name as content
3. Use connect_items to show data flow or dependencies between components
4. Use arrange_items to ensure the layout is clean
5. Add a text item with a legend or description of the architecture

Use consistent colors: #3b82f6 for primary components, #10b981 for storage, #f59e0b for external services.`, systemName),
				},
			},
		},
	}, nil
}
