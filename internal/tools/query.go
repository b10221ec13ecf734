package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ihiteshsharma/mcp-servers/internal/wire"
)

func getSelectionTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_selection",
		Description: "Return the node ids currently selected in the design document",
		InputSchema: mcp.ToolInputSchema{Type: "object"},
	}
}

func (h *Handler) HandleGetSelection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.call(ctx, wire.KindGetSelection, nil)
}

func getCurrentPageTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_current_page",
		Description: "Return the current page and its top-level children",
		InputSchema: mcp.ToolInputSchema{Type: "object"},
	}
}

func (h *Handler) HandleGetCurrentPage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.call(ctx, wire.KindGetCurrentPage, nil)
}
