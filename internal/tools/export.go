package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ihiteshsharma/mcp-servers/internal/wire"
)

func exportDesignTool() mcp.Tool {
	return mcp.Tool{
		Name:        "export_design",
		Description: "Export a node (or the current page) as png, svg or pdf",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"node":   map[string]any{"type": "string", "description": "Node id; empty exports the current page"},
				"format": map[string]any{"type": "string", "description": "png, svg or pdf"},
				"scale":  map[string]any{"type": "number", "description": "Export scale factor"},
			},
		},
	}
}

// HandleExportDesign fills format and scale from user preferences when
// the caller omits them.
func (h *Handler) HandleExportDesign(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p := wire.ExportParams{
		Node:   req.GetString("node", ""),
		Format: req.GetString("format", ""),
		Scale:  req.GetFloat("scale", 0),
	}

	if h.prefs != nil && (p.Format == "" || p.Scale == 0) {
		if saved, err := h.prefs.Load(); err == nil {
			if p.Format == "" {
				p.Format = saved.ExportFormat
			}
			if p.Scale == 0 {
				p.Scale = saved.ExportScale
			}
		}
	}
	if p.Format == "" {
		p.Format = "png"
	}
	if p.Scale == 0 {
		p.Scale = 1
	}
	switch p.Format {
	case "png", "svg", "pdf":
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown export format: %s", p.Format)), nil
	}

	return h.call(ctx, wire.KindExportDesign, p)
}
