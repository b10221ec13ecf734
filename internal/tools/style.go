package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ihiteshsharma/mcp-servers/internal/catalog"
	"github.com/ihiteshsharma/mcp-servers/internal/wire"
)

func styleElementTool() mcp.Tool {
	return mcp.Tool{
		Name:        "style_element",
		Description: "Apply fills, strokes, corner radius or a design token to an element",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"node":          map[string]any{"type": "string", "description": "Target node id"},
				"fill":          map[string]any{"type": "string", "description": "Fill color, hex"},
				"stroke":        map[string]any{"type": "string", "description": "Stroke color, hex"},
				"stroke_weight": map[string]any{"type": "number"},
				"corner_radius": map[string]any{"type": "number"},
				"opacity":       map[string]any{"type": "number", "description": "0..1"},
				"token":         map[string]any{"type": "string", "description": "Design token name from the token catalog"},
			},
			Required: []string{"node"},
		},
	}
}

// HandleStyleElement validates any referenced design token against the
// catalog before sending.
func (h *Handler) HandleStyleElement(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	node := req.GetString("node", "")
	if node == "" {
		return mcp.NewToolResultError("node is required"), nil
	}

	p := wire.StyleParams{
		Node:         node,
		Fill:         req.GetString("fill", ""),
		Stroke:       req.GetString("stroke", ""),
		StrokeWeight: req.GetFloat("stroke_weight", 0),
		CornerRadius: req.GetFloat("corner_radius", 0),
		Opacity:      req.GetFloat("opacity", 0),
		Token:        req.GetString("token", ""),
	}

	if p.Token != "" {
		if _, ok := catalog.TokenByName(p.Token); !ok {
			return mcp.NewToolResultError(fmt.Sprintf("unknown design token: %s", p.Token)), nil
		}
	}

	return h.call(ctx, wire.KindStyleElement, p)
}

func modifyElementTool() mcp.Tool {
	return mcp.Tool{
		Name:        "modify_element",
		Description: "Change properties of an existing element; omitted fields stay unchanged",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"node":    map[string]any{"type": "string", "description": "Target node id"},
				"name":    map[string]any{"type": "string"},
				"text":    map[string]any{"type": "string"},
				"x":       map[string]any{"type": "number"},
				"y":       map[string]any{"type": "number"},
				"width":   map[string]any{"type": "number"},
				"height":  map[string]any{"type": "number"},
				"visible": map[string]any{"type": "boolean"},
			},
			Required: []string{"node"},
		},
	}
}

// HandleModifyElement uses presence of each argument to distinguish
// "leave unchanged" from explicit zero values.
func (h *Handler) HandleModifyElement(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	node := req.GetString("node", "")
	if node == "" {
		return mcp.NewToolResultError("node is required"), nil
	}

	args := req.GetArguments()
	p := wire.ModifyParams{
		Node:    node,
		Name:    req.GetString("name", ""),
		Text:    req.GetString("text", ""),
		X:       floatArg(args, "x"),
		Y:       floatArg(args, "y"),
		Width:   floatArg(args, "width"),
		Height:  floatArg(args, "height"),
		Visible: boolArg(args, "visible"),
	}
	return h.call(ctx, wire.KindModifyElement, p)
}

func arrangeLayoutTool() mcp.Tool {
	return mcp.Tool{
		Name:        "arrange_layout",
		Description: "Arrange the children of a node with an auto-layout mode",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"node":    map[string]any{"type": "string", "description": "Container node id"},
				"mode":    map[string]any{"type": "string", "description": "horizontal, vertical or grid"},
				"spacing": map[string]any{"type": "number", "description": "Gap between children in px"},
				"padding": map[string]any{"type": "number", "description": "Inner padding in px"},
				"align":   map[string]any{"type": "string", "description": "start, center, end or stretch"},
			},
			Required: []string{"node", "mode"},
		},
	}
}

func (h *Handler) HandleArrangeLayout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	node := req.GetString("node", "")
	mode := req.GetString("mode", "")
	if node == "" || mode == "" {
		return mcp.NewToolResultError("node and mode are required"), nil
	}
	switch mode {
	case "horizontal", "vertical", "grid":
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown layout mode: %s", mode)), nil
	}

	p := wire.LayoutParams{
		Node:    node,
		Mode:    mode,
		Spacing: req.GetFloat("spacing", 0),
		Padding: req.GetFloat("padding", 0),
		Align:   req.GetString("align", ""),
	}
	return h.call(ctx, wire.KindArrangeLayout, p)
}
