package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ihiteshsharma/mcp-servers/internal/catalog"
	"github.com/ihiteshsharma/mcp-servers/internal/wire"
)

func createWireframeTool() mcp.Tool {
	names := make([]string, 0, len(catalog.Templates()))
	for _, t := range catalog.Templates() {
		names = append(names, t.Name)
	}

	return mcp.Tool{
		Name: "create_wireframe",
		Description: "Create a new wireframe frame in the design document, " +
			"optionally from a template: " + strings.Join(names, ", "),
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"title":    map[string]any{"type": "string", "description": "Frame title"},
				"template": map[string]any{"type": "string", "description": "Template name from the template catalog"},
				"device":   map[string]any{"type": "string", "description": "Device frame preset (phone, tablet, desktop)"},
				"width":    map[string]any{"type": "integer", "description": "Frame width in px (overrides template/device)"},
				"height":   map[string]any{"type": "integer", "description": "Frame height in px (overrides template/device)"},
			},
		},
	}
}

// HandleCreateWireframe validates the template against the catalog and
// fills device defaults from user preferences before sending.
func (h *Handler) HandleCreateWireframe(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p := wire.WireframeParams{
		Title:    req.GetString("title", ""),
		Template: req.GetString("template", ""),
		Device:   req.GetString("device", ""),
		Width:    req.GetInt("width", 0),
		Height:   req.GetInt("height", 0),
	}

	if p.Template != "" {
		tpl, ok := catalog.TemplateByName(p.Template)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("unknown template: %s", p.Template)), nil
		}
		if p.Device == "" && tpl.Device != "any" {
			p.Device = tpl.Device
		}
		if p.Width == 0 {
			p.Width = tpl.Width
		}
		if p.Height == 0 {
			p.Height = tpl.Height
		}
	}

	if p.Device == "" && h.prefs != nil {
		if saved, err := h.prefs.Load(); err == nil {
			p.Device = saved.DeviceFrame
		}
	}

	return h.call(ctx, wire.KindCreateWireframe, p)
}

func addElementTool() mcp.Tool {
	return mcp.Tool{
		Name:        "add_element",
		Description: "Add an element (rectangle, text, component instance, ...) to a node",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"parent": map[string]any{"type": "string", "description": "Parent node id; empty targets the current page"},
				"type":   map[string]any{"type": "string", "description": "Element type or component library name"},
				"name":   map[string]any{"type": "string", "description": "Layer name"},
				"text":   map[string]any{"type": "string", "description": "Text content for text elements"},
				"x":      map[string]any{"type": "number"},
				"y":      map[string]any{"type": "number"},
				"width":  map[string]any{"type": "number"},
				"height": map[string]any{"type": "number"},
			},
			Required: []string{"type"},
		},
	}
}

// HandleAddElement sends an add_element command. A type matching a
// component library entry is passed through as-is; the host resolves
// it against its own library.
func (h *Handler) HandleAddElement(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	typ := req.GetString("type", "")
	if typ == "" {
		return mcp.NewToolResultError("type is required"), nil
	}

	p := wire.ElementParams{
		Parent: req.GetString("parent", ""),
		Type:   typ,
		Name:   req.GetString("name", ""),
		Text:   req.GetString("text", ""),
		X:      req.GetFloat("x", 0),
		Y:      req.GetFloat("y", 0),
		Width:  req.GetFloat("width", 0),
		Height: req.GetFloat("height", 0),
	}
	return h.call(ctx, wire.KindAddElement, p)
}
