package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func getPreferencesTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_user_preferences",
		Description: "Return the saved user preferences applied as command defaults",
		InputSchema: mcp.ToolInputSchema{Type: "object"},
	}
}

func (h *Handler) HandleGetPreferences(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.prefs == nil {
		return mcp.NewToolResultError("preferences store not configured"), nil
	}
	p, err := h.prefs.Load()
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultStructuredOnly(map[string]any{
		"export_format": p.ExportFormat,
		"export_scale":  p.ExportScale,
		"device_frame":  p.DeviceFrame,
		"theme":         p.Theme,
	}), nil
}

func setPreferencesTool() mcp.Tool {
	return mcp.Tool{
		Name:        "set_user_preferences",
		Description: "Save user preferences; omitted fields keep their saved value",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"export_format": map[string]any{"type": "string", "description": "png, svg or pdf"},
				"export_scale":  map[string]any{"type": "number"},
				"device_frame":  map[string]any{"type": "string", "description": "phone, tablet or desktop"},
				"theme":         map[string]any{"type": "string", "description": "light or dark"},
			},
		},
	}
}

func (h *Handler) HandleSetPreferences(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.prefs == nil {
		return mcp.NewToolResultError("preferences store not configured"), nil
	}

	saved, err := h.prefs.Load()
	if err != nil {
		return nil, err
	}

	args := req.GetArguments()
	if v := req.GetString("export_format", ""); v != "" {
		switch v {
		case "png", "svg", "pdf":
			saved.ExportFormat = v
		default:
			return mcp.NewToolResultError(fmt.Sprintf("unknown export format: %s", v)), nil
		}
	}
	if f := floatArg(args, "export_scale"); f != nil {
		saved.ExportScale = *f
	}
	if v := req.GetString("device_frame", ""); v != "" {
		saved.DeviceFrame = v
	}
	if v := req.GetString("theme", ""); v != "" {
		saved.Theme = v
	}

	if err := h.prefs.Save(saved); err != nil {
		return nil, err
	}
	return mcp.NewToolResultText("preferences saved"), nil
}
