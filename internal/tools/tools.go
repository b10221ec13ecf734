// Package tools exposes the design commands as MCP tools. Each handler
// validates its arguments, builds the typed command payload, sends it
// through the bridge, and wraps the host's reply as a tool result.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ihiteshsharma/mcp-servers/internal/bridge"
	"github.com/ihiteshsharma/mcp-servers/internal/prefs"
	"github.com/ihiteshsharma/mcp-servers/internal/wire"
)

// Caller sends one command to the host and returns its correlated
// reply payload. Implemented by bridge.Bridge.
type Caller interface {
	Call(ctx context.Context, kind wire.CommandKind, params any) (json.RawMessage, error)
}

// Handler holds the dependencies shared by every tool.
type Handler struct {
	caller Caller
	prefs  *prefs.Store
	logger *slog.Logger
}

// NewHandler creates the tool handler set.
func NewHandler(caller Caller, store *prefs.Store, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{caller: caller, prefs: store, logger: logger}
}

// Register adds every design tool to the MCP server.
func (h *Handler) Register(s *server.MCPServer) {
	s.AddTool(createWireframeTool(), h.HandleCreateWireframe)
	s.AddTool(addElementTool(), h.HandleAddElement)
	s.AddTool(styleElementTool(), h.HandleStyleElement)
	s.AddTool(modifyElementTool(), h.HandleModifyElement)
	s.AddTool(arrangeLayoutTool(), h.HandleArrangeLayout)
	s.AddTool(exportDesignTool(), h.HandleExportDesign)
	s.AddTool(getSelectionTool(), h.HandleGetSelection)
	s.AddTool(getCurrentPageTool(), h.HandleGetCurrentPage)
	s.AddTool(getPreferencesTool(), h.HandleGetPreferences)
	s.AddTool(setPreferencesTool(), h.HandleSetPreferences)
}

// call sends the command and converts the outcome to a tool result.
// Host-reported failures become tool errors the model can read;
// transport failures propagate as Go errors.
func (h *Handler) call(ctx context.Context, kind wire.CommandKind, params any) (*mcp.CallToolResult, error) {
	result, err := h.caller.Call(ctx, kind, params)
	if err != nil {
		var remote *bridge.RemoteError
		if errors.As(err, &remote) {
			return mcp.NewToolResultError(remote.Message), nil
		}
		return nil, fmt.Errorf("calling host: %w", err)
	}
	return structuredResult(result), nil
}

func structuredResult(raw json.RawMessage) *mcp.CallToolResult {
	if len(raw) == 0 {
		return mcp.NewToolResultText("ok")
	}
	var value map[string]any
	if err := json.Unmarshal(raw, &value); err != nil {
		return mcp.NewToolResultText(string(raw))
	}
	return mcp.NewToolResultStructuredOnly(value)
}

// floatArg returns a pointer to the value only when the argument was
// explicitly supplied.
func floatArg(args map[string]any, key string) *float64 {
	v, ok := args[key]
	if !ok {
		return nil
	}
	f, ok := v.(float64)
	if !ok {
		return nil
	}
	return &f
}

func boolArg(args map[string]any, key string) *bool {
	v, ok := args[key]
	if !ok {
		return nil
	}
	b, ok := v.(bool)
	if !ok {
		return nil
	}
	return &b
}
