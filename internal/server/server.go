// Package server wires the MCP server: bridge, tools, catalog
// resources and preferences. No domain logic lives here, only
// construction and registration.
package server

import (
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/ihiteshsharma/mcp-servers/internal/bridge"
	"github.com/ihiteshsharma/mcp-servers/internal/config"
	"github.com/ihiteshsharma/mcp-servers/internal/prefs"
	"github.com/ihiteshsharma/mcp-servers/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New builds the MCP server. The returned cleanup shuts the bridge
// down and must be called on exit; it is always non-nil.
func New(cfg *config.Config, logger *slog.Logger) (*server.MCPServer, func(), error) {
	if cfg.Host.Command == "" {
		// No host configured: run our own binary in host mode so the
		// adapter works out of the box against the in-memory document.
		exe, err := os.Executable()
		if err != nil {
			return nil, func() {}, err
		}
		cfg.Host = config.HostConfig{Command: exe, Args: []string{"__host"}}
	}

	br, err := bridge.New(cfg, logger)
	if err != nil {
		return nil, func() {}, err
	}

	store := prefs.NewStore("")
	handler := tools.NewHandler(br, store, logger)

	s := server.NewMCPServer(
		"designmcp",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithRecovery(),
	)

	handler.Register(s)
	registerResources(s)

	cleanup := func() {
		br.Shutdown()
	}
	return s, cleanup, nil
}
