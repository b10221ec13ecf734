package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/ihiteshsharma/mcp-servers/internal/config"
	"github.com/ihiteshsharma/mcp-servers/internal/devhost"
	"github.com/ihiteshsharma/mcp-servers/internal/server"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "__host" {
		if err := devhost.Run(os.Stdin, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "designmcp host: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "designmcp: %v\n", err)
		os.Exit(1)
	}

	// stdout carries the MCP protocol; all logging goes to stderr.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))

	srv, cleanup, err := server.New(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "designmcp: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	if err := mcpserver.ServeStdio(srv); err != nil {
		fmt.Fprintf(os.Stderr, "designmcp: %v\n", err)
		os.Exit(1)
	}
}

func logLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
