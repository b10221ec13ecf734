package server

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ihiteshsharma/mcp-servers/internal/catalog"
)

const (
	templatesURI  = "design://templates"
	componentsURI = "design://components"
	tokensURI     = "design://tokens"
)

func registerResources(s *server.MCPServer) {
	s.AddResource(mcp.NewResource(templatesURI, "Wireframe templates",
		mcp.WithResourceDescription("Predefined wireframe starting points"),
		mcp.WithMIMEType("application/json"),
	), jsonResource(templatesURI, func() any { return catalog.Templates() }))

	s.AddResource(mcp.NewResource(componentsURI, "Component library",
		mcp.WithResourceDescription("Reusable components available to add_element"),
		mcp.WithMIMEType("application/json"),
	), jsonResource(componentsURI, func() any { return catalog.Components() }))

	s.AddResource(mcp.NewResource(tokensURI, "Design tokens",
		mcp.WithResourceDescription("Named design values available to style_element"),
		mcp.WithMIMEType("application/json"),
	), jsonResource(tokensURI, func() any { return catalog.Tokens() }))
}

func jsonResource(uri string, value func() any) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		data, err := json.MarshalIndent(value(), "", "  ")
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      uri,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
