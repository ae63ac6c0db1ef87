// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/H0llyW00dzZ/business-associate-mcp/src/mcp-server/templates"
	"github.com/H0llyW00dzZ/business-associate-mcp/src/version"
	"github.com/mark3labs/mcp-go/mcp"
)

// jsonResource marshals v and wraps it as a single JSON resource content.
func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", uri, err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}

// handleConfigResource handles requests for the configuration template resource.
// It returns the default configuration, which doubles as a template showing
// every key the server reads.
func handleConfigResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(resourceConfigTemplate, defaultConfig())
}

// handleVersionResource handles requests for version information resource.
//
// The capabilities are read from the metadata cache filled by
// [ServerBuilder.WithPopulate]; they are empty when the cache was not populated.
func handleVersionResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	versionInfo := map[string]any{
		"name":         serverName,
		"version":      version.Version,
		"type":         "MCP Server",
		"capabilities": getServerCache().capabilities(),
		"transports":   []string{transportStdio, transportHTTP},
	}
	return jsonResource(resourceVersion, versionInfo)
}

// handleAPIDocsResource serves the embedded documentation of the remote API.
func handleAPIDocsResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	content, err := templates.MagicEmbed.ReadFile("business-associate-api.md")
	if err != nil {
		return nil, fmt.Errorf("failed to read business associate API documentation: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      resourceAPIDocs,
			MIMEType: "text/markdown",
			Text:     string(content),
		},
	}, nil
}

// handleStatusResource handles requests for server status information resource.
//
// The status includes server health, timestamp, version, the remote API base
// URL the server was started with, and the cached capabilities.
func handleStatusResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	statusInfo := map[string]any{
		"status":       "healthy",
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
		"server":       serverName,
		"version":      version.Version,
		"remoteApi":    getServerCache().baseURL(),
		"capabilities": getServerCache().capabilities(),
	}
	return jsonResource(resourceStatus, statusInfo)
}
