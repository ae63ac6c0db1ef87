// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Resource URIs served by the MCP server.
const (
	resourceConfigTemplate = "config://template"
	resourceVersion        = "info://version"
	resourceAPIDocs        = "docs://business-associate-api"
	resourceStatus         = "status://server-status"
)

// createResources creates and returns all MCP resource definitions with their handlers.
//
// Resources include the configuration template, version information, the
// remote API documentation, and server status.
func createResources() []server.ServerResource {
	return []server.ServerResource{
		{
			Resource: mcp.NewResource(
				resourceConfigTemplate,
				"Server Configuration Template",
				mcp.WithResourceDescription("Example configuration file with every supported key and its default value"),
				mcp.WithMIMEType("application/json"),
			),
			Handler: handleConfigResource,
		},
		{
			Resource: mcp.NewResource(
				resourceVersion,
				"Version Information",
				mcp.WithResourceDescription("Server version and registered capabilities"),
				mcp.WithMIMEType("application/json"),
			),
			Handler: handleVersionResource,
		},
		{
			Resource: mcp.NewResource(
				resourceAPIDocs,
				"Business Associate API",
				mcp.WithResourceDescription("Routes, payloads and response envelope of the remote business associate API"),
				mcp.WithMIMEType("text/markdown"),
			),
			Handler: handleAPIDocsResource,
		},
		{
			Resource: mcp.NewResource(
				resourceStatus,
				"Server Status",
				mcp.WithResourceDescription("Current server health and the configured remote API"),
				mcp.WithMIMEType("application/json"),
			),
			Handler: handleStatusResource,
		},
	}
}
