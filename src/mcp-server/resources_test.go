// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/H0llyW00dzZ/business-associate-mcp/src/version"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/mcptest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readResource(t *testing.T, handler ResourceHandler, uri string) mcp.TextResourceContents {
	t.Helper()
	var req mcp.ReadResourceRequest
	req.Params.URI = uri
	contents, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, contents, 1)
	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok, "expected text contents, got %T", contents[0])
	assert.Equal(t, uri, text.URI)
	return text
}

func TestCreateResources(t *testing.T) {
	resources := createResources()
	uris := make([]string, 0, len(resources))
	for _, r := range resources {
		uris = append(uris, r.Resource.URI)
		assert.NotEmpty(t, r.Resource.Name)
		assert.NotEmpty(t, r.Resource.MIMEType)
		assert.NotNil(t, r.Handler)
	}
	assert.Equal(t, []string{
		"config://template",
		"info://version",
		"docs://business-associate-api",
		"status://server-status",
	}, uris)
}

func TestHandleConfigResource(t *testing.T) {
	text := readResource(t, handleConfigResource, resourceConfigTemplate)
	assert.Equal(t, "application/json", text.MIMEType)

	var config Config
	require.NoError(t, json.Unmarshal([]byte(text.Text), &config))
	assert.Equal(t, *defaultConfig(), config)
	assert.Contains(t, text.Text, `"baseUrl"`)
	assert.Contains(t, text.Text, `"endpointPath"`)
}

func TestHandleVersionResource(t *testing.T) {
	text := readResource(t, handleVersionResource, resourceVersion)

	var info map[string]any
	require.NoError(t, json.Unmarshal([]byte(text.Text), &info))
	assert.Equal(t, serverName, info["name"])
	assert.Equal(t, version.Version, info["version"])
	assert.Contains(t, info, "capabilities")
	assert.ElementsMatch(t, []any{"stdio", "http"}, info["transports"])
}

func TestHandleAPIDocsResource(t *testing.T) {
	text := readResource(t, handleAPIDocsResource, resourceAPIDocs)
	assert.Equal(t, "text/markdown", text.MIMEType)
	assert.Contains(t, text.Text, "Business Associate HTTP API")
}

func TestHandleStatusResource(t *testing.T) {
	getServerCache().setBaseURL("http://erp.example")

	text := readResource(t, handleStatusResource, resourceStatus)
	var status map[string]any
	require.NoError(t, json.Unmarshal([]byte(text.Text), &status))
	assert.Equal(t, "healthy", status["status"])
	assert.Equal(t, serverName, status["server"])
	assert.Equal(t, "http://erp.example", status["remoteApi"])
	assert.NotEmpty(t, status["timestamp"])
}

func TestResourcesOverMCP(t *testing.T) {
	srv := mcptest.NewUnstartedServer(t)
	srv.AddResources(createResources()...)
	ctx := context.Background()
	require.NoError(t, srv.Start(ctx))
	defer srv.Close()

	var req mcp.ReadResourceRequest
	req.Params.URI = resourceAPIDocs
	res, err := srv.Client().ReadResource(ctx, req)
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	text, ok := res.Contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Contains(t, text.Text, "Partial updates")
}
