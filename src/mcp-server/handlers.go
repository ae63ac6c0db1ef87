// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"fmt"
	"maps"
	"strings"
	"sync"
	"text/template"

	"github.com/H0llyW00dzZ/business-associate-mcp/src/mcp-server/templates"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// instructionsTemplate is the embedded template rendered into the server instructions.
const instructionsTemplate = "BA_instructions.md"

// instructionData holds the data used to populate the MCP server instructions template.
type instructionData struct {
	Tools     []toolInfo
	ToolRoles map[string]string // Maps tool roles to tool names for template use
}

// toolInfo represents information about an MCP tool for template rendering.
type toolInfo struct {
	Name        string
	Description string
}

// loadInstructions renders the instructions template from embed with the
// registered tools, so the text sent to clients always names the tools the
// server actually exposes.
func loadInstructions(embed templates.EmbedFS, tools []ToolDefinition, toolsWithAssociates []ToolDefinitionWithAssociates) (string, error) {
	templateBytes, err := embed.ReadFile(instructionsTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to load MCP server instructions template: %w", err)
	}

	data := instructionData{ToolRoles: make(map[string]string)}
	add := func(tool mcp.Tool, role string) {
		data.Tools = append(data.Tools, toolInfo{Name: tool.Name, Description: tool.Description})
		if role != "" {
			data.ToolRoles[role] = tool.Name
		}
	}
	for _, tool := range tools {
		add(tool.Tool, tool.Role)
	}
	for _, tool := range toolsWithAssociates {
		add(tool.Tool, tool.Role)
	}

	// missingkey=error makes a renamed role fail loudly instead of rendering "<no value>".
	tmpl, err := template.New("instructions").Option("missingkey=error").Parse(string(templateBytes))
	if err != nil {
		return "", fmt.Errorf("failed to parse instructions template: %w", err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute instructions template: %w", err)
	}

	return buf.String(), nil
}

// serverCache holds metadata about the registered capabilities for the
// version and status resources.
type serverCache struct {
	mu        sync.RWMutex
	prompts   []map[string]any
	tools     []map[string]any
	resources []map[string]any
	remote    string
}

var (
	cache     *serverCache
	cacheOnce sync.Once
)

// getServerCache returns the lazily initialized server cache.
func getServerCache() *serverCache {
	cacheOnce.Do(func() {
		cache = &serverCache{}
	})
	return cache
}

// capabilities returns a snapshot of the cached metadata keyed the way the
// resources publish it.
func (c *serverCache) capabilities() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return map[string]any{
		"tools":     c.tools,
		"resources": c.resources,
		"prompts":   c.prompts,
	}
}

// baseURL returns the remote API base URL recorded by the last populated build.
func (c *serverCache) baseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.remote
}

func (c *serverCache) setBaseURL(u string) {
	c.mu.Lock()
	c.remote = u
	c.mu.Unlock()
}

// populateToolMetadataCache extracts name and description from the tools.
func populateToolMetadataCache(serverCache *serverCache, tools []ToolDefinition, toolsWithAssociates []ToolDefinitionWithAssociates) {
	all := make([]map[string]any, 0, len(tools)+len(toolsWithAssociates))
	for _, toolDef := range tools {
		all = append(all, toolMetadata(toolDef.Tool, false))
	}
	for _, toolDef := range toolsWithAssociates {
		all = append(all, toolMetadata(toolDef.Tool, true))
	}

	serverCache.mu.Lock()
	serverCache.tools = all
	serverCache.mu.Unlock()
}

func toolMetadata(tool mcp.Tool, remote bool) map[string]any {
	return map[string]any{
		"name":        tool.Name,
		"description": tool.Description,
		"remote":      remote,
	}
}

// populatePromptMetadataCache extracts metadata from the prompts, including their arguments.
func populatePromptMetadataCache(serverCache *serverCache, prompts []server.ServerPrompt) {
	out := make([]map[string]any, 0, len(prompts))

	for _, promptDef := range prompts {
		prompt := promptDef.Prompt
		metadata := map[string]any{
			"name":        prompt.Name,
			"description": prompt.Description,
		}

		if len(prompt.Arguments) > 0 {
			args := make([]map[string]any, 0, len(prompt.Arguments))
			for _, arg := range prompt.Arguments {
				args = append(args, map[string]any{
					"name":        arg.Name,
					"description": arg.Description,
					"required":    arg.Required,
				})
			}
			metadata["arguments"] = args
		}

		if meta := metaFields(prompt.Meta); len(meta) > 0 {
			metadata["meta"] = meta
		}

		out = append(out, metadata)
	}

	serverCache.mu.Lock()
	serverCache.prompts = out
	serverCache.mu.Unlock()
}

// populateResourceMetadataCache extracts metadata from the resources.
func populateResourceMetadataCache(serverCache *serverCache, resources []server.ServerResource) {
	out := make([]map[string]any, 0, len(resources))

	for _, resourceDef := range resources {
		resource := resourceDef.Resource
		metadata := map[string]any{
			"uri":         resource.URI,
			"name":        resource.Name,
			"description": resource.Description,
			"mimeType":    resource.MIMEType,
		}
		if meta := metaFields(resource.Meta); len(meta) > 0 {
			metadata["meta"] = meta
		}
		out = append(out, metadata)
	}

	serverCache.mu.Lock()
	serverCache.resources = out
	serverCache.mu.Unlock()
}

// metaFields copies the additional meta fields, dropping an empty
// progressToken the library may set.
func metaFields(meta *mcp.Meta) map[string]any {
	if meta == nil {
		return nil
	}
	out := make(map[string]any, len(meta.AdditionalFields))
	maps.Copy(out, meta.AdditionalFields)
	if token, ok := out["progressToken"]; ok && (token == nil || token == "" || token == "null") {
		delete(out, "progressToken")
	}
	return out
}
