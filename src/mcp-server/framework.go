// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"net/http"

	ba "github.com/H0llyW00dzZ/business-associate-mcp/src/internal/businessassociate"
	"github.com/H0llyW00dzZ/business-associate-mcp/src/logger"
	"github.com/H0llyW00dzZ/business-associate-mcp/src/mcp-server/templates"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// serverName is reported to MCP clients during initialization.
const serverName = "Business Associate MCP Server"

// AssociateService is the set of remote operations the business associate
// tools call. [*ba.Client] satisfies it; tests substitute fakes.
type AssociateService interface {
	List(ctx context.Context, entityType string) ([]ba.BusinessAssociate, error)
	Create(ctx context.Context, entityType string, in ba.CreateInput) (*ba.BusinessAssociate, error)
	Update(ctx context.Context, entityType string, id int, in ba.UpdateInput) (*ba.BusinessAssociate, error)
	Delete(ctx context.Context, entityType string, id int) (bool, error)
}

// ToolHandler defines the signature for tool handlers that matches [MCP] server expectations.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
type ToolHandler = func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

// ToolHandlerWithAssociates defines tool handlers that call the remote
// business associate API. The service is injected by [ServerBuilder.Build].
type ToolHandlerWithAssociates func(ctx context.Context, request mcp.CallToolRequest, associates AssociateService) (*mcp.CallToolResult, error)

// ResourceHandler defines the signature for resource handlers.
type ResourceHandler = func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error)

// PromptHandler defines the signature for prompt handlers.
type PromptHandler = func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error)

// ToolDefinition holds a tool definition and its handler.
//
// Role names the tool inside the instructions template, so the template can
// refer to a tool by purpose instead of by its registered name.
type ToolDefinition struct {
	Tool    mcp.Tool
	Handler ToolHandler
	Role    string
}

// ToolDefinitionWithAssociates holds a tool definition whose handler needs the
// business associate service.
type ToolDefinitionWithAssociates struct {
	Tool    mcp.Tool
	Handler ToolHandlerWithAssociates
	Role    string
}

// ServerDependencies holds all dependencies needed to create the MCP server.
//
// Fields:
//   - Config: Server configuration, used to build the default associate service
//   - Embed: Embedded filesystem for templates and documentation
//   - Version: Server version string
//   - Associates: Remote business associate operations (optional, built from Config when nil)
//   - Logger: Destination for server and adapter logs (optional)
//   - Tools: Tool definitions without remote dependencies
//   - ToolsWithAssociates: Tool definitions that call the remote API
//   - Resources: Static and dynamic resources
//   - Prompts: Predefined prompts for guided workflows
//   - Instructions: Instructions sent to clients during initialization
//   - PopulateCache: Whether Build fills the metadata cache read by resources
type ServerDependencies struct {
	Config              *Config
	Embed               templates.EmbedFS
	Version             string
	Associates          AssociateService
	Logger              logger.Logger
	Tools               []ToolDefinition
	ToolsWithAssociates []ToolDefinitionWithAssociates
	Resources           []server.ServerResource
	Prompts             []server.ServerPrompt
	Instructions        string
	PopulateCache       bool
}

// ServerBuilder helps construct the [MCP] server with proper dependencies using a fluent interface.
//
// Example:
//
//	s, err := NewServerBuilder().
//	    WithConfig(config).
//	    WithVersion("1.0.0").
//	    WithDefaultTools().
//	    Build()
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
type ServerBuilder struct{ deps ServerDependencies }

// NewServerBuilder creates a new server builder with default empty dependencies.
func NewServerBuilder() *ServerBuilder { return &ServerBuilder{} }

// WithConfig sets the server configuration.
func (b *ServerBuilder) WithConfig(config *Config) *ServerBuilder {
	b.deps.Config = config
	return b
}

// WithEmbed sets the embedded filesystem for static resources and templates.
func (b *ServerBuilder) WithEmbed(embed templates.EmbedFS) *ServerBuilder {
	b.deps.Embed = embed
	return b
}

// WithVersion sets the server version string used for identification and User-Agent headers.
func (b *ServerBuilder) WithVersion(version string) *ServerBuilder {
	b.deps.Version = version
	return b
}

// WithAssociates sets the service the business associate tools call.
//
// When not set, Build creates a [ba.Client] for the configured base URL.
func (b *ServerBuilder) WithAssociates(associates AssociateService) *ServerBuilder {
	b.deps.Associates = associates
	return b
}

// WithLogger sets the logger for the server and the default associate service.
func (b *ServerBuilder) WithLogger(l logger.Logger) *ServerBuilder {
	b.deps.Logger = l
	return b
}

// WithTools adds tool definitions that need no remote access.
func (b *ServerBuilder) WithTools(tools ...ToolDefinition) *ServerBuilder {
	b.deps.Tools = append(b.deps.Tools, tools...)
	return b
}

// WithToolsWithAssociates adds tool definitions that call the remote API.
func (b *ServerBuilder) WithToolsWithAssociates(tools ...ToolDefinitionWithAssociates) *ServerBuilder {
	b.deps.ToolsWithAssociates = append(b.deps.ToolsWithAssociates, tools...)
	return b
}

// WithDefaultTools adds the add tool and the business associate tools.
func (b *ServerBuilder) WithDefaultTools() *ServerBuilder {
	tools, toolsWithAssociates := createTools()
	b.deps.Tools = append(b.deps.Tools, tools...)
	b.deps.ToolsWithAssociates = append(b.deps.ToolsWithAssociates, toolsWithAssociates...)
	return b
}

// WithResources adds static and dynamic resources to the MCP server.
// Clients access resources using URIs like "info://version".
func (b *ServerBuilder) WithResources(resources ...server.ServerResource) *ServerBuilder {
	b.deps.Resources = append(b.deps.Resources, resources...)
	return b
}

// WithPrompts adds predefined prompts to the MCP server for guided workflows.
func (b *ServerBuilder) WithPrompts(prompts ...server.ServerPrompt) *ServerBuilder {
	b.deps.Prompts = append(b.deps.Prompts, prompts...)
	return b
}

// WithInstructions sets the instructions sent to clients during initialization.
func (b *ServerBuilder) WithInstructions(instructions string) *ServerBuilder {
	b.deps.Instructions = instructions
	return b
}

// WithPopulate makes Build fill the metadata cache used by the version and
// status resources.
func (b *ServerBuilder) WithPopulate() *ServerBuilder {
	b.deps.PopulateCache = true
	return b
}

// Build creates the [MCP] server with all configured dependencies.
//
// Missing configuration falls back to defaults, and a missing associate
// service is replaced by a [ba.Client] honoring the configured base URL and
// timeout. Panics raised by handlers are recovered and reported to the client
// as errors.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
func (b *ServerBuilder) Build() (*server.MCPServer, error) {
	config := b.deps.Config
	if config == nil {
		config = defaultConfig()
	}

	log := b.deps.Logger
	if log == nil {
		log = logger.NewMCPLogger(nil, true)
	}

	associates := b.deps.Associates
	if associates == nil {
		associates = newAssociateClient(config, b.deps.Version, log)
	}

	opts := []server.ServerOption{
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
	}
	if b.deps.Instructions != "" {
		opts = append(opts, server.WithInstructions(b.deps.Instructions))
	}

	s := server.NewMCPServer(serverName, b.deps.Version, opts...)

	for _, tool := range b.deps.Tools {
		s.AddTool(tool.Tool, tool.Handler)
	}

	for _, tool := range b.deps.ToolsWithAssociates {
		handler := func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return tool.Handler(ctx, request, associates)
		}
		s.AddTool(tool.Tool, handler)
	}

	for _, resource := range b.deps.Resources {
		s.AddResource(resource.Resource, resource.Handler)
	}

	for _, prompt := range b.deps.Prompts {
		s.AddPrompt(prompt.Prompt, prompt.Handler)
	}

	if b.deps.PopulateCache {
		cache := getServerCache()
		populateToolMetadataCache(cache, b.deps.Tools, b.deps.ToolsWithAssociates)
		populateResourceMetadataCache(cache, b.deps.Resources)
		populatePromptMetadataCache(cache, b.deps.Prompts)
		cache.setBaseURL(config.API.BaseURL)
	}

	return s, nil
}

// newAssociateClient builds the adapter used when no service is injected.
func newAssociateClient(config *Config, version string, log logger.Logger) *ba.Client {
	opts := []ba.Option{ba.WithLogger(log)}
	if ua := userAgent(version); ua != "" {
		opts = append(opts, ba.WithUserAgent(ua))
	}
	return ba.New(config.API.BaseURL, &http.Client{Timeout: config.Timeout()}, opts...)
}

// userAgent is the User-Agent sent to the remote API, empty when version is unknown.
func userAgent(version string) string {
	if version == "" {
		return ""
	}
	return "Business-Associate-MCP/" + version
}
