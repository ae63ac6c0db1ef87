// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"fmt"

	"github.com/H0llyW00dzZ/business-associate-mcp/src/mcp-server/templates"
	"github.com/H0llyW00dzZ/business-associate-mcp/src/version"
)

var appVersion = version.Version // default version

// GetVersion returns the current version of the MCP server.
//
// The version is initially set to the default from the version package,
// but can be overridden when calling Run() with a specific version string.
func GetVersion() string {
	return appVersion
}

// NewDefaultFramework assembles the default tools, resources, prompts and
// instructions into a [CLIFramework].
func NewDefaultFramework(version, configFile string) (*CLIFramework, error) {
	appVersion = version

	tools, toolsWithAssociates := createTools()

	instructions, err := loadInstructions(templates.MagicEmbed, tools, toolsWithAssociates)
	if err != nil {
		return nil, fmt.Errorf("failed to load instructions: %w", err)
	}

	return NewCLIFramework(configFile, ServerDependencies{
		Embed:               templates.MagicEmbed,
		Version:             version,
		Tools:               tools,
		ToolsWithAssociates: toolsWithAssociates,
		Resources:           createResources(),
		Prompts:             createPrompts(),
		Instructions:        instructions,
		PopulateCache:       true,
	}), nil
}

// Run starts the business associate command line.
//
// Without a subcommand it serves the MCP tools over the configured transport
// until SIGINT or SIGTERM; with a subcommand it runs that operation against
// the remote API. The configuration file comes from the --config flag, then
// the MCP_BA_CONFIG_FILE environment variable, then the defaults.
//
// Returns:
//   - error: Configuration, startup, transport or subcommand errors.
//     A signal-initiated shutdown returns nil.
func Run(version string) error {
	framework, err := NewDefaultFramework(version, "")
	if err != nil {
		return err
	}
	return framework.BuildRootCommand().ExecuteContext(context.Background())
}
