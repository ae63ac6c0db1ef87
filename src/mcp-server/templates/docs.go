// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package templates provides embedded filesystem access for MCP server template files.
//
// The embedded markdown files are:
//   - BA_instructions.md: server instructions, rendered with the registered tools
//   - cli_help.md: long help and examples of the root command
//   - business-associate-api.md: documentation of the remote HTTP API
//   - vendor-onboarding.md, associate-cleanup.md: prompt workflows
//
// [MagicEmbed] is the default [EmbedFS]; tests and callers that need other
// content can supply their own implementation.
//
// Example usage:
//
//	content, err := templates.MagicEmbed.ReadFile("business-associate-api.md")
//	if err != nil {
//		return fmt.Errorf("failed to read API documentation: %w", err)
//	}
package templates
