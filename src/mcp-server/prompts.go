// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// createPrompts creates and returns all MCP prompt definitions with their handlers
func createPrompts() []server.ServerPrompt {
	return []server.ServerPrompt{
		{
			Prompt: mcp.NewPrompt("vendor-onboarding",
				mcp.WithPromptDescription("Create a business associate and verify it was stored by the remote system"),
				mcp.WithArgument("name",
					mcp.ArgumentDescription("Name of the business associate to create"),
					mcp.RequiredArgument(),
				),
				mcp.WithArgument(paramType,
					mcp.ArgumentDescription("Business associate type (default: vendor)"),
				),
				mcp.WithArgument("vendor_code",
					mcp.ArgumentDescription("SAP vendor code, if known"),
				),
				mcp.WithArgument("company_code",
					mcp.ArgumentDescription("SAP company code, if known"),
				),
			),
			Handler: handleVendorOnboardingPrompt,
		},
		{
			Prompt: mcp.NewPrompt("associate-cleanup",
				mcp.WithPromptDescription("Review business associates of a type and delete the selected records"),
				mcp.WithArgument(paramType,
					mcp.ArgumentDescription("Business associate type to review (default: vendor)"),
				),
				mcp.WithArgument("criteria",
					mcp.ArgumentDescription("Description of the records to remove, for example 'records without a vendor code'"),
				),
			),
			Handler: handleAssociateCleanupPrompt,
		},
	}
}
