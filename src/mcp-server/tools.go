// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Tool parameter names shared by the business associate tools.
const (
	paramType        = "ba_type"
	paramID          = "id"
	paramName        = "name"
	paramVendor      = "sap_vendor"
	paramCustomer    = "sap_customer"
	paramCompanyCode = "sap_company_code"
	paramFormat      = "format"
)

// createTools creates and returns all MCP tool definitions with their handlers.
//
// Returns:
//   - A slice of ToolDefinition for tools without remote dependencies (add)
//   - A slice of ToolDefinitionWithAssociates for tools that call the remote API
//
// A parameter marked optional counts as supplied only when the caller includes
// it in the call arguments.
func createTools() ([]ToolDefinition, []ToolDefinitionWithAssociates) {
	tools := []ToolDefinition{
		{
			Tool: mcp.NewTool("add",
				mcp.WithDescription("Adds two numbers together"),
				mcp.WithNumber("a",
					mcp.Required(),
					mcp.Description("First number"),
				),
				mcp.WithNumber("b",
					mcp.Required(),
					mcp.Description("Second number"),
				),
			),
			Handler: handleAdd,
			Role:    "calculator",
		},
	}

	toolsWithAssociates := []ToolDefinitionWithAssociates{
		{
			Tool: mcp.NewTool("get_business_associates",
				mcp.WithDescription("List business associates of a given type from the remote system"),
				mcp.WithString(paramType,
					mcp.Required(),
					mcp.Description("Business associate type, for example 'vendor' or 'customer'"),
				),
				mcp.WithString(paramFormat,
					mcp.Description("Output format: 'json' or 'markdown' (default: json)"),
					mcp.DefaultString("json"),
					mcp.Enum("json", "markdown"),
				),
			),
			Handler: handleGetBusinessAssociates,
			Role:    "lister",
		},
		{
			Tool: mcp.NewTool("create_business_associate",
				mcp.WithDescription("Create a business associate; only the supplied optional fields are sent"),
				mcp.WithString(paramType,
					mcp.Required(),
					mcp.Description("Business associate type, for example 'vendor' or 'customer'"),
				),
				mcp.WithString(paramName,
					mcp.Required(),
					mcp.Description("Business associate name"),
				),
				mcp.WithString(paramVendor,
					mcp.Description("SAP vendor code (optional)"),
				),
				mcp.WithString(paramCustomer,
					mcp.Description("SAP customer code (optional)"),
				),
				mcp.WithNumber(paramCompanyCode,
					mcp.Description("SAP company code, an integer (optional)"),
				),
			),
			Handler: handleCreateBusinessAssociate,
			Role:    "creator",
		},
		{
			Tool: mcp.NewTool("update_business_associate",
				mcp.WithDescription("Update a business associate; empty strings and omitted fields are left unchanged"),
				mcp.WithString(paramType,
					mcp.Required(),
					mcp.Description("Business associate type, for example 'vendor' or 'customer'"),
				),
				mcp.WithNumber(paramID,
					mcp.Required(),
					mcp.Description("BAID of the record to update"),
				),
				mcp.WithString(paramName,
					mcp.Description("New name (optional)"),
				),
				mcp.WithString(paramVendor,
					mcp.Description("New SAP vendor code (optional)"),
				),
				mcp.WithString(paramCustomer,
					mcp.Description("New SAP customer code (optional)"),
				),
				mcp.WithNumber(paramCompanyCode,
					mcp.Description("New SAP company code, an integer (optional)"),
				),
			),
			Handler: handleUpdateBusinessAssociate,
			Role:    "updater",
		},
		{
			Tool: mcp.NewTool("delete_business_associate",
				mcp.WithDescription("Delete a business associate and report whether the remote system confirmed it"),
				mcp.WithString(paramType,
					mcp.Required(),
					mcp.Description("Business associate type, for example 'vendor' or 'customer'"),
				),
				mcp.WithNumber(paramID,
					mcp.Required(),
					mcp.Description("BAID of the record to delete"),
				),
			),
			Handler: handleDeleteBusinessAssociate,
			Role:    "deleter",
		},
	}

	return tools, toolsWithAssociates
}
