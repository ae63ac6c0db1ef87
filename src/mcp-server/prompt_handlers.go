// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/H0llyW00dzZ/business-associate-mcp/src/mcp-server/templates"
	"github.com/mark3labs/mcp-go/mcp"
)

// defaultPromptType is used when a prompt is requested without a ba_type argument.
const defaultPromptType = "vendor"

// promptTemplateData holds the data used to populate prompt templates.
type promptTemplateData struct {
	Name        string
	Type        string
	VendorCode  string
	CompanyCode string
	Criteria    string
	ListTool    string
	CreateTool  string
	DeleteTool  string
}

// newPromptTemplateData fills the tool names from the registered tool roles,
// so prompts keep naming the right tools if a tool is renamed.
func newPromptTemplateData(entityType string) promptTemplateData {
	if entityType == "" {
		entityType = defaultPromptType
	}
	roles := toolRoles()
	return promptTemplateData{
		Type:       entityType,
		ListTool:   roles["lister"],
		CreateTool: roles["creator"],
		DeleteTool: roles["deleter"],
	}
}

// toolRoles maps each tool role to the name of the default tool with that role.
func toolRoles() map[string]string {
	tools, toolsWithAssociates := createTools()
	roles := make(map[string]string, len(tools)+len(toolsWithAssociates))
	for _, tool := range tools {
		roles[tool.Role] = tool.Tool.Name
	}
	for _, tool := range toolsWithAssociates {
		roles[tool.Role] = tool.Tool.Name
	}
	return roles
}

// parsePromptTemplate parses a prompt template file and converts it to MCP messages.
//
// The template is read from the embedded filesystem and executed with data.
// Lines following a "### Assistant:" or "### User:" marker become one message
// with that role; other markdown headers and blank lines are dropped.
func parsePromptTemplate(templateName string, data promptTemplateData) ([]mcp.PromptMessage, error) {
	templateContent, err := templates.MagicEmbed.ReadFile(templateName + ".md")
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", templateName, err)
	}

	tmpl, err := template.New(templateName).Parse(string(templateContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", templateName, err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}

	var (
		messages       []mcp.PromptMessage
		currentRole    mcp.Role
		currentContent strings.Builder
	)

	flush := func() {
		if currentContent.Len() > 0 {
			messages = append(messages, mcp.NewPromptMessage(
				currentRole,
				mcp.NewTextContent(strings.TrimSpace(currentContent.String())),
			))
			currentContent.Reset()
		}
	}

	for line := range strings.SplitSeq(buf.String(), "\n") {
		line = strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(line, "### Assistant:"):
			flush()
			currentRole = mcp.RoleAssistant
			continue
		case strings.HasPrefix(line, "### User:"):
			flush()
			currentRole = mcp.RoleUser
			continue
		case line == "" || strings.HasPrefix(line, "#"):
			continue
		}

		if currentRole != "" {
			if currentContent.Len() > 0 {
				currentContent.WriteString("\n")
			}
			currentContent.WriteString(line)
		}
	}
	flush()

	return messages, nil
}

// handleVendorOnboardingPrompt handles the vendor onboarding workflow prompt.
//
// Expected arguments in request.Params.Arguments:
//   - name: Name of the business associate (required)
//   - ba_type: Business associate type, "vendor" when empty
//   - vendor_code, company_code: Optional SAP codes to include in the create call
func handleVendorOnboardingPrompt(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	args := request.Params.Arguments
	name := strings.TrimSpace(args["name"])
	if name == "" {
		return nil, fmt.Errorf("prompt argument %q is required", "name")
	}

	data := newPromptTemplateData(args[paramType])
	data.Name = name
	data.VendorCode = args["vendor_code"]
	data.CompanyCode = args["company_code"]

	messages, err := parsePromptTemplate("vendor-onboarding", data)
	if err != nil {
		return nil, err
	}

	return mcp.NewGetPromptResult(
		"Business Associate Onboarding",
		messages,
	), nil
}

// handleAssociateCleanupPrompt handles the cleanup workflow prompt.
func handleAssociateCleanupPrompt(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	args := request.Params.Arguments

	data := newPromptTemplateData(args[paramType])
	data.Criteria = args["criteria"]

	messages, err := parsePromptTemplate("associate-cleanup", data)
	if err != nil {
		return nil, err
	}

	return mcp.NewGetPromptResult(
		"Business Associate Cleanup",
		messages,
	), nil
}
