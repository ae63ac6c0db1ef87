// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promptRequest(args map[string]string) mcp.GetPromptRequest {
	var req mcp.GetPromptRequest
	req.Params.Arguments = args
	return req
}

func promptText(t *testing.T, res *mcp.GetPromptResult) string {
	t.Helper()
	var b strings.Builder
	for _, m := range res.Messages {
		text, ok := m.Content.(mcp.TextContent)
		require.True(t, ok, "expected text content, got %T", m.Content)
		b.WriteString(text.Text)
		b.WriteString("\n")
	}
	return b.String()
}

func TestCreatePrompts(t *testing.T) {
	prompts := createPrompts()
	require.Len(t, prompts, 2)
	assert.Equal(t, "vendor-onboarding", prompts[0].Prompt.Name)
	assert.Equal(t, "associate-cleanup", prompts[1].Prompt.Name)

	args := map[string]bool{}
	for _, a := range prompts[0].Prompt.Arguments {
		args[a.Name] = a.Required
	}
	assert.Equal(t, map[string]bool{"name": true, "ba_type": false, "vendor_code": false, "company_code": false}, args)
}

func TestHandleVendorOnboardingPrompt(t *testing.T) {
	res, err := handleVendorOnboardingPrompt(context.Background(), promptRequest(map[string]string{
		"name":         "Acme & Sons",
		"vendor_code":  "V-100",
		"company_code": "2000",
	}))
	require.NoError(t, err)
	assert.Equal(t, "Business Associate Onboarding", res.Description)

	require.Len(t, res.Messages, 5)
	assert.Equal(t, mcp.RoleAssistant, res.Messages[0].Role)
	assert.Equal(t, mcp.RoleUser, res.Messages[1].Role)
	assert.Equal(t, mcp.RoleAssistant, res.Messages[4].Role)

	text := promptText(t, res)
	assert.Contains(t, text, `"Acme & Sons"`)
	assert.Contains(t, text, "as a vendor business associate")
	assert.Contains(t, text, `"get_business_associates"`)
	assert.Contains(t, text, `"create_business_associate"`)
	assert.Contains(t, text, `sap_vendor "V-100"`)
	assert.Contains(t, text, "sap_company_code 2000")
	assert.NotContains(t, text, "#")
}

func TestHandleVendorOnboardingPromptOptionalArgs(t *testing.T) {
	res, err := handleVendorOnboardingPrompt(context.Background(), promptRequest(map[string]string{
		"name":    "Globex",
		"ba_type": "customer",
	}))
	require.NoError(t, err)

	text := promptText(t, res)
	assert.Contains(t, text, "as a customer business associate")
	assert.NotContains(t, text, "sap_vendor")
	assert.NotContains(t, text, "sap_company_code")
}

func TestHandleVendorOnboardingPromptRequiresName(t *testing.T) {
	_, err := handleVendorOnboardingPrompt(context.Background(), promptRequest(map[string]string{"name": "  "}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")
}

func TestHandleAssociateCleanupPrompt(t *testing.T) {
	res, err := handleAssociateCleanupPrompt(context.Background(), promptRequest(map[string]string{
		"criteria": "records without a vendor code",
	}))
	require.NoError(t, err)
	assert.Equal(t, "Business Associate Cleanup", res.Description)
	require.Len(t, res.Messages, 5)

	text := promptText(t, res)
	assert.Contains(t, text, "vendor business associates")
	assert.Contains(t, text, `"delete_business_associate"`)
	assert.Contains(t, text, "records without a vendor code")

	res, err = handleAssociateCleanupPrompt(context.Background(), promptRequest(nil))
	require.NoError(t, err)
	assert.NotContains(t, promptText(t, res), "Select the records matching")
}

func TestParsePromptTemplateMissing(t *testing.T) {
	_, err := parsePromptTemplate("does-not-exist", promptTemplateData{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read template does-not-exist")
}
