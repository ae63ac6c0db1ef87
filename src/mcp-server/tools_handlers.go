// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	ba "github.com/H0llyW00dzZ/business-associate-mcp/src/internal/businessassociate"
	"github.com/H0llyW00dzZ/business-associate-mcp/src/internal/calculator"
	"github.com/mark3labs/mcp-go/mcp"
)

// handleAdd adds the numbers a and b.
//
// The sum is formatted with the shortest representation that round-trips,
// so NaN and infinities are reported as "NaN", "+Inf" and "-Inf".
func handleAdd(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a, err := request.RequireFloat("a")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("a parameter required: %v", err)), nil
	}
	b, err := request.RequireFloat("b")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("b parameter required: %v", err)), nil
	}

	return mcp.NewToolResultText(strconv.FormatFloat(calculator.Add(a, b), 'g', -1, 64)), nil
}

// handleGetBusinessAssociates lists the business associates of one type.
//
// The json format returns the records as a JSON array; markdown renders a
// table. An unsuccessful envelope from the remote system yields an empty list,
// while transport failures and non-2xx statuses become tool errors.
func handleGetBusinessAssociates(ctx context.Context, request mcp.CallToolRequest, associates AssociateService) (*mcp.CallToolResult, error) {
	entityType, err := request.RequireString(paramType)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%s parameter required: %v", paramType, err)), nil
	}

	format := request.GetString(paramFormat, "json")
	if format != "json" && format != "markdown" {
		return mcp.NewToolResultError(fmt.Sprintf("unsupported format %q: use 'json' or 'markdown'", format)), nil
	}

	list, err := associates.List(ctx, entityType)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list business associates: %v", err)), nil
	}

	if format == "markdown" {
		return mcp.NewToolResultText(ba.RenderTable(entityType, list)), nil
	}
	return jsonResult(list)
}

// handleCreateBusinessAssociate creates a business associate.
func handleCreateBusinessAssociate(ctx context.Context, request mcp.CallToolRequest, associates AssociateService) (*mcp.CallToolResult, error) {
	entityType, err := request.RequireString(paramType)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%s parameter required: %v", paramType, err)), nil
	}
	name, err := request.RequireString(paramName)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%s parameter required: %v", paramName, err)), nil
	}

	in := ba.CreateInput{Name: name}
	if in.Vendor, err = optionalString(request, paramVendor); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if in.Customer, err = optionalString(request, paramCustomer); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if in.CompanyCode, err = optionalInt(request, paramCompanyCode); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	created, err := associates.Create(ctx, entityType, in)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create business associate: %v", err)), nil
	}
	return jsonResult(created)
}

// handleUpdateBusinessAssociate sends a partial update. String fields that are
// omitted or empty are not sent.
func handleUpdateBusinessAssociate(ctx context.Context, request mcp.CallToolRequest, associates AssociateService) (*mcp.CallToolResult, error) {
	entityType, err := request.RequireString(paramType)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%s parameter required: %v", paramType, err)), nil
	}
	id, err := requireInt(request, paramID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var in ba.UpdateInput
	for _, field := range []struct {
		param string
		dst   *string
	}{
		{paramName, &in.Name},
		{paramVendor, &in.Vendor},
		{paramCustomer, &in.Customer},
	} {
		v, err := optionalString(request, field.param)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if v != nil {
			*field.dst = *v
		}
	}
	if in.CompanyCode, err = optionalInt(request, paramCompanyCode); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	updated, err := associates.Update(ctx, entityType, id, in)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to update business associate %d: %v", id, err)), nil
	}
	return jsonResult(updated)
}

// handleDeleteBusinessAssociate deletes a business associate and returns the
// success flag reported by the remote system.
func handleDeleteBusinessAssociate(ctx context.Context, request mcp.CallToolRequest, associates AssociateService) (*mcp.CallToolResult, error) {
	entityType, err := request.RequireString(paramType)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%s parameter required: %v", paramType, err)), nil
	}
	id, err := requireInt(request, paramID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ok, err := associates.Delete(ctx, entityType, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to delete business associate %d: %v", id, err)), nil
	}
	return mcp.NewToolResultText(strconv.FormatBool(ok)), nil
}

// jsonResult encodes v as indented JSON. A nil record encodes as "null".
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// optionalString returns the string argument name, or nil when the caller did
// not supply it. An explicit JSON null counts as not supplied.
func optionalString(request mcp.CallToolRequest, name string) (*string, error) {
	v, ok := request.GetArguments()[name]
	if !ok || v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("%s must be a string, got %T", name, v)
	}
	return &s, nil
}

// optionalInt returns the integer argument name, or nil when the caller did
// not supply it.
func optionalInt(request mcp.CallToolRequest, name string) (*int, error) {
	v, ok := request.GetArguments()[name]
	if !ok || v == nil {
		return nil, nil
	}
	n, err := toInt(name, v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// requireInt returns the integer argument name or an error when it is missing
// or not integral.
func requireInt(request mcp.CallToolRequest, name string) (int, error) {
	v, ok := request.GetArguments()[name]
	if !ok || v == nil {
		return 0, fmt.Errorf("%s parameter required", name)
	}
	return toInt(name, v)
}

func toInt(name string, v any) (int, error) {
	var n int64
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) || x != math.Trunc(x) {
			return 0, fmt.Errorf("%s must be an integer, got %v", name, x)
		}
		if x > math.MaxInt32 || x < math.MinInt32 {
			return 0, fmt.Errorf("%s is out of range: %v", name, x)
		}
		n = int64(x)
	case int:
		n = int64(x)
	case int64:
		n = x
	case json.Number:
		i, err := strconv.ParseInt(x.String(), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%s must be an integer, got %s", name, x)
		}
		n = i
	default:
		return 0, fmt.Errorf("%s must be a number, got %T", name, v)
	}
	if n > math.MaxInt32 || n < math.MinInt32 {
		return 0, fmt.Errorf("%s is out of range: %v", name, n)
	}
	return int(n), nil
}
