// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package mcpserver provides the [MCP] server for business associate management.
//
// It exposes an arithmetic add tool and CRUD tools over business associates.
// The CRUD tools delegate every call to the remote HTTP API through the adapter
// in the businessassociate package. The server is assembled with
// [ServerBuilder], wrapped in a Cobra command by [CLIFramework], and served
// over stdio or streamable HTTP.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
package mcpserver
