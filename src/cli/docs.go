// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the Cobra subcommands that operate on business
// associates directly from the command line.
//
// The list, create, update and delete subcommands call the remote API through
// the same adapter the MCP tools use; add exposes the calculator; mock-api
// serves a local SQLite-backed stand-in for the remote API. Settings are
// resolved lazily through [Env.Load], so the caller decides how configuration
// files, flags and environment variables combine.
package cli
