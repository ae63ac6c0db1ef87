// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package mockapi serves a local stand-in for the business associate HTTP API.
//
// It exposes the same routes and response envelope the adapter in
// [github.com/H0llyW00dzZ/business-associate-mcp/src/internal/businessassociate]
// talks to:
//
//	GET    /api/v1/{type}       {success, count, data: [entity]}
//	POST   /api/v1/{type}       {success, data: entity, message}
//	PUT    /api/v1/{type}/{id}  {success, data: entity, message}
//	DELETE /api/v1/{type}/{id}  {success, message}
//
// Records are kept in SQLite through [modernc.org/sqlite], so the server runs
// without cgo. Write bodies are checked against embedded JSON schemas before
// they reach the store; a rejected body gets a 400 with success set to false.
//
// The package is development tooling. It backs the mock-api subcommand and the
// end-to-end tests of the adapter.
package mockapi
