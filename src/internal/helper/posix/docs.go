// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package posix provides [POSIX]-compliant helper functions for cross-platform compatibility.
//
// Key functions:
//   - GetExecutableName: Returns the executable name without extension for CLI usage
//
// # Usage Examples
//
//	rootCmd := &cobra.Command{
//	    Use:   posix.GetExecutableName(),
//	    Short: "Business associate management",
//	}
//
// The executable name is derived the same way on every platform:
//
//   - Linux/macOS: "/usr/local/bin/business-associate-mcp" → "business-associate-mcp"
//   - Windows: "C:\bin\business-associate-mcp.exe" → "business-associate-mcp"
//   - Fallback: Empty args → [DefaultExecutableName]
//
// [POSIX]: https://grokipedia.com/page/POSIX
package posix
