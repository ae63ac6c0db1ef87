// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package posix

import (
	"os"
	"strings"
)

// DefaultExecutableName is returned when os.Args carries no program name.
const DefaultExecutableName = "business-associate-mcp"

// GetExecutableName returns the executable name without directory or ".exe"
// suffix, suitable for CLI usage strings.
//
// Both '/' and '\' are treated as separators, so a Windows path is handled
// the same way on a Unix host and vice versa.
func GetExecutableName() string {
	if len(os.Args) == 0 {
		return DefaultExecutableName
	}
	return executableName(os.Args[0])
}

func executableName(arg0 string) string {
	name := strings.TrimRight(arg0, `/\`)
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, ".exe")
	if name == "" {
		return DefaultExecutableName
	}
	return name
}
