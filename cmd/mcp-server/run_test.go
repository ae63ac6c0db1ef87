// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package main

import (
	"testing"

	verpkg "github.com/H0llyW00dzZ/business-associate-mcp/src/version"
)

func TestVersionInit(t *testing.T) {
	if version == "" {
		t.Error("version should not be empty after init")
	}

	if version != verpkg.Version {
		// Set by ldflags, which is also valid.
		t.Logf("version set by ldflags: %s (package version: %s)", version, verpkg.Version)
	}
}
