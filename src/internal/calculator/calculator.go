// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package calculator holds the arithmetic behind the add tool.
package calculator

// Add returns a + b with IEEE 754 semantics; NaN and infinities propagate.
func Add(a, b float64) float64 {
	return a + b
}
