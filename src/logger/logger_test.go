// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/H0llyW00dzZ/business-associate-mcp/src/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer guards bytes.Buffer for concurrent writers in tests.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func decodeLines(t *testing.T, output string) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for line := range strings.SplitSeq(strings.TrimSpace(output), "\n") {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry), "failed to parse JSON line %q", line)
		entries = append(entries, entry)
	}
	return entries
}

func TestCLILogger(t *testing.T) {
	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Printf",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewCLILogger()
				log.SetOutput(&buf)

				log.Printf("listed %d %s", 3, "vendor")

				assert.Contains(t, buf.String(), "listed 3 vendor")
			},
		},
		{
			name: "Println",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewCLILogger()
				log.SetOutput(&buf)

				log.Println("server", "started")

				assert.Contains(t, buf.String(), "server started")
			},
		},
		{
			name: "Warnf",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewCLILogger()
				log.SetOutput(&buf)

				log.Warnf("remote rejected %s", "create")

				assert.Equal(t, "warning: remote rejected create\n", buf.String())
			},
		},
		{
			name: "SetOutput",
			testFunc: func(t *testing.T) {
				var buf1, buf2 bytes.Buffer
				log := logger.NewCLILogger()

				log.SetOutput(&buf1)
				log.Println("first")

				log.SetOutput(&buf2)
				log.Println("second")

				assert.Contains(t, buf1.String(), "first")
				assert.Contains(t, buf2.String(), "second")
				assert.NotContains(t, buf1.String(), "second")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.testFunc(t)
		})
	}
}

func TestMCPLogger(t *testing.T) {
	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Silent",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewMCPLogger(&buf, true)

				log.Printf("test message: %s", "hello")
				log.Println("another message")
				log.Warnf("warning %d", 1)

				assert.Equal(t, 0, buf.Len(), "expected no output in silent mode")
			},
		},
		{
			name: "Printf_JSON",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewMCPLogger(&buf, false)

				log.Printf("test message: %s", "hello")

				entries := decodeLines(t, buf.String())
				require.Len(t, entries, 1)
				assert.Equal(t, "info", entries[0]["level"])
				assert.Equal(t, "test message: hello", entries[0]["message"])
				assert.NotEmpty(t, entries[0]["time"])
				assert.NotContains(t, entries[0], "component")
			},
		},
		{
			name: "Warnf_JSON",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewMCPLogger(&buf, false)

				log.Warnf("discarded message %q", "BAName is required")

				entries := decodeLines(t, buf.String())
				require.Len(t, entries, 1)
				assert.Equal(t, "warn", entries[0]["level"])
				assert.Equal(t, `discarded message "BAName is required"`, entries[0]["message"])
			},
		},
		{
			name: "WithComponent",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				root := logger.NewMCPLogger(&buf, false)
				child := root.WithComponent("businessassociate")

				child.Println("from child")
				root.Println("from root")

				entries := decodeLines(t, buf.String())
				require.Len(t, entries, 2)
				assert.Equal(t, "businessassociate", entries[0]["component"])
				assert.NotContains(t, entries[1], "component")
			},
		},
		{
			name: "SetOutput_SharedWithComponent",
			testFunc: func(t *testing.T) {
				var buf1, buf2 bytes.Buffer
				root := logger.NewMCPLogger(&buf1, false)
				child := root.WithComponent("mockapi")

				root.SetOutput(&buf2)
				child.Println("moved")

				assert.Zero(t, buf1.Len())
				assert.Contains(t, buf2.String(), "moved")
			},
		},
		{
			name: "SetOutput_Nil",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewMCPLogger(&buf, false)

				log.Println("before")
				log.SetOutput(nil)
				log.Println("after")

				assert.Contains(t, buf.String(), "before")
				assert.NotContains(t, buf.String(), "after")
			},
		},
		{
			name: "NilWriter",
			testFunc: func(t *testing.T) {
				log := logger.NewMCPLogger(nil, false)
				assert.NotPanics(t, func() { log.Println("discarded") })
			},
		},
		{
			name: "ConcurrentUsage",
			testFunc: func(t *testing.T) {
				var buf syncBuffer
				log := logger.NewMCPLogger(&buf, false)

				const numGoroutines = 50
				const messagesPerGoroutine = 10

				var wg sync.WaitGroup
				wg.Add(numGoroutines)
				for i := range numGoroutines {
					go func(id int) {
						defer wg.Done()
						for j := range messagesPerGoroutine {
							log.Printf("goroutine %d message %d", id, j)
						}
					}(i)
				}
				wg.Wait()

				entries := decodeLines(t, buf.String())
				assert.Len(t, entries, numGoroutines*messagesPerGoroutine)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.testFunc(t)
		})
	}
}
