// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/H0llyW00dzZ/business-associate-mcp/src/internal/helper/gc"
)

// Logger defines the interface for logging operations.
//
// This interface supports both CLI and [MCP] server modes, allowing seamless
// switching between human-readable output and structured logging.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
type Logger interface {
	// Printf formats and prints an informational message.
	Printf(format string, v ...any)
	// Println prints an informational message with a newline.
	Println(v ...any)
	// Warnf formats and prints a warning, used for failures that are
	// deliberately not returned to the caller.
	Warnf(format string, v ...any)
	// SetOutput sets the output destination for the logger.
	SetOutput(w io.Writer)
}

// CLILogger implements Logger using the standard log package.
// It's designed for command-line interface output with human-readable formatting.
type CLILogger struct{ logger *log.Logger }

// NewCLILogger creates a new CLI logger with timestamps disabled.
func NewCLILogger() *CLILogger {
	l := log.New(os.Stdout, "", 0)
	return &CLILogger{logger: l}
}

// Printf formats and prints a log message using fmt.Printf semantics.
func (c *CLILogger) Printf(format string, v ...any) { c.logger.Printf(format, v...) }

// Println prints a log message with a newline.
func (c *CLILogger) Println(v ...any) { c.logger.Println(v...) }

// Warnf prints a message prefixed with "warning: ".
func (c *CLILogger) Warnf(format string, v ...any) { c.logger.Printf("warning: "+format, v...) }

// SetOutput sets the output destination for the CLI logger.
func (c *CLILogger) SetOutput(w io.Writer) { c.logger.SetOutput(w) }

// MCPLogger implements Logger for [MCP] server mode.
//
// Each call writes one JSON object per line with the fields level, time,
// component and message. In stdio mode the writer must not be stdout,
// since stdout carries the protocol stream.
//
// MCPLogger is safe for concurrent use by multiple goroutines.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
type MCPLogger struct {
	out       *sink
	silent    bool
	component string
	now       func() time.Time
}

// sink is the destination shared by a logger and the loggers derived from it.
type sink struct {
	mu sync.Mutex
	w  io.Writer
}

// logEntry is the JSON shape of a single MCPLogger line.
type logEntry struct {
	Level     string `json:"level"`
	Time      string `json:"time"`
	Component string `json:"component,omitempty"`
	Message   string `json:"message"`
}

// NewMCPLogger creates a new [MCP] logger.
// Set silent=true to suppress all output. A nil writer discards output.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
func NewMCPLogger(writer io.Writer, silent bool) *MCPLogger {
	if writer == nil {
		writer = io.Discard
	}
	return &MCPLogger{
		out:    &sink{w: writer},
		silent: silent,
		now:    time.Now,
	}
}

// WithComponent returns a logger sharing the same destination that tags
// every entry with the given component name. SetOutput on either logger
// affects both.
func (m *MCPLogger) WithComponent(component string) *MCPLogger {
	return &MCPLogger{
		out:       m.out,
		silent:    m.silent,
		component: component,
		now:       m.now,
	}
}

// Printf formats and logs an info entry.
func (m *MCPLogger) Printf(format string, v ...any) { m.write("info", fmt.Sprintf(format, v...)) }

// Println logs an info entry built with fmt.Sprint semantics.
func (m *MCPLogger) Println(v ...any) { m.write("info", fmt.Sprint(v...)) }

// Warnf formats and logs a warn entry.
func (m *MCPLogger) Warnf(format string, v ...any) { m.write("warn", fmt.Sprintf(format, v...)) }

// SetOutput sets the output destination for the MCP logger.
// A nil writer discards output.
func (m *MCPLogger) SetOutput(w io.Writer) {
	m.out.mu.Lock()
	defer m.out.mu.Unlock()

	if w == nil {
		m.out.w = io.Discard
	} else {
		m.out.w = w
	}
}

func (m *MCPLogger) write(level, msg string) {
	if m.silent {
		return
	}

	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	entry := logEntry{
		Level:     level,
		Time:      m.now().UTC().Format(time.RFC3339),
		Component: m.component,
		Message:   msg,
	}
	// Encoder appends the trailing newline.
	if err := json.NewEncoder(buf).Encode(entry); err != nil {
		return
	}

	m.out.mu.Lock()
	_, _ = buf.WriteTo(m.out.w)
	m.out.mu.Unlock()
}
