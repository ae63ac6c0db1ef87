// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// configFileEnv names the environment variable holding the config file path.
	configFileEnv = "MCP_BA_CONFIG_FILE"
	// baseURLEnv overrides api.baseUrl.
	baseURLEnv = "BA_API_BASE_URL"
)

// Default configuration values.
const (
	defaultBaseURL      = "http://localhost:3000"
	defaultTimeout      = 30
	defaultTransport    = transportStdio
	defaultAddress      = ":8080"
	defaultEndpointPath = "/mcp"
	defaultMockAddress  = ":3000"
	defaultMockDatabase = "business-associates.db"
	transportStdio      = "stdio"
	transportHTTP       = "http"
)

// configFormat represents supported configuration file formats.
type configFormat int

const (
	// configFormatJSON represents JSON configuration format (.json)
	configFormatJSON configFormat = iota
	// configFormatYAML represents YAML configuration format (.yaml, .yml)
	configFormatYAML
)

// Config represents the MCP server configuration structure.
//
// The configuration can be loaded from a JSON or YAML file given by the
// --config flag or the MCP_BA_CONFIG_FILE environment variable, with defaults
// applied for any missing values.
type Config struct {
	// API: Remote business associate API settings
	API struct {
		// BaseURL: Root URL of the remote API (can also be set via BA_API_BASE_URL env var)
		BaseURL string `json:"baseUrl" yaml:"baseUrl"`
		// TimeoutSeconds: Per-request timeout for remote calls
		TimeoutSeconds int `json:"timeoutSeconds" yaml:"timeoutSeconds"`
	} `json:"api" yaml:"api"`

	// Server: MCP transport settings
	Server struct {
		// Transport: "stdio" or "http"
		Transport string `json:"transport" yaml:"transport"`
		// Address: Listen address for the streamable HTTP transport
		Address string `json:"address" yaml:"address"`
		// EndpointPath: HTTP path serving the MCP endpoint
		EndpointPath string `json:"endpointPath" yaml:"endpointPath"`
	} `json:"server" yaml:"server"`

	// Log: Logging settings
	Log struct {
		// Silent: Suppress server log output
		Silent bool `json:"silent" yaml:"silent"`
	} `json:"log" yaml:"log"`

	// Mock: Settings for the mock-api subcommand
	Mock struct {
		// Address: Listen address of the mock API
		Address string `json:"address" yaml:"address"`
		// Database: SQLite database file of the mock API
		Database string `json:"database" yaml:"database"`
	} `json:"mock" yaml:"mock"`
}

// Timeout returns the remote API timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// defaultConfig returns a Config holding every default value.
func defaultConfig() *Config {
	config := &Config{}
	config.API.BaseURL = defaultBaseURL
	config.API.TimeoutSeconds = defaultTimeout
	config.Server.Transport = defaultTransport
	config.Server.Address = defaultAddress
	config.Server.EndpointPath = defaultEndpointPath
	config.Mock.Address = defaultMockAddress
	config.Mock.Database = defaultMockDatabase
	return config
}

// detectConfigFormat determines the configuration file format based on file extension.
// Matching is case-insensitive; anything other than .yaml or .yml is treated as JSON.
func detectConfigFormat(configPath string) configFormat {
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".yaml", ".yml":
		return configFormatYAML
	default:
		return configFormatJSON
	}
}

// unmarshalConfig unmarshals configuration data based on the specified format.
func unmarshalConfig(data []byte, config *Config, format configFormat) error {
	switch format {
	case configFormatYAML:
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse YAML config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse JSON config file: %w", err)
		}
	}
	return nil
}

// loadConfig loads MCP server configuration from a JSON or YAML file or applies defaults.
//
// Configuration Priority:
//  1. Default values are set
//  2. MCP_BA_CONFIG_FILE environment variable is checked if configPath is empty
//  3. Config file values override defaults (if a path is given)
//  4. BA_API_BASE_URL overrides the configured base URL
//
// Invalid or empty values left by the file fall back to their defaults.
func loadConfig(configPath string) (*Config, error) {
	config := defaultConfig()

	if configPath == "" {
		configPath = os.Getenv(configFileEnv)
	}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := unmarshalConfig(data, config, detectConfigFormat(configPath)); err != nil {
			return nil, err
		}

		config.normalize()
	}

	if baseURL := os.Getenv(baseURLEnv); baseURL != "" {
		config.API.BaseURL = baseURL
	}

	return config, nil
}

// normalize replaces invalid values with defaults.
func (c *Config) normalize() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = defaultBaseURL
	}
	if c.API.TimeoutSeconds <= 0 {
		c.API.TimeoutSeconds = defaultTimeout
	}

	c.Server.Transport = strings.ToLower(strings.TrimSpace(c.Server.Transport))
	if c.Server.Transport != transportHTTP {
		c.Server.Transport = transportStdio
	}
	if c.Server.Address == "" {
		c.Server.Address = defaultAddress
	}
	if !strings.HasPrefix(c.Server.EndpointPath, "/") {
		c.Server.EndpointPath = defaultEndpointPath
	}

	if c.Mock.Address == "" {
		c.Mock.Address = defaultMockAddress
	}
	if c.Mock.Database == "" {
		c.Mock.Database = defaultMockDatabase
	}
}
