// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package businessassociate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/H0llyW00dzZ/business-associate-mcp/src/internal/helper/gc"
	"github.com/H0llyW00dzZ/business-associate-mcp/src/logger"
	"github.com/H0llyW00dzZ/business-associate-mcp/src/version"
)

// HTTPClient abstracts HTTP operations for dependency injection.
// The standard *http.Client satisfies this interface.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is the remote entity adapter for business associates.
//
// The base URL and HTTP client are fixed at construction and shared by every
// call. Client holds no other state, so it is safe for concurrent use as long
// as the injected HTTPClient is.
type Client struct {
	baseURL   string
	http      HTTPClient
	log       logger.Logger
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger that receives discarded remote failures.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithUserAgent overrides the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// New creates a Client for the API rooted at baseURL.
//
// A nil httpClient gets a dedicated *http.Client with no timeout; callers that
// need one should inject a configured client.
func New(baseURL string, httpClient HTTPClient, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      httpClient,
		log:       logger.NewMCPLogger(nil, true),
		userAgent: "Business-Associate-MCP/" + version.Version,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List returns the business associates of the given type.
//
// A non-2xx status is returned as a [*StatusError]. A missing, malformed or
// unsuccessful envelope yields an empty, non-nil slice and a nil error.
func (c *Client) List(ctx context.Context, entityType string) ([]BusinessAssociate, error) {
	endpoint, err := c.endpoint(entityType)
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	env, ok := decodeEnvelope[[]BusinessAssociate](c.log, http.MethodGet, endpoint, body)
	if !ok || env.Data == nil {
		return []BusinessAssociate{}, nil
	}
	return env.Data, nil
}

// Create creates a business associate of the given type and returns the
// record echoed by the remote system, or nil when the remote reports failure
// or omits the record.
func (c *Client) Create(ctx context.Context, entityType string, in CreateInput) (*BusinessAssociate, error) {
	endpoint, err := c.endpoint(entityType)
	if err != nil {
		return nil, err
	}
	return c.write(ctx, http.MethodPost, endpoint, in.Fields())
}

// Update sends a partial update for the record with the given id and returns
// the updated record, or nil when the remote reports failure or omits it.
func (c *Client) Update(ctx context.Context, entityType string, id int, in UpdateInput) (*BusinessAssociate, error) {
	endpoint, err := c.endpoint(entityType, strconv.Itoa(id))
	if err != nil {
		return nil, err
	}
	return c.write(ctx, http.MethodPut, endpoint, in.Fields())
}

// Delete deletes the record with the given id and reports the success flag of
// the response envelope. An unparseable envelope reports false.
func (c *Client) Delete(ctx context.Context, entityType string, id int) (bool, error) {
	endpoint, err := c.endpoint(entityType, strconv.Itoa(id))
	if err != nil {
		return false, err
	}

	body, err := c.do(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return false, err
	}

	_, ok := decodeEnvelope[json.RawMessage](c.log, http.MethodDelete, endpoint, body)
	return ok, nil
}

func (c *Client) write(ctx context.Context, method, endpoint string, payload *Fields) (*BusinessAssociate, error) {
	body, err := c.do(ctx, method, endpoint, payload)
	if err != nil {
		return nil, err
	}

	env, ok := decodeEnvelope[*BusinessAssociate](c.log, method, endpoint, body)
	if !ok {
		return nil, nil
	}
	return env.Data, nil
}

// endpoint builds {base}/api/v1/{entityType}[/{id}]. The entity type is not
// validated; the remote system rejects unknown types.
func (c *Client) endpoint(entityType string, id ...string) (string, error) {
	elems := append([]string{"api", "v1", entityType}, id...)
	endpoint, err := url.JoinPath(c.baseURL, elems...)
	if err != nil {
		return "", fmt.Errorf("invalid business associate API base URL %q: %w", c.baseURL, err)
	}
	return endpoint, nil
}

// do performs one request and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, method, endpoint string, payload *Fields) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s payload: %w", method, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call business associate API: %w", err)
	}
	defer resp.Body.Close()

	body, readErr := gc.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newStatusError(method, endpoint, resp.StatusCode, bytes.TrimSpace(body))
	}
	if readErr != nil {
		return nil, fmt.Errorf("failed to read response body: %w", readErr)
	}

	return body, nil
}

// decodeEnvelope parses body and reports whether it holds a successful
// envelope. Every failure is logged and collapsed to false.
func decodeEnvelope[T any](log logger.Logger, method, endpoint string, body []byte) (Envelope[T], bool) {
	var env Envelope[T]

	if len(bytes.TrimSpace(body)) == 0 {
		log.Warnf("%s %s: empty response body", method, endpoint)
		return env, false
	}

	if err := json.Unmarshal(body, &env); err != nil {
		log.Warnf("%s %s: malformed response envelope: %v", method, endpoint, err)
		return env, false
	}

	if !env.Success {
		if env.Message != "" {
			log.Warnf("%s %s: remote reported failure: %s", method, endpoint, env.Message)
		} else {
			log.Warnf("%s %s: remote reported failure", method, endpoint)
		}
		return env, false
	}

	return env, true
}
