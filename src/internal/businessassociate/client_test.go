// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package businessassociate

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/H0llyW00dzZ/business-associate-mcp/src/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordedRequest is what the fake remote saw.
type recordedRequest struct {
	Method      string
	Path        string
	Body        string
	ContentType string
	UserAgent   string
}

// fakeRemote serves a fixed status and body and records every request.
type fakeRemote struct {
	mu       sync.Mutex
	requests []recordedRequest
	status   int
	body     string
}

func newFakeRemote(t *testing.T, status int, body string) (*fakeRemote, *httptest.Server) {
	t.Helper()
	f := &fakeRemote{status: status, body: body}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.requests = append(f.requests, recordedRequest{
			Method:      r.Method,
			Path:        r.URL.Path,
			Body:        string(data),
			ContentType: r.Header.Get("Content-Type"),
			UserAgent:   r.Header.Get("User-Agent"),
		})
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.status)
		_, _ = io.WriteString(w, f.body)
	}))
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeRemote) last(t *testing.T) recordedRequest {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.requests, "remote received no request")
	return f.requests[len(f.requests)-1]
}

// errTransport fails every request without touching the network.
type errTransport struct{ err error }

func (e errTransport) Do(*http.Request) (*http.Response, error) { return nil, e.err }

func TestNewTrimsBaseURL(t *testing.T) {
	c := New("http://example.test/", nil)
	assert.Equal(t, "http://example.test", c.baseURL)
}

func TestList(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    []BusinessAssociate
		wantLog string
	}{
		{
			name:   "two records",
			status: http.StatusOK,
			body:   `{"success":true,"count":2,"data":[{"BAID":1,"BAName":"Acme","SAPVendor":"V1","SAPCustomer":null,"SAPCompanyCode":10},{"BAID":2,"BAName":"Globex","SAPVendor":null,"SAPCustomer":null,"SAPCompanyCode":null}]}`,
			want: []BusinessAssociate{
				{BAID: 1, BAName: "Acme", SAPVendor: ptr("V1"), SAPCompanyCode: ptr(10)},
				{BAID: 2, BAName: "Globex"},
			},
		},
		{
			name:   "data null",
			status: http.StatusOK,
			body:   `{"success":true,"data":null}`,
			want:   []BusinessAssociate{},
		},
		{
			name:    "success false",
			status:  http.StatusOK,
			body:    `{"success":false,"message":"unknown type"}`,
			want:    []BusinessAssociate{},
			wantLog: "unknown type",
		},
		{
			name:    "malformed body",
			status:  http.StatusOK,
			body:    `<html>nope</html>`,
			want:    []BusinessAssociate{},
			wantLog: "malformed response envelope",
		},
		{
			name:    "empty body",
			status:  http.StatusOK,
			body:    "",
			want:    []BusinessAssociate{},
			wantLog: "empty response body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remote, srv := newFakeRemote(t, tt.status, tt.body)
			var logs bytes.Buffer
			c := New(srv.URL, srv.Client(), WithLogger(logger.NewMCPLogger(&logs, false)))

			got, err := c.List(context.Background(), "vendor")
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)

			req := remote.last(t)
			assert.Equal(t, http.MethodGet, req.Method)
			assert.Equal(t, "/api/v1/vendor", req.Path)
			assert.Empty(t, req.Body)
			assert.Empty(t, req.ContentType)

			if tt.wantLog != "" {
				assert.Contains(t, logs.String(), tt.wantLog)
				assert.Contains(t, logs.String(), `"level":"warn"`)
			} else {
				assert.Empty(t, logs.String())
			}
		})
	}
}

func TestNonSuccessStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		call   func(t *testing.T, c *Client) error
	}{
		{
			name:   "list 500",
			status: http.StatusInternalServerError,
			call: func(t *testing.T, c *Client) error {
				got, err := c.List(context.Background(), "vendor")
				assert.Nil(t, got)
				return err
			},
		},
		{
			name:   "create 400",
			status: http.StatusBadRequest,
			call: func(t *testing.T, c *Client) error {
				got, err := c.Create(context.Background(), "vendor", CreateInput{Name: "Acme"})
				assert.Nil(t, got)
				return err
			},
		},
		{
			name:   "update 404",
			status: http.StatusNotFound,
			call: func(t *testing.T, c *Client) error {
				got, err := c.Update(context.Background(), "vendor", 99, UpdateInput{Name: "x"})
				assert.Nil(t, got)
				return err
			},
		},
		{
			name:   "delete 404",
			status: http.StatusNotFound,
			call: func(t *testing.T, c *Client) error {
				ok, err := c.Delete(context.Background(), "vendor", 99)
				assert.False(t, ok)
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, srv := newFakeRemote(t, tt.status, `{"success":false,"message":"boom"}`)
			c := New(srv.URL, srv.Client())

			err := tt.call(t, c)
			require.Error(t, err)

			var se *StatusError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.status, se.StatusCode)
			assert.Contains(t, se.Body, "boom")

			code, ok := StatusCode(err)
			assert.True(t, ok)
			assert.Equal(t, tt.status, code)
		})
	}
}

func TestStatusErrorTruncatesBody(t *testing.T) {
	_, srv := newFakeRemote(t, http.StatusBadGateway, strings.Repeat("x", 4096))
	c := New(srv.URL, srv.Client())

	_, err := c.List(context.Background(), "vendor")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Len(t, se.Body, maxErrorBody)
	assert.Contains(t, se.Error(), "status 502")
}

func TestTransportError(t *testing.T) {
	sentinel := errors.New("connection refused")
	c := New("http://remote.invalid", errTransport{err: sentinel})

	_, err := c.List(context.Background(), "vendor")
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)

	_, ok := StatusCode(err)
	assert.False(t, ok)
}

func TestCancelledContext(t *testing.T) {
	_, srv := newFakeRemote(t, http.StatusOK, `{"success":true,"data":[]}`)
	c := New(srv.URL, srv.Client())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.List(ctx, "vendor")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCreate(t *testing.T) {
	tests := []struct {
		name     string
		in       CreateInput
		respond  string
		wantBody string
		want     *BusinessAssociate
	}{
		{
			name:     "name only",
			in:       CreateInput{Name: "Acme"},
			respond:  `{"success":true,"data":{"BAID":5,"BAName":"Acme","SAPVendor":null,"SAPCustomer":null,"SAPCompanyCode":null}}`,
			wantBody: `{"BAName":"Acme"}`,
			want:     &BusinessAssociate{BAID: 5, BAName: "Acme"},
		},
		{
			name:     "all fields",
			in:       CreateInput{Name: "Acme", Vendor: ptr("V1"), Customer: ptr("C1"), CompanyCode: ptr(100)},
			respond:  `{"success":true,"data":{"BAID":6,"BAName":"Acme","SAPVendor":"V1","SAPCustomer":"C1","SAPCompanyCode":100}}`,
			wantBody: `{"BAName":"Acme","SAPVendor":"V1","SAPCustomer":"C1","SAPCompanyCode":100}`,
			want:     &BusinessAssociate{BAID: 6, BAName: "Acme", SAPVendor: ptr("V1"), SAPCustomer: ptr("C1"), SAPCompanyCode: ptr(100)},
		},
		{
			name:     "remote failure",
			in:       CreateInput{Name: "Acme"},
			respond:  `{"success":false,"message":"duplicate"}`,
			wantBody: `{"BAName":"Acme"}`,
		},
		{
			name:     "success without data",
			in:       CreateInput{Name: "Acme"},
			respond:  `{"success":true}`,
			wantBody: `{"BAName":"Acme"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remote, srv := newFakeRemote(t, http.StatusCreated, tt.respond)
			c := New(srv.URL, srv.Client())

			got, err := c.Create(context.Background(), "vendor", tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			req := remote.last(t)
			assert.Equal(t, http.MethodPost, req.Method)
			assert.Equal(t, "/api/v1/vendor", req.Path)
			assert.Equal(t, "application/json", req.ContentType)
			assert.Equal(t, tt.wantBody, req.Body)
		})
	}
}

func TestUpdate(t *testing.T) {
	tests := []struct {
		name     string
		in       UpdateInput
		wantBody string
	}{
		{
			name:     "empty vendor is omitted",
			in:       UpdateInput{Name: "Acme", Vendor: ""},
			wantBody: `{"BAName":"Acme"}`,
		},
		{
			name:     "company code only",
			in:       UpdateInput{CompanyCode: ptr(7)},
			wantBody: `{"SAPCompanyCode":7}`,
		},
		{
			name:     "no fields",
			in:       UpdateInput{},
			wantBody: `{}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remote, srv := newFakeRemote(t, http.StatusOK,
				`{"success":true,"data":{"BAID":7,"BAName":"Acme","SAPVendor":null,"SAPCustomer":null,"SAPCompanyCode":7}}`)
			c := New(srv.URL, srv.Client())

			got, err := c.Update(context.Background(), "vendor", 7, tt.in)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, 7, got.BAID)

			req := remote.last(t)
			assert.Equal(t, http.MethodPut, req.Method)
			assert.Equal(t, "/api/v1/vendor/7", req.Path)
			assert.Equal(t, tt.wantBody, req.Body)
		})
	}
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{name: "success", body: `{"success":true,"message":"deleted"}`, want: true},
		{name: "failure", body: `{"success":false,"message":"locked"}`, want: false},
		{name: "unparseable", body: `not json`, want: false},
		{name: "empty", body: ``, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remote, srv := newFakeRemote(t, http.StatusOK, tt.body)
			c := New(srv.URL, srv.Client())

			got, err := c.Delete(context.Background(), "customer", 12)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			req := remote.last(t)
			assert.Equal(t, http.MethodDelete, req.Method)
			assert.Equal(t, "/api/v1/customer/12", req.Path)
		})
	}
}

func TestUserAgent(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		remote, srv := newFakeRemote(t, http.StatusOK, `{"success":true,"data":[]}`)
		_, err := New(srv.URL, srv.Client()).List(context.Background(), "vendor")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(remote.last(t).UserAgent, "Business-Associate-MCP/"))
	})

	t.Run("override", func(t *testing.T) {
		remote, srv := newFakeRemote(t, http.StatusOK, `{"success":true,"data":[]}`)
		_, err := New(srv.URL, srv.Client(), WithUserAgent("custom/1.0")).List(context.Background(), "vendor")
		require.NoError(t, err)
		assert.Equal(t, "custom/1.0", remote.last(t).UserAgent)
	})
}

func TestBaseURLWithPathPrefix(t *testing.T) {
	remote, srv := newFakeRemote(t, http.StatusOK, `{"success":true,"data":[]}`)
	c := New(srv.URL+"/gateway/", srv.Client())

	_, err := c.List(context.Background(), "vendor")
	require.NoError(t, err)
	assert.Equal(t, "/gateway/api/v1/vendor", remote.last(t).Path)
}

func TestConcurrentCalls(t *testing.T) {
	_, srv := newFakeRemote(t, http.StatusOK, `{"success":true,"data":[{"BAID":1,"BAName":"Acme"}]}`)
	c := New(srv.URL, srv.Client())

	var wg sync.WaitGroup
	for range 16 {
		wg.Go(func() {
			got, err := c.List(context.Background(), "vendor")
			assert.NoError(t, err)
			assert.Len(t, got, 1)
		})
	}
	wg.Wait()
}
