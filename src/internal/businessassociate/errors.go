// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package businessassociate

import (
	"errors"
	"fmt"
)

// maxErrorBody bounds the response excerpt kept in a StatusError.
const maxErrorBody = 512

// StatusError reports a non-2xx response from the remote API.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	// Body is a prefix of the response body, at most 512 bytes.
	Body string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("business associate API %s %s: status %d", e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("business associate API %s %s: status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// StatusCode extracts the HTTP status from an error chain containing a
// [*StatusError].
func StatusCode(err error) (int, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode, true
	}
	return 0, false
}

func newStatusError(method, url string, status int, body []byte) *StatusError {
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return &StatusError{Method: method, URL: url, StatusCode: status, Body: string(body)}
}
