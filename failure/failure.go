// Copyright 2026 The retryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package failure

import (
	"fmt"
	"net/http"
)

// A TimeoutKind identifies which phase of a request attempt timed out.
type TimeoutKind int

const (
	// Connect indicates the attempt timed out while establishing a
	// connection to the remote host.
	Connect TimeoutKind = iota
	// Read indicates the attempt timed out while waiting to read the
	// response from the remote host.
	Read
)

// String returns the lowercase name of the timeout kind.
func (k TimeoutKind) String() string {
	switch k {
	case Connect:
		return "connect"
	case Read:
		return "read"
	default:
		return fmt.Sprintf("timeout(%d)", int(k))
	}
}

// A StatusError describes a request attempt that received a valid HTTP
// response carrying an unwanted status code. It preserves the response
// status code and headers so retry policies can honor server-provided
// hints such as Retry-After.
//
// StatusError is produced by the transport layer at the point where an
// attempt is judged to have failed. Use FromResponse to construct one
// from an http.Response.
type StatusError struct {
	// StatusCode is the HTTP status code received on the attempt.
	StatusCode int
	// Header contains the response headers received on the attempt.
	// It may be nil if the producing transport did not capture them.
	Header http.Header
}

// Error satisfies the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("failure: HTTP status %d", e.StatusCode)
}

// RetryAfter returns the value of the response's Retry-After header,
// or the empty string if the header is absent or headers were not
// captured.
func (e *StatusError) RetryAfter() string {
	return e.Header.Get("Retry-After")
}

// FromResponse constructs a StatusError snapshotting the status code
// and headers of resp. The response body is left untouched.
func FromResponse(resp *http.Response) *StatusError {
	return &StatusError{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
	}
}

// A TimeoutError describes a request attempt abandoned because a
// client-side timeout elapsed before a connection was established or a
// response was read.
type TimeoutError struct {
	// Kind records which phase of the attempt timed out.
	Kind TimeoutKind
	// Cause optionally records the underlying transport error.
	Cause error
}

// Error satisfies the error interface.
func (e *TimeoutError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failure: %s timeout: %v", e.Kind, e.Cause)
	}
	return fmt.Sprintf("failure: %s timeout", e.Kind)
}

// Timeout reports true, following the convention established by
// net.Error.
func (e *TimeoutError) Timeout() bool {
	return true
}

// Unwrap returns the underlying transport error, if any.
func (e *TimeoutError) Unwrap() error {
	return e.Cause
}
