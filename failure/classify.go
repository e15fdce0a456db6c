// Copyright 2026 The retryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package failure

import (
	"errors"
	"net/http"
)

// A Category is the retryability category of a particular failure, as
// reported by function Categorize().
//
// The category Not means the failure is not retryable under the
// connector retry policy, or in other words that retrying after this
// failure is not expected to help. All other categories indicate the
// failure is retryable.
type Category int

const (
	// Not indicates any failure the connector retry policy will not
	// retry. This includes every HTTP status other than 429, so a 500
	// or 503 is Not under this policy even though other policies might
	// treat it as transient.
	Not Category = iota
	// RateLimit indicates the server rejected the attempt with HTTP
	// status 429 (Too Many Requests). The server may have attached a
	// Retry-After header declaring when its rate-limit window clears.
	//
	// Function Categorize() will return RateLimit if the failure or
	// any of its wrapped causes is a StatusError with status code 429.
	RateLimit
	// Timeout indicates a client-side connect or read timeout. The
	// server may be going through a temporary period of slowness, so a
	// retry after backing off has some prospect of success.
	//
	// Function Categorize() will return Timeout if the failure or any
	// of its wrapped causes is a TimeoutError of kind Connect or Read.
	Timeout
)

// Categorize returns the retryability category of the given failure.
// A nil error, and an error that is neither a 429 status failure nor a
// connect/read timeout failure, both produce the return value Not.
//
// In assessing retryability, Categorize looks at wrapped cause errors
// contained within err, not just err itself, so failures wrapped in
// *url.Error or fmt.Errorf("%w") chains still classify.
func Categorize(err error) Category {
	if err == nil {
		return Not
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		if statusErr.StatusCode == http.StatusTooManyRequests {
			return RateLimit
		}
		return Not
	}

	var timeoutErr *TimeoutError
	if errors.As(err, &timeoutErr) {
		if timeoutErr.Kind == Connect || timeoutErr.Kind == Read {
			return Timeout
		}
	}

	return Not
}

// IsRateLimit reports whether err is a retryable rate limit: a status
// failure with HTTP status code exactly 429.
func IsRateLimit(err error) bool {
	return Categorize(err) == RateLimit
}

// IsTimeout reports whether err is a retryable timeout: a timeout
// failure of kind Connect or Read.
func IsTimeout(err error) bool {
	return Categorize(err) == Timeout
}

// IsRetryable reports whether err should be retried under the
// connector retry policy. It is true exactly when IsRateLimit or
// IsTimeout is true.
func IsRetryable(err error) bool {
	return Categorize(err) != Not
}
