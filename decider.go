// Copyright 2026 The retryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retryx

import (
	"github.com/gogama/retryx/failure"
)

// A Decider decides if a retry should be done after a failed request
// attempt.
//
// Implementations of Decider must be safe for concurrent use by
// multiple goroutines.
//
// Parameter err is the failure raised by the attempt, and parameter
// attempt is the 1-based count of attempts made so far. The attempt
// counter is produced and owned by the caller's retry loop; deciders
// only read it.
//
// Use the built-in deciders RateLimited, TimedOut, and Retryable, and
// the constructor Times; or implement your own Decider. Use
// DeciderFunc to convert an ordinary function into a Decider, and to
// compose deciders logically using DeciderFunc.And and DeciderFunc.Or.
type Decider interface {
	Decide(err error, attempt int) bool
}

// The DeciderFunc type is an adapter to allow the use of ordinary
// functions as retry deciders. It implements the Decider interface,
// and also provides the logical composition methods And and Or.
//
// Every DeciderFunc must be safe for concurrent use by multiple
// goroutines.
//
// Simple DeciderFunc functions can be composed into complex decision
// trees using the logical composition functions DeciderFunc.And and
// DeciderFunc.Or. Because of this composition ability, it will often
// be convenient to work directly with DeciderFunc rather than with
// Decider.
type DeciderFunc func(err error, attempt int) bool

// DefaultTimes is the total number of attempts DefaultDecider will
// permit.
const DefaultTimes = 5

// DefaultDecider is the retry decider suitable for typical data-source
// connector API calls. It permits up to DefaultTimes total attempts,
// and retries only if the failure is a rate limit (HTTP status 429) or
// a connect/read timeout.
var DefaultDecider = Times(DefaultTimes).And(Retryable)

// RateLimited is a decider that indicates a retry if the failure is a
// rate limit according to failure.Categorize: a status failure with
// HTTP status code exactly 429. All other status codes, including
// other 4xx and 5xx codes, do not indicate a retry.
var RateLimited DeciderFunc = rateLimited

// TimedOut is a decider that indicates a retry if the failure is a
// connect or read timeout according to failure.Categorize.
var TimedOut DeciderFunc = timedOut

// Retryable is a decider that indicates a retry if the failure is
// either a rate limit or a timeout. Any other failure shape, for
// example a DNS error or a generic error, does not indicate a retry;
// callers needing broader behavior can compose their own deciders
// around it.
var Retryable = RateLimited.Or(TimedOut)

// Decide returns true if a retry should be done, and false otherwise,
// after examining the failure raised by the most recent attempt and
// the attempt count.
func (f DeciderFunc) Decide(err error, attempt int) bool {
	return f(err, attempt)
}

// And composes two retry deciders into a new decider which returns
// true if both sub-deciders return true, and false otherwise.
//
// Short-circuit logic is used, so g will not be evaluated if f returns
// false.
func (f DeciderFunc) And(g DeciderFunc) DeciderFunc {
	return func(err error, attempt int) bool {
		return f(err, attempt) && g(err, attempt)
	}
}

// Or composes two retry deciders into a new decider which returns
// true if either of the two sub-deciders returns true, but false if
// they both return false.
//
// Short-circuit logic is used, so g will not be evaluated if f returns
// true.
func (f DeciderFunc) Or(g DeciderFunc) DeciderFunc {
	return func(err error, attempt int) bool {
		return f(err, attempt) || g(err, attempt)
	}
}

// Times constructs a retry decider which permits up to n total
// attempts. The returned decider returns true while the 1-based
// attempt count is less than n, and false afterward.
func Times(n int) DeciderFunc {
	return func(_ error, attempt int) bool {
		return attempt < n
	}
}

func rateLimited(err error, _ int) bool {
	return failure.IsRateLimit(err)
}

func timedOut(err error, _ int) bool {
	return failure.IsTimeout(err)
}
