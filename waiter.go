// Copyright 2026 The retryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retryx

import (
	"errors"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/gogama/retryx/failure"
)

const (
	// hintFloor is the minimum wait honored when the server supplies a
	// usable positive Retry-After hint. Sub-second windows would
	// otherwise burn through the caller's attempt budget before the
	// server's rate-limit window actually clears.
	hintFloor = 1 * time.Second
	// hintCeil caps a server-supplied wait so an aggressive hint
	// cannot stall the connector pipeline.
	hintCeil = 120 * time.Second
	// rateLimitCeil caps the exponential fallback wait for a rate
	// limit whose Retry-After hint is absent or unusable.
	rateLimitCeil = 30 * time.Second
	// timeoutCeil caps the exponential backoff wait for timeouts.
	timeoutCeil = 10 * time.Second
)

// jitterFraction bounds the random addition to a computed wait, as a
// fraction of that wait. It decorrelates concurrent callers retrying
// the same endpoint.
const jitterFraction = 0.1

// A Waiter specifies how long to wait before retrying a failed request
// attempt.
//
// Implementations of Waiter must be safe for concurrent use by
// multiple goroutines.
//
// Parameter attempt is the 1-based count of attempts made so far, as
// for Decider. A retry driver should not call the Waiter if the
// Decider returned false; if it does anyway, the built-in waiters
// still return a bounded wait rather than failing.
type Waiter interface {
	Wait(err error, attempt int) time.Duration
}

// DefaultWaiter is the default retry wait policy. For rate limits it
// honors the server's Retry-After hint when usable; otherwise it uses
// a jittered exponential backoff capped at 30 seconds for rate limits
// and 10 seconds for timeouts.
var DefaultWaiter = NewBackoffWaiter(time.Now(), nil)

// NewFixedWaiter constructs a Waiter that always returns the given
// duration.
//
// Use NewFixedWaiter to obtain a constant retry backoff.
func NewFixedWaiter(d time.Duration) Waiter {
	return fixedWaiter(d)
}

type fixedWaiter time.Duration

func (w fixedWaiter) Wait(_ error, _ int) time.Duration {
	return time.Duration(w)
}

// NewBackoffWaiter constructs a Waiter that prefers a server-supplied
// Retry-After hint for rate-limit failures, and otherwise computes a
// capped exponential backoff, adding up to 10% jitter on top of either
// wait.
//
// For a failure categorized as a rate limit (HTTP status 429), a
// Retry-After header is parsed first as a decimal number of seconds
// and then as an HTTP-date. A usable positive hint is floored at 1
// second, capped at 120 seconds, and honored: the server's declared
// window is authoritative, and retrying earlier wastes the attempt
// budget against a still-closed window. An absent, malformed, zero, or
// negative hint falls back to an exponential wait of 2^(attempt-1)
// seconds capped at 30 seconds.
//
// For a timeout failure, the wait is 2^(attempt-1) seconds capped at
// 10 seconds.
//
// Parameter jitter is used to generate the random addition of up to
// jitterFraction of the computed wait. To make a waiter that does not
// jitter, pass nil; such a waiter is fully deterministic, which is
// useful in tests. Otherwise you may specify either a random number
// generator seed value (as a time.Time, int, or int64) or a random
// number generator (as a rand.Source or *rand.Rand).
//
// Parameter clock supplies the current time for interpreting HTTP-date
// Retry-After values. Pass nil to use time.Now.
func NewBackoffWaiter(jitter interface{}, clock func() time.Time) Waiter {
	r := jitterToRand(jitter)
	if clock == nil {
		clock = time.Now
	}
	return &backoffWaiter{
		rand: r,
		now:  clock,
	}
}

type backoffWaiter struct {
	rand *rand.Rand
	now  func() time.Time
	lock sync.Mutex
}

func (w *backoffWaiter) Wait(err error, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	var statusErr *failure.StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusTooManyRequests {
		if v := statusErr.RetryAfter(); v != "" {
			if wait, ok := parseRetryAfter(v, w.now()); ok && wait > 0 {
				if wait < hintFloor {
					wait = hintFloor
				}
				if wait > hintCeil {
					wait = hintCeil
				}
				return wait + w.jitter(wait)
			}
		}
		// Header absent, unusable, or non-positive. A hint of exactly
		// zero is treated the same as a missing hint, never as "retry
		// immediately".
		return w.backoff(attempt, rateLimitCeil)
	}

	return w.backoff(attempt, timeoutCeil)
}

// backoff returns 2^(attempt-1) seconds capped at ceil, plus jitter.
func (w *backoffWaiter) backoff(attempt int, ceil time.Duration) time.Duration {
	exp := int64(1) << uint(attempt-1)
	if exp < 1 || exp > int64(ceil/time.Second) {
		exp = int64(ceil / time.Second)
	}

	base := time.Duration(exp) * time.Second
	return base + w.jitter(base)
}

// jitter returns a uniform random duration in [0, jitterFraction*base).
func (w *backoffWaiter) jitter(base time.Duration) time.Duration {
	if w.rand == nil {
		return 0
	}

	ceil := int64(jitterFraction * float64(base))
	if ceil <= 0 {
		return 0
	}

	w.lock.Lock()
	defer w.lock.Unlock()
	return time.Duration(w.rand.Int63n(ceil))
}

func jitterToRand(jitter interface{}) *rand.Rand {
	var s rand.Source
	switch j := jitter.(type) {
	case nil:
		return nil
	case time.Time:
		s = rand.NewSource(j.UnixNano())
	case int:
		s = rand.NewSource(int64(j))
	case int64:
		s = rand.NewSource(j)
	case *rand.Rand:
		if j == nil {
			panic("retryx: jitter may not be a typed nil")
		}
		return j
	case rand.Source:
		s = j
	default:
		panic("retryx: invalid jitter type")
	}
	return rand.New(s)
}
