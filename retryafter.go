// Copyright 2026 The retryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retryx

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// parseRetryAfter interprets the value of a Retry-After response
// header. It accepts a decimal number of seconds (fractions allowed,
// unlike RFC 7231, because rate limiters in the wild send them) or an
// HTTP-date, in that order. For a date, the wait is the delta from now
// to the date, floored at zero. The second return value is false if
// the value matches neither form.
//
// A successfully parsed wait may be zero or negative; the caller
// decides what to do with non-positive hints.
func parseRetryAfter(value string, now time.Time) (time.Duration, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}

	if seconds, err := strconv.ParseFloat(value, 64); err == nil {
		return time.Duration(seconds * float64(time.Second)), true
	}

	if date, err := http.ParseTime(value); err == nil {
		wait := date.Sub(now)
		if wait < 0 {
			wait = 0
		}
		return wait, true
	}

	return 0, false
}
