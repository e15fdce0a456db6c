// Copyright 2026 The retryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retryx

import (
	"time"
)

// A Policy controls if and how retries are done after failed request
// attempts. After every failed attempt, a Policy decides whether a
// retry should be done and, if so, how long the wait period should be
// before retrying the attempt.
//
// Implementations of Policy must be safe for concurrent use by
// multiple goroutines.
//
// A Policy is composed of the Decider and Waiter interfaces. While you
// can implement Policy yourself, it may be more convenient to use one
// of the built-in policies, DefaultPolicy or Never, or to construct
// your policy using the NewPolicy constructor from existing Decider
// and Waiter implementations.
type Policy interface {
	Decider
	Waiter
}

// DefaultPolicy is the retry policy suitable for typical data-source
// connector API calls. It is a composition of DefaultDecider for retry
// decisions and DefaultWaiter for wait time calculations.
var DefaultPolicy Policy = policy{DefaultDecider, DefaultWaiter}

// Never is a policy that never retries. It is useful if you want to
// plug a policy into a retry driver but do not want retries.
var Never Policy = policy{Times(0), DefaultWaiter}

type policy struct {
	decider Decider
	waiter  Waiter
}

// NewPolicy composes a Decider and a Waiter into a retry Policy.
//
// Both d and w must be non-nil.
func NewPolicy(d Decider, w Waiter) Policy {
	if d == nil {
		panic("retryx: nil decider")
	}
	if w == nil {
		panic("retryx: nil waiter")
	}
	return policy{decider: d, waiter: w}
}

func (p policy) Decide(err error, attempt int) bool {
	return p.decider.Decide(err, attempt)
}

func (p policy) Wait(err error, attempt int) time.Duration {
	return p.waiter.Wait(err, attempt)
}
