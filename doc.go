// Copyright 2026 The retryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package retryx provides retry classification and backoff scheduling for
outbound HTTP calls made by data-source connectors.

The package decides, for a failed request attempt, whether the failure
is worth retrying and how long to wait before the next attempt. It
honors server-provided Retry-After hints when present, and falls back
to bounded exponential backoff with jitter otherwise. It never performs
the HTTP call, never sleeps, and never counts attempts: those belong to
the retry driver embedding it.

Decide whether a failed attempt should be retried using a Decider:

	if !retryx.DefaultDecider.Decide(err, attempt) {
		return err // surface the last failure unchanged
	}

Compute how long to wait before the next attempt using a Waiter:

	wait := retryx.DefaultWaiter.Wait(err, attempt)

Deciders compose, so narrower or broader retry conditions are easy to
assemble:

	decider := retryx.Times(3).And(retryx.RateLimited)

Compose a Decider and a Waiter into a Policy and plug it into a generic
retry driver as its retry predicate and wait strategy:

	policy := retryx.NewPolicy(
		retryx.Times(5).And(retryx.Retryable),
		retryx.NewBackoffWaiter(time.Now(), nil),
	)

This package only recognizes the failure shapes defined in package
failure. Transports produce them at the point where an attempt fails:

	if resp.StatusCode != http.StatusOK {
		return failure.FromResponse(resp)
	}

The retry driver owns attempt counting, sleeping, cancellation of the
scheduled retry, and surfacing the most recent failure unchanged once
its attempt budget is exhausted.
*/
package retryx
