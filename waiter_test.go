// Copyright 2026 The retryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retryx

import (
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/gogama/retryx/failure"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2026, time.March, 9, 15, 4, 5, 0, time.UTC)

func testClock() time.Time {
	return testNow
}

func rateLimit(retryAfter string) *failure.StatusError {
	e := &failure.StatusError{StatusCode: 429}
	if retryAfter != "" {
		e.Header = http.Header{"Retry-After": []string{retryAfter}}
	}
	return e
}

func TestBackoffWaiterTimeoutPath(t *testing.T) {
	w := NewBackoffWaiter(nil, testClock)
	expected := []time.Duration{
		1 * time.Second,
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
		10 * time.Second,
		10 * time.Second,
	}
	for i, want := range expected {
		attempt := i + 1
		t.Run(fmt.Sprintf("attempt=%d", attempt), func(t *testing.T) {
			assert.Equal(t, want, w.Wait(&failure.TimeoutError{Kind: failure.Connect}, attempt))
			assert.Equal(t, want, w.Wait(&failure.TimeoutError{Kind: failure.Read}, attempt))
		})
	}
	t.Run("cap survives huge attempts", func(t *testing.T) {
		assert.Equal(t, 10*time.Second, w.Wait(&failure.TimeoutError{Kind: failure.Read}, 63))
		assert.Equal(t, 10*time.Second, w.Wait(&failure.TimeoutError{Kind: failure.Read}, 64))
		assert.Equal(t, 10*time.Second, w.Wait(&failure.TimeoutError{Kind: failure.Read}, 1<<40))
	})
	t.Run("attempt clamped to 1", func(t *testing.T) {
		assert.Equal(t, 1*time.Second, w.Wait(&failure.TimeoutError{Kind: failure.Read}, 0))
		assert.Equal(t, 1*time.Second, w.Wait(&failure.TimeoutError{Kind: failure.Read}, -5))
	})
}

func TestBackoffWaiterRateLimitFallback(t *testing.T) {
	w := NewBackoffWaiter(nil, testClock)
	expected := []time.Duration{
		1 * time.Second,
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
		16 * time.Second,
		30 * time.Second,
		30 * time.Second,
	}
	headers := []string{"", "garbage", "0", "-7", "5 seconds", "Wed, 32 Foo 2026 99:99:99 GMT"}
	for i, v := range headers {
		t.Run(fmt.Sprintf("headers[%d]=%q", i, v), func(t *testing.T) {
			for j, want := range expected {
				assert.Equal(t, want, w.Wait(rateLimit(v), j+1), fmt.Sprintf("attempt %d", j+1))
			}
		})
	}
}

func TestBackoffWaiterRetryAfterSeconds(t *testing.T) {
	w := NewBackoffWaiter(nil, testClock)
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"5", 5 * time.Second},
		{"1.5", 1500 * time.Millisecond},
		{"0.3", 1 * time.Second},   // floored: sub-second windows burn the budget
		{"0.999", 1 * time.Second}, // floored
		{"1", 1 * time.Second},
		{"119", 119 * time.Second},
		{"120", 120 * time.Second},
		{"121", 120 * time.Second}, // capped
		{"300", 120 * time.Second}, // capped
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("tests[%d]=%q", i, test.value), func(t *testing.T) {
			// Attempt number is irrelevant when the hint is honored.
			assert.Equal(t, test.want, w.Wait(rateLimit(test.value), 1))
			assert.Equal(t, test.want, w.Wait(rateLimit(test.value), 7))
		})
	}
}

func TestBackoffWaiterRetryAfterDate(t *testing.T) {
	w := NewBackoffWaiter(nil, testClock)
	date := func(d time.Duration) string {
		return testNow.Add(d).UTC().Format(http.TimeFormat)
	}
	t.Run("future date honored", func(t *testing.T) {
		assert.Equal(t, 10*time.Second, w.Wait(rateLimit(date(10*time.Second)), 1))
		assert.Equal(t, 45*time.Second, w.Wait(rateLimit(date(45*time.Second)), 3))
	})
	t.Run("near date floored", func(t *testing.T) {
		// HTTP-dates have second resolution, so the smallest positive
		// delta is already at the floor.
		assert.Equal(t, 1*time.Second, w.Wait(rateLimit(date(1*time.Second)), 1))
	})
	t.Run("distant date capped", func(t *testing.T) {
		assert.Equal(t, 120*time.Second, w.Wait(rateLimit(date(90*time.Minute)), 1))
	})
	t.Run("date at or before now falls back", func(t *testing.T) {
		assert.Equal(t, 4*time.Second, w.Wait(rateLimit(date(0)), 3))
		assert.Equal(t, 4*time.Second, w.Wait(rateLimit(date(-time.Hour)), 3))
	})
}

func TestBackoffWaiterUnclassifiedFailure(t *testing.T) {
	// Callers are expected to classify first, but the waiter must stay
	// total: unrecognized failures ride the bounded timeout curve.
	w := NewBackoffWaiter(nil, testClock)
	assert.Equal(t, 4*time.Second, w.Wait(errors.New("foo"), 3))
	assert.Equal(t, 10*time.Second, w.Wait(nil, 50))
	assert.Equal(t, 1*time.Second, w.Wait(&failure.StatusError{StatusCode: 500}, 1))
}

func TestBackoffWaiterJitter(t *testing.T) {
	jitters := []struct {
		name  string
		value interface{}
	}{
		{"zero time.Time", time.Time{}},
		{"time.Now()", time.Now()},
		{"int", 1},
		{"int64", int64(1)},
		{"rand.Source", rand.NewSource(0)},
		{"*rand.Rand", rand.New(rand.NewSource(0))},
	}
	within := func(t *testing.T, wait, base time.Duration) {
		assert.GreaterOrEqual(t, wait, base)
		assert.LessOrEqual(t, wait, time.Duration(1.1*float64(base)))
	}
	for i, jitter := range jitters {
		t.Run(fmt.Sprintf("jitters[%d]=%s", i, jitter.name), func(t *testing.T) {
			w := NewBackoffWaiter(jitter.value, testClock)
			within(t, w.Wait(rateLimit("5"), 1), 5*time.Second)
			within(t, w.Wait(rateLimit("0.3"), 1), 1*time.Second)
			within(t, w.Wait(rateLimit("300"), 1), 120*time.Second)
			within(t, w.Wait(rateLimit(""), 3), 4*time.Second)
			within(t, w.Wait(&failure.TimeoutError{Kind: failure.Read}, 3), 4*time.Second)
			within(t, w.Wait(&failure.TimeoutError{Kind: failure.Connect}, 100), 10*time.Second)
		})
	}
	t.Run("invalid jitter", func(t *testing.T) {
		assert.Panics(t, func() {
			NewBackoffWaiter(float64(1), nil)
		}, "float64")
		var nilRand *rand.Rand
		assert.Panics(t, func() {
			NewBackoffWaiter(nilRand, nil)
		}, "nil *rand.Rand")
	})
}

func TestBackoffWaiterConcurrent(t *testing.T) {
	n := 100
	w := NewBackoffWaiter(0, testClock)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			for attempt := 1; attempt <= 8; attempt++ {
				wait := w.Wait(&failure.TimeoutError{Kind: failure.Read}, attempt)
				assert.GreaterOrEqual(t, wait, 1*time.Second)
				assert.LessOrEqual(t, wait, 11*time.Second)
			}
		}()
	}
	wg.Wait()
}

func TestDefaultWaiter(t *testing.T) {
	for attempt := 1; attempt <= 10; attempt++ {
		wait := DefaultWaiter.Wait(&failure.TimeoutError{Kind: failure.Connect}, attempt)
		assert.GreaterOrEqual(t, wait, 1*time.Second)
		assert.LessOrEqual(t, wait, 11*time.Second)

		wait = DefaultWaiter.Wait(rateLimit(""), attempt)
		assert.GreaterOrEqual(t, wait, 1*time.Second)
		assert.LessOrEqual(t, wait, 33*time.Second)
	}
	wait := DefaultWaiter.Wait(rateLimit("2"), 1)
	assert.GreaterOrEqual(t, wait, 2*time.Second)
	assert.LessOrEqual(t, wait, 2200*time.Millisecond)
}

func TestNewFixedWaiter(t *testing.T) {
	w := NewFixedWaiter(250 * time.Millisecond)
	assert.Equal(t, 250*time.Millisecond, w.Wait(nil, 1))
	assert.Equal(t, 250*time.Millisecond, w.Wait(rateLimit("90"), 5))
	assert.Equal(t, 250*time.Millisecond, w.Wait(&failure.TimeoutError{Kind: failure.Read}, 100))
}
