// Copyright 2026 The retryx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package failure models the failed outcomes of HTTP request attempts
// made by data-source connectors, and classifies them as retryable or
// not under the connector retry policy. Exactly two failure shapes are
// retryable: a rate limit (HTTP status 429) and a client-side connect
// or read timeout. Everything else, including other 4xx and 5xx
// statuses, DNS errors, and generic errors, is classified as not
// retryable, so that callers wanting broader retry behavior have to
// opt in explicitly by wrapping the classifier.
//
// Package failure is extremely lightweight, as it depends only on
// standard library packages, so it doesn't bring any significant
// dependencies when imported as a standalone package.
package failure
