// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the remote fetch paths.
package httputil

import (
	"context"
	"io"
	"math"
	"net/http"
	"time"
)

const (
	defaultMaxRetries = 3
	defaultBaseDelay  = 10 * time.Second
)

// Policy controls retry behavior for rate-limited requests. The zero value
// uses the defaults (3 retries, 10 s base delay).
type Policy struct {
	// MaxRetries is the number of retry attempts after the first request.
	MaxRetries int

	// BaseDelay is the first backoff duration; it doubles each attempt.
	// Tests set a tiny value to avoid real sleeps.
	BaseDelay time.Duration
}

// Do executes an HTTP request and retries on HTTP 429 (Too Many Requests)
// with exponential backoff: BaseDelay, 2*BaseDelay, 4*BaseDelay, ...
//
// On each 429 the response body is drained and closed before sleeping. If
// the context is cancelled during a backoff wait, ctx.Err() is returned.
// After exhausting retries the last 429 response is returned so the caller
// can inspect it. Other status codes are never retried.
func (p Policy) Do(ctx context.Context, client *http.Client, req *http.Request) (*http.Response, error) {
	maxRetries := p.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	baseDelay := p.BaseDelay
	if baseDelay <= 0 {
		baseDelay = defaultBaseDelay
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		// Exhausted retries — return the 429 response as-is.
		if attempt >= maxRetries {
			return resp, nil
		}

		// Drain and close the body before retrying.
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		backoff := time.Duration(math.Pow(2, float64(attempt))) * baseDelay

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}
