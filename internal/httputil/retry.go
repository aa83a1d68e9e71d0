// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the source adapters.
package httputil

import (
	"context"
	"io"
	"net/http"
	"time"
)

// RetryDelay is the fixed wait between retry attempts. Tests override this
// to avoid real sleeps.
var RetryDelay = 1 * time.Second

const defaultMaxRetries = 2

// DoWithRetry executes an HTTP request and retries transient failures:
// network errors, HTTP 429, and HTTP 5xx. Attempts are spaced RetryDelay
// apart; the request is cloned per attempt.
//
// When maxRetries is 0 the default (2) is used, so at most three attempts
// are made. Before each retry the previous response body is drained and
// closed. If the context is cancelled during the wait the function returns
// ctx.Err(). After exhausting retries the last response or error is
// returned as-is so the caller can inspect it.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err == nil && !transientStatus(resp.StatusCode) {
			return resp, nil
		}

		// Out of retries: hand back whatever the last attempt produced.
		if attempt >= maxRetries {
			return resp, err
		}

		if resp != nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(RetryDelay):
		}
	}
}

// transientStatus reports whether a status code is worth retrying.
func transientStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}
