package lookerlib

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

type httpClient struct {
	userAgent   string
	client      *http.Client
	rateLimiter *rate.Limiter
}

func (h httpClient) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	if err := h.rateLimiter.Wait(ctx); err != nil {
		// limiter fails fast if a token would come after the deadline
		if _, ok := ctx.Deadline(); ok && ctx.Err() == nil {
			return nil, fmt.Errorf("cannot wait for rate limiter: %v: %w", err, context.DeadlineExceeded)
		}

		return nil, fmt.Errorf("cannot wait for rate limiter: %w", err)
	}

	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", h.userAgent)
	}

	return h.client.Do(req)
}

// NewHTTPClient prepares a new HTTP client, wraps it with rate limiter
// and sets a user agent.
//
// All sources behind the aggregator share the same upstream host, so
// it makes sense to have a single client for all of them.
//
// Please see https://pkg.go.dev/golang.org/x/time/rate to get a meaning
// of rate limiter parameters.
func NewHTTPClient(client *http.Client,
	userAgent string,
	rateLimiterInterval time.Duration,
	rateLimitBurst int) HTTPClient {
	return httpClient{
		userAgent:   userAgent,
		client:      client,
		rateLimiter: rate.NewLimiter(rate.Every(rateLimiterInterval), rateLimitBurst),
	}
}
