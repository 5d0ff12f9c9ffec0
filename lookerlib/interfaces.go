package lookerlib

import (
	"context"
	"net/http"
)

// HTTPClient is an interface of the HTTP client which is used to talk
// to upstream sources. Please use NewHTTPClient to get a client with a
// rate limiter and correct user agent.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// Querier fetches a raw payload of the source for the given IP address.
// A nil payload with nil error means that the source has no data.
type Querier interface {
	Query(ctx context.Context, ip string, source Source) (Payload, error)
}

// Logger receives informational events. None of them are fatal: a
// source which has failed is simply reported as missing.
type Logger interface {
	QueryRetry(source string, attempt, maxAttempts int, err error)
	QueryError(source string, err error)
	LookupError(ip, source string, err error)
}

type nopLogger struct{}

func (nopLogger) QueryRetry(string, int, int, error) {}
func (nopLogger) QueryError(string, error)           {}
func (nopLogger) LookupError(string, string, error)  {}
