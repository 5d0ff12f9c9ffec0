package lookerlib

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	DefaultEndpoint    = "https://www.iplocation.net/get-ipdata"
	DefaultTimeout     = 2 * time.Second
	DefaultMaxAttempts = 3
)

// UpstreamOpts is a set of options for NewUpstreamClient. Zero values
// are replaced with defaults.
type UpstreamOpts struct {
	Endpoint    string
	Timeout     time.Duration
	MaxAttempts int
	RetryDelay  time.Duration
}

// UpstreamClient queries sources. Timeouts and bad statuses are
// retried up to MaxAttempts times, any other failure aborts the query
// immediately.
type UpstreamClient struct {
	client      HTTPClient
	logger      Logger
	endpoint    string
	timeout     time.Duration
	maxAttempts int
	retryDelay  time.Duration
}

func (u *UpstreamClient) Query(ctx context.Context, ip string, source Source) (Payload, error) {
	var payload Payload

	attempt := 0
	operation := func() error {
		attempt++

		rv, err := u.attempt(ctx, ip, source)
		if err == nil {
			payload = rv

			return nil
		}

		if !isRetryable(err) {
			u.logger.QueryError(source.Name, err)

			return backoff.Permanent(err)
		}

		u.logger.QueryRetry(source.Name, attempt, u.maxAttempts, err)

		return err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(u.retryDelay), uint64(u.maxAttempts-1)),
		ctx)

	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}

	return payload, nil
}

func (u *UpstreamClient) attempt(ctx context.Context, ip string, source Source) (Payload, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	req, err := u.buildRequest(ctx, ip, source)
	if err != nil {
		return nil, fmt.Errorf("cannot build a request: %w", err)
	}

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot send a request: %w", err)
	}

	defer func() {
		io.Copy(ioutil.Discard, resp.Body) // nolint: errcheck
		resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	payload := Payload{}
	jsonDecoder := json.NewDecoder(bufio.NewReader(resp.Body))

	if err := jsonDecoder.Decode(&payload); err != nil {
		return nil, fmt.Errorf("cannot parse a response: %w", err)
	}

	return payload, nil
}

func (u *UpstreamClient) buildRequest(ctx context.Context, ip string, source Source) (*http.Request, error) {
	if source.Direct() {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source.RequestURL(ip), nil)
		if err != nil {
			return nil, err
		}

		req.Header.Set("Accept", "application/json")

		return req, nil
	}

	form := url.Values{}

	form.Set("ip", ip)
	form.Set("source", source.Name)
	form.Set("ipv", "4")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return req, nil
}

// IsTimeout checks if error is caused by a request timeout.
func IsTimeout(err error) bool {
	var netErr net.Error

	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return errors.Is(err, context.DeadlineExceeded)
}

func isRetryable(err error) bool {
	return IsTimeout(err) || errors.Is(err, ErrUnexpectedStatus)
}

// NewUpstreamClient returns a querier which uses the given HTTP client.
func NewUpstreamClient(client HTTPClient, logger Logger, opts UpstreamOpts) *UpstreamClient {
	if logger == nil {
		logger = nopLogger{}
	}

	rv := &UpstreamClient{
		client:      client,
		logger:      logger,
		endpoint:    opts.Endpoint,
		timeout:     opts.Timeout,
		maxAttempts: opts.MaxAttempts,
		retryDelay:  opts.RetryDelay,
	}

	if rv.endpoint == "" {
		rv.endpoint = DefaultEndpoint
	}

	if rv.timeout <= 0 {
		rv.timeout = DefaultTimeout
	}

	if rv.maxAttempts <= 0 {
		rv.maxAttempts = DefaultMaxAttempts
	}

	return rv
}
