package lookerlib

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"strings"
)

const ExternalIPEndpoint = "https://api.ipify.org"

// ExternalIP returns an IP address this host is seen from the internet
// with.
func ExternalIP(ctx context.Context, client HTTPClient) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ExternalIPEndpoint, nil)
	if err != nil {
		return "", fmt.Errorf("cannot build a request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("cannot send a request: %w", err)
	}

	defer func() {
		io.Copy(ioutil.Discard, resp.Body) // nolint: errcheck
		resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := ioutil.ReadAll(io.LimitReader(resp.Body, 64))
	if err != nil {
		return "", fmt.Errorf("cannot read response body: %w", err)
	}

	return strings.TrimSpace(string(body)), nil
}
