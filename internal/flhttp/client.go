package flhttp

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/AdguardTeam/golibs/httphdr"
)

// Client is a wrapper around http.Client that sets the service User-Agent.
type Client struct {
	http      *http.Client
	userAgent string
}

// ClientConfig is the configuration structure for Client.
type ClientConfig struct {
	// Timeout is the timeout for all requests.
	Timeout time.Duration
}

// NewClient returns a new client.  conf must not be nil.
func NewClient(conf *ClientConfig) (c *Client) {
	return &Client{
		http: &http.Client{
			Timeout: conf.Timeout,
		},
		userAgent: UserAgent(),
	}
}

// Get is a wrapper around http.Client.Get.
//
// When err is nil, resp always contains a non-nil resp.Body.  Caller should
// close resp.Body when done reading from it.
func (c *Client) Get(ctx context.Context, u *url.URL) (resp *http.Response, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating get request: %w", err)
	}

	req.Header.Set(httphdr.UserAgent, c.userAgent)

	return c.http.Do(req)
}

// CheckStatus returns a non-nil error with the data from resp if the status
// code in resp is not equal to expected.  resp must be non-nil.
func CheckStatus(resp *http.Response, expected int) (err error) {
	if resp.StatusCode == expected {
		return nil
	}

	return fmt.Errorf("status code error: expected %d, got %d", expected, resp.StatusCode)
}
