package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultHTTPTimeout = 10 * time.Second
	userAgent          = "go-gateway"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
//
// Example usage:
//
//	client := utils.NewHTTPClient("https://consul.example:443")
//	resp, err := client.R().Get("/v1/agent/self")
type HTTPClient struct {
	*resty.Client
}

// HTTPClientOption customizes an [HTTPClient] at construction time.
type HTTPClientOption func(*resty.Client)

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) HTTPClientOption {
	return func(c *resty.Client) {
		if timeout > 0 {
			c.SetTimeout(timeout)
		}
	}
}

// WithHeader adds a header sent with every request. Empty values are skipped.
func WithHeader(name, value string) HTTPClientOption {
	return func(c *resty.Client) {
		if value != "" {
			c.SetHeader(name, value)
		}
	}
}

// NewHTTPClient creates and returns a new HTTPClient bound to baseURL.
//
// Each call returns an independent client instance with its own
// configuration, connection pool, and state. Requests time out after
// ten seconds unless [WithTimeout] says otherwise; there are no retries.
//
// Example usage:
//
//	client := utils.NewHTTPClient(vaultURI, utils.WithHeader("X-Vault-Token", token))
//	resp, err := client.R().
//	    SetHeader("Accept", "application/json").
//	    Get("/v1/secret/data/app")
func NewHTTPClient(baseURL string, opts ...HTTPClientOption) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(defaultHTTPTimeout).
		SetHeader("User-Agent", userAgent)

	for _, opt := range opts {
		opt(client)
	}

	return &HTTPClient{Client: client}
}
