package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
)

// Origin strips the path from the API base URL: https://host/api -> https://host
func Origin(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("base url %q is not absolute", baseURL)
	}
	return u.Scheme + "://" + u.Host, nil
}

// newHealthHTTP builds the second, unconfigured client: no API prefix and
// no token middleware. It returns nil when the base URL has no origin.
func newHealthHTTP(baseURL string, timeout time.Duration) *resty.Client {
	origin, err := Origin(baseURL)
	if err != nil {
		return nil
	}
	return resty.New().SetBaseURL(origin).SetTimeout(timeout)
}

// Health checks GET {origin}/health and returns the plain text body.
func (c *Client) Health(ctx context.Context) (string, error) {
	if c.health == nil {
		return "", errors.New("health check needs an absolute base url")
	}

	resp, err := c.health.R().
		SetContext(ctx).
		Get("/health")

	if err != nil {
		return "", fmt.Errorf("GET /health: %w", err)
	}

	if resp.IsError() {
		return "", newAPIError("GET", "/health", resp, "")
	}

	return resp.String(), nil
}
