package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"icctv-admin/internal/auth"
)

const (
	DefaultBaseURL = "http://localhost:8080/api"
	DefaultTimeout = 15 * time.Second
)

// Client is the shared transport for every resource call against the
// backend. It is safe for concurrent use.
type Client struct {
	HTTP   *resty.Client
	Config Config

	health *resty.Client
	log    zerolog.Logger
}

type Config struct {
	BaseURL string        // API prefix, e.g. https://host/api
	Timeout time.Duration // per request; DefaultTimeout when zero
	Tokens  auth.TokenSource
	Logger  *zerolog.Logger
}

// Envelope is the {success, data, error} wrapper every non-health endpoint returns.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error,omitempty"`
}

// Check turns a well-formed envelope reporting success=false into an error.
func (e *Envelope[T]) Check() error {
	if e == nil {
		return &APIError{Message: "empty response"}
	}
	if !e.Success {
		return &APIError{Message: e.Error}
	}
	return nil
}

func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	r := resty.New()
	r.SetBaseURL(cfg.BaseURL)
	r.SetTimeout(cfg.Timeout)
	r.SetHeader("Content-Type", "application/json")
	r.SetHeader("Accept", "application/json")
	r.SetLogger(restyLogger{log: logger})

	c := &Client{
		HTTP:   r,
		Config: cfg,
		health: newHealthHTTP(cfg.BaseURL, cfg.Timeout),
		log:    logger,
	}

	r.OnBeforeRequest(c.authorize)
	r.OnAfterResponse(c.trace)

	return c
}

// authorize reads the token on every request so a login or logout takes
// effect without rebuilding the client.
func (c *Client) authorize(_ *resty.Client, req *resty.Request) error {
	req.SetHeader("X-Request-ID", uuid.NewString())

	if c.Config.Tokens == nil {
		return nil
	}
	if token := c.Config.Tokens.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return nil
}

// trace only logs; failures reach the caller untouched.
func (c *Client) trace(_ *resty.Client, resp *resty.Response) error {
	c.log.Debug().
		Str("method", resp.Request.Method).
		Str("url", resp.Request.URL).
		Int("status", resp.StatusCode()).
		Dur("took", resp.Time()).
		Msg("api call")
	return nil
}

// send issues exactly one request and decodes the envelope. Non-2xx
// responses become *APIError carrying the backend's error string when present.
func send[T any](ctx context.Context, req *resty.Request, method, path string) (*Envelope[T], error) {
	var out Envelope[T]
	var failure Envelope[json.RawMessage]

	resp, err := req.
		SetContext(ctx).
		ForceContentType("application/json").
		SetResult(&out).
		SetError(&failure).
		Execute(method, path)

	if err != nil {
		// An error body that is not JSON still deserves the status code.
		if resp != nil && resp.IsError() {
			return nil, newAPIError(method, path, resp, "")
		}
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	if resp.IsError() {
		return nil, newAPIError(method, path, resp, failure.Error)
	}

	return &out, nil
}

type restyLogger struct {
	log zerolog.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) { l.log.Error().Msgf(format, v...) }
func (l restyLogger) Warnf(format string, v ...interface{})  { l.log.Warn().Msgf(format, v...) }
func (l restyLogger) Debugf(format string, v ...interface{}) { l.log.Debug().Msgf(format, v...) }
