package client

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
)

// APIError is a request the backend answered with a non-2xx status, or an
// envelope reporting success=false.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string // backend "error" field, when it sent one
	Body       string
}

func (e *APIError) Error() string {
	var b strings.Builder
	if e.Method != "" {
		fmt.Fprintf(&b, "%s %s: ", e.Method, e.Path)
	}
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, "status %d: ", e.StatusCode)
	}
	switch {
	case e.Message != "":
		b.WriteString(e.Message)
	case e.Body != "":
		b.WriteString(e.Body)
	default:
		b.WriteString("request failed")
	}
	return b.String()
}

func newAPIError(method, path string, resp *resty.Response, message string) *APIError {
	return &APIError{
		Method:     method,
		Path:       path,
		StatusCode: resp.StatusCode(),
		Message:    message,
		Body:       strings.TrimSpace(resp.String()),
	}
}

// Detail returns the text to show an operator for err: the backend's own
// error message when it sent one, otherwise the error text.
func Detail(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

// IsAuthError reports whether the backend rejected the bearer token.
func IsAuthError(err error) bool {
	return IsStatus(err, 401) || IsStatus(err, 403)
}
