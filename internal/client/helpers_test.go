package client

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"icctv-admin/internal/auth"
)

// captured is one request as the fake backend saw it.
type captured struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   map[string]any
}

type fakeBackend struct {
	t   *testing.T
	srv *httptest.Server

	mu       sync.Mutex
	requests []captured
	status   int
	reply    any
	raw      string
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()

	fb := &fakeBackend{t: t, status: http.StatusOK, reply: map[string]any{"success": true, "data": nil}}
	fb.srv = httptest.NewServer(http.HandlerFunc(fb.serve))
	t.Cleanup(fb.srv.Close)
	return fb
}

func (fb *fakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	c := captured{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Header: r.Header.Clone(),
	}
	if data, err := io.ReadAll(r.Body); err == nil && len(data) > 0 {
		assert.NoError(fb.t, json.Unmarshal(data, &c.Body))
	}

	fb.mu.Lock()
	fb.requests = append(fb.requests, c)
	status, reply, raw := fb.status, fb.reply, fb.raw
	fb.mu.Unlock()

	if raw != "" {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, raw)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(reply)
}

// respond sets the envelope returned for every following request.
func (fb *fakeBackend) respond(status int, data any) {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	fb.status = status
	fb.raw = ""
	fb.reply = map[string]any{"success": status < 400, "data": data}
}

func (fb *fakeBackend) respondError(status int, message string) {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	fb.status = status
	fb.raw = ""
	fb.reply = map[string]any{"success": false, "data": nil, "error": message}
}

func (fb *fakeBackend) respondRaw(status int, body string) {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	fb.status = status
	fb.raw = body
}

func (fb *fakeBackend) last() captured {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	require.NotEmpty(fb.t, fb.requests, "no request reached the backend")
	return fb.requests[len(fb.requests)-1]
}

func (fb *fakeBackend) count() int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return len(fb.requests)
}

func (fb *fakeBackend) client(token string) *Client {
	return New(Config{
		BaseURL: fb.srv.URL + "/api",
		Tokens:  auth.StaticToken(token),
	})
}
