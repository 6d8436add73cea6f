package store

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"icctv-admin/internal/auth"
	"icctv-admin/internal/client"
	"icctv-admin/pkg/models"
)

// recorder is a Notifier that keeps every message.
type recorder struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (r *recorder) Success(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.successes = append(r.successes, msg)
}

func (r *recorder) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, msg)
}

func (r *recorder) Successes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.successes...)
}

func (r *recorder) Errors() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.errors...)
}

type call struct {
	Key   string // "GET /device"
	Query url.Values
}

// memBackend is an in-memory icctv backend behind httptest.
type memBackend struct {
	t   *testing.T
	srv *httptest.Server

	mu        sync.Mutex
	nextID    int64
	devices   []models.Device
	buildings []models.Building
	nvrs      []models.Nvr
	admins    []models.Admin
	publicNet models.PublicNetConfig
	nvrShape  string // "array", "envelope" or "single"
	failures  map[string]int
	calls     []call
}

func newMemBackend(t *testing.T) *memBackend {
	t.Helper()

	b := &memBackend{t: t, nextID: 1, nvrShape: "array", failures: map[string]int{}}
	b.srv = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.srv.Close)
	return b
}

func (b *memBackend) client() *client.Client {
	return client.New(client.Config{
		BaseURL: b.srv.URL + "/api",
		Tokens:  auth.StaticToken("test-token"),
	})
}

// registry wires a fresh registry over the backend with a recording notifier.
func (b *memBackend) registry() (*Registry, *recorder) {
	rec := &recorder{}
	return NewRegistry(b.client(), rec), rec
}

// fail makes every following "METHOD /path" request answer with status and
// an unsuccessful envelope. A 200 status yields a success=false envelope.
func (b *memBackend) fail(key string, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[key] = status
}

func (b *memBackend) setNvrShape(shape string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nvrShape = shape
}

func (b *memBackend) keys() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]string, 0, len(b.calls))
	for _, c := range b.calls {
		out = append(out, c.Key)
	}
	return out
}

func (b *memBackend) lastCall(key string) (call, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := len(b.calls) - 1; i >= 0; i-- {
		if b.calls[i].Key == key {
			return b.calls[i], true
		}
	}
	return call{}, false
}

func (b *memBackend) id() int64 {
	id := b.nextID
	b.nextID++
	return id
}

func (b *memBackend) serve(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + strings.TrimPrefix(r.URL.Path, "/api")
	q := r.URL.Query()

	b.mu.Lock()
	defer b.mu.Unlock()

	b.calls = append(b.calls, call{Key: key, Query: q})

	if status, ok := b.failures[key]; ok {
		writeJSON(w, status, map[string]any{"success": false, "error": "backend refused " + key})
		return
	}

	decode := func(v any) bool {
		if err := json.NewDecoder(r.Body).Decode(v); err != nil {
			assert.NoError(b.t, err, key)
			writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": err.Error()})
			return false
		}
		return true
	}
	queryID, _ := strconv.ParseInt(q.Get("id"), 10, 64)

	switch key {
	// devices
	case "GET /device":
		out := []models.Device{}
		for _, d := range b.devices {
			if kw := q.Get("ismartid"); kw == "" || strings.Contains(d.Ismartid, kw) {
				out = append(out, d)
			}
		}
		reply(w, out)
	case "POST /device":
		var in models.DeviceCreatePayload
		if !decode(&in) {
			return
		}
		d := models.Device{
			ModelFields:           models.ModelFields{ID: b.id()},
			Ismartid:              in.Ismartid,
			Name:                  in.Name,
			AuthServiceRemotePort: in.AuthServiceRemotePort,
			SSHRemotePort:         in.SSHRemotePort,
			IsActive:              in.IsActive == nil || *in.IsActive,
		}
		b.devices = append(b.devices, d)
		reply(w, d)
	case "PUT /device":
		var in models.DeviceUpdatePayload
		if !decode(&in) {
			return
		}
		for i := range b.devices {
			if b.devices[i].ID != queryID {
				continue
			}
			d := &b.devices[i]
			if in.Name != nil {
				d.Name = *in.Name
			}
			if in.Ismartid != nil {
				d.Ismartid = *in.Ismartid
			}
			if in.IsActive != nil {
				d.IsActive = *in.IsActive
			}
			if in.SSHRemotePort != nil {
				d.SSHRemotePort = *in.SSHRemotePort
			}
			reply(w, *d)
			return
		}
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "error": "device not found"})
	case "DELETE /device":
		var in models.IDPayload
		if !decode(&in) {
			return
		}
		var found bool
		b.devices, found = without(b.devices, in.ID)
		reply(w, models.Deleted{Deleted: found})
	case "GET /device/info":
		active := 0
		for _, d := range b.devices {
			if d.IsActive {
				active++
			}
		}
		reply(w, models.DeviceStats{TotalDevices: len(b.devices), ActiveDevices: active})

	// buildings
	case "GET /building":
		reply(w, append([]models.Building{}, b.buildings...))
	case "POST /building":
		var in models.BuildingPayload
		if !decode(&in) {
			return
		}
		bl := models.Building{ModelFields: models.ModelFields{ID: b.id()}, Ismartid: in.Ismartid, Name: in.Name, Remark: in.Remark}
		b.buildings = append(b.buildings, bl)
		reply(w, bl)
	case "DELETE /building":
		var in models.IDPayload
		if !decode(&in) {
			return
		}
		var found bool
		b.buildings, found = without(b.buildings, in.ID)
		reply(w, models.Deleted{Deleted: found})
	case "POST /bind/building-orangepi", "POST /bind/building-nvr":
		reply(w, models.Bound{Bound: true})

	// nvrs
	case "GET /nvr":
		if queryID > 0 {
			for _, n := range b.nvrs {
				if n.ID == queryID {
					reply(w, n)
					return
				}
			}
			reply(w, []models.Nvr{})
			return
		}
		switch b.nvrShape {
		case "envelope":
			reply(w, models.Paginated[models.Nvr]{
				Items: b.nvrs,
				Page:  models.PageMeta{Total: len(b.nvrs), Current: 1, Size: 10},
			})
		case "single":
			reply(w, b.nvrs[0])
		default:
			reply(w, append([]models.Nvr{}, b.nvrs...))
		}
	case "POST /nvr":
		var in models.NvrCreatePayload
		if !decode(&in) {
			return
		}
		n := models.Nvr{ModelFields: models.ModelFields{ID: b.id()}, Name: in.Name, URL: in.URL, BuildingID: in.BuildingID}
		b.nvrs = append(b.nvrs, n)
		reply(w, n)
	case "POST /nvr/rtsp-url":
		var in models.NvrRTSPURLPayload
		if !decode(&in) {
			return
		}
		for i := range b.nvrs {
			if b.nvrs[i].ID == in.ID {
				b.nvrs[i].RTSPURLs = append(b.nvrs[i].RTSPURLs, in.URL)
				reply(w, b.nvrs[i])
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "error": "nvr not found"})

	// accounts
	case "GET /admin":
		if queryID > 0 {
			for _, a := range b.admins {
				if a.ID == queryID {
					reply(w, a)
					return
				}
			}
			reply(w, []models.Admin{})
			return
		}
		reply(w, models.Paginated[models.Admin]{
			Items: append([]models.Admin{}, b.admins...),
			Page:  models.PageMeta{Total: len(b.admins), Current: atoi(q.Get("pageNum")), Size: atoi(q.Get("pageSize"))},
		})
	case "POST /admin":
		var in models.AdminCreatePayload
		if !decode(&in) {
			return
		}
		a := models.Admin{ModelFields: models.ModelFields{ID: b.id()}, Username: in.Username}
		b.admins = append(b.admins, a)
		reply(w, a)

	// public network
	case "GET /publicnet/config":
		reply(w, b.publicNet)
	case "PUT /publicnet/config":
		var in models.PublicNetConfig
		if !decode(&in) {
			return
		}
		b.publicNet = in
		reply(w, in)

	// remote
	case "POST /auth/public":
		var in models.PublicTokenPayload
		if !decode(&in) {
			return
		}
		reply(w, models.PublicToken{Token: "delegated-" + in.Ismartid})
	case "GET /orangepi/remote/paths":
		reply(w, models.RelayPathList{
			Items:     []models.RelayPath{{Name: "cam1", Ready: true, ConfName: "cam1"}},
			ItemsPage: atoi(q.Get("page")),
		})
	case "POST /orangepi/remote/paths", "PATCH /orangepi/remote/paths", "DELETE /orangepi/remote/paths":
		reply(w, models.RelayPathResult{Action: r.Method, Name: q.Get("name"), StatusCode: http.StatusOK})

	default:
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "error": "no route " + key})
	}
}

func without[T Keyed](items []T, id int64) ([]T, bool) {
	for i, item := range items {
		if item.PrimaryKey() == id {
			return append(items[:i:i], items[i+1:]...), true
		}
	}
	return items, false
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func reply(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": data})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
