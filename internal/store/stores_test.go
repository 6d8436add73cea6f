package store

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"icctv-admin/internal/client"
	"icctv-admin/pkg/models"
)

func newDevice(ismartid string) models.DeviceCreatePayload {
	return models.DeviceCreatePayload{
		Ismartid:              ismartid,
		Name:                  "relay " + ismartid,
		AuthServiceRemotePort: 7001,
		SSHRemotePort:         6001,
	}
}

func TestRegistryReturnsSameStore(t *testing.T) {
	t.Parallel()

	reg, _ := newMemBackend(t).registry()

	assert.Same(t, reg.Devices(), reg.Devices())
	assert.Same(t, reg.Buildings(), reg.Buildings())
	assert.Same(t, reg.Nvrs(), reg.Nvrs())
	assert.Same(t, reg.Admins(), reg.Admins())
	assert.Same(t, reg.PublicNet(), reg.PublicNet())
	assert.Same(t, reg.OrangePi(), reg.OrangePi())
	assert.Same(t, reg.Devices(), reg.OrangePi().DeviceStore)
}

func TestDeviceCreateRelists(t *testing.T) {
	t.Parallel()

	backend := newMemBackend(t)
	reg, rec := backend.registry()
	ctx := context.Background()

	require.NoError(t, reg.Devices().Create(ctx, newDevice("ismart_001")))

	want := []models.Device{{
		Ismartid:              "ismart_001",
		Name:                  "relay ismart_001",
		AuthServiceRemotePort: 7001,
		SSHRemotePort:         6001,
		IsActive:              true,
	}}
	if diff := cmp.Diff(want, reg.Devices().Items(), cmpopts.IgnoreFields(models.Device{}, "ModelFields")); diff != "" {
		t.Errorf("devices mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, []string{"POST /device", "GET /device"}, backend.keys())
	assert.Equal(t, []string{"device created"}, rec.Successes())
	assert.Empty(t, rec.Errors())
	assert.False(t, reg.Devices().Loading())
}

func TestDeviceStoreIsSharedBetweenConsumers(t *testing.T) {
	t.Parallel()

	reg, _ := newMemBackend(t).registry()

	require.NoError(t, reg.Devices().Create(context.Background(), newDevice("ismart_001")))

	assert.Len(t, reg.OrangePi().Items(), 1)
}

func TestDeviceFetch(t *testing.T) {
	t.Parallel()

	backend := newMemBackend(t)
	reg, rec := backend.registry()
	devices := reg.Devices()
	ctx := context.Background()

	require.NoError(t, devices.Create(ctx, newDevice("ismart_001")))
	created := devices.Items()[0]

	t.Run("found", func(t *testing.T) {
		d, err := devices.Fetch(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, d)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := devices.Fetch(ctx, 999)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNotFound))
		assert.Contains(t, rec.Errors(), "fetch device failed: device 999: not found")
	})

	t.Run("outside keyword", func(t *testing.T) {
		devices.SetKeyword("nomatch")
		defer devices.SetKeyword("")

		d, err := devices.Fetch(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "ismart_001", d.Ismartid)
		assert.Equal(t, "nomatch", devices.Keyword())
	})
}

func TestDeviceUpdateSendsOnlyChangedFields(t *testing.T) {
	t.Parallel()

	backend := newMemBackend(t)
	reg, _ := backend.registry()
	devices := reg.Devices()
	ctx := context.Background()

	require.NoError(t, devices.Create(ctx, newDevice("ismart_001")))
	id := devices.Items()[0].ID

	name := "lobby relay"
	require.NoError(t, devices.Update(ctx, models.DeviceUpdatePayload{Name: &name}, id))

	c, ok := backend.lastCall("PUT /device")
	require.True(t, ok)
	assert.Equal(t, "1", c.Query.Get("id"))

	d, ok := devices.Lookup(id)
	require.True(t, ok)
	assert.Equal(t, "lobby relay", d.Name)
	assert.Equal(t, 6001, d.SSHRemotePort)
	assert.Equal(t, "ismart_001", d.Ismartid)
}

func TestDeviceRemoveUnknownIDStillRelists(t *testing.T) {
	t.Parallel()

	backend := newMemBackend(t)
	reg, rec := backend.registry()

	require.NoError(t, reg.Devices().Remove(context.Background(), 42))

	assert.Equal(t, []string{"DELETE /device", "GET /device"}, backend.keys())
	assert.Equal(t, []string{"device deleted"}, rec.Successes())
}

func TestDeviceSearchFiltersServerSide(t *testing.T) {
	t.Parallel()

	backend := newMemBackend(t)
	reg, _ := backend.registry()
	devices := reg.Devices()
	ctx := context.Background()

	require.NoError(t, devices.Create(ctx, newDevice("ismart_001")))
	require.NoError(t, devices.Create(ctx, newDevice("ismart_002")))

	require.NoError(t, devices.Search(ctx, "002"))
	require.Len(t, devices.Items(), 1)

	c, _ := backend.lastCall("GET /device")
	assert.Equal(t, "002", c.Query.Get("ismartid"))

	// mutations keep the filter
	require.NoError(t, devices.Create(ctx, newDevice("ismart_003")))
	assert.Len(t, devices.Items(), 1)
	assert.Equal(t, "002", devices.Keyword())
}

func TestListFailure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
	}{
		{name: "http error", status: http.StatusInternalServerError},
		{name: "unsuccessful envelope", status: http.StatusOK},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			backend := newMemBackend(t)
			backend.fail("GET /device", tt.status)
			reg, rec := backend.registry()

			err := reg.Devices().List(context.Background())
			require.Error(t, err)

			var apiErr *client.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, "backend refused GET /device", apiErr.Message)
			assert.Equal(t, []string{"list device failed: backend refused GET /device"}, rec.Errors())
			assert.False(t, reg.Devices().Loading())
			assert.Empty(t, reg.Devices().Items())
		})
	}
}

func TestCreateFailureSkipsRelist(t *testing.T) {
	t.Parallel()

	backend := newMemBackend(t)
	backend.fail("POST /device", http.StatusConflict)
	reg, rec := backend.registry()

	err := reg.Devices().Create(context.Background(), newDevice("ismart_001"))
	require.Error(t, err)
	assert.True(t, client.IsStatus(err, http.StatusConflict))

	assert.Equal(t, []string{"POST /device"}, backend.keys())
	assert.Empty(t, rec.Successes())
	assert.False(t, reg.Devices().Loading())
}

func TestDeviceStats(t *testing.T) {
	t.Parallel()

	backend := newMemBackend(t)
	reg, _ := backend.registry()
	ctx := context.Background()

	inactive := false
	payload := newDevice("ismart_002")
	payload.IsActive = &inactive

	require.NoError(t, reg.Devices().Create(ctx, newDevice("ismart_001")))
	require.NoError(t, reg.Devices().Create(ctx, payload))

	stats, err := reg.Devices().Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalDevices)
	assert.Equal(t, 1, stats.ActiveDevices)
}

func TestBuildingKeywordFiltersLocally(t *testing.T) {
	t.Parallel()

	backend := newMemBackend(t)
	reg, _ := backend.registry()
	buildings := reg.Buildings()
	ctx := context.Background()

	require.NoError(t, buildings.Create(ctx, models.BuildingPayload{Ismartid: "ismart_a", Name: "North Tower"}))
	require.NoError(t, buildings.Create(ctx, models.BuildingPayload{Ismartid: "ISMART_B", Name: "south annex"}))

	tests := []struct {
		keyword string
		want    []string
	}{
		{keyword: "", want: []string{"North Tower", "south annex"}},
		{keyword: "NORTH", want: []string{"North Tower"}},
		{keyword: "ismart_b", want: []string{"south annex"}},
		{keyword: "  annex ", want: []string{"south annex"}},
		{keyword: "west", want: []string{}},
	}

	for _, tt := range tests {
		buildings.SetKeyword(tt.keyword)

		names := []string{}
		for _, b := range buildings.Items() {
			names = append(names, b.Name)
		}
		assert.Equal(t, tt.want, names, "keyword %q", tt.keyword)
	}

	assert.Len(t, buildings.All(), 2)

	before := len(backend.keys())
	buildings.SetKeyword("north")
	assert.Len(t, backend.keys(), before, "filtering must not hit the backend")

	// a re-list keeps the keyword applied
	require.NoError(t, buildings.List(ctx))
	assert.Len(t, buildings.Items(), 1)
}

func TestBuildingFetchAndBind(t *testing.T) {
	t.Parallel()

	backend := newMemBackend(t)
	reg, rec := backend.registry()
	buildings := reg.Buildings()
	ctx := context.Background()

	require.NoError(t, buildings.Create(ctx, models.BuildingPayload{Ismartid: "ismart_a", Name: "North Tower"}))
	id := buildings.Items()[0].ID

	b, err := buildings.Fetch(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "North Tower", b.Name)

	_, err = buildings.Fetch(ctx, id+100)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, buildings.BindDevice(ctx, id, 7))
	require.NoError(t, buildings.BindNvr(ctx, id, 8))

	assert.Contains(t, rec.Successes(), "building device bound")
	assert.Contains(t, rec.Successes(), "building nvr bound")

	keys := backend.keys()
	assert.Equal(t, "GET /building", keys[len(keys)-1])
}

func TestBuildingRemove(t *testing.T) {
	t.Parallel()

	reg, _ := newMemBackend(t).registry()
	buildings := reg.Buildings()
	ctx := context.Background()

	require.NoError(t, buildings.Create(ctx, models.BuildingPayload{Ismartid: "ismart_a", Name: "North Tower"}))
	require.NoError(t, buildings.Remove(ctx, buildings.Items()[0].ID))

	assert.Empty(t, buildings.Items())
}

func TestNvrListNormalisesShapes(t *testing.T) {
	t.Parallel()

	for _, shape := range []string{"array", "envelope", "single"} {
		shape := shape
		t.Run(shape, func(t *testing.T) {
			t.Parallel()

			backend := newMemBackend(t)
			reg, _ := backend.registry()
			nvrs := reg.Nvrs()
			ctx := context.Background()

			require.NoError(t, nvrs.Create(ctx, models.NvrCreatePayload{Name: "Lobby NVR", URL: "http://10.0.0.5", BuildingID: 1}))
			require.NoError(t, nvrs.Create(ctx, models.NvrCreatePayload{Name: "Garage NVR", URL: "http://10.0.0.6", BuildingID: 1}))

			backend.setNvrShape(shape)
			require.NoError(t, nvrs.List(ctx))

			want := 2
			if shape == "single" {
				want = 1
			}
			assert.Len(t, nvrs.Items(), want)
			assert.GreaterOrEqual(t, nvrs.Page().Total, want)
		})
	}
}

func TestNvrKeywordMatchesNameAndURL(t *testing.T) {
	t.Parallel()

	reg, _ := newMemBackend(t).registry()
	nvrs := reg.Nvrs()
	ctx := context.Background()

	require.NoError(t, nvrs.Create(ctx, models.NvrCreatePayload{Name: "Lobby NVR", URL: "http://10.0.0.5"}))
	require.NoError(t, nvrs.Create(ctx, models.NvrCreatePayload{Name: "Garage NVR", URL: "http://10.0.0.6"}))

	nvrs.SetKeyword("lobby")
	assert.Len(t, nvrs.Items(), 1)

	nvrs.SetKeyword("10.0.0.6")
	require.Len(t, nvrs.Items(), 1)
	assert.Equal(t, "Garage NVR", nvrs.Items()[0].Name)

	nvrs.SetKeyword("")
	assert.Len(t, nvrs.Items(), 2)
}

func TestNvrFetchAndStreams(t *testing.T) {
	t.Parallel()

	backend := newMemBackend(t)
	reg, rec := backend.registry()
	nvrs := reg.Nvrs()
	ctx := context.Background()

	require.NoError(t, nvrs.Create(ctx, models.NvrCreatePayload{Name: "Lobby NVR", URL: "http://10.0.0.5"}))
	id := nvrs.Items()[0].ID

	n, err := nvrs.Fetch(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Lobby NVR", n.Name)

	c, _ := backend.lastCall("GET /nvr")
	assert.Equal(t, "1", c.Query.Get("id"))

	_, err = nvrs.Fetch(ctx, 50)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, nvrs.AddRTSPURL(ctx, id, models.RTSPURL{Channel: 1, URL: "rtsp://10.0.0.5/ch1"}))
	got, ok := nvrs.Lookup(id)
	require.True(t, ok)
	assert.Equal(t, []models.RTSPURL{{Channel: 1, URL: "rtsp://10.0.0.5/ch1"}}, got.RTSPURLs)
	assert.Contains(t, rec.Successes(), "nvr stream added")

	err = nvrs.AddRTSPURL(ctx, 50, models.RTSPURL{Channel: 2})
	require.Error(t, err)
	assert.Contains(t, rec.Errors(), "add stream to nvr failed: nvr not found")
}

func TestAdminPagination(t *testing.T) {
	t.Parallel()

	backend := newMemBackend(t)
	reg, _ := backend.registry()
	admins := reg.Admins()
	ctx := context.Background()

	require.NoError(t, admins.Create(ctx, models.AdminCreatePayload{Username: "ops", Password: "secret"}))

	c, ok := backend.lastCall("GET /admin")
	require.True(t, ok)
	assert.Equal(t, "1", c.Query.Get("pageNum"))
	assert.Equal(t, "20", c.Query.Get("pageSize"))
	assert.Equal(t, models.PageMeta{Total: 1, Current: 1, Size: 20}, admins.Page())

	admins.SetPage(3, 0)
	require.NoError(t, admins.List(ctx))

	c, _ = backend.lastCall("GET /admin")
	assert.Equal(t, "3", c.Query.Get("pageNum"))
	assert.Equal(t, "20", c.Query.Get("pageSize"))

	a, err := admins.Fetch(ctx, admins.All()[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "ops", a.Username)

	_, err = admins.Fetch(ctx, 77)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPublicNetUpdate(t *testing.T) {
	t.Parallel()

	backend := newMemBackend(t)
	reg, rec := backend.registry()
	pn := reg.PublicNet()
	ctx := context.Background()

	_, loaded := pn.Current()
	assert.False(t, loaded)

	cfg, err := pn.Update(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.Equal(t, "203.0.113.7", cfg.ExternalIP)

	cur, loaded := pn.Current()
	assert.True(t, loaded)
	assert.Equal(t, cfg, cur)
	assert.Equal(t, []string{"public network config updated"}, rec.Successes())
	assert.Equal(t, []string{"PUT /publicnet/config", "GET /publicnet/config"}, backend.keys())
	assert.False(t, pn.Loading())
}

func TestOrangePiRemoteCallsLeaveListAlone(t *testing.T) {
	t.Parallel()

	backend := newMemBackend(t)
	reg, rec := backend.registry()
	op := reg.OrangePi()
	ctx := context.Background()

	tok, err := op.IssueToken(ctx, "ismart_001", false)
	require.NoError(t, err)
	assert.Equal(t, "delegated-ismart_001", tok.Token)

	paths, err := op.Paths(ctx, client.PathQuery{ID: 1, Token: tok.Token})
	require.NoError(t, err)
	require.Len(t, paths.Items, 1)

	c, _ := backend.lastCall("GET /orangepi/remote/paths")
	assert.Equal(t, "50", c.Query.Get("items_per_page"))
	assert.Equal(t, tok.Token, c.Query.Get("token"))

	_, err = op.AddPath(ctx, 1, tok.Token, "cam2", models.PathConfig{Source: "rtsp://10.0.0.5/ch2"})
	require.NoError(t, err)

	res, err := op.UpdatePath(ctx, 1, tok.Token, "cam2", models.PathPatch{"record": true})
	require.NoError(t, err)
	assert.Equal(t, "cam2", res.Name)

	_, err = op.DeletePath(ctx, 1, tok.Token, "cam2")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"orangepi token issued",
		"orangepi path cam2 added",
		"orangepi path cam2 updated",
		"orangepi path cam2 deleted",
	}, rec.Successes())
	assert.NotContains(t, backend.keys(), "GET /device")
	assert.False(t, op.Loading())
}

func TestOrangePiRemoteFailureNotifies(t *testing.T) {
	t.Parallel()

	backend := newMemBackend(t)
	backend.fail("GET /orangepi/remote/health", http.StatusBadGateway)
	reg, rec := backend.registry()

	_, err := reg.OrangePi().Health(context.Background(), 3)
	require.Error(t, err)
	assert.Equal(t, []string{"check health of orangepi failed: backend refused GET /orangepi/remote/health"}, rec.Errors())
}
