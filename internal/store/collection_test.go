package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"icctv-admin/internal/client"
	"icctv-admin/pkg/models"
)

func device(id int64, ismartid string) models.Device {
	return models.Device{ModelFields: models.ModelFields{ID: id}, Ismartid: ismartid, Name: "dev-" + ismartid}
}

func TestCollectionDiscardsStaleListing(t *testing.T) {
	t.Parallel()

	c := NewCollection[models.Device](nil)

	older := c.issue()
	newer := c.issue()

	require.True(t, c.apply(newer, []models.Device{device(2, "b")}, models.PageMeta{}))
	require.False(t, c.apply(older, []models.Device{device(1, "a")}, models.PageMeta{}))

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(2), items[0].ID)
}

func TestCollectionIndexFollowsListing(t *testing.T) {
	t.Parallel()

	c := NewCollection[models.Device](nil)
	c.apply(c.issue(), []models.Device{device(1, "a"), device(2, "b")}, models.PageMeta{})

	d, ok := c.Lookup(2)
	require.True(t, ok)
	assert.Equal(t, "b", d.Ismartid)

	c.apply(c.issue(), []models.Device{device(3, "c")}, models.PageMeta{})

	_, ok = c.Lookup(2)
	assert.False(t, ok)
	_, ok = c.Lookup(3)
	assert.True(t, ok)
}

func TestCollectionPageTotalCoversItems(t *testing.T) {
	t.Parallel()

	c := NewCollection[models.Device](nil)
	c.apply(c.issue(), []models.Device{device(1, "a"), device(2, "b")}, models.PageMeta{Total: 1, Current: 1, Size: 20})

	assert.Equal(t, models.PageMeta{Total: 2, Current: 1, Size: 20}, c.Page())
}

func TestCollectionLoadingNests(t *testing.T) {
	t.Parallel()

	c := NewCollection[models.Device](nil)

	outer := c.begin()
	inner := c.begin()
	assert.True(t, c.Loading())

	inner()
	inner()
	assert.True(t, c.Loading(), "a done func counts once")

	outer()
	assert.False(t, c.Loading())
}

func TestCollectionSubscribe(t *testing.T) {
	t.Parallel()

	c := NewCollection[models.Device](nil)

	var got []Snapshot[models.Device]
	cancel := c.Subscribe(func(s Snapshot[models.Device]) { got = append(got, s) })

	done := c.begin()
	c.apply(c.issue(), []models.Device{device(1, "a")}, models.PageMeta{})
	done()

	require.Len(t, got, 3)
	assert.True(t, got[0].Loading)
	assert.Empty(t, got[0].Items)
	assert.Len(t, got[1].Items, 1)
	assert.False(t, got[2].Loading)

	cancel()
	c.SetKeyword("x")
	assert.Len(t, got, 3)
}

func TestCollectionSnapshotIsACopy(t *testing.T) {
	t.Parallel()

	c := NewCollection[models.Device](nil)
	c.apply(c.issue(), []models.Device{device(1, "a")}, models.PageMeta{})

	snap := c.Snapshot()
	snap.Items[0].Name = "changed"

	assert.Equal(t, "dev-a", c.Items()[0].Name)
}

// gatedDevices answers ListDevices only when the test releases the call.
type gatedDevices struct {
	DeviceAPI
	calls chan gatedCall
}

type gatedCall struct {
	keyword string
	reply   chan []models.Device
}

func (g *gatedDevices) ListDevices(_ context.Context, ismartid string) (*client.Envelope[[]models.Device], error) {
	c := gatedCall{keyword: ismartid, reply: make(chan []models.Device)}
	g.calls <- c
	return &client.Envelope[[]models.Device]{Success: true, Data: <-c.reply}, nil
}

func TestDeviceStoreLateResponseDoesNotOverwrite(t *testing.T) {
	t.Parallel()

	api := &gatedDevices{calls: make(chan gatedCall)}
	s := NewDeviceStore(api, NopNotifier{})
	ctx := context.Background()

	errs := make(chan error, 2)

	go func() { errs <- s.List(ctx) }()
	first := <-api.calls

	go func() { errs <- s.Search(ctx, "new") }()
	second := <-api.calls
	assert.Equal(t, "new", second.keyword)

	second.reply <- []models.Device{device(2, "new")}
	require.NoError(t, <-errs)

	first.reply <- []models.Device{device(1, "old")}
	require.NoError(t, <-errs)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "new", items[0].Ismartid)
	assert.False(t, s.Loading())
}
