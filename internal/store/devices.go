package store

import (
	"context"

	"icctv-admin/pkg/models"
)

// DeviceStore is the shared OrangePi device list. Its keyword is an
// ismartid filter applied by the backend.
type DeviceStore struct {
	*Collection[models.Device]
	api DeviceAPI
	reporter
}

func NewDeviceStore(api DeviceAPI, notify Notifier) *DeviceStore {
	return &DeviceStore{
		Collection: NewCollection[models.Device](nil),
		api:        api,
		reporter:   reporter{notify: notify, resource: "device"},
	}
}

// List fetches the devices matching the current keyword.
func (s *DeviceStore) List(ctx context.Context) error {
	done := s.begin()
	defer done()

	seq := s.issue()
	env, err := s.api.ListDevices(ctx, s.Keyword())
	items, err := unwrap(env, err)
	if err != nil {
		return s.fail("list", err)
	}

	s.apply(seq, items, models.PageMeta{Total: len(items), Current: 1, Size: len(items)})
	return nil
}

// Search sets the ismartid filter and re-lists.
func (s *DeviceStore) Search(ctx context.Context, ismartid string) error {
	s.SetKeyword(ismartid)
	return s.List(ctx)
}

// Fetch re-lists and returns the device with id. The backend has no
// single-device endpoint.
func (s *DeviceStore) Fetch(ctx context.Context, id int64) (models.Device, error) {
	done := s.begin()
	defer done()

	// An unfiltered listing can refresh the shared state; a filtered one
	// is only scanned, the device may sit outside the filter.
	if s.Keyword() == "" {
		if err := s.List(ctx); err != nil {
			return models.Device{}, err
		}
		if d, ok := s.Lookup(id); ok {
			return d, nil
		}
		return models.Device{}, s.fail("fetch", s.notFound(id))
	}

	env, err := s.api.ListDevices(ctx, "")
	items, err := unwrap(env, err)
	if err != nil {
		return models.Device{}, s.fail("fetch", err)
	}
	if d, ok := find(items, id); ok {
		return d, nil
	}
	return models.Device{}, s.fail("fetch", s.notFound(id))
}

func (s *DeviceStore) Create(ctx context.Context, payload models.DeviceCreatePayload) error {
	done := s.begin()
	defer done()

	env, err := s.api.CreateDevice(ctx, payload)
	if _, err := unwrap(env, err); err != nil {
		return s.fail("create", err)
	}
	s.succeeded("created")
	return s.List(ctx)
}

func (s *DeviceStore) Update(ctx context.Context, payload models.DeviceUpdatePayload, id int64) error {
	done := s.begin()
	defer done()

	env, err := s.api.UpdateDevice(ctx, payload, id)
	if _, err := unwrap(env, err); err != nil {
		return s.fail("update", err)
	}
	s.succeeded("updated")
	return s.List(ctx)
}

// Remove deletes by id without checking the local listing first.
func (s *DeviceStore) Remove(ctx context.Context, id int64) error {
	done := s.begin()
	defer done()

	env, err := s.api.DeleteDevice(ctx, id)
	if _, err := unwrap(env, err); err != nil {
		return s.fail("delete", err)
	}
	s.succeeded("deleted")
	return s.List(ctx)
}

// Stats fetches the fleet summary. It does not touch the device list.
func (s *DeviceStore) Stats(ctx context.Context) (models.DeviceStats, error) {
	env, err := s.api.GetDeviceStats(ctx)
	stats, err := unwrap(env, err)
	if err != nil {
		return stats, s.fail("fetch", err)
	}
	return stats, nil
}
