package store

import (
	"context"

	"icctv-admin/pkg/models"
)

// BuildingStore is the shared building list. The backend has no keyword
// search for buildings, so the keyword filters the last listing locally
// over name and ismartid.
type BuildingStore struct {
	*Collection[models.Building]
	api BuildingAPI
	reporter
}

func matchBuilding(b models.Building, keyword string) bool {
	return containsFold(b.Name, keyword) || containsFold(b.Ismartid, keyword)
}

func NewBuildingStore(api BuildingAPI, notify Notifier) *BuildingStore {
	return &BuildingStore{
		Collection: NewCollection[models.Building](matchBuilding),
		api:        api,
		reporter:   reporter{notify: notify, resource: "building"},
	}
}

func (s *BuildingStore) List(ctx context.Context) error {
	done := s.begin()
	defer done()

	seq := s.issue()
	env, err := s.api.ListBuildings(ctx)
	items, err := unwrap(env, err)
	if err != nil {
		return s.fail("list", err)
	}

	s.apply(seq, items, models.PageMeta{Total: len(items), Current: 1, Size: len(items)})
	return nil
}

// Fetch re-lists and resolves id through the refreshed index.
func (s *BuildingStore) Fetch(ctx context.Context, id int64) (models.Building, error) {
	done := s.begin()
	defer done()

	if err := s.List(ctx); err != nil {
		return models.Building{}, err
	}
	if b, ok := s.Lookup(id); ok {
		return b, nil
	}
	return models.Building{}, s.fail("fetch", s.notFound(id))
}

func (s *BuildingStore) Create(ctx context.Context, payload models.BuildingPayload) error {
	done := s.begin()
	defer done()

	env, err := s.api.CreateBuilding(ctx, payload)
	if _, err := unwrap(env, err); err != nil {
		return s.fail("create", err)
	}
	s.succeeded("created")
	return s.List(ctx)
}

func (s *BuildingStore) Update(ctx context.Context, payload models.BuildingPayload, id int64) error {
	done := s.begin()
	defer done()

	env, err := s.api.UpdateBuilding(ctx, payload, id)
	if _, err := unwrap(env, err); err != nil {
		return s.fail("update", err)
	}
	s.succeeded("updated")
	return s.List(ctx)
}

func (s *BuildingStore) Remove(ctx context.Context, id int64) error {
	done := s.begin()
	defer done()

	env, err := s.api.DeleteBuilding(ctx, id)
	if _, err := unwrap(env, err); err != nil {
		return s.fail("delete", err)
	}
	s.succeeded("deleted")
	return s.List(ctx)
}

// --- bindings ---

// BindDevice attaches a device to a building, then re-lists since the
// listing may nest bound devices.
func (s *BuildingStore) BindDevice(ctx context.Context, buildingID, orangepiID int64) error {
	done := s.begin()
	defer done()

	env, err := s.api.BindDevice(ctx, buildingID, orangepiID)
	if _, err := unwrap(env, err); err != nil {
		return s.fail("bind device to", err)
	}
	s.succeeded("device bound")
	return s.List(ctx)
}

func (s *BuildingStore) UnbindDevice(ctx context.Context, orangepiID int64) error {
	done := s.begin()
	defer done()

	env, err := s.api.UnbindDevice(ctx, orangepiID)
	if _, err := unwrap(env, err); err != nil {
		return s.fail("unbind device from", err)
	}
	s.succeeded("device unbound")
	return s.List(ctx)
}

func (s *BuildingStore) BindNvr(ctx context.Context, buildingID, nvrID int64) error {
	done := s.begin()
	defer done()

	env, err := s.api.BindNvr(ctx, buildingID, nvrID)
	if _, err := unwrap(env, err); err != nil {
		return s.fail("bind nvr to", err)
	}
	s.succeeded("nvr bound")
	return s.List(ctx)
}

func (s *BuildingStore) UnbindNvr(ctx context.Context, nvrID int64) error {
	done := s.begin()
	defer done()

	env, err := s.api.UnbindNvr(ctx, nvrID)
	if _, err := unwrap(env, err); err != nil {
		return s.fail("unbind nvr from", err)
	}
	s.succeeded("nvr unbound")
	return s.List(ctx)
}

// Devices returns the devices bound to a building. Read only, the shared
// list is left alone.
func (s *BuildingStore) Devices(ctx context.Context, buildingID int64) ([]models.Device, error) {
	env, err := s.api.BuildingDevices(ctx, buildingID)
	devices, err := unwrap(env, err)
	if err != nil {
		return nil, s.fail("list devices of", err)
	}
	return devices, nil
}

func (s *BuildingStore) Nvrs(ctx context.Context, buildingID int64) ([]models.Nvr, error) {
	env, err := s.api.BuildingNvrs(ctx, buildingID)
	nvrs, err := unwrap(env, err)
	if err != nil {
		return nil, s.fail("list nvrs of", err)
	}
	return nvrs, nil
}
