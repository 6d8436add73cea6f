package store

import (
	"context"

	"icctv-admin/pkg/models"
)

// NvrStore is the shared NVR list, filtered locally over name and URL.
type NvrStore struct {
	*Collection[models.Nvr]
	api NvrAPI
	reporter
}

func matchNvr(n models.Nvr, keyword string) bool {
	return containsFold(n.Name, keyword) || containsFold(n.URL, keyword)
}

func NewNvrStore(api NvrAPI, notify Notifier) *NvrStore {
	return &NvrStore{
		Collection: NewCollection[models.Nvr](matchNvr),
		api:        api,
		reporter:   reporter{notify: notify, resource: "nvr"},
	}
}

// List normalises whatever shape the backend answered with into a flat list.
func (s *NvrStore) List(ctx context.Context) error {
	done := s.begin()
	defer done()

	seq := s.issue()
	env, err := s.api.ListNvrs(ctx, 0)
	listing, err := unwrap(env, err)
	if err != nil {
		return s.fail("list", err)
	}

	items := listing.Flatten()
	page := models.PageMeta{Total: len(items), Current: 1, Size: len(items)}
	if listing.Page != nil {
		page = *listing.Page
	}
	s.apply(seq, items, page)
	return nil
}

// Fetch uses the backend's ?id= query.
func (s *NvrStore) Fetch(ctx context.Context, id int64) (models.Nvr, error) {
	done := s.begin()
	defer done()

	env, err := s.api.ListNvrs(ctx, id)
	listing, err := unwrap(env, err)
	if err != nil {
		return models.Nvr{}, s.fail("fetch", err)
	}

	if listing.Kind == models.Single && listing.Item != nil {
		return *listing.Item, nil
	}
	if n, ok := find(listing.Flatten(), id); ok {
		return n, nil
	}
	return models.Nvr{}, s.fail("fetch", s.notFound(id))
}

func (s *NvrStore) Create(ctx context.Context, payload models.NvrCreatePayload) error {
	done := s.begin()
	defer done()

	env, err := s.api.CreateNvr(ctx, payload)
	if _, err := unwrap(env, err); err != nil {
		return s.fail("create", err)
	}
	s.succeeded("created")
	return s.List(ctx)
}

func (s *NvrStore) Update(ctx context.Context, payload models.NvrUpdatePayload, id int64) error {
	done := s.begin()
	defer done()

	env, err := s.api.UpdateNvr(ctx, payload, id)
	if _, err := unwrap(env, err); err != nil {
		return s.fail("update", err)
	}
	s.succeeded("updated")
	return s.List(ctx)
}

func (s *NvrStore) Remove(ctx context.Context, id int64) error {
	done := s.begin()
	defer done()

	env, err := s.api.DeleteNvr(ctx, id)
	if _, err := unwrap(env, err); err != nil {
		return s.fail("delete", err)
	}
	s.succeeded("deleted")
	return s.List(ctx)
}

// mutate runs one sub-resource call and re-lists on success.
func (s *NvrStore) mutate(ctx context.Context, action, verb string, call func() error) error {
	done := s.begin()
	defer done()

	if err := call(); err != nil {
		return s.fail(action, err)
	}
	s.succeeded(verb)
	return s.List(ctx)
}

func (s *NvrStore) UpdateAdminUser(ctx context.Context, id int64, admin models.Credential) error {
	return s.mutate(ctx, "update admin user of", "admin user updated", func() error {
		env, err := s.api.UpdateNvrAdminUser(ctx, id, admin)
		_, err = unwrap(env, err)
		return err
	})
}

func (s *NvrStore) UpdateUsers(ctx context.Context, id int64, users []models.Credential) error {
	return s.mutate(ctx, "update users of", "users updated", func() error {
		env, err := s.api.UpdateNvrUsers(ctx, id, users)
		_, err = unwrap(env, err)
		return err
	})
}

func (s *NvrStore) AddRTSPURL(ctx context.Context, id int64, url models.RTSPURL) error {
	return s.mutate(ctx, "add stream to", "stream added", func() error {
		env, err := s.api.AddNvrRTSPURL(ctx, id, url)
		_, err = unwrap(env, err)
		return err
	})
}

func (s *NvrStore) RemoveRTSPURL(ctx context.Context, id int64, channel int) error {
	return s.mutate(ctx, "remove stream from", "stream removed", func() error {
		env, err := s.api.RemoveNvrRTSPURL(ctx, id, channel)
		_, err = unwrap(env, err)
		return err
	})
}

func (s *NvrStore) AddUser(ctx context.Context, id int64, user models.Credential) error {
	return s.mutate(ctx, "add user to", "user added", func() error {
		env, err := s.api.AddNvrUser(ctx, id, user)
		_, err = unwrap(env, err)
		return err
	})
}

func (s *NvrStore) RemoveUser(ctx context.Context, id int64, username string) error {
	return s.mutate(ctx, "remove user from", "user removed", func() error {
		env, err := s.api.RemoveNvrUser(ctx, id, username)
		_, err = unwrap(env, err)
		return err
	})
}
