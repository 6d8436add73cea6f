package store

import (
	"context"
	"sync"

	"icctv-admin/pkg/models"
)

const defaultAdminPageSize = 20

// AdminStore is the shared account list. Accounts are paginated server side;
// the current page and size survive re-lists.
type AdminStore struct {
	*Collection[models.Admin]
	api AdminAPI
	reporter

	pageMu   sync.Mutex
	pageNum  int
	pageSize int
}

func NewAdminStore(api AdminAPI, notify Notifier) *AdminStore {
	return &AdminStore{
		Collection: NewCollection[models.Admin](nil),
		api:        api,
		reporter:   reporter{notify: notify, resource: "account"},
		pageNum:    1,
		pageSize:   defaultAdminPageSize,
	}
}

// SetPage selects the page the next List fetches. Non-positive values keep
// the current setting.
func (s *AdminStore) SetPage(pageNum, pageSize int) {
	s.pageMu.Lock()
	defer s.pageMu.Unlock()

	if pageNum > 0 {
		s.pageNum = pageNum
	}
	if pageSize > 0 {
		s.pageSize = pageSize
	}
}

func (s *AdminStore) currentPage() (int, int) {
	s.pageMu.Lock()
	defer s.pageMu.Unlock()
	return s.pageNum, s.pageSize
}

func (s *AdminStore) List(ctx context.Context) error {
	done := s.begin()
	defer done()

	pageNum, pageSize := s.currentPage()

	seq := s.issue()
	env, err := s.api.ListAdmins(ctx, models.AdminQuery{PageNum: pageNum, PageSize: pageSize})
	listing, err := unwrap(env, err)
	if err != nil {
		return s.fail("list", err)
	}

	page := models.PageMeta{Total: listing.Total(), Current: pageNum, Size: pageSize}
	if listing.Page != nil {
		page = *listing.Page
	}
	s.apply(seq, listing.Flatten(), page)
	return nil
}

// Fetch uses the backend's ?id= query, which answers with a single record.
func (s *AdminStore) Fetch(ctx context.Context, id int64) (models.Admin, error) {
	done := s.begin()
	defer done()

	env, err := s.api.ListAdmins(ctx, models.AdminQuery{ID: id})
	listing, err := unwrap(env, err)
	if err != nil {
		return models.Admin{}, s.fail("fetch", err)
	}

	if listing.Kind == models.Single && listing.Item != nil {
		return *listing.Item, nil
	}
	if a, ok := find(listing.Flatten(), id); ok {
		return a, nil
	}
	return models.Admin{}, s.fail("fetch", s.notFound(id))
}

func (s *AdminStore) Create(ctx context.Context, payload models.AdminCreatePayload) error {
	done := s.begin()
	defer done()

	env, err := s.api.CreateAdmin(ctx, payload)
	if _, err := unwrap(env, err); err != nil {
		return s.fail("create", err)
	}
	s.succeeded("created")
	return s.List(ctx)
}

func (s *AdminStore) Update(ctx context.Context, payload models.AdminUpdatePayload) error {
	done := s.begin()
	defer done()

	env, err := s.api.UpdateAdmin(ctx, payload)
	if _, err := unwrap(env, err); err != nil {
		return s.fail("update", err)
	}
	s.succeeded("updated")
	return s.List(ctx)
}

func (s *AdminStore) Remove(ctx context.Context, id int64) error {
	done := s.begin()
	defer done()

	env, err := s.api.DeleteAdmin(ctx, id)
	if _, err := unwrap(env, err); err != nil {
		return s.fail("delete", err)
	}
	s.succeeded("deleted")
	return s.List(ctx)
}
