package store

import (
	"context"
	"sync"

	"icctv-admin/pkg/models"
)

// PublicNetStore caches the singleton public network configuration.
type PublicNetStore struct {
	api PublicNetAPI
	reporter

	mu       sync.RWMutex
	config   models.PublicNetConfig
	loaded   bool
	inflight int
}

func NewPublicNetStore(api PublicNetAPI, notify Notifier) *PublicNetStore {
	return &PublicNetStore{
		api:      api,
		reporter: reporter{notify: notify, resource: "public network config"},
	}
}

func (s *PublicNetStore) begin() func() {
	s.mu.Lock()
	s.inflight++
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		s.inflight--
		s.mu.Unlock()
	}
}

func (s *PublicNetStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inflight > 0
}

// Current returns the cached configuration and whether one was loaded yet.
func (s *PublicNetStore) Current() (models.PublicNetConfig, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config, s.loaded
}

func (s *PublicNetStore) Get(ctx context.Context) (models.PublicNetConfig, error) {
	done := s.begin()
	defer done()

	env, err := s.api.GetPublicNet(ctx)
	cfg, err := unwrap(env, err)
	if err != nil {
		return cfg, s.fail("fetch", err)
	}

	s.mu.Lock()
	s.config, s.loaded = cfg, true
	s.mu.Unlock()

	return cfg, nil
}

// Update writes the external IP and reloads the configuration.
func (s *PublicNetStore) Update(ctx context.Context, externalIP string) (models.PublicNetConfig, error) {
	done := s.begin()
	defer done()

	env, err := s.api.UpdatePublicNet(ctx, models.PublicNetConfig{ExternalIP: externalIP})
	if _, err := unwrap(env, err); err != nil {
		return models.PublicNetConfig{}, s.fail("update", err)
	}
	s.succeeded("updated")
	return s.Get(ctx)
}
