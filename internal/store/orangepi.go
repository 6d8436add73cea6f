package store

import (
	"context"

	"icctv-admin/internal/client"
	"icctv-admin/pkg/models"
)

// OrangePiStore is the device list seen from the edge-device screens plus
// the remote management calls. The list state is the registry's
// DeviceStore; remote calls never touch it or its loading flag.
type OrangePiStore struct {
	*DeviceStore
	remote RemoteAPI
	rep    reporter
}

func NewOrangePiStore(devices *DeviceStore, remote RemoteAPI, notify Notifier) *OrangePiStore {
	return &OrangePiStore{
		DeviceStore: devices,
		remote:      remote,
		rep:         reporter{notify: notify, resource: "orangepi"},
	}
}

// IssueToken requests the delegated token that info and path calls need.
func (s *OrangePiStore) IssueToken(ctx context.Context, ismartid string, isStaff bool) (models.PublicToken, error) {
	env, err := s.remote.PublicToken(ctx, ismartid, isStaff)
	tok, err := unwrap(env, err)
	if err != nil {
		return tok, s.rep.fail("issue token for", err)
	}
	s.rep.succeeded("token issued")
	return tok, nil
}

func (s *OrangePiStore) Info(ctx context.Context, id int64, token string) (models.RemoteInfo, error) {
	env, err := s.remote.RemoteInfo(ctx, id, token)
	info, err := unwrap(env, err)
	if err != nil {
		return info, s.rep.fail("fetch info of", err)
	}
	return info, nil
}

func (s *OrangePiStore) Health(ctx context.Context, id int64) (models.RemoteHealth, error) {
	env, err := s.remote.RemoteHealth(ctx, id)
	health, err := unwrap(env, err)
	if err != nil {
		return health, s.rep.fail("check health of", err)
	}
	return health, nil
}

// UpdatePorts reconfigures the device tunnel ports.
func (s *OrangePiStore) UpdatePorts(ctx context.Context, id int64, sshPort, authPort int) (models.RemotePortsResult, error) {
	env, err := s.remote.UpdateRemotePorts(ctx, models.RemotePortsPayload{
		ID:                    id,
		SSHRemotePort:         sshPort,
		AuthServiceRemotePort: authPort,
	})
	res, err := unwrap(env, err)
	if err != nil {
		return res, s.rep.fail("update ports of", err)
	}
	s.rep.succeeded("ports updated")
	return res, nil
}

// --- relay paths ---

func (s *OrangePiStore) Paths(ctx context.Context, q client.PathQuery) (models.RelayPathList, error) {
	env, err := s.remote.ListPaths(ctx, q)
	list, err := unwrap(env, err)
	if err != nil {
		return list, s.rep.fail("list paths of", err)
	}
	return list, nil
}

func (s *OrangePiStore) Path(ctx context.Context, id int64, token, name string) (models.RelayPathDetail, error) {
	env, err := s.remote.GetPath(ctx, id, token, name)
	detail, err := unwrap(env, err)
	if err != nil {
		return detail, s.rep.fail("fetch path of", err)
	}
	return detail, nil
}

func (s *OrangePiStore) AddPath(ctx context.Context, id int64, token, name string, cfg models.PathConfig) (models.RelayPathResult, error) {
	env, err := s.remote.AddPath(ctx, id, token, name, cfg)
	res, err := unwrap(env, err)
	if err != nil {
		return res, s.rep.fail("add path to", err)
	}
	s.rep.succeeded("path " + name + " added")
	return res, nil
}

// UpdatePath sends only the keys in patch.
func (s *OrangePiStore) UpdatePath(ctx context.Context, id int64, token, name string, patch models.PathPatch) (models.RelayPathResult, error) {
	env, err := s.remote.UpdatePath(ctx, id, token, name, patch)
	res, err := unwrap(env, err)
	if err != nil {
		return res, s.rep.fail("update path of", err)
	}
	s.rep.succeeded("path " + name + " updated")
	return res, nil
}

func (s *OrangePiStore) DeletePath(ctx context.Context, id int64, token, name string) (models.RelayPathResult, error) {
	env, err := s.remote.DeletePath(ctx, id, token, name)
	res, err := unwrap(env, err)
	if err != nil {
		return res, s.rep.fail("delete path of", err)
	}
	s.rep.succeeded("path " + name + " deleted")
	return res, nil
}
