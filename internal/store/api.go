package store

import (
	"context"

	"icctv-admin/internal/client"
	"icctv-admin/pkg/models"
)

// The interfaces below are the slices of *client.Client each store uses.

type AdminAPI interface {
	ListAdmins(ctx context.Context, q models.AdminQuery) (*client.Envelope[models.Listing[models.Admin]], error)
	CreateAdmin(ctx context.Context, payload models.AdminCreatePayload) (*client.Envelope[models.Admin], error)
	UpdateAdmin(ctx context.Context, payload models.AdminUpdatePayload) (*client.Envelope[models.Admin], error)
	DeleteAdmin(ctx context.Context, id int64) (*client.Envelope[models.Deleted], error)
}

type DeviceAPI interface {
	ListDevices(ctx context.Context, ismartid string) (*client.Envelope[[]models.Device], error)
	CreateDevice(ctx context.Context, payload models.DeviceCreatePayload) (*client.Envelope[models.Device], error)
	UpdateDevice(ctx context.Context, payload models.DeviceUpdatePayload, id int64) (*client.Envelope[models.Device], error)
	DeleteDevice(ctx context.Context, id int64) (*client.Envelope[models.Deleted], error)
	GetDeviceStats(ctx context.Context) (*client.Envelope[models.DeviceStats], error)
}

type BuildingAPI interface {
	ListBuildings(ctx context.Context) (*client.Envelope[[]models.Building], error)
	CreateBuilding(ctx context.Context, payload models.BuildingPayload) (*client.Envelope[models.Building], error)
	UpdateBuilding(ctx context.Context, payload models.BuildingPayload, id int64) (*client.Envelope[models.Building], error)
	DeleteBuilding(ctx context.Context, id int64) (*client.Envelope[models.Deleted], error)

	BindDevice(ctx context.Context, buildingID, orangepiID int64) (*client.Envelope[models.Bound], error)
	UnbindDevice(ctx context.Context, orangepiID int64) (*client.Envelope[models.Unbound], error)
	BuildingDevices(ctx context.Context, buildingID int64) (*client.Envelope[[]models.Device], error)
	BindNvr(ctx context.Context, buildingID, nvrID int64) (*client.Envelope[models.Bound], error)
	UnbindNvr(ctx context.Context, nvrID int64) (*client.Envelope[models.Unbound], error)
	BuildingNvrs(ctx context.Context, buildingID int64) (*client.Envelope[[]models.Nvr], error)
}

type NvrAPI interface {
	ListNvrs(ctx context.Context, id int64) (*client.Envelope[models.Listing[models.Nvr]], error)
	CreateNvr(ctx context.Context, payload models.NvrCreatePayload) (*client.Envelope[models.Nvr], error)
	UpdateNvr(ctx context.Context, payload models.NvrUpdatePayload, id int64) (*client.Envelope[models.Nvr], error)
	DeleteNvr(ctx context.Context, id int64) (*client.Envelope[models.Deleted], error)

	UpdateNvrAdminUser(ctx context.Context, id int64, admin models.Credential) (*client.Envelope[models.Nvr], error)
	UpdateNvrUsers(ctx context.Context, id int64, users []models.Credential) (*client.Envelope[models.Nvr], error)
	AddNvrRTSPURL(ctx context.Context, id int64, url models.RTSPURL) (*client.Envelope[models.Nvr], error)
	RemoveNvrRTSPURL(ctx context.Context, id int64, channel int) (*client.Envelope[models.Nvr], error)
	AddNvrUser(ctx context.Context, id int64, user models.Credential) (*client.Envelope[models.Nvr], error)
	RemoveNvrUser(ctx context.Context, id int64, username string) (*client.Envelope[models.Nvr], error)
}

type PublicNetAPI interface {
	GetPublicNet(ctx context.Context) (*client.Envelope[models.PublicNetConfig], error)
	UpdatePublicNet(ctx context.Context, cfg models.PublicNetConfig) (*client.Envelope[models.PublicNetConfig], error)
}

type RemoteAPI interface {
	PublicToken(ctx context.Context, ismartid string, isStaff bool) (*client.Envelope[models.PublicToken], error)
	UpdateRemotePorts(ctx context.Context, payload models.RemotePortsPayload) (*client.Envelope[models.RemotePortsResult], error)
	RemoteInfo(ctx context.Context, id int64, token string) (*client.Envelope[models.RemoteInfo], error)
	RemoteHealth(ctx context.Context, id int64) (*client.Envelope[models.RemoteHealth], error)
	ListPaths(ctx context.Context, q client.PathQuery) (*client.Envelope[models.RelayPathList], error)
	GetPath(ctx context.Context, id int64, token, name string) (*client.Envelope[models.RelayPathDetail], error)
	AddPath(ctx context.Context, id int64, token, name string, cfg models.PathConfig) (*client.Envelope[models.RelayPathResult], error)
	UpdatePath(ctx context.Context, id int64, token, name string, patch models.PathPatch) (*client.Envelope[models.RelayPathResult], error)
	DeletePath(ctx context.Context, id int64, token, name string) (*client.Envelope[models.RelayPathResult], error)
}

// API is everything the registry hands out; *client.Client implements it.
type API interface {
	AdminAPI
	DeviceAPI
	BuildingAPI
	NvrAPI
	PublicNetAPI
	RemoteAPI
}

var _ API = (*client.Client)(nil)
