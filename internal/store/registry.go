package store

import "sync"

// Registry owns one store per resource type. Build it once at startup and
// pass it to every consumer; each accessor returns the same instance for
// the registry's lifetime, so all consumers observe the same state.
type Registry struct {
	api    API
	notify Notifier

	adminsOnce    sync.Once
	admins        *AdminStore
	devicesOnce   sync.Once
	devices       *DeviceStore
	buildingsOnce sync.Once
	buildings     *BuildingStore
	nvrsOnce      sync.Once
	nvrs          *NvrStore
	orangepiOnce  sync.Once
	orangepi      *OrangePiStore
	publicNetOnce sync.Once
	publicNet     *PublicNetStore
}

func NewRegistry(api API, notify Notifier) *Registry {
	if notify == nil {
		notify = NopNotifier{}
	}
	return &Registry{api: api, notify: notify}
}

func (r *Registry) Admins() *AdminStore {
	r.adminsOnce.Do(func() { r.admins = NewAdminStore(r.api, r.notify) })
	return r.admins
}

func (r *Registry) Devices() *DeviceStore {
	r.devicesOnce.Do(func() { r.devices = NewDeviceStore(r.api, r.notify) })
	return r.devices
}

func (r *Registry) Buildings() *BuildingStore {
	r.buildingsOnce.Do(func() { r.buildings = NewBuildingStore(r.api, r.notify) })
	return r.buildings
}

func (r *Registry) Nvrs() *NvrStore {
	r.nvrsOnce.Do(func() { r.nvrs = NewNvrStore(r.api, r.notify) })
	return r.nvrs
}

// OrangePi shares its device list with Devices.
func (r *Registry) OrangePi() *OrangePiStore {
	r.orangepiOnce.Do(func() { r.orangepi = NewOrangePiStore(r.Devices(), r.api, r.notify) })
	return r.orangepi
}

func (r *Registry) PublicNet() *PublicNetStore {
	r.publicNetOnce.Do(func() { r.publicNet = NewPublicNetStore(r.api, r.notify) })
	return r.publicNet
}
