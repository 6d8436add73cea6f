package models

// Building groups devices and NVRs installed at one site.
type Building struct {
	ModelFields
	Ismartid  string   `json:"ismartid"`
	Name      string   `json:"name"`
	Remark    string   `json:"remark,omitempty"`
	Orangepis []Device `json:"orangepis,omitempty"`
	Nvrs      []Nvr    `json:"nvrs,omitempty"`
}

// BuildingPayload is the body for POST /building and PUT /building?id=
type BuildingPayload struct {
	Ismartid string `json:"ismartid"`
	Name     string `json:"name"`
	Remark   string `json:"remark,omitempty"`
}

// DeviceBindPayload is the body for POST /bind/building-orangepi
type DeviceBindPayload struct {
	BuildingID int64 `json:"building_id"`
	OrangepiID int64 `json:"orangepi_id"`
}

// DeviceUnbindPayload is the body for DELETE /bind/building-orangepi
type DeviceUnbindPayload struct {
	OrangepiID int64 `json:"orangepi_id"`
}

// NvrBindPayload is the body for POST /bind/building-nvr
type NvrBindPayload struct {
	BuildingID int64 `json:"building_id"`
	NvrID      int64 `json:"nvr_id"`
}

// NvrUnbindPayload is the body for DELETE /bind/building-nvr
type NvrUnbindPayload struct {
	NvrID int64 `json:"nvr_id"`
}

type Bound struct {
	Bound bool `json:"bound"`
}

type Unbound struct {
	Unbound bool `json:"unbound"`
}
