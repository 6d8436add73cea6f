package models

// Device is an OrangePi edge relay device.
type Device struct {
	ModelFields
	Ismartid              string `json:"ismartid"`
	Name                  string `json:"name"`
	AuthServiceRemotePort int    `json:"icctv_auth_service_remote_port"`
	SSHRemotePort         int    `json:"ssh_remote_port"`
	IsActive              bool   `json:"is_active"`
	UserChannels          []int  `json:"user_channels,omitempty"`
	AllChannels           []int  `json:"all_channels,omitempty"`
}

// DeviceStats is the fleet summary returned by GET /device/info
type DeviceStats struct {
	TotalDevices    int    `json:"totalDevices"`
	ActiveDevices   int    `json:"activeDevices"`
	BuildingBounded int    `json:"buildingBounded"`
	LastSync        string `json:"lastSync"`
}

// DeviceCreatePayload is the body for POST /device.
// Identifier, name and both ports are required; the rest is optional.
type DeviceCreatePayload struct {
	Ismartid              string `json:"ismartid"`
	Name                  string `json:"name"`
	AuthServiceRemotePort int    `json:"icctv_auth_service_remote_port"`
	SSHRemotePort         int    `json:"ssh_remote_port"`
	IsActive              *bool  `json:"is_active,omitempty"`
	UserChannels          []int  `json:"user_channels,omitempty"`
	AllChannels           []int  `json:"all_channels,omitempty"`
}

// DeviceUpdatePayload is the body for PUT /device?id=. Only set fields are sent.
type DeviceUpdatePayload struct {
	Ismartid              *string `json:"ismartid,omitempty"`
	Name                  *string `json:"name,omitempty"`
	AuthServiceRemotePort *int    `json:"icctv_auth_service_remote_port,omitempty"`
	SSHRemotePort         *int    `json:"ssh_remote_port,omitempty"`
	IsActive              *bool   `json:"is_active,omitempty"`
	UserChannels          []int   `json:"user_channels,omitempty"`
	AllChannels           []int   `json:"all_channels,omitempty"`
}
