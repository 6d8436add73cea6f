package models

import "encoding/json"

// RemotePortsPayload is the body for POST /orangepi/remote/ports
type RemotePortsPayload struct {
	ID                    int64 `json:"id"`
	SSHRemotePort         int   `json:"ssh_remote_port"`
	AuthServiceRemotePort int   `json:"icctv_auth_service_remote_port"`
}

type RemotePortsResult struct {
	Updated  bool `json:"updated"`
	SSHPort  int  `json:"ssh_port"`
	AuthPort int  `json:"auth_port"`
}

// RemoteInfo is the telemetry an edge device reports about itself.
type RemoteInfo struct {
	DeviceID           string   `json:"device_id"`
	MediamtxVersion    string   `json:"mediamtx_version"`
	FrpcServer         string   `json:"frpc_server"`
	FrpcAuthRemotePort int      `json:"frpc_auth_remote_port"`
	FrpcSSHRemotePort  int      `json:"frpc_ssh_remote_port"`
	FrpcAuthProxyName  string   `json:"frpc_auth_proxy_name,omitempty"`
	FrpcSSHProxyName   string   `json:"frpc_ssh_proxy_name,omitempty"`
	AvailableChannels  []string `json:"available_channels"`
	Status             string   `json:"status"`
}

type RemoteHealth struct {
	Status         string          `json:"status"`
	Service        string          `json:"service"`
	DockerServices map[string]bool `json:"docker_services,omitempty"`
}

// --- Relay path models ---

// RelayPath is one named streaming source configured on a device.
type RelayPath struct {
	Name      string `json:"name"`
	Ready     bool   `json:"ready"`
	ConfName  string `json:"confName"`
	ReadyTime string `json:"readyTime,omitempty"`
	Source    string `json:"source,omitempty"` // RTSP URL
}

// RelayPathList is one page of relay paths. Pages are zero-based.
type RelayPathList struct {
	Items      []RelayPath `json:"items"`
	ItemsPage  int         `json:"itemsPage"`
	ItemsTotal int         `json:"itemsTotal"`
}

type RelayPathDetail struct {
	Name string         `json:"name"`
	Conf map[string]any `json:"conf"`
}

type RelayPathResult struct {
	Action           string          `json:"action"`
	Name             string          `json:"name"`
	StatusCode       int             `json:"status_code"`
	MediamtxResponse json.RawMessage `json:"mediamtx_response,omitempty"`
}

// PathConfig is the full initial configuration of a new relay path.
// Extra carries any additional keys; they are written flat next to the known ones.
type PathConfig struct {
	Source             string
	SourceOnDemand     *bool
	Record             *bool
	RecordPath         string
	RecordPartDuration string
	Extra              map[string]any
}

func (c PathConfig) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.Extra)+5)
	for k, v := range c.Extra {
		out[k] = v
	}
	out["source"] = c.Source
	if c.SourceOnDemand != nil {
		out["sourceOnDemand"] = *c.SourceOnDemand
	}
	if c.Record != nil {
		out["record"] = *c.Record
	}
	if c.RecordPath != "" {
		out["recordPath"] = c.RecordPath
	}
	if c.RecordPartDuration != "" {
		out["recordPartDuration"] = c.RecordPartDuration
	}
	return json.Marshal(out)
}

// PathPatch holds only the configuration keys an update should change.
type PathPatch map[string]any

// PathAddPayload is the body for POST /orangepi/remote/paths
type PathAddPayload struct {
	Name   string     `json:"name"`
	Config PathConfig `json:"config"`
}

// PathUpdatePayload is the body for PATCH /orangepi/remote/paths
type PathUpdatePayload struct {
	Config PathPatch `json:"config"`
}
