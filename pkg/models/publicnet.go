package models

// PublicNetConfig is the singleton public network setting.
type PublicNetConfig struct {
	ExternalIP string `json:"external_ip"`
}
