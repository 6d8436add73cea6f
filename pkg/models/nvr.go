package models

// Credential is a login pair stored on an NVR.
type Credential struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// RTSPURL maps an NVR channel to its stream URL.
type RTSPURL struct {
	Channel int    `json:"channel"`
	URL     string `json:"url"`
}

// Nvr is a network video recorder.
type Nvr struct {
	ModelFields
	Name       string       `json:"name"`
	URL        string       `json:"url"`
	BuildingID int64        `json:"building_id"`
	AdminUser  Credential   `json:"admin_user"`
	Users      []Credential `json:"users"`
	RTSPURLs   []RTSPURL    `json:"rtsp_urls"`
}

// NvrCreatePayload is the body for POST /nvr
type NvrCreatePayload struct {
	Name       string       `json:"name"`
	URL        string       `json:"url"`
	BuildingID int64        `json:"building_id"`
	AdminUser  *Credential  `json:"admin_user,omitempty"`
	Users      []Credential `json:"users,omitempty"`
	RTSPURLs   []RTSPURL    `json:"rtsp_urls,omitempty"`
}

// NvrUpdatePayload is the body for PUT /nvr?id=. Only set fields are sent.
type NvrUpdatePayload struct {
	Name       *string      `json:"name,omitempty"`
	URL        *string      `json:"url,omitempty"`
	BuildingID *int64       `json:"building_id,omitempty"`
	AdminUser  *Credential  `json:"admin_user,omitempty"`
	Users      []Credential `json:"users,omitempty"`
	RTSPURLs   []RTSPURL    `json:"rtsp_urls,omitempty"`
}

// --- NVR sub-resource payloads ---

type NvrAdminUserPayload struct {
	ID        int64      `json:"id"`
	AdminUser Credential `json:"admin_user"`
}

type NvrUsersPayload struct {
	ID    int64        `json:"id"`
	Users []Credential `json:"users"`
}

type NvrRTSPURLPayload struct {
	ID  int64   `json:"id"`
	URL RTSPURL `json:"url"`
}

type NvrRTSPURLRemovePayload struct {
	ID      int64 `json:"id"`
	Channel int   `json:"channel"`
}

type NvrUserPayload struct {
	ID   int64      `json:"id"`
	User Credential `json:"user"`
}

type NvrUserRemovePayload struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}
