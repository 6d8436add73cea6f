package client

import (
	"context"
	"net/http"
	"strconv"

	"icctv-admin/pkg/models"
)

// --- building <-> OrangePi ---

func (c *Client) BindDevice(ctx context.Context, buildingID, orangepiID int64) (*Envelope[models.Bound], error) {
	payload := models.DeviceBindPayload{BuildingID: buildingID, OrangepiID: orangepiID}
	return send[models.Bound](ctx, c.HTTP.R().SetBody(payload), http.MethodPost, "/bind/building-orangepi")
}

// UnbindDevice detaches a device from whatever building holds it.
func (c *Client) UnbindDevice(ctx context.Context, orangepiID int64) (*Envelope[models.Unbound], error) {
	payload := models.DeviceUnbindPayload{OrangepiID: orangepiID}
	return send[models.Unbound](ctx, c.HTTP.R().SetBody(payload), http.MethodDelete, "/bind/building-orangepi")
}

// BuildingDevices returns the full device records bound to a building.
func (c *Client) BuildingDevices(ctx context.Context, buildingID int64) (*Envelope[[]models.Device], error) {
	path := "/bind/building-orangepi/" + strconv.FormatInt(buildingID, 10)
	return send[[]models.Device](ctx, c.HTTP.R(), http.MethodGet, path)
}

// --- building <-> NVR ---

func (c *Client) BindNvr(ctx context.Context, buildingID, nvrID int64) (*Envelope[models.Bound], error) {
	payload := models.NvrBindPayload{BuildingID: buildingID, NvrID: nvrID}
	return send[models.Bound](ctx, c.HTTP.R().SetBody(payload), http.MethodPost, "/bind/building-nvr")
}

func (c *Client) UnbindNvr(ctx context.Context, nvrID int64) (*Envelope[models.Unbound], error) {
	payload := models.NvrUnbindPayload{NvrID: nvrID}
	return send[models.Unbound](ctx, c.HTTP.R().SetBody(payload), http.MethodDelete, "/bind/building-nvr")
}

func (c *Client) BuildingNvrs(ctx context.Context, buildingID int64) (*Envelope[[]models.Nvr], error) {
	path := "/bind/building-nvr/" + strconv.FormatInt(buildingID, 10)
	return send[[]models.Nvr](ctx, c.HTTP.R(), http.MethodGet, path)
}
