package client

import (
	"context"
	"net/http"
	"strconv"

	"icctv-admin/pkg/models"
)

// ListDevices fetches OrangePi devices, filtered server side by ismartid when set.
func (c *Client) ListDevices(ctx context.Context, ismartid string) (*Envelope[[]models.Device], error) {
	req := c.HTTP.R()
	if ismartid != "" {
		req.SetQueryParam("ismartid", ismartid)
	}
	return send[[]models.Device](ctx, req, http.MethodGet, "/device")
}

func (c *Client) CreateDevice(ctx context.Context, payload models.DeviceCreatePayload) (*Envelope[models.Device], error) {
	return send[models.Device](ctx, c.HTTP.R().SetBody(payload), http.MethodPost, "/device")
}

// UpdateDevice sends a partial update: PUT /device?id=
func (c *Client) UpdateDevice(ctx context.Context, payload models.DeviceUpdatePayload, id int64) (*Envelope[models.Device], error) {
	req := c.HTTP.R().
		SetQueryParam("id", strconv.FormatInt(id, 10)).
		SetBody(payload)
	return send[models.Device](ctx, req, http.MethodPut, "/device")
}

func (c *Client) DeleteDevice(ctx context.Context, id int64) (*Envelope[models.Deleted], error) {
	return send[models.Deleted](ctx, c.HTTP.R().SetBody(models.IDPayload{ID: id}), http.MethodDelete, "/device")
}

// GetDeviceStats fetches the fleet summary from GET /device/info
func (c *Client) GetDeviceStats(ctx context.Context) (*Envelope[models.DeviceStats], error) {
	return send[models.DeviceStats](ctx, c.HTTP.R(), http.MethodGet, "/device/info")
}
