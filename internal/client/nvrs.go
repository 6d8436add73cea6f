package client

import (
	"context"
	"net/http"
	"strconv"

	"icctv-admin/pkg/models"
)

// ListNvrs queries GET /nvr. Without an id the backend answers with all
// NVRs (bare array or paginated); with an id it answers with one record.
func (c *Client) ListNvrs(ctx context.Context, id int64) (*Envelope[models.Listing[models.Nvr]], error) {
	req := c.HTTP.R()
	if id > 0 {
		req.SetQueryParam("id", strconv.FormatInt(id, 10))
	}
	return send[models.Listing[models.Nvr]](ctx, req, http.MethodGet, "/nvr")
}

func (c *Client) CreateNvr(ctx context.Context, payload models.NvrCreatePayload) (*Envelope[models.Nvr], error) {
	return send[models.Nvr](ctx, c.HTTP.R().SetBody(payload), http.MethodPost, "/nvr")
}

func (c *Client) UpdateNvr(ctx context.Context, payload models.NvrUpdatePayload, id int64) (*Envelope[models.Nvr], error) {
	req := c.HTTP.R().
		SetQueryParam("id", strconv.FormatInt(id, 10)).
		SetBody(payload)
	return send[models.Nvr](ctx, req, http.MethodPut, "/nvr")
}

func (c *Client) DeleteNvr(ctx context.Context, id int64) (*Envelope[models.Deleted], error) {
	return send[models.Deleted](ctx, c.HTTP.R().SetBody(models.IDPayload{ID: id}), http.MethodDelete, "/nvr")
}

// --- credential and stream sub-resources ---

func (c *Client) UpdateNvrAdminUser(ctx context.Context, id int64, admin models.Credential) (*Envelope[models.Nvr], error) {
	payload := models.NvrAdminUserPayload{ID: id, AdminUser: admin}
	return send[models.Nvr](ctx, c.HTTP.R().SetBody(payload), http.MethodPut, "/nvr/admin-user")
}

// UpdateNvrUsers replaces the whole user list.
func (c *Client) UpdateNvrUsers(ctx context.Context, id int64, users []models.Credential) (*Envelope[models.Nvr], error) {
	payload := models.NvrUsersPayload{ID: id, Users: users}
	return send[models.Nvr](ctx, c.HTTP.R().SetBody(payload), http.MethodPut, "/nvr/users")
}

func (c *Client) AddNvrRTSPURL(ctx context.Context, id int64, url models.RTSPURL) (*Envelope[models.Nvr], error) {
	payload := models.NvrRTSPURLPayload{ID: id, URL: url}
	return send[models.Nvr](ctx, c.HTTP.R().SetBody(payload), http.MethodPost, "/nvr/rtsp-url")
}

func (c *Client) RemoveNvrRTSPURL(ctx context.Context, id int64, channel int) (*Envelope[models.Nvr], error) {
	payload := models.NvrRTSPURLRemovePayload{ID: id, Channel: channel}
	return send[models.Nvr](ctx, c.HTTP.R().SetBody(payload), http.MethodDelete, "/nvr/rtsp-url")
}

func (c *Client) AddNvrUser(ctx context.Context, id int64, user models.Credential) (*Envelope[models.Nvr], error) {
	payload := models.NvrUserPayload{ID: id, User: user}
	return send[models.Nvr](ctx, c.HTTP.R().SetBody(payload), http.MethodPost, "/nvr/user")
}

func (c *Client) RemoveNvrUser(ctx context.Context, id int64, username string) (*Envelope[models.Nvr], error) {
	payload := models.NvrUserRemovePayload{ID: id, Username: username}
	return send[models.Nvr](ctx, c.HTTP.R().SetBody(payload), http.MethodDelete, "/nvr/user")
}
