package client

import (
	"context"
	"net/http"
	"strconv"

	"icctv-admin/pkg/models"
)

// ListAdmins queries GET /admin. With an id the backend answers with one
// record, otherwise with a page of records; both decode into the Listing.
func (c *Client) ListAdmins(ctx context.Context, q models.AdminQuery) (*Envelope[models.Listing[models.Admin]], error) {
	req := c.HTTP.R()

	if q.PageNum > 0 {
		req.SetQueryParam("pageNum", strconv.Itoa(q.PageNum))
	}
	if q.PageSize > 0 {
		req.SetQueryParam("pageSize", strconv.Itoa(q.PageSize))
	}
	if q.ID > 0 {
		req.SetQueryParam("id", strconv.FormatInt(q.ID, 10))
	}
	if q.Username != "" {
		req.SetQueryParam("username", q.Username)
	}

	return send[models.Listing[models.Admin]](ctx, req, http.MethodGet, "/admin")
}

func (c *Client) CreateAdmin(ctx context.Context, payload models.AdminCreatePayload) (*Envelope[models.Admin], error) {
	return send[models.Admin](ctx, c.HTTP.R().SetBody(payload), http.MethodPost, "/admin")
}

func (c *Client) UpdateAdmin(ctx context.Context, payload models.AdminUpdatePayload) (*Envelope[models.Admin], error) {
	return send[models.Admin](ctx, c.HTTP.R().SetBody(payload), http.MethodPut, "/admin")
}

// DeleteAdmin removes an account. The API expects the id in the body.
func (c *Client) DeleteAdmin(ctx context.Context, id int64) (*Envelope[models.Deleted], error) {
	return send[models.Deleted](ctx, c.HTTP.R().SetBody(models.IDPayload{ID: id}), http.MethodDelete, "/admin")
}
