package client

import (
	"context"
	"net/http"
	"strconv"

	"icctv-admin/pkg/models"
)

func (c *Client) ListBuildings(ctx context.Context) (*Envelope[[]models.Building], error) {
	return send[[]models.Building](ctx, c.HTTP.R(), http.MethodGet, "/building")
}

func (c *Client) CreateBuilding(ctx context.Context, payload models.BuildingPayload) (*Envelope[models.Building], error) {
	return send[models.Building](ctx, c.HTTP.R().SetBody(payload), http.MethodPost, "/building")
}

// UpdateBuilding replaces a building's fields: PUT /building?id=
func (c *Client) UpdateBuilding(ctx context.Context, payload models.BuildingPayload, id int64) (*Envelope[models.Building], error) {
	req := c.HTTP.R().
		SetQueryParam("id", strconv.FormatInt(id, 10)).
		SetBody(payload)
	return send[models.Building](ctx, req, http.MethodPut, "/building")
}

func (c *Client) DeleteBuilding(ctx context.Context, id int64) (*Envelope[models.Deleted], error) {
	return send[models.Deleted](ctx, c.HTTP.R().SetBody(models.IDPayload{ID: id}), http.MethodDelete, "/building")
}
