package client

import (
	"context"
	"net/http"

	"icctv-admin/pkg/models"
)

func (c *Client) GetPublicNet(ctx context.Context) (*Envelope[models.PublicNetConfig], error) {
	return send[models.PublicNetConfig](ctx, c.HTTP.R(), http.MethodGet, "/publicnet/config")
}

func (c *Client) UpdatePublicNet(ctx context.Context, cfg models.PublicNetConfig) (*Envelope[models.PublicNetConfig], error) {
	return send[models.PublicNetConfig](ctx, c.HTTP.R().SetBody(cfg), http.MethodPut, "/publicnet/config")
}
