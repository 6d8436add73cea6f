package client

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"

	"icctv-admin/pkg/models"
)

const defaultPathsPerPage = 50

// PathQuery selects a page of relay paths on one device. Page is zero-based.
type PathQuery struct {
	ID           int64
	Token        string
	Page         int
	ItemsPerPage int
}

// remoteRequest starts a request addressed to one device. token is the
// delegated token from PublicToken; it is omitted when empty.
func (c *Client) remoteRequest(id int64, token string) *resty.Request {
	req := c.HTTP.R().SetQueryParam("id", strconv.FormatInt(id, 10))
	if token != "" {
		req.SetQueryParam("token", token)
	}
	return req
}

// UpdateRemotePorts reconfigures the device's tunnel ports.
func (c *Client) UpdateRemotePorts(ctx context.Context, payload models.RemotePortsPayload) (*Envelope[models.RemotePortsResult], error) {
	return send[models.RemotePortsResult](ctx, c.HTTP.R().SetBody(payload), http.MethodPost, "/orangepi/remote/ports")
}

func (c *Client) RemoteInfo(ctx context.Context, id int64, token string) (*Envelope[models.RemoteInfo], error) {
	return send[models.RemoteInfo](ctx, c.remoteRequest(id, token), http.MethodGet, "/orangepi/remote/info")
}

func (c *Client) RemoteHealth(ctx context.Context, id int64) (*Envelope[models.RemoteHealth], error) {
	return send[models.RemoteHealth](ctx, c.remoteRequest(id, ""), http.MethodGet, "/orangepi/remote/health")
}

// ListPaths pages through relay paths: page 0 and 50 per page unless set.
func (c *Client) ListPaths(ctx context.Context, q PathQuery) (*Envelope[models.RelayPathList], error) {
	perPage := q.ItemsPerPage
	if perPage <= 0 {
		perPage = defaultPathsPerPage
	}
	page := q.Page
	if page < 0 {
		page = 0
	}

	req := c.remoteRequest(q.ID, q.Token).
		SetQueryParam("page", strconv.Itoa(page)).
		SetQueryParam("items_per_page", strconv.Itoa(perPage))

	return send[models.RelayPathList](ctx, req, http.MethodGet, "/orangepi/remote/paths")
}

func (c *Client) GetPath(ctx context.Context, id int64, token, name string) (*Envelope[models.RelayPathDetail], error) {
	req := c.remoteRequest(id, token).SetQueryParam("name", name)
	return send[models.RelayPathDetail](ctx, req, http.MethodGet, "/orangepi/remote/paths/detail")
}

// AddPath creates a relay path with its full initial configuration.
func (c *Client) AddPath(ctx context.Context, id int64, token, name string, cfg models.PathConfig) (*Envelope[models.RelayPathResult], error) {
	req := c.remoteRequest(id, token).
		SetBody(models.PathAddPayload{Name: name, Config: cfg})
	return send[models.RelayPathResult](ctx, req, http.MethodPost, "/orangepi/remote/paths")
}

// UpdatePath merges patch into the path's configuration. Only the keys in
// patch are sent.
func (c *Client) UpdatePath(ctx context.Context, id int64, token, name string, patch models.PathPatch) (*Envelope[models.RelayPathResult], error) {
	req := c.remoteRequest(id, token).
		SetQueryParam("name", name).
		SetBody(models.PathUpdatePayload{Config: patch})
	return send[models.RelayPathResult](ctx, req, http.MethodPatch, "/orangepi/remote/paths")
}

func (c *Client) DeletePath(ctx context.Context, id int64, token, name string) (*Envelope[models.RelayPathResult], error) {
	req := c.remoteRequest(id, token).SetQueryParam("name", name)
	return send[models.RelayPathResult](ctx, req, http.MethodDelete, "/orangepi/remote/paths")
}
