package client

import (
	"context"
	"net/http"

	"icctv-admin/pkg/models"
)

// Login exchanges operator credentials for an access token. The token is
// returned, not stored; persisting it is the caller's job.
func (c *Client) Login(ctx context.Context, username, password string) (*Envelope[models.LoginResult], error) {
	payload := models.LoginPayload{Username: username, Password: password}
	return send[models.LoginResult](ctx, c.HTTP.R().SetBody(payload), http.MethodPost, "/auth/login")
}

// PublicToken issues the delegated token remote device calls need.
func (c *Client) PublicToken(ctx context.Context, ismartid string, isStaff bool) (*Envelope[models.PublicToken], error) {
	payload := models.PublicTokenPayload{Ismartid: ismartid, IsStaff: isStaff}
	return send[models.PublicToken](ctx, c.HTTP.R().SetBody(payload), http.MethodPost, "/auth/public")
}
