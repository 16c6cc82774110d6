package api

import (
	"context"
	"net/http"
)

type RegisterTenantRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// EnsureTenantRegistered performs tenant self-registration. It bypasses the
// cache layer (plain bearer call) and runs at most once per process even if
// several views race to trigger it, mirroring the sessionStorage guard of the
// original. A failed attempt clears the guard so a later call can retry.
func (c *Client) EnsureTenantRegistered(ctx context.Context, req RegisterTenantRequest) error {
	c.registerMu.Lock()
	if c.registerDone {
		c.registerMu.Unlock()
		return nil
	}
	c.registerDone = true
	c.registerMu.Unlock()

	err := c.gw.DoJSON(ctx, http.MethodPost, "/api/register", nil, req, nil)
	if err != nil {
		c.registerMu.Lock()
		c.registerDone = false
		c.registerMu.Unlock()
	}
	return err
}
