package backend

import (
	"context"
	"net/http"

	"github.com/eventtune/web/internal/core/domain"
	"github.com/eventtune/web/internal/core/ports"
)

// Profile returns the signed-in account (GET /user/profile).
func (c *Client) Profile(ctx context.Context) (*domain.Profile, error) {
	var out domain.Profile
	err := c.do(ctx, call{
		op:       "get_profile",
		method:   http.MethodGet,
		path:     "/user/profile",
		out:      &out,
		fallback: "Failed to fetch profile",
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile replaces the editable profile fields (PUT /user/profile).
func (c *Client) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*ports.ActionResult, error) {
	var out ports.ActionResult
	err := c.do(ctx, call{
		op:       "update_profile",
		method:   http.MethodPut,
		path:     "/user/profile",
		body:     update,
		out:      &out,
		fallback: "Failed to update profile",
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
