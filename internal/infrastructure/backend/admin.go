package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/eventtune/web/internal/core/domain"
	"github.com/eventtune/web/internal/core/ports"
)

// Applications lists every application (GET /admin/applications).
func (c *Client) Applications(ctx context.Context) ([]domain.Application, error) {
	var out []domain.Application
	err := c.do(ctx, call{
		op:       "list_applications",
		method:   http.MethodGet,
		path:     "/admin/applications",
		out:      &out,
		fallback: "Failed to fetch applications",
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ApproveApplication approves a pending application.
func (c *Client) ApproveApplication(ctx context.Context, id string) (*ports.ActionResult, error) {
	return c.review(ctx, "approve_application", id, "approve", "Failed to approve application")
}

// RejectApplication rejects a pending application.
func (c *Client) RejectApplication(ctx context.Context, id string) (*ports.ActionResult, error) {
	return c.review(ctx, "reject_application", id, "reject", "Failed to reject application")
}

func (c *Client) review(ctx context.Context, op, id, verb, fallback string) (*ports.ActionResult, error) {
	var out ports.ActionResult
	err := c.do(ctx, call{
		op:       op,
		method:   http.MethodPost,
		path:     "/admin/applications/" + url.PathEscape(id) + "/" + verb,
		out:      &out,
		fallback: fallback,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Stats returns the platform aggregate (GET /admin/stats).
func (c *Client) Stats(ctx context.Context) (*domain.Stats, error) {
	var out domain.Stats
	err := c.do(ctx, call{
		op:       "stats",
		method:   http.MethodGet,
		path:     "/admin/stats",
		out:      &out,
		fallback: "Failed to fetch stats",
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
