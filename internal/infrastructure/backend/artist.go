package backend

import (
	"context"
	"net/http"

	"github.com/eventtune/web/internal/core/domain"
	"github.com/eventtune/web/internal/core/ports"
)

// SubmitApplication sends an artist application (POST /artist/apply).
func (c *Client) SubmitApplication(ctx context.Context, input domain.ApplicationInput) (*ports.ActionResult, error) {
	var out ports.ActionResult
	err := c.do(ctx, call{
		op:       "submit_application",
		method:   http.MethodPost,
		path:     "/artist/apply",
		body:     input,
		out:      &out,
		fallback: "Application submission failed",
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// MyApplications lists the caller's own applications (GET /artist/my-applications).
func (c *Client) MyApplications(ctx context.Context) ([]domain.Application, error) {
	var out []domain.Application
	err := c.do(ctx, call{
		op:       "my_applications",
		method:   http.MethodGet,
		path:     "/artist/my-applications",
		out:      &out,
		fallback: "Failed to fetch applications",
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
