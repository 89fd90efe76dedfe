package service

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/eventtune/web/internal/core/domain"
	"github.com/eventtune/web/internal/core/ports"
)

// AdminData is what the admin dashboard renders.
type AdminData struct {
	Applications []domain.Application
	Stats        domain.Stats
}

// AdminDashboard lists every application with platform stats and lets an
// admin approve or reject pending ones.
type AdminDashboard struct {
	*Dashboard[AdminData]
	api ports.AdminAPI
}

func NewAdminDashboard(api ports.AdminAPI, log zerolog.Logger) *AdminDashboard {
	d := &AdminDashboard{api: api}
	d.Dashboard = newDashboard("admin", "Failed to fetch applications", d.load, log)
	return d
}

// load fetches applications and stats in parallel; if either fails neither is kept.
func (d *AdminDashboard) load(ctx context.Context) (AdminData, error) {
	var (
		apps  []domain.Application
		stats *domain.Stats
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		apps, err = d.api.Applications(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = d.api.Stats(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return AdminData{}, err
	}

	data := AdminData{Applications: apps}
	if stats != nil {
		data.Stats = *stats
	}
	return data, nil
}

// Approve approves the application and refetches.
func (d *AdminDashboard) Approve(ctx context.Context, id string) error {
	return d.Mutate(ctx, id, func(ctx context.Context) error {
		_, err := d.api.ApproveApplication(ctx, id)
		return err
	})
}

// Reject rejects the application and refetches.
func (d *AdminDashboard) Reject(ctx context.Context, id string) error {
	return d.Mutate(ctx, id, func(ctx context.Context) error {
		_, err := d.api.RejectApplication(ctx, id)
		return err
	})
}
