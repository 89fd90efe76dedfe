package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/eventtune/web/internal/core/domain"
	"github.com/eventtune/web/internal/core/ports"
)

// ArtistData is what the artist dashboard renders.
type ArtistData struct {
	Applications []domain.Application
}

// ArtistCounters summarises the artist's own applications.
type ArtistCounters struct {
	Submitted      int
	Approved       int
	Pending        int
	PortfolioItems int
}

// Counters derives the summary tiles from the loaded applications.
func (a ArtistData) Counters() ArtistCounters {
	c := ArtistCounters{Submitted: len(a.Applications)}
	for _, app := range a.Applications {
		switch app.Status {
		case domain.StatusApproved:
			c.Approved++
		case domain.StatusPending:
			c.Pending++
		}
		c.PortfolioItems += len(app.PortfolioLinks)
	}
	return c
}

// ArtistDashboard shows the current user's applications. It has no mutations.
type ArtistDashboard struct {
	*Dashboard[ArtistData]
	api ports.ArtistAPI
}

func NewArtistDashboard(api ports.ArtistAPI, log zerolog.Logger) *ArtistDashboard {
	d := &ArtistDashboard{api: api}
	d.Dashboard = newDashboard("artist", "Failed to fetch applications", d.load, log)
	return d
}

func (d *ArtistDashboard) load(ctx context.Context) (ArtistData, error) {
	apps, err := d.api.MyApplications(ctx)
	if err != nil {
		return ArtistData{}, err
	}
	return ArtistData{Applications: apps}, nil
}
