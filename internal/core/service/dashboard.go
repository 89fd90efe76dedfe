package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/eventtune/web/internal/core/domain"
)

// DashboardState is a render-ready copy of a dashboard's local state.
type DashboardState[T any] struct {
	Data         T
	Loaded       bool
	Loading      bool
	Error        string
	ActionTarget string
	RefreshedAt  time.Time
}

// Busy reports whether the action controls for target must be disabled.
func (s DashboardState[T]) Busy(target string) bool {
	return s.ActionTarget != "" && s.ActionTarget == target
}

// Dashboard holds the refresh/mutate protocol shared by every dashboard.
// The mutex only guards state transitions; it is never held across a fetch.
type Dashboard[T any] struct {
	name     string
	fetch    func(ctx context.Context) (T, error)
	fallback string
	now      func() time.Time
	log      zerolog.Logger

	mu    sync.Mutex
	state DashboardState[T]
}

func newDashboard[T any](name, fallback string, fetch func(ctx context.Context) (T, error), log zerolog.Logger) *Dashboard[T] {
	return &Dashboard[T]{
		name:     name,
		fetch:    fetch,
		fallback: fallback,
		now:      time.Now,
		log:      log.With().Str("dashboard", name).Logger(),
	}
}

// Name identifies the dashboard kind.
func (d *Dashboard[T]) Name() string { return d.name }

// Refresh refetches everything the dashboard shows. On failure the error is
// recorded and the previous data is kept; partial results never land. When two
// refreshes overlap, whichever response arrives last wins.
func (d *Dashboard[T]) Refresh(ctx context.Context) error {
	d.mu.Lock()
	d.state.Loading = true
	d.state.Error = ""
	d.mu.Unlock()

	data, err := d.fetch(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.Loading = false
	if err != nil {
		d.state.Error = domain.UserMessage(err, d.fallback)
		d.log.Warn().Err(err).Msg("dashboard refresh failed")
		return err
	}
	d.state.Data = data
	d.state.Loaded = true
	d.state.RefreshedAt = d.now()
	return nil
}

// Mutate runs one action against target, then refreshes whatever the outcome.
// Only one action may be in flight per dashboard; a second one is refused with
// domain.ErrActionInFlight. A failed action's message stays visible after the
// refresh.
func (d *Dashboard[T]) Mutate(ctx context.Context, target string, action func(ctx context.Context) error) error {
	d.mu.Lock()
	if d.state.ActionTarget != "" {
		d.mu.Unlock()
		return domain.ErrActionInFlight
	}
	d.state.ActionTarget = target
	d.mu.Unlock()

	actionErr := action(ctx)
	if actionErr != nil {
		d.log.Warn().Err(actionErr).Str("target", target).Msg("dashboard action failed")
	}

	refreshErr := d.Refresh(ctx)

	d.mu.Lock()
	d.state.ActionTarget = ""
	if actionErr != nil {
		d.state.Error = domain.UserMessage(actionErr, d.fallback)
	}
	d.mu.Unlock()

	if actionErr != nil {
		return actionErr
	}
	return refreshErr
}

// Snapshot returns a copy of the current state for rendering.
func (d *Dashboard[T]) Snapshot() DashboardState[T] {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}
