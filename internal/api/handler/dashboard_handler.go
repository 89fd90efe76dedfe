package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/eventtune/web/internal/api/metrics"
	"github.com/eventtune/web/internal/api/view"
	"github.com/eventtune/web/internal/core/domain"
	"github.com/eventtune/web/internal/core/ports"
	"github.com/eventtune/web/internal/core/service"
)

// DashboardHandler hosts the three role dashboards. Each session gets its own
// dashboard instances, kept in registries between requests so that the action
// in flight and the last good data survive across page loads.
//
// Every GET of a dashboard counts as mounting it and triggers one refresh.
// Actions are POSTs that render the page directly, so an action causes exactly
// one refetch.
type DashboardHandler struct {
	pageRenderer
	backend ports.BackendFactory
	admins  *service.Registry[*service.AdminDashboard]
	artists *service.Registry[*service.ArtistDashboard]
	users   *service.Registry[*service.UserDashboard]
	log     zerolog.Logger
}

func NewDashboardHandler(backend ports.BackendFactory, secureCookies bool, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		pageRenderer: pageRenderer{secureCookies: secureCookies},
		backend:      backend,
		admins:       service.NewRegistry[*service.AdminDashboard](),
		artists:      service.NewRegistry[*service.ArtistDashboard](),
		users:        service.NewRegistry[*service.UserDashboard](),
		log:          log,
	}
}

// Forget drops every dashboard held for the session.
func (h *DashboardHandler) Forget(sessionID string) {
	h.admins.Drop(sessionID)
	h.artists.Drop(sessionID)
	h.users.Drop(sessionID)
	h.observeInstances()
}

// Sweep drops dashboards idle for longer than idle and returns how many went.
func (h *DashboardHandler) Sweep(idle time.Duration) int {
	n := h.admins.Sweep(idle) + h.artists.Sweep(idle) + h.users.Sweep(idle)
	h.observeInstances()
	return n
}

func (h *DashboardHandler) observeInstances() {
	metrics.DashboardInstances.WithLabelValues("admin").Set(float64(h.admins.Len()))
	metrics.DashboardInstances.WithLabelValues("artist").Set(float64(h.artists.Len()))
	metrics.DashboardInstances.WithLabelValues("user").Set(float64(h.users.Len()))
}

func (h *DashboardHandler) adminFor(sess *service.Session) *service.AdminDashboard {
	d, created := h.admins.Get(sess.ID(), func() *service.AdminDashboard {
		return service.NewAdminDashboard(h.backend.For(sess), h.log)
	})
	if created {
		h.observeInstances()
	}
	return d
}

func (h *DashboardHandler) artistFor(sess *service.Session) *service.ArtistDashboard {
	d, created := h.artists.Get(sess.ID(), func() *service.ArtistDashboard {
		return service.NewArtistDashboard(h.backend.For(sess), h.log)
	})
	if created {
		h.observeInstances()
	}
	return d
}

func (h *DashboardHandler) userFor(sess *service.Session) *service.UserDashboard {
	d, created := h.users.Get(sess.ID(), func() *service.UserDashboard {
		return service.NewUserDashboard(h.backend.For(sess), h.log)
	})
	if created {
		h.observeInstances()
	}
	return d
}

func refresh(ctx context.Context, name string, fn func(context.Context) error) {
	result := "ok"
	if err := fn(ctx); err != nil {
		result = "error"
	}
	metrics.DashboardRefreshesTotal.WithLabelValues(name, result).Inc()
}

// actionStatus records the action outcome and picks the response code. A
// refused action (another one in flight) is a conflict; any other failure is
// shown inline on a normal page.
func actionStatus(dashboard, action string, err error) (int, string) {
	switch {
	case err == nil:
		metrics.DashboardActionsTotal.WithLabelValues(dashboard, action, "ok").Inc()
		return http.StatusOK, ""
	case errors.Is(err, domain.ErrActionInFlight):
		metrics.DashboardActionsTotal.WithLabelValues(dashboard, action, "busy").Inc()
		return http.StatusConflict, domain.UserMessage(err, "")
	default:
		metrics.DashboardActionsTotal.WithLabelValues(dashboard, action, "error").Inc()
		return http.StatusOK, ""
	}
}

// ── admin ─────────────────────────────────────────────────────────────────────

// Admin renders the admin dashboard after one refresh.
func (h *DashboardHandler) Admin(c echo.Context) error {
	sess, _, err := ctxSession(c)
	if err != nil {
		return err
	}
	d := h.adminFor(sess)
	refresh(c.Request().Context(), d.Name(), d.Refresh)
	return h.renderAdmin(c, d, http.StatusOK, "")
}

// Approve approves one application, then refetches.
func (h *DashboardHandler) Approve(c echo.Context) error {
	return h.review(c, "approve", (*service.AdminDashboard).Approve)
}

// Reject rejects one application, then refetches.
func (h *DashboardHandler) Reject(c echo.Context) error {
	return h.review(c, "reject", (*service.AdminDashboard).Reject)
}

func (h *DashboardHandler) review(c echo.Context, action string, fn func(*service.AdminDashboard, context.Context, string) error) error {
	sess, _, err := ctxSession(c)
	if err != nil {
		return err
	}
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing application id")
	}

	d := h.adminFor(sess)
	err = fn(d, c.Request().Context(), id)
	code, msg := actionStatus(d.Name(), action, err)
	if err != nil && !errors.Is(err, domain.ErrActionInFlight) {
		h.log.Warn().Err(err).Str("application_id", id).Str("action", action).Msg("review failed")
	}
	return h.renderAdmin(c, d, code, msg)
}

func (h *DashboardHandler) renderAdmin(c echo.Context, d *service.AdminDashboard, code int, msg string) error {
	state := d.Snapshot()
	if msg == "" {
		msg = state.Error
	}
	return h.render(c, code, view.PageAdmin, "Admin Dashboard", view.AdminPage{State: state}, msg)
}

// ── artist ────────────────────────────────────────────────────────────────────

// Artist renders the artist dashboard after one refresh.
func (h *DashboardHandler) Artist(c echo.Context) error {
	sess, _, err := ctxSession(c)
	if err != nil {
		return err
	}
	d := h.artistFor(sess)
	refresh(c.Request().Context(), d.Name(), d.Refresh)
	state := d.Snapshot()
	return h.render(c, http.StatusOK, view.PageArtist, "Artist Dashboard", view.ArtistPage{State: state}, state.Error)
}

// ── user ──────────────────────────────────────────────────────────────────────

// User renders the profile after one refresh; ?edit=1 opens the edit form
// prefilled with the current values.
func (h *DashboardHandler) User(c echo.Context) error {
	sess, _, err := ctxSession(c)
	if err != nil {
		return err
	}
	d := h.userFor(sess)
	refresh(c.Request().Context(), d.Name(), d.Refresh)

	state := d.Snapshot()
	page := view.UserPage{State: state}
	if c.QueryParam("edit") == "1" && state.Loaded {
		p := state.Data.Profile
		page.Editing = true
		page.Form = domain.ProfileUpdate{Name: p.Name, Location: p.Location, Bio: p.Bio}
	}
	return h.render(c, http.StatusOK, view.PageUser, "My Profile", page, state.Error)
}

// UpdateProfile saves the edited fields. Unknown fields and over-long values
// are rejected before any backend call; on success the view leaves edit mode.
func (h *DashboardHandler) UpdateProfile(c echo.Context) error {
	sess, _, err := ctxSession(c)
	if err != nil {
		return err
	}
	d := h.userFor(sess)

	values, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	upd, err := domain.ParseProfileUpdate(values)
	if err == nil {
		err = c.Validate(&upd)
	}
	if err != nil {
		page := view.UserPage{State: d.Snapshot(), Editing: true, Form: upd}
		return h.render(c, http.StatusUnprocessableEntity, view.PageUser, "My Profile", page,
			domain.UserMessage(err, err.Error()))
	}

	err = d.UpdateProfile(c.Request().Context(), upd)
	code, msg := actionStatus(d.Name(), "update_profile", err)

	state := d.Snapshot()
	page := view.UserPage{State: state}
	if err != nil {
		page.Editing = true
		page.Form = upd
		if msg == "" {
			msg = state.Error
		}
	}
	return h.render(c, code, view.PageUser, "My Profile", page, msg)
}
