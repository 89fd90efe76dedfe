package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/eventtune/web/internal/api/view"
	"github.com/eventtune/web/internal/core/domain"
	"github.com/eventtune/web/internal/core/service"
)

// PageHandler serves the public pages and the artist application form.
type PageHandler struct {
	pageRenderer
	apps *service.ApplicationService
	log  zerolog.Logger
}

func NewPageHandler(apps *service.ApplicationService, secureCookies bool, log zerolog.Logger) *PageHandler {
	return &PageHandler{
		pageRenderer: pageRenderer{secureCookies: secureCookies},
		apps:         apps,
		log:          log,
	}
}

// Landing renders the home page.
func (h *PageHandler) Landing(c echo.Context) error {
	return h.render(c, http.StatusOK, view.PageLanding, "", nil, "")
}

// ApplyPage renders the application form, or a sign-in prompt for anonymous visitors.
func (h *PageHandler) ApplyPage(c echo.Context) error {
	_, auth, err := ctxSession(c)
	if err != nil {
		return err
	}
	data := view.ApplyPage{Authenticated: auth.IsAuthenticated(c.Request().Context())}
	return h.render(c, http.StatusOK, view.PageApply, "Apply", data, "")
}

// Apply submits the application once and shows the confirmation, which
// forwards to the artist dashboard.
func (h *PageHandler) Apply(c echo.Context) error {
	sess, auth, err := ctxSession(c)
	if err != nil {
		return err
	}
	if !auth.IsAuthenticated(c.Request().Context()) {
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	var in domain.ApplicationInput
	if err := c.Bind(&in); err != nil {
		return h.render(c, http.StatusBadRequest, view.PageApply, "Apply",
			view.ApplyPage{Authenticated: true}, "Application submission failed")
	}
	data := view.ApplyPage{Authenticated: true, Form: in}
	if err := c.Validate(&in); err != nil {
		return h.render(c, http.StatusUnprocessableEntity, view.PageApply, "Apply", data,
			domain.UserMessage(err, "Application submission failed"))
	}

	res, err := h.apps.Submit(c.Request().Context(), sess, in)
	if err != nil {
		return h.render(c, http.StatusUnprocessableEntity, view.PageApply, "Apply", data,
			domain.UserMessage(err, "Application submission failed"))
	}

	h.log.Info().Str("session", sess.ID()).Str("application_id", res.ApplicationID).Msg("application submitted")
	return h.render(c, http.StatusOK, view.PageApplyDone, "Application submitted", nil, "")
}
