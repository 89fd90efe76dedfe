package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventtune/web/internal/api/flash"
	"github.com/eventtune/web/internal/api/middleware"
	"github.com/eventtune/web/internal/api/view"
	"github.com/eventtune/web/internal/core/service"
)

// ctxSession extracts the session and auth state injected by the Session
// middleware. Their absence means the route was wired without it.
func ctxSession(c echo.Context) (*service.Session, *service.AuthState, error) {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		return nil, nil, echo.NewHTTPError(http.StatusInternalServerError, "session not initialised")
	}
	auth, ok := middleware.AuthStateFrom(c)
	if !ok {
		return nil, nil, echo.NewHTTPError(http.StatusInternalServerError, "session not initialised")
	}
	return sess, auth, nil
}

// navFor computes the header navigation from a single read of the credential.
func navFor(c echo.Context, auth *service.AuthState) view.Nav {
	ctx := c.Request().Context()
	if !auth.IsAuthenticated(ctx) {
		return view.Nav{}
	}
	claims, _ := auth.Claims(ctx)
	return view.Nav{
		Authenticated: true,
		Email:         claims.Email,
		DashboardPath: claims.Role.DashboardPath(),
	}
}

// pageRenderer assembles view.Page values and renders them.
type pageRenderer struct {
	secureCookies bool
}

func (p pageRenderer) render(c echo.Context, code int, name, title string, data any, errMsg string) error {
	_, auth, err := ctxSession(c)
	if err != nil {
		return err
	}
	pg := view.Page{
		Title: title,
		Nav:   navFor(c, auth),
		Error: errMsg,
		Data:  data,
	}
	if n, ok := flash.ReadAndClear(c, p.secureCookies); ok {
		pg.Flash = &n
	}
	return c.Render(code, name, pg)
}

func (p pageRenderer) flash(c echo.Context, n flash.Notice) {
	flash.Write(c, n, p.secureCookies)
}
