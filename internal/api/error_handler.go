package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/eventtune/web/internal/api/view"
	"github.com/eventtune/web/internal/core/domain"
	"github.com/eventtune/web/internal/infrastructure/backend"
)

// errorResponse is the JSON error envelope used under /api.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known errors to their HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Answers JSON under /api and an HTML error page everywhere else.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if wantsJSON(c) {
			_ = c.JSON(code, errorResponse{Error: msg})
			return
		}
		if rerr := c.Render(code, view.PageError, view.Page{
			Title: http.StatusText(code),
			Data:  view.ErrorPage{Code: code, Message: msg},
		}); rerr != nil {
			_ = c.String(code, msg)
		}
	}
}

func wantsJSON(c echo.Context) bool {
	if strings.HasPrefix(c.Request().URL.Path, "/api/") {
		return true
	}
	accept := c.Request().Header.Get(echo.HeaderAccept)
	return strings.Contains(accept, echo.MIMEApplicationJSON) && !strings.Contains(accept, echo.MIMETextHTML)
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrActionInFlight):
		return http.StatusConflict, domain.UserMessage(err, "")
	case errors.Is(err, domain.ErrInvalidForm), errors.Is(err, domain.ErrUnknownProfileField):
		return http.StatusUnprocessableEntity, domain.UserMessage(err, "invalid form")
	}

	var ae *backend.APIError
	if errors.As(err, &ae) {
		log.Warn().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Int("backend_status", ae.Status).
			Msg("backend error")
		return http.StatusBadGateway, ae.UserMessage()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
