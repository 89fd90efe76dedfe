package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventtune/web/internal/api/metrics"
	"github.com/eventtune/web/internal/core/domain"
	"github.com/eventtune/web/internal/core/service"
)

// Redirect targets of the route guard.
const (
	LoginPath = "/login"
	HomePath  = "/"
)

// Guard protects a page. Unauthenticated sessions are sent to the login page,
// authenticated ones whose role is not allowed go home. A nil allowed set only
// requires authentication. Must run after Session.
func Guard(allowed []domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth, ok := AuthStateFrom(c)
			outcome := service.GuardRedirectLogin
			if ok {
				outcome = auth.Guard(c.Request().Context(), allowed)
			}
			metrics.GuardDecisionsTotal.WithLabelValues(c.Path(), outcome.String()).Inc()

			switch outcome {
			case service.GuardAllow:
				return next(c)
			case service.GuardRedirectHome:
				return c.Redirect(http.StatusFound, HomePath)
			default:
				return c.Redirect(http.StatusFound, LoginPath)
			}
		}
	}
}

// RequireRole is Guard for a single role.
func RequireRole(role domain.Role) echo.MiddlewareFunc {
	return Guard([]domain.Role{role})
}
