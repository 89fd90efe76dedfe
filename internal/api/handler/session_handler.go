package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventtune/web/internal/core/domain"
)

// SessionHandler exposes the current session's auth state as JSON.
type SessionHandler struct{}

func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

type sessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	Role          *int   `json:"role,omitempty"`
	Email         string `json:"email,omitempty"`
	DashboardPath string `json:"dashboard_path"`
}

// Session reports whether the browser session holds a live credential.
//
// @Summary      Current session
// @Description  Role and email are decoded from the stored credential without verifying it. They are omitted when no readable credential is stored.
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /api/session [get]
func (h *SessionHandler) Session(c echo.Context) error {
	_, auth, err := ctxSession(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	resp := sessionResponse{
		Authenticated: auth.IsAuthenticated(ctx),
		DashboardPath: domain.RoleUnknown.DashboardPath(),
	}
	if claims, ok := auth.Claims(ctx); ok {
		role := int(claims.Role)
		resp.Role = &role
		resp.Email = claims.Email
		if resp.Authenticated {
			resp.DashboardPath = claims.Role.DashboardPath()
		}
	}
	return c.JSON(http.StatusOK, resp)
}
