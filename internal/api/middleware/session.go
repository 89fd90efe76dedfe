package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/eventtune/web/internal/core/ports"
	"github.com/eventtune/web/internal/core/service"
)

// SessionCookie names the cookie holding the opaque session id.
const SessionCookie = "eventtune_session"

const (
	ctxSession   = "session"
	ctxAuthState = "auth_state"
)

// SessionConfig configures the Session middleware.
type SessionConfig struct {
	Store  ports.TokenStore
	Secure bool
	// Now is the clock used for expiry checks. Defaults to time.Now.
	Now func() time.Time
	Log zerolog.Logger
	// Skipper bypasses the middleware, e.g. for probes and metrics.
	Skipper func(c echo.Context) bool
}

// Session resolves the browser session from its cookie, issuing a fresh id
// when the cookie is missing or malformed, and injects the session and its
// auth state accessor into the context.
func Session(cfg SessionConfig) echo.MiddlewareFunc {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.Skipper != nil && cfg.Skipper(c) {
				return next(c)
			}

			id, ok := readSessionID(c)
			if !ok {
				id = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     SessionCookie,
					Value:    id,
					Path:     "/",
					HttpOnly: true,
					Secure:   cfg.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			sess := service.NewSession(id, cfg.Store, cfg.Log)
			c.Set(ctxSession, sess)
			c.Set(ctxAuthState, service.NewAuthState(sess, now))

			return next(c)
		}
	}
}

func readSessionID(c echo.Context) (string, bool) {
	cookie, err := c.Cookie(SessionCookie)
	if err != nil || cookie == nil {
		return "", false
	}
	id, err := uuid.Parse(strings.TrimSpace(cookie.Value))
	if err != nil {
		return "", false
	}
	return id.String(), true
}

// SessionFrom returns the session injected by the Session middleware.
func SessionFrom(c echo.Context) (*service.Session, bool) {
	s, ok := c.Get(ctxSession).(*service.Session)
	return s, ok
}

// AuthStateFrom returns the auth state accessor injected by the Session middleware.
func AuthStateFrom(c echo.Context) (*service.AuthState, bool) {
	a, ok := c.Get(ctxAuthState).(*service.AuthState)
	return a, ok
}
