package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/eventtune/web/internal/api/flash"
	"github.com/eventtune/web/internal/api/metrics"
	"github.com/eventtune/web/internal/api/view"
	"github.com/eventtune/web/internal/core/domain"
	"github.com/eventtune/web/internal/core/service"
)

const registeredNotice = "Account created successfully! Please log in."

// AuthHandler serves the sign-in, registration and sign-out pages.
type AuthHandler struct {
	pageRenderer
	auth *service.AuthService
	// onLogout releases per-session state held outside the token store.
	onLogout func(sessionID string)
	log      zerolog.Logger
}

func NewAuthHandler(auth *service.AuthService, secureCookies bool, onLogout func(sessionID string), log zerolog.Logger) *AuthHandler {
	if onLogout == nil {
		onLogout = func(string) {}
	}
	return &AuthHandler{
		pageRenderer: pageRenderer{secureCookies: secureCookies},
		auth:         auth,
		onLogout:     onLogout,
		log:          log,
	}
}

type loginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

// LoginPage renders the sign-in form.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return h.render(c, http.StatusOK, view.PageLogin, "Sign in", view.LoginPage{}, "")
}

// Login stores the returned credential and sends the user to the dashboard
// for their role, or home when the role is not recognised.
func (h *AuthHandler) Login(c echo.Context) error {
	sess, _, err := ctxSession(c)
	if err != nil {
		return err
	}

	var form loginForm
	if err := c.Bind(&form); err != nil {
		return h.render(c, http.StatusBadRequest, view.PageLogin, "Sign in", view.LoginPage{}, "Login failed")
	}

	role, err := h.auth.Login(c.Request().Context(), sess, form.Email, form.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return h.render(c, http.StatusUnprocessableEntity, view.PageLogin, "Sign in",
			view.LoginPage{Email: form.Email}, domain.UserMessage(err, "Login failed"))
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	h.log.Info().Str("session", sess.ID()).Str("role", role.String()).Msg("signed in")
	return c.Redirect(http.StatusSeeOther, role.DashboardPath())
}

// RegisterPage renders the sign-up form.
func (h *AuthHandler) RegisterPage(c echo.Context) error {
	return h.render(c, http.StatusOK, view.PageRegister, "Sign up", view.RegisterPage{Role: domain.RoleUser}, "")
}

// Register creates the account and redirects to sign-in with a notice.
func (h *AuthHandler) Register(c echo.Context) error {
	sess, _, err := ctxSession(c)
	if err != nil {
		return err
	}

	form := service.RegisterForm{Role: domain.RoleUser}
	if err := c.Bind(&form); err != nil {
		return h.render(c, http.StatusBadRequest, view.PageRegister, "Sign up",
			view.RegisterPage{Role: domain.RoleUser}, "Registration failed")
	}
	back := view.RegisterPage{Email: form.Email, Role: form.Role}

	if err := c.Validate(&form); err != nil {
		return h.render(c, http.StatusUnprocessableEntity, view.PageRegister, "Sign up", back,
			domain.UserMessage(err, "Registration failed"))
	}

	if _, err := h.auth.Register(c.Request().Context(), sess, form); err != nil {
		return h.render(c, http.StatusUnprocessableEntity, view.PageRegister, "Sign up", back,
			domain.UserMessage(err, "Registration failed"))
	}

	h.flash(c, flash.Success(registeredNotice))
	return c.Redirect(http.StatusSeeOther, "/login")
}

// Logout clears the credential and returns home.
func (h *AuthHandler) Logout(c echo.Context) error {
	sess, _, err := ctxSession(c)
	if err != nil {
		return err
	}
	if err := h.auth.Logout(c.Request().Context(), sess); err != nil {
		return err
	}
	h.onLogout(sess.ID())
	return c.Redirect(http.StatusSeeOther, "/")
}
