package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/eventtune/web/internal/core/domain"
	"github.com/eventtune/web/internal/core/ports"
)

const minPasswordLength = 6

// RegisterForm is the registration form as submitted, before it is sent.
type RegisterForm struct {
	Email           string      `form:"email"            validate:"required,email"`
	Password        string      `form:"password"         validate:"required"`
	ConfirmPassword string      `form:"confirm_password" validate:"required,eqfield=Password"`
	Role            domain.Role `form:"role"             validate:"min=0,max=2"`
}

// AuthService implements sign-in, registration and sign-out for one session.
type AuthService struct {
	backend ports.BackendFactory
	now     func() time.Time
	log     zerolog.Logger
}

func NewAuthService(backend ports.BackendFactory, now func() time.Time, log zerolog.Logger) *AuthService {
	if now == nil {
		now = time.Now
	}
	return &AuthService{backend: backend, now: now, log: log}
}

// Login exchanges the credentials for an access token, stores it in the
// session slot and returns the role decoded from it. A token without a
// readable role yields RoleUnknown, which routes home.
func (s *AuthService) Login(ctx context.Context, sess *Session, email, password string) (domain.Role, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return domain.RoleUnknown, domain.NewFormError("Email and password are required")
	}

	res, err := s.backend.For(sess).Login(ctx, email, password)
	if err != nil {
		return domain.RoleUnknown, err
	}

	if err := sess.SetToken(ctx, res.AccessToken); err != nil {
		return domain.RoleUnknown, fmt.Errorf("store credential: %w", err)
	}

	role, ok := NewAuthState(sess, s.now).UserRole(ctx)
	if !ok {
		s.log.Warn().Str("session", sess.ID()).Msg("login returned an undecodable token")
		return domain.RoleUnknown, nil
	}
	return role, nil
}

// Register checks the form locally and only then creates the account.
func (s *AuthService) Register(ctx context.Context, sess *Session, form RegisterForm) (*ports.AccountSummary, error) {
	if form.Password != form.ConfirmPassword {
		return nil, domain.NewFormError("Passwords do not match")
	}
	if len(form.Password) < minPasswordLength {
		return nil, domain.NewFormError(fmt.Sprintf("Password must be at least %d characters long", minPasswordLength))
	}
	if !form.Role.Known() {
		return nil, domain.NewFormError("Please choose a valid account type")
	}

	return s.backend.For(sess).Register(ctx, ports.RegisterInput{
		Email:    strings.TrimSpace(form.Email),
		Password: form.Password,
		Role:     form.Role,
	})
}

// Logout clears the session slot.
func (s *AuthService) Logout(ctx context.Context, sess *Session) error {
	if err := sess.RemoveToken(ctx); err != nil {
		return fmt.Errorf("remove credential: %w", err)
	}
	return nil
}
