package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/eventtune/web/internal/api/middleware"
	"github.com/eventtune/web/internal/api/view"
	"github.com/eventtune/web/internal/core/domain"
	"github.com/eventtune/web/internal/core/ports"
	"github.com/eventtune/web/internal/infrastructure/db/memory"
)

// stubBackend implements ports.BackendAPI with overridable function fields.
// Unset fields fail the test when called.
type stubBackend struct {
	t *testing.T

	loginFn          func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	registerFn       func(ctx context.Context, in ports.RegisterInput) (*ports.AccountSummary, error)
	submitFn         func(ctx context.Context, in domain.ApplicationInput) (*ports.ActionResult, error)
	myApplicationsFn func(ctx context.Context) ([]domain.Application, error)
	applicationsFn   func(ctx context.Context) ([]domain.Application, error)
	approveFn        func(ctx context.Context, id string) (*ports.ActionResult, error)
	rejectFn         func(ctx context.Context, id string) (*ports.ActionResult, error)
	statsFn          func(ctx context.Context) (*domain.Stats, error)
	profileFn        func(ctx context.Context) (*domain.Profile, error)
	updateProfileFn  func(ctx context.Context, upd domain.ProfileUpdate) (*ports.ActionResult, error)
}

func (s *stubBackend) For(ports.Credentials) ports.BackendAPI { return s }

func (s *stubBackend) unexpected(name string) {
	s.t.Helper()
	s.t.Fatalf("unexpected backend call: %s", name)
}

func (s *stubBackend) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if s.loginFn == nil {
		s.unexpected("Login")
	}
	return s.loginFn(ctx, email, password)
}

func (s *stubBackend) Register(ctx context.Context, in ports.RegisterInput) (*ports.AccountSummary, error) {
	if s.registerFn == nil {
		s.unexpected("Register")
	}
	return s.registerFn(ctx, in)
}

func (s *stubBackend) SubmitApplication(ctx context.Context, in domain.ApplicationInput) (*ports.ActionResult, error) {
	if s.submitFn == nil {
		s.unexpected("SubmitApplication")
	}
	return s.submitFn(ctx, in)
}

func (s *stubBackend) MyApplications(ctx context.Context) ([]domain.Application, error) {
	if s.myApplicationsFn == nil {
		s.unexpected("MyApplications")
	}
	return s.myApplicationsFn(ctx)
}

func (s *stubBackend) Applications(ctx context.Context) ([]domain.Application, error) {
	if s.applicationsFn == nil {
		s.unexpected("Applications")
	}
	return s.applicationsFn(ctx)
}

func (s *stubBackend) ApproveApplication(ctx context.Context, id string) (*ports.ActionResult, error) {
	if s.approveFn == nil {
		s.unexpected("ApproveApplication")
	}
	return s.approveFn(ctx, id)
}

func (s *stubBackend) RejectApplication(ctx context.Context, id string) (*ports.ActionResult, error) {
	if s.rejectFn == nil {
		s.unexpected("RejectApplication")
	}
	return s.rejectFn(ctx, id)
}

func (s *stubBackend) Stats(ctx context.Context) (*domain.Stats, error) {
	if s.statsFn == nil {
		return &domain.Stats{}, nil
	}
	return s.statsFn(ctx)
}

func (s *stubBackend) Profile(ctx context.Context) (*domain.Profile, error) {
	if s.profileFn == nil {
		s.unexpected("Profile")
	}
	return s.profileFn(ctx)
}

func (s *stubBackend) UpdateProfile(ctx context.Context, upd domain.ProfileUpdate) (*ports.ActionResult, error) {
	if s.updateProfileFn == nil {
		s.unexpected("UpdateProfile")
	}
	return s.updateProfileFn(ctx, upd)
}

// ── fixtures ──────────────────────────────────────────────────────────────────

const testSessionID = "9f1c2a7e-4b3d-4e5f-8a6b-0c1d2e3f4a5b"

var testNow = time.Unix(1_700_000_000, 0)

func testToken(t *testing.T, role domain.Role, exp time.Time) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "u1",
		"email": "someone@example.com",
		"role":  int(role),
		"exp":   exp.Unix(),
	}).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

// newTestEcho returns an Echo with the session middleware, validator and
// renderer installed, backed by store.
func newTestEcho(store *memory.TokenStore) *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	e.Renderer = view.MustRenderer()
	e.Use(middleware.Session(middleware.SessionConfig{
		Store: store,
		Now:   func() time.Time { return testNow },
		Log:   zerolog.Nop(),
	}))
	return e
}

// signedIn returns a store whose test session holds a live credential for role.
func signedIn(t *testing.T, role domain.Role) *memory.TokenStore {
	t.Helper()
	store := memory.NewTokenStore(0)
	if err := store.Set(context.Background(), testSessionID, testToken(t, role, testNow.Add(time.Hour))); err != nil {
		t.Fatalf("seed token: %v", err)
	}
	return store
}

func do(e *echo.Echo, method, target string, form url.Values) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: testSessionID})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}
