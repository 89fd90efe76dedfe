package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/eventtune/web/internal/core/domain"
	"github.com/eventtune/web/internal/core/ports"
)

var testNow = time.Unix(1_700_000_000, 0)

func clock() time.Time { return testNow }

// mapStore is a TokenStore over a map with an injectable read failure.
type mapStore struct {
	mu      sync.Mutex
	slots   map[string]string
	readErr error
}

func newMapStore() *mapStore { return &mapStore{slots: map[string]string{}} }

func (m *mapStore) Get(_ context.Context, id string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return "", false, m.readErr
	}
	v, ok := m.slots[id]
	return v, ok, nil
}

func (m *mapStore) Set(_ context.Context, id, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[id] = token
	return nil
}

func (m *mapStore) Remove(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, id)
	return nil
}

func (m *mapStore) Ping(context.Context) error { return nil }

func newTestSession(store ports.TokenStore) *Session {
	return NewSession("sess-1", store, zerolog.Nop())
}

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	require.NoError(t, err)
	return tok
}

// fakeBackend implements ports.BackendAPI and ports.BackendFactory with
// optional function fields; unset calls return errUnexpected.
type fakeBackend struct {
	login          func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	register       func(ctx context.Context, in ports.RegisterInput) (*ports.AccountSummary, error)
	submit         func(ctx context.Context, in domain.ApplicationInput) (*ports.ActionResult, error)
	myApplications func(ctx context.Context) ([]domain.Application, error)
	applications   func(ctx context.Context) ([]domain.Application, error)
	approve        func(ctx context.Context, id string) (*ports.ActionResult, error)
	reject         func(ctx context.Context, id string) (*ports.ActionResult, error)
	stats          func(ctx context.Context) (*domain.Stats, error)
	profile        func(ctx context.Context) (*domain.Profile, error)
	updateProfile  func(ctx context.Context, upd domain.ProfileUpdate) (*ports.ActionResult, error)
}

var errUnexpected = errors.New("unexpected backend call")

func (f *fakeBackend) For(ports.Credentials) ports.BackendAPI { return f }

func (f *fakeBackend) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if f.login == nil {
		return nil, errUnexpected
	}
	return f.login(ctx, email, password)
}

func (f *fakeBackend) Register(ctx context.Context, in ports.RegisterInput) (*ports.AccountSummary, error) {
	if f.register == nil {
		return nil, errUnexpected
	}
	return f.register(ctx, in)
}

func (f *fakeBackend) SubmitApplication(ctx context.Context, in domain.ApplicationInput) (*ports.ActionResult, error) {
	if f.submit == nil {
		return nil, errUnexpected
	}
	return f.submit(ctx, in)
}

func (f *fakeBackend) MyApplications(ctx context.Context) ([]domain.Application, error) {
	if f.myApplications == nil {
		return nil, errUnexpected
	}
	return f.myApplications(ctx)
}

func (f *fakeBackend) Applications(ctx context.Context) ([]domain.Application, error) {
	if f.applications == nil {
		return nil, errUnexpected
	}
	return f.applications(ctx)
}

func (f *fakeBackend) ApproveApplication(ctx context.Context, id string) (*ports.ActionResult, error) {
	if f.approve == nil {
		return nil, errUnexpected
	}
	return f.approve(ctx, id)
}

func (f *fakeBackend) RejectApplication(ctx context.Context, id string) (*ports.ActionResult, error) {
	if f.reject == nil {
		return nil, errUnexpected
	}
	return f.reject(ctx, id)
}

func (f *fakeBackend) Stats(ctx context.Context) (*domain.Stats, error) {
	if f.stats == nil {
		return &domain.Stats{}, nil
	}
	return f.stats(ctx)
}

func (f *fakeBackend) Profile(ctx context.Context) (*domain.Profile, error) {
	if f.profile == nil {
		return nil, errUnexpected
	}
	return f.profile(ctx)
}

func (f *fakeBackend) UpdateProfile(ctx context.Context, upd domain.ProfileUpdate) (*ports.ActionResult, error) {
	if f.updateProfile == nil {
		return nil, errUnexpected
	}
	return f.updateProfile(ctx, upd)
}
