package service

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventtune/web/internal/core/domain"
)

func TestEvaluateGuard(t *testing.T) {
	admin := []domain.Role{domain.RoleAdmin}
	tests := []struct {
		name    string
		auth    bool
		role    domain.Role
		allowed []domain.Role
		want    GuardOutcome
	}{
		{"unauthenticated beats role", false, domain.RoleAdmin, admin, GuardRedirectLogin},
		{"unauthenticated without set", false, domain.RoleAdmin, nil, GuardRedirectLogin},
		{"allowed role", true, domain.RoleAdmin, admin, GuardAllow},
		{"wrong role", true, domain.RoleArtist, admin, GuardRedirectHome},
		{"unknown role", true, domain.RoleUnknown, admin, GuardRedirectHome},
		{"nil set allows any role", true, domain.RoleUnknown, nil, GuardAllow},
		{"empty set admits nobody", true, domain.RoleAdmin, []domain.Role{}, GuardRedirectHome},
		{"multi-role set", true, domain.RoleUser, []domain.Role{domain.RoleArtist, domain.RoleUser}, GuardAllow},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EvaluateGuard(tc.auth, tc.role, tc.allowed))
		})
	}
}

func TestAuthState_Guard(t *testing.T) {
	ctx := context.Background()
	sess := newTestSession(newMapStore())
	auth := NewAuthState(sess, clock)

	assert.Equal(t, GuardRedirectLogin, auth.Guard(ctx, []domain.Role{domain.RoleAdmin}))

	require.NoError(t, sess.SetToken(ctx, signed(t, jwt.MapClaims{"role": 0, "exp": testNow.Unix() + 60})))
	assert.Equal(t, GuardAllow, auth.Guard(ctx, []domain.Role{domain.RoleAdmin}))
	assert.Equal(t, GuardRedirectHome, auth.Guard(ctx, []domain.Role{domain.RoleUser}))
}

func TestGuardOutcome_String(t *testing.T) {
	assert.Equal(t, "allow", GuardAllow.String())
	assert.Equal(t, "redirect_login", GuardRedirectLogin.String())
	assert.Equal(t, "redirect_home", GuardRedirectHome.String())
}
