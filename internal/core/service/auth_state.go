package service

import (
	"context"
	"time"

	"github.com/eventtune/web/internal/core/domain"
	"github.com/eventtune/web/internal/core/ports"
)

// AuthState derives authentication and role from a session's credential.
// Nothing is cached: every query re-reads and re-decodes the slot.
type AuthState struct {
	creds ports.Credentials
	now   func() time.Time
}

// NewAuthState returns an accessor over creds. A nil clock means time.Now.
func NewAuthState(creds ports.Credentials, now func() time.Time) *AuthState {
	if now == nil {
		now = time.Now
	}
	return &AuthState{creds: creds, now: now}
}

// Claims decodes the stored credential, if any.
func (a *AuthState) Claims(ctx context.Context) (domain.Claims, bool) {
	token, ok := a.creds.Token(ctx)
	if !ok {
		return domain.Claims{}, false
	}
	return DecodeToken(token)
}

// IsAuthenticated is true only for a decodable credential whose exp lies
// strictly in the future. exp equal to now counts as expired.
func (a *AuthState) IsAuthenticated(ctx context.Context) bool {
	claims, ok := a.Claims(ctx)
	if !ok {
		return false
	}
	return notExpired(claims, a.now())
}

// UserRole returns the role claim verbatim, or false when there is no
// readable credential. Expiry is not considered.
func (a *AuthState) UserRole(ctx context.Context) (domain.Role, bool) {
	claims, ok := a.Claims(ctx)
	if !ok {
		return domain.RoleUnknown, false
	}
	return claims.Role, true
}

// Guard evaluates the route guard for one request from a single read of the slot.
func (a *AuthState) Guard(ctx context.Context, allowed []domain.Role) GuardOutcome {
	claims, ok := a.Claims(ctx)
	authenticated := ok && notExpired(claims, a.now())
	return EvaluateGuard(authenticated, claims.Role, allowed)
}

func notExpired(c domain.Claims, now time.Time) bool {
	return c.ExpiresAt*1000 > float64(now.UnixMilli())
}
