package service

import (
	"slices"

	"github.com/eventtune/web/internal/core/domain"
)

// GuardOutcome is the result of evaluating a protected route.
type GuardOutcome int

const (
	GuardAllow GuardOutcome = iota
	GuardRedirectLogin
	GuardRedirectHome
)

func (o GuardOutcome) String() string {
	switch o {
	case GuardAllow:
		return "allow"
	case GuardRedirectLogin:
		return "redirect_login"
	case GuardRedirectHome:
		return "redirect_home"
	default:
		return "unknown"
	}
}

// EvaluateGuard applies the checks in order: authentication first, then role
// membership. A nil allowed set means any authenticated role may pass; an
// empty non-nil set admits nobody.
func EvaluateGuard(authenticated bool, role domain.Role, allowed []domain.Role) GuardOutcome {
	if !authenticated {
		return GuardRedirectLogin
	}
	if allowed != nil && !slices.Contains(allowed, role) {
		return GuardRedirectHome
	}
	return GuardAllow
}
