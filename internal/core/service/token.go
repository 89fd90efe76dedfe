package service

import (
	"encoding/json"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"

	"github.com/eventtune/web/internal/core/domain"
)

// segmentParser is used only for its base64url codec. Signatures are never
// checked; decoded claims drive routing and display only.
var segmentParser = jwt.NewParser(jwt.WithPaddingAllowed())

// DecodeToken reads the claims of a compact dot-separated credential without
// verifying it. It reports false for anything it cannot read: fewer than two
// segments, a payload that is not base64url, or a payload that is not a UTF-8
// JSON object.
func DecodeToken(token string) (domain.Claims, bool) {
	parts := strings.Split(token, ".")
	if len(parts) < 2 {
		return domain.Claims{}, false
	}

	payload, err := segmentParser.DecodeSegment(parts[1])
	if err != nil || !utf8.Valid(payload) {
		return domain.Claims{}, false
	}

	var raw jwt.MapClaims
	if err := json.Unmarshal(payload, &raw); err != nil || raw == nil {
		return domain.Claims{}, false
	}

	return domain.Claims{
		Role:      roleClaim(raw["role"]),
		Email:     stringClaim(raw["email"]),
		ExpiresAt: numberClaim(raw["exp"]),
	}, true
}

// roleClaim keeps integer roles verbatim, in range or not.
func roleClaim(v any) domain.Role {
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) || math.IsInf(f, 0) {
		return domain.RoleUnknown
	}
	return domain.Role(int(f))
}

func stringClaim(v any) string {
	s, _ := v.(string)
	return s
}

func numberClaim(v any) float64 {
	f, _ := v.(float64)
	return f
}
