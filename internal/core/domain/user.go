package domain

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Role is the permission tier carried in the credential's role claim.
type Role int

const (
	RoleAdmin  Role = 0
	RoleArtist Role = 1
	RoleUser   Role = 2

	// RoleUnknown stands in for a role claim that is missing or not an integer.
	RoleUnknown Role = -1
)

// String returns the display label for the role.
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleArtist:
		return "Artist"
	case RoleUser:
		return "User"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Known reports whether r is one of the closed enum values.
func (r Role) Known() bool {
	return r == RoleAdmin || r == RoleArtist || r == RoleUser
}

// DashboardPath returns the landing dashboard for the role. Unknown roles have
// no dashboard and land on the home page.
func (r Role) DashboardPath() string {
	switch r {
	case RoleAdmin:
		return "/admin/dashboard"
	case RoleArtist:
		return "/artist/dashboard"
	case RoleUser:
		return "/user/dashboard"
	default:
		return "/"
	}
}

// Claims is the decoded, unverified payload of a credential.
type Claims struct {
	Role  Role
	Email string
	// ExpiresAt is the exp claim in unix seconds. Fractional values are kept.
	ExpiresAt float64
}

// Profile is the backend's view of the current account.
type Profile struct {
	ID        string    `json:"_id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt Timestamp `json:"created_at"`
	Name      string    `json:"name,omitempty"`
	Location  string    `json:"location,omitempty"`
	Bio       string    `json:"bio,omitempty"`
}

// DisplayName falls back to a generic label when the profile has no name.
func (p Profile) DisplayName() string {
	if strings.TrimSpace(p.Name) == "" {
		return "Music Lover"
	}
	return p.Name
}

// ProfileUpdate enumerates the profile fields a user may edit.
type ProfileUpdate struct {
	Name     string `json:"name"     form:"name"     validate:"max=100"`
	Location string `json:"location" form:"location" validate:"max=100"`
	Bio      string `json:"bio"      form:"bio"      validate:"max=1000"`
}

// ParseProfileUpdate builds a ProfileUpdate from submitted values. Any key other
// than name, location and bio is rejected instead of being forwarded.
func ParseProfileUpdate(values url.Values) (ProfileUpdate, error) {
	var unknown []string
	var upd ProfileUpdate
	for key, vals := range values {
		v := ""
		if len(vals) > 0 {
			v = strings.TrimSpace(vals[0])
		}
		switch key {
		case "name":
			upd.Name = v
		case "location":
			upd.Location = v
		case "bio":
			upd.Bio = v
		default:
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return ProfileUpdate{}, fmt.Errorf("%w: %s", ErrUnknownProfileField, strings.Join(unknown, ", "))
	}
	return upd, nil
}
