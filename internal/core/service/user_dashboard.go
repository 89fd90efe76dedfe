package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/eventtune/web/internal/core/domain"
	"github.com/eventtune/web/internal/core/ports"
)

// ProfileTarget is the action target used while a profile update is in flight.
const ProfileTarget = "profile"

// UserData is what the user dashboard renders.
type UserData struct {
	Profile domain.Profile
}

// UserDashboard shows and edits the current user's profile.
type UserDashboard struct {
	*Dashboard[UserData]
	api ports.UserAPI
}

func NewUserDashboard(api ports.UserAPI, log zerolog.Logger) *UserDashboard {
	d := &UserDashboard{api: api}
	d.Dashboard = newDashboard("user", "Failed to fetch profile", d.load, log)
	return d
}

func (d *UserDashboard) load(ctx context.Context) (UserData, error) {
	p, err := d.api.Profile(ctx)
	if err != nil {
		return UserData{}, err
	}
	return UserData{Profile: *p}, nil
}

// UpdateProfile sends the edited fields and refetches the profile.
func (d *UserDashboard) UpdateProfile(ctx context.Context, upd domain.ProfileUpdate) error {
	return d.Mutate(ctx, ProfileTarget, func(ctx context.Context) error {
		_, err := d.api.UpdateProfile(ctx, upd)
		return err
	})
}
