package view

import (
	"github.com/eventtune/web/internal/core/domain"
	"github.com/eventtune/web/internal/core/service"
)

// Page names understood by Renderer.
const (
	PageLanding   = "landing"
	PageLogin     = "login"
	PageRegister  = "register"
	PageApply     = "apply"
	PageApplyDone = "apply_done"
	PageAdmin     = "admin_dashboard"
	PageArtist    = "artist_dashboard"
	PageUser      = "user_dashboard"
	PageError     = "error"
)

type LoginPage struct {
	Email string
}

type RegisterPage struct {
	Email string
	Role  domain.Role
}

// ApplyPage backs the artist application form.
type ApplyPage struct {
	Authenticated bool
	Form          domain.ApplicationInput
}

func (p ApplyPage) Genres() []struct{ Value, Label string } { return domain.Genres }

func (p ApplyPage) MinBio() int { return domain.MinBioLength }

func (p ApplyPage) BioLength() int { return len([]rune(p.Form.Bio)) }

// CanSubmit drives the submit control's disabled state.
func (p ApplyPage) CanSubmit() bool { return p.Form.CanSubmit() }

type AdminPage struct {
	State service.DashboardState[service.AdminData]
}

type ArtistPage struct {
	State service.DashboardState[service.ArtistData]
}

// UserPage carries the profile view and, while editing, the form values.
type UserPage struct {
	State   service.DashboardState[service.UserData]
	Editing bool
	Form    domain.ProfileUpdate
}

type ErrorPage struct {
	Code    int
	Message string
}
