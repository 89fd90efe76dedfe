package ports

import (
	"context"

	"github.com/eventtune/web/internal/core/domain"
)

// LoginResult is the backend's answer to a successful login.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// RegisterInput carries a new account's details.
type RegisterInput struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

// AccountSummary is returned after registration.
type AccountSummary struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

// ActionResult is the acknowledgement body of mutating backend calls.
type ActionResult struct {
	Message       string `json:"message"`
	ApplicationID string `json:"application_id,omitempty"`
}

// AuthAPI covers the unauthenticated account endpoints.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Register(ctx context.Context, input RegisterInput) (*AccountSummary, error)
}

// ArtistAPI covers the artist application endpoints.
type ArtistAPI interface {
	SubmitApplication(ctx context.Context, input domain.ApplicationInput) (*ActionResult, error)
	MyApplications(ctx context.Context) ([]domain.Application, error)
}

// AdminAPI covers the application review endpoints.
type AdminAPI interface {
	Applications(ctx context.Context) ([]domain.Application, error)
	ApproveApplication(ctx context.Context, id string) (*ActionResult, error)
	RejectApplication(ctx context.Context, id string) (*ActionResult, error)
	Stats(ctx context.Context) (*domain.Stats, error)
}

// UserAPI covers the current account's profile.
type UserAPI interface {
	Profile(ctx context.Context) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*ActionResult, error)
}

// BackendAPI is the full REST surface bound to one session's credentials.
type BackendAPI interface {
	AuthAPI
	ArtistAPI
	AdminAPI
	UserAPI
}

// BackendFactory binds the shared transport to a session's credentials.
type BackendFactory interface {
	For(creds Credentials) BackendAPI
}
