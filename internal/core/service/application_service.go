package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/eventtune/web/internal/core/domain"
	"github.com/eventtune/web/internal/core/ports"
)

// ApplicationService submits artist applications.
type ApplicationService struct {
	backend ports.BackendFactory
}

func NewApplicationService(backend ports.BackendFactory) *ApplicationService {
	return &ApplicationService{backend: backend}
}

// Submit validates the form and issues exactly one submission call.
func (s *ApplicationService) Submit(ctx context.Context, sess *Session, in domain.ApplicationInput) (*ports.ActionResult, error) {
	in.StageName = strings.TrimSpace(in.StageName)
	if in.StageName == "" {
		return nil, domain.NewFormError("Stage name is required")
	}
	if !domain.KnownGenre(in.Genre) {
		return nil, domain.NewFormError("Please select a genre")
	}
	if !in.CanSubmit() {
		return nil, domain.NewFormError(fmt.Sprintf("Bio must be at least %d characters", domain.MinBioLength))
	}
	return s.backend.For(sess).SubmitApplication(ctx, in)
}
