package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/eventtune/web/internal/core/ports"
)

// Session binds one browser session to its credential slot. It is the only
// path through which handlers, the auth state accessor and the backend client
// reach the stored credential.
type Session struct {
	id    string
	store ports.TokenStore
	log   zerolog.Logger
}

// NewSession returns the Session for sessionID backed by store.
func NewSession(id string, store ports.TokenStore, log zerolog.Logger) *Session {
	return &Session{id: id, store: store, log: log}
}

func (s *Session) ID() string { return s.id }

// Token returns the stored credential. Storage failures are logged and read
// as an empty slot so the session is simply treated as signed out.
func (s *Session) Token(ctx context.Context) (string, bool) {
	token, ok, err := s.store.Get(ctx, s.id)
	if err != nil {
		s.log.Warn().Err(err).Str("session", s.id).Msg("token slot read failed")
		return "", false
	}
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// SetToken overwrites the slot.
func (s *Session) SetToken(ctx context.Context, token string) error {
	return s.store.Set(ctx, s.id, token)
}

// RemoveToken clears the slot; clearing an empty slot succeeds.
func (s *Session) RemoveToken(ctx context.Context) error {
	return s.store.Remove(ctx, s.id)
}
