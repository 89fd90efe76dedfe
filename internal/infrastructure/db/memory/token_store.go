// Package memory is the in-process TokenStore used in development and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/eventtune/web/internal/core/ports"
)

type entry struct {
	token     string
	expiresAt time.Time // zero means no expiry
}

// TokenStore keeps credential slots in a map. Slots are lost on restart.
type TokenStore struct {
	mu    sync.RWMutex
	slots map[string]entry
	ttl   time.Duration
	now   func() time.Time
}

var _ ports.TokenStore = (*TokenStore)(nil)

// NewTokenStore returns an empty store. A zero ttl keeps slots until removed.
func NewTokenStore(ttl time.Duration) *TokenStore {
	return &TokenStore{slots: make(map[string]entry), ttl: ttl, now: time.Now}
}

func (s *TokenStore) Get(_ context.Context, sessionID string) (string, bool, error) {
	s.mu.RLock()
	e, ok := s.slots[sessionID]
	s.mu.RUnlock()
	if !ok || s.expired(e) {
		return "", false, nil
	}
	return e.token, true, nil
}

func (s *TokenStore) Set(_ context.Context, sessionID, token string) error {
	e := entry{token: token}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}
	s.mu.Lock()
	s.slots[sessionID] = e
	s.mu.Unlock()
	return nil
}

func (s *TokenStore) Remove(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.slots, sessionID)
	s.mu.Unlock()
	return nil
}

func (s *TokenStore) Ping(context.Context) error { return nil }

// Purge drops expired slots and returns how many were removed.
func (s *TokenStore) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, e := range s.slots {
		if s.expired(e) {
			delete(s.slots, id)
			n++
		}
	}
	return n
}

func (s *TokenStore) expired(e entry) bool {
	return !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt)
}
