package ports

import "context"

// TokenStore persists one credential slot per browser session.
// Implementations perform no validation on the stored value.
type TokenStore interface {
	// Get returns the stored credential and whether one is present.
	Get(ctx context.Context, sessionID string) (string, bool, error)
	// Set overwrites the slot unconditionally.
	Set(ctx context.Context, sessionID, token string) error
	// Remove clears the slot. Removing an empty slot is not an error.
	Remove(ctx context.Context, sessionID string) error
	// Ping reports whether the backing storage is reachable.
	Ping(ctx context.Context) error
}

// Credentials is the read side of a session's credential slot, as seen by the
// outgoing request interceptor.
type Credentials interface {
	Token(ctx context.Context) (string, bool)
}
