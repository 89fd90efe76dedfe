package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/eventtune/web/internal/core/ports"
)

// TokenStore keeps one credential per session under
// session:<session_id>:token. Every Set renews the key's TTL.
type TokenStore struct {
	client redis.Cmdable
	ttl    time.Duration
	closer interface{ Close() error }
}

var _ ports.TokenStore = (*TokenStore)(nil)

// NewTokenStore wraps client. A zero ttl stores keys without expiry.
func NewTokenStore(client redis.Cmdable, ttl time.Duration) *TokenStore {
	return &TokenStore{client: client, ttl: ttl}
}

func (s *TokenStore) Get(ctx context.Context, sessionID string) (string, bool, error) {
	v, err := s.client.Get(ctx, tokenKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get token: %w", err)
	}
	return v, true, nil
}

func (s *TokenStore) Set(ctx context.Context, sessionID, token string) error {
	if err := s.client.Set(ctx, tokenKey(sessionID), token, s.ttl).Err(); err != nil {
		return fmt.Errorf("set token: %w", err)
	}
	return nil
}

func (s *TokenStore) Remove(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, tokenKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}

func (s *TokenStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func tokenKey(sessionID string) string {
	return fmt.Sprintf("session:%s:token", sessionID)
}
