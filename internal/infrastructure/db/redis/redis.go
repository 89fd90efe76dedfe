// Package redis keeps session credential slots in Redis so that sessions
// survive restarts and can be shared by several frontend replicas.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config is the slot store's connection settings.
type Config struct {
	Addr     string
	Password string
	DB       int
	// Timeout bounds dialing and every command. Defaults to 5s.
	Timeout time.Duration
	// TTL is renewed on every write; zero keeps slots until logout.
	TTL time.Duration
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return 5 * time.Second
	}
	return c.Timeout
}

// Open dials Redis, checks it answers and returns a TokenStore that owns the
// client. Close releases it.
func Open(ctx context.Context, cfg Config) (*TokenStore, error) {
	t := cfg.timeout()
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  t,
		ReadTimeout:  t,
		WriteTimeout: t,
	})

	pingCtx, cancel := context.WithTimeout(ctx, t)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis %s: %w", cfg.Addr, err)
	}

	s := NewTokenStore(client, cfg.TTL)
	s.closer = client
	return s, nil
}

// Close releases the client opened by Open. Stores built with NewTokenStore
// do not own their client and Close is a no-op.
func (s *TokenStore) Close(context.Context) error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
