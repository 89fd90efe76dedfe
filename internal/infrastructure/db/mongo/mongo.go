// Package mongo keeps session credential slots in a MongoDB collection.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Config is the slot store's connection settings.
type Config struct {
	URI      string
	Database string
	// Timeout bounds server selection and the startup ping. Defaults to 10s.
	Timeout time.Duration
	// TTL sets each document's expires_at; zero keeps documents until logout.
	TTL time.Duration
}

// Open connects, pings, ensures the TTL index on web_sessions and returns a
// TokenStore that owns the client. A failed index build is returned
// alongside a usable store, since Get still filters expired documents.
func Open(ctx context.Context, cfg Config) (*TokenStore, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().
		ApplyURI(cfg.URI).
		SetAppName("eventtune-web").
		SetServerSelectionTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	s := NewTokenStore(client.Database(cfg.Database), cfg.TTL)
	s.owned = true
	return s, s.EnsureIndexes(connectCtx)
}

// Close disconnects the client opened by Open.
func (s *TokenStore) Close(ctx context.Context) error {
	if !s.owned {
		return nil
	}
	return s.coll.Database().Client().Disconnect(ctx)
}
