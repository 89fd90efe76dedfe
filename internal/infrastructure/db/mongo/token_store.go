package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eventtune/web/internal/core/ports"
)

const sessionCollection = "web_sessions"

// TokenStore keeps one document per session, keyed by the session id.
type TokenStore struct {
	coll  *mongo.Collection
	ttl   time.Duration
	now   func() time.Time
	owned bool
}

var _ ports.TokenStore = (*TokenStore)(nil)

// NewTokenStore uses the web_sessions collection of db. A zero ttl keeps
// documents until they are removed.
func NewTokenStore(db *mongo.Database, ttl time.Duration) *TokenStore {
	return &TokenStore{coll: db.Collection(sessionCollection), ttl: ttl, now: time.Now}
}

type sessionDoc struct {
	ID        string     `bson:"_id"`
	Token     string     `bson:"token"`
	UpdatedAt time.Time  `bson:"updated_at"`
	ExpiresAt *time.Time `bson:"expires_at,omitempty"`
}

// EnsureIndexes creates the TTL index that lets the server reap expired
// sessions. Get also ignores expired documents, since the reaper runs lazily.
func (s *TokenStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0).SetName("expires_at_ttl"),
	})
	if err != nil {
		return fmt.Errorf("create session ttl index: %w", err)
	}
	return nil
}

func (s *TokenStore) Get(ctx context.Context, sessionID string) (string, bool, error) {
	var doc sessionDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": sessionID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("find session: %w", err)
	}
	if doc.ExpiresAt != nil && !s.now().Before(*doc.ExpiresAt) {
		return "", false, nil
	}
	return doc.Token, true, nil
}

func (s *TokenStore) Set(ctx context.Context, sessionID, token string) error {
	now := s.now().UTC()
	doc := sessionDoc{ID: sessionID, Token: token, UpdatedAt: now}
	if s.ttl > 0 {
		exp := now.Add(s.ttl)
		doc.ExpiresAt = &exp
	}

	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": sessionID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

func (s *TokenStore) Remove(ctx context.Context, sessionID string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": sessionID}); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *TokenStore) Ping(ctx context.Context) error {
	return s.coll.Database().Client().Ping(ctx, nil)
}
