package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fitflow/fitflow-web/internal/core/domain"
	"github.com/fitflow/fitflow-web/internal/infrastructure/db/digest"
)

const sessionCollection = "web_sessions"

// SessionStore persists one credential per browser session. Documents are
// keyed by the digest of the session id; a TTL index on updated_at drops
// sessions that were not written for the retention period.
type SessionStore struct {
	coll      *mongo.Collection
	retention time.Duration
}

func NewSessionStore(db *mongo.Database, retention time.Duration) *SessionStore {
	return &SessionStore{coll: db.Collection(sessionCollection), retention: retention}
}

type mongoSession struct {
	ID         string    `bson:"_id"`
	Credential string    `bson:"credential"`
	UpdatedAt  time.Time `bson:"updated_at"`
}

func (s *SessionStore) Get(ctx context.Context, sessionID string) (domain.Credential, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoSession
	if err := s.coll.FindOne(ctx, bson.M{"_id": digest.SessionKey(sessionID)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", domain.ErrNoCredential
		}
		return "", fmt.Errorf("find session: %w", err)
	}
	if doc.Credential == "" {
		return "", domain.ErrNoCredential
	}
	return domain.Credential(doc.Credential), nil
}

// Set replaces the whole document in one write.
func (s *SessionStore) Set(ctx context.Context, sessionID string, cred domain.Credential) error {
	if cred.Empty() {
		return s.Clear(ctx, sessionID)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	key := digest.SessionKey(sessionID)
	doc := mongoSession{ID: key, Credential: string(cred), UpdatedAt: time.Now().UTC()}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (s *SessionStore) Clear(ctx context.Context, sessionID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": digest.SessionKey(sessionID)}); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SessionStore) Ping(ctx context.Context) error {
	return s.coll.Database().Client().Ping(ctx, nil)
}

// EnsureIndexes creates the retention TTL index on the sessions collection.
func (s *SessionStore) EnsureIndexes(ctx context.Context) error {
	if s.retention <= 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "updated_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(int32(s.retention.Seconds())),
	})
	return err
}
