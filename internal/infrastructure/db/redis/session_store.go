package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fitflow/fitflow-web/internal/core/domain"
	"github.com/fitflow/fitflow-web/internal/infrastructure/db/digest"
)

// SessionStore keeps one credential per browser session under
// session:<blake2b(session id)>. The TTL is storage retention only and is
// refreshed on every Set; credential expiry is the backend's business.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore wraps client. A zero ttl keeps keys until cleared.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Get(ctx context.Context, sessionID string) (domain.Credential, error) {
	v, err := s.client.Get(ctx, s.key(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrNoCredential
		}
		return "", fmt.Errorf("session get: %w", err)
	}
	if v == "" {
		return "", domain.ErrNoCredential
	}
	return domain.Credential(v), nil
}

// Set overwrites the stored credential with a single SET, so readers never see a partial value.
func (s *SessionStore) Set(ctx context.Context, sessionID string, cred domain.Credential) error {
	if cred.Empty() {
		return s.Clear(ctx, sessionID)
	}
	if err := s.client.Set(ctx, s.key(sessionID), string(cred), s.ttl).Err(); err != nil {
		return fmt.Errorf("session set: %w", err)
	}
	return nil
}

func (s *SessionStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("session clear: %w", err)
	}
	return nil
}

func (s *SessionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *SessionStore) key(sessionID string) string {
	return "session:" + digest.SessionKey(sessionID)
}
