// Package memory holds process-local implementations of the session store and
// submit guard, used in development and tests.
package memory

import (
	"context"
	"sync"

	"github.com/fitflow/fitflow-web/internal/core/domain"
	"github.com/fitflow/fitflow-web/internal/infrastructure/db/digest"
)

// SessionStore keeps credentials in a map. Contents are lost on restart.
type SessionStore struct {
	mu    sync.RWMutex
	creds map[string]domain.Credential
}

func NewSessionStore() *SessionStore {
	return &SessionStore{creds: make(map[string]domain.Credential)}
}

func (s *SessionStore) Get(_ context.Context, sessionID string) (domain.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cred, ok := s.creds[digest.SessionKey(sessionID)]
	if !ok || cred.Empty() {
		return "", domain.ErrNoCredential
	}
	return cred, nil
}

func (s *SessionStore) Set(_ context.Context, sessionID string, cred domain.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cred.Empty() {
		delete(s.creds, digest.SessionKey(sessionID))
		return nil
	}
	s.creds[digest.SessionKey(sessionID)] = cred
	return nil
}

func (s *SessionStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.creds, digest.SessionKey(sessionID))
	return nil
}

func (s *SessionStore) Ping(context.Context) error {
	return nil
}

// Len reports how many sessions hold a credential.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.creds)
}
