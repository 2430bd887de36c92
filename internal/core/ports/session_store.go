package ports

import (
	"context"

	"github.com/fitflow/fitflow-web/internal/core/domain"
)

// SessionStore holds at most one credential per browser session.
type SessionStore interface {
	// Get returns domain.ErrNoCredential when nothing is stored for sessionID.
	Get(ctx context.Context, sessionID string) (domain.Credential, error)
	// Set replaces whatever was stored for sessionID.
	Set(ctx context.Context, sessionID string, cred domain.Credential) error
	// Clear is a no-op when nothing is stored.
	Clear(ctx context.Context, sessionID string) error
	Ping(ctx context.Context) error
}
