package ports

import (
	"context"
	"encoding/json"
)

// BackendRequest describes one call to the FitFlow backend.
type BackendRequest struct {
	Method string
	Path   string
	Query  map[string]string
	Body   any
	// Authenticated attaches the session's stored credential as a bearer token.
	Authenticated bool
}

// Backend is the API client every service talks through. Failed calls return a
// *domain.APIError; the client never touches the session store beyond reading it.
type Backend interface {
	Do(ctx context.Context, sessionID string, req BackendRequest) (json.RawMessage, error)
	Ping(ctx context.Context) error
}
