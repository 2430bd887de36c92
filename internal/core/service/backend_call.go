package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fitflow/fitflow-web/internal/core/ports"
)

// call issues req and decodes a successful body into out (skipped when out is nil).
func call(ctx context.Context, backend ports.Backend, sessionID string, req ports.BackendRequest, out any) error {
	raw, err := backend.Do(ctx, sessionID, req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", req.Method, req.Path, err)
	}
	return nil
}

// messageResponse is the confirmation envelope most backend writes answer with.
type messageResponse struct {
	Message string `json:"message"`
	// Error is set by a few endpoints that report a refusal with status 200.
	Error string `json:"error"`
}
