package service

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/fitflow/fitflow-web/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Scripted backend stub
// ---------------------------------------------------------------------------

type stubReply struct {
	body string
	err  error
}

type stubBackend struct {
	mu      sync.Mutex
	replies map[string]stubReply // "METHOD /path"
	calls   []ports.BackendRequest
	// block, when set, is waited on before every reply.
	block chan struct{}
}

func newStubBackend() *stubBackend {
	return &stubBackend{replies: make(map[string]stubReply)}
}

func (b *stubBackend) on(method, path, body string) *stubBackend {
	b.replies[method+" "+path] = stubReply{body: body}
	return b
}

func (b *stubBackend) fail(method, path string, err error) *stubBackend {
	b.replies[method+" "+path] = stubReply{err: err}
	return b
}

func (b *stubBackend) Do(ctx context.Context, _ string, req ports.BackendRequest) (json.RawMessage, error) {
	b.mu.Lock()
	b.calls = append(b.calls, req)
	reply, ok := b.replies[req.Method+" "+req.Path]
	block := b.block
	b.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if !ok {
		return json.RawMessage(`{}`), nil
	}
	if reply.err != nil {
		return nil, reply.err
	}
	return json.RawMessage(reply.body), nil
}

func (b *stubBackend) Ping(context.Context) error { return nil }

func (b *stubBackend) callCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.calls)
}

func (b *stubBackend) lastCall() ports.BackendRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.calls) == 0 {
		return ports.BackendRequest{}
	}
	return b.calls[len(b.calls)-1]
}

// bodyJSON re-encodes the body of the last call so tests can inspect wire field names.
func (b *stubBackend) bodyJSON() map[string]any {
	raw, _ := json.Marshal(b.lastCall().Body)
	out := map[string]any{}
	_ = json.Unmarshal(raw, &out)
	return out
}
