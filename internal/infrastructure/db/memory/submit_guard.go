package memory

import (
	"context"
	"sync"
	"time"
)

// SubmitGuard is an in-process lock table with per-key expiry.
type SubmitGuard struct {
	mu   sync.Mutex
	ttl  time.Duration
	held map[string]time.Time
	now  func() time.Time
}

func NewSubmitGuard(ttl time.Duration) *SubmitGuard {
	return &SubmitGuard{ttl: ttl, held: make(map[string]time.Time), now: time.Now}
}

func (g *SubmitGuard) Acquire(_ context.Context, key string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := g.now()
	if exp, ok := g.held[key]; ok && now.Before(exp) {
		return false, nil
	}
	g.held[key] = now.Add(g.ttl)
	return true, nil
}

func (g *SubmitGuard) Release(_ context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.held, key)
	return nil
}
