package service

import (
	"context"
	"sync"

	"github.com/fitflow/fitflow-web/internal/api/metrics"
	"github.com/fitflow/fitflow-web/internal/core/domain"
)

// Sequencer orders the reads of one view per browser session. Every Begin gets a
// higher sequence number than any before it and cancels the read it replaces, so
// only the most recently started read can deliver a result.
type Sequencer struct {
	mu      sync.Mutex
	next    uint64
	flights map[string]flight
}

type flight struct {
	seq    uint64
	cancel context.CancelFunc
}

func NewSequencer() *Sequencer {
	return &Sequencer{flights: make(map[string]flight)}
}

// Ticket identifies one sequenced read.
type Ticket struct {
	s    *Sequencer
	key  string
	view string
	seq  uint64
}

// Begin registers a new read of view for sessionID and returns the context the
// read must run under.
func (s *Sequencer) Begin(ctx context.Context, sessionID, view string) (context.Context, *Ticket) {
	key := sessionID + "|" + view
	readCtx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	s.next++
	seq := s.next
	if prev, ok := s.flights[key]; ok {
		prev.cancel()
	}
	s.flights[key] = flight{seq: seq, cancel: cancel}
	s.mu.Unlock()

	return readCtx, &Ticket{s: s, key: key, view: view, seq: seq}
}

func (t *Ticket) Seq() uint64 { return t.seq }

// Current reports whether no newer read of the same view has started.
func (t *Ticket) Current() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	f, ok := t.s.flights[t.key]
	return ok && f.seq == t.seq
}

// Finish closes the read. A superseded read yields domain.ErrSuperseded whatever
// it returned; otherwise err is passed through.
func (t *Ticket) Finish(err error) error {
	t.s.mu.Lock()
	f, ok := t.s.flights[t.key]
	latest := ok && f.seq == t.seq
	if latest {
		delete(t.s.flights, t.key)
	}
	t.s.mu.Unlock()

	if !latest {
		metrics.SupersededReadsTotal.WithLabelValues(t.view).Inc()
		return domain.ErrSuperseded
	}
	f.cancel()
	return err
}

// InFlight is the number of reads currently registered.
func (s *Sequencer) InFlight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.flights)
}
