// internal/ui/stream.go
package ui

import (
	"iter"
	"sync"

	"arena/internal/debate"
)

// puller drains an event sequence one event at a time. next and stop are
// serialized: iter.Pull2 forbids calling them concurrently.
type puller struct {
	mu      sync.Mutex
	next    func() (debate.Event, error, bool)
	stop    func()
	stopped bool
}

func newPuller(seq iter.Seq2[debate.Event, error]) *puller {
	next, stop := iter.Pull2(seq)
	return &puller{next: next, stop: stop}
}

// Next returns the next event. ok is false once the sequence is exhausted
// or stopped.
func (p *puller) Next() (debate.Event, error, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return nil, nil, false
	}
	ev, err, ok := p.next()
	if !ok {
		p.stopped = true
	}
	return ev, err, ok
}

// Stop ends the sequence, waiting for an in-flight Next to return
func (p *puller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopped = true
	p.stop()
}
