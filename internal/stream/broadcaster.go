// Package stream fans state snapshots out to connected observers. Delivery is
// best-effort and at-most-once per observer: an observer whose queue is full
// or gone is detached and the failure is logged, never surfaced to the
// mutating caller.
package stream

import (
	"log/slog"
	"sync"

	"pacectrl/internal/domain/choice"

	"github.com/google/uuid"
)

// Subscriber is one attached observer: a buffered delivery channel with no
// identity beyond registry membership. The uuid exists only for log lines.
type Subscriber struct {
	id uuid.UUID
	ch chan choice.Snapshot
}

// C is the subscriber's delivery channel. It is closed on detach.
func (s *Subscriber) C() <-chan choice.Snapshot {
	return s.ch
}

type Broadcaster struct {
	mu     sync.Mutex
	subs   map[*Subscriber]struct{}
	buffer int
}

func NewBroadcaster(buffer int) *Broadcaster {
	if buffer < 1 {
		buffer = 1
	}
	return &Broadcaster{
		subs:   make(map[*Subscriber]struct{}),
		buffer: buffer,
	}
}

// Attach registers a new subscriber whose first delivered message is the
// given snapshot.
func (b *Broadcaster) Attach(initial choice.Snapshot) *Subscriber {
	sub := &Subscriber{
		id: uuid.New(),
		ch: make(chan choice.Snapshot, b.buffer),
	}
	sub.ch <- initial

	b.mu.Lock()
	b.subs[sub] = struct{}{}
	total := len(b.subs)
	b.mu.Unlock()

	slog.Info("stream observer attached", "observer_id", sub.id, "observers", total)
	return sub
}

// Detach removes the subscriber and closes its channel. Idempotent.
func (b *Broadcaster) Detach(sub *Subscriber) {
	b.mu.Lock()
	b.detachLocked(sub, "client disconnected")
	b.mu.Unlock()
}

// Publish enqueues the snapshot to every subscriber without blocking. A
// subscriber whose queue is full is dropped; delivery to the others is
// unaffected. Per-subscriber ordering follows publish order.
func (b *Broadcaster) Publish(snapshot choice.Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Iterate a copy of the registry: a failed enqueue detaches mid-loop.
	subs := make([]*Subscriber, 0, len(b.subs))
	for sub := range b.subs {
		subs = append(subs, sub)
	}
	for _, sub := range subs {
		select {
		case sub.ch <- snapshot:
		default:
			b.detachLocked(sub, "queue overflow")
		}
	}
}

// Len reports the number of attached subscribers.
func (b *Broadcaster) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// detachLocked requires b.mu to be held; closing only under the lock keeps
// Publish from ever sending on a closed channel.
func (b *Broadcaster) detachLocked(sub *Subscriber, reason string) {
	if _, ok := b.subs[sub]; !ok {
		return
	}
	delete(b.subs, sub)
	close(sub.ch)
	slog.Info("stream observer detached", "observer_id", sub.id, "reason", reason, "observers", len(b.subs))
}
