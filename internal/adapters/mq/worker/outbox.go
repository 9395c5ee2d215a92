package worker

import (
	"context"
	"slices"
	"sync"
)

// Deliverer hands a notification to its destination.
type Deliverer interface {
	Deliver(ctx context.Context, n Notification) error
}

// Outbox records delivered notifications in memory. It is the only
// destination: nothing leaves the process.
type Outbox struct {
	mu    sync.RWMutex
	items []Notification
	limit int
}

// NewOutbox keeps at most limit notifications, dropping the oldest. limit <= 0 keeps all.
func NewOutbox(limit int) *Outbox {
	return &Outbox{limit: limit}
}

func (o *Outbox) Deliver(_ context.Context, n Notification) error { //nolint:gocritic // value semantics
	o.mu.Lock()
	defer o.mu.Unlock()
	o.items = append(o.items, n)
	if o.limit > 0 && len(o.items) > o.limit {
		o.items = slices.Delete(o.items, 0, len(o.items)-o.limit)
	}
	return nil
}

// List returns delivered notifications, newest first, optionally for one candidate.
func (o *Outbox) List(candidateID string) []Notification {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]Notification, 0, len(o.items))
	for i := len(o.items) - 1; i >= 0; i-- {
		if candidateID == "" || o.items[i].CandidateID == candidateID {
			out = append(out, o.items[i])
		}
	}
	return out
}

// Len returns the number of delivered notifications held.
func (o *Outbox) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.items)
}
