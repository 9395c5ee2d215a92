// Package dedupe remembers submission keys so a repeated submit is applied once.
package dedupe

import (
	"context"
	"sync"
	"sync/atomic"
)

const defaultMaxSize = 10000

// Deduper records seen keys.
type Deduper interface {
	// SeenAndRecord reports whether key was already recorded, recording it if not.
	SeenAndRecord(ctx context.Context, key string) bool

	// Unrecord forgets key so a failed submission can be retried.
	Unrecord(ctx context.Context, key string)

	Size() int64
}

// node is one entry of the insertion-ordered list.
type node struct {
	key        string
	prev, next *node
}

// inMemoryDeduper keeps keys in insertion order and evicts the oldest once
// maxSize is reached. maxSize <= 0 means unbounded.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]*node
	oldest  *node
	newest  *node
	maxSize int
	size    atomic.Int64
}

// NewInMemoryDeduper creates a deduper.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{maxSize: defaultMaxSize}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]*node)
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[key]; ok {
		return true
	}
	if d.maxSize > 0 && len(d.seen) >= d.maxSize {
		d.unlink(d.oldest)
	}

	n := &node{key: key, prev: d.newest}
	if d.newest != nil {
		d.newest.next = n
	}
	d.newest = n
	if d.oldest == nil {
		d.oldest = n
	}
	d.seen[key] = n
	d.size.Add(1)
	return false
}

func (d *inMemoryDeduper) Unrecord(_ context.Context, key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if n, ok := d.seen[key]; ok {
		d.unlink(n)
	}
}

// unlink removes n. Must be called with d.mu held.
func (d *inMemoryDeduper) unlink(n *node) {
	if n == nil {
		return
	}
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		d.oldest = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		d.newest = n.prev
	}
	delete(d.seen, n.key)
	d.size.Add(-1)
}

func (d *inMemoryDeduper) Size() int64 {
	return d.size.Load()
}
