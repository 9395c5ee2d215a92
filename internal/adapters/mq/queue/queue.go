// Package queue buffers outgoing notifications between the service and the
// delivery workers.
package queue

import (
	"context"
	"sync"

	"github.com/okian/talentdesk/internal/domain/model"
	"github.com/okian/talentdesk/pkg/metrics"
)

const defaultQueueCapacity = 1000

// Notification is the payload flowing through the queue.
type Notification = model.Notification

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds n to the queue. Returns false if the queue is full or closed.
	Enqueue(ctx context.Context, n Notification) bool

	// Dequeue returns a channel of queued notifications. It is closed once the
	// queue is closed and drained.
	Dequeue(ctx context.Context) <-chan Notification

	Len(ctx context.Context) int

	// Close stops accepting notifications. Pending ones can still be dequeued.
	Close() error

	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	items    chan Notification
	capacity int
	mu       sync.RWMutex
	closed   bool
}

// NewInMemoryQueue creates a bounded queue.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{capacity: defaultQueueCapacity}
	for _, opt := range opts {
		opt(q)
	}
	q.items = make(chan Notification, q.capacity)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)
	return q
}

// Enqueue adds n without blocking.
func (q *InMemoryQueue) Enqueue(ctx context.Context, n Notification) bool { //nolint:gocritic // passed by value for channel semantics
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordNotificationDropped("closed")
		metrics.RecordErrorByComponent("queue", "closed")
		return false
	}

	select {
	case <-ctx.Done():
		metrics.RecordNotificationDropped("context_cancelled")
		return false
	default:
	}

	select {
	case q.items <- n:
		metrics.RecordNotificationQueued(string(n.Kind))
		metrics.UpdateQueueSize(len(q.items))
		return true
	default:
		metrics.RecordNotificationDropped("queue_full")
		metrics.RecordErrorByComponent("queue", "queue_full")
		return false
	}
}

// Dequeue returns a channel that receives notifications as they arrive.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Notification {
	out := make(chan Notification)
	go func() {
		defer close(out)
		for n := range q.items {
			select {
			case out <- n:
				metrics.UpdateQueueSize(len(q.items))
			case <-ctx.Done():
				metrics.RecordNotificationDropped("context_cancelled")
				return
			}
		}
	}()
	return out
}

func (q *InMemoryQueue) Len(_ context.Context) int {
	size := len(q.items)
	metrics.UpdateQueueSize(size)
	return size
}

func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil
	}
	close(q.items)
	q.closed = true
	return nil
}

func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
