package wizard

import (
	"container/list"
	"sync"
	"time"

	"github.com/google/uuid"
)

const defaultMaxSessions = 10000

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithMaxSessions bounds the number of open sessions. Starting a session
// beyond the bound evicts the oldest one. maxSessions <= 0 disables the bound.
func WithMaxSessions(maxSessions int) RegistryOption {
	return func(r *Registry) {
		r.maxSessions = maxSessions
	}
}

// WithEvictHook is called with the id of every session evicted by the bound.
func WithEvictHook(fn func(id string)) RegistryOption {
	return func(r *Registry) {
		r.onEvict = fn
	}
}

// Registry holds open wizard sessions by id, oldest first.
type Registry struct {
	mu          sync.RWMutex
	sessions    map[string]*list.Element
	order       *list.List
	maxSessions int
	onEvict     func(id string)
}

func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		sessions:    make(map[string]*list.Element),
		order:       list.New(),
		maxSessions: defaultMaxSessions,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start opens a new session for jobID.
func (r *Registry) Start(jobID string, now time.Time) *Wizard {
	w := New(uuid.NewString(), jobID, now)

	var evicted []string
	r.mu.Lock()
	r.sessions[w.ID()] = r.order.PushBack(w)
	for r.maxSessions > 0 && r.order.Len() > r.maxSessions {
		oldest := r.order.Remove(r.order.Front()).(*Wizard)
		delete(r.sessions, oldest.ID())
		evicted = append(evicted, oldest.ID())
	}
	r.mu.Unlock()

	if r.onEvict != nil {
		for _, id := range evicted {
			r.onEvict(id)
		}
	}
	return w
}

// Get returns the session with id.
func (r *Registry) Get(id string) (*Wizard, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return e.Value.(*Wizard), nil
}

// Remove drops the session with id.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	if e, ok := r.sessions[id]; ok {
		r.order.Remove(e)
		delete(r.sessions, id)
	}
	r.mu.Unlock()
}

// Len returns the number of open sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
