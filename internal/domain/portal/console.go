package portal

import (
	"sync"
	"time"
)

// DefaultSaveNotice is how long the saved toast stays visible.
const DefaultSaveNotice = 3 * time.Second

// Console is the portal setup editor. Saving only marks the settings as saved
// for the notice window.
type Console struct {
	mu         sync.RWMutex
	settings   Settings
	notice     time.Duration
	savedUntil time.Time
	dirty      bool
}

// Option configures a Console.
type Option func(*Console)

// WithSaveNotice overrides the saved toast duration.
func WithSaveNotice(d time.Duration) Option {
	return func(c *Console) {
		if d > 0 {
			c.notice = d
		}
	}
}

func NewConsole(opts ...Option) *Console {
	c := &Console{settings: Defaults(), notice: DefaultSaveNotice}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Settings returns the current settings.
func (c *Console) Settings() Settings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings
}

// Apply changes one setting.
func (c *Console) Apply(section, key string, value any) (Settings, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next, err := c.settings.Apply(section, key, value)
	if err != nil {
		return c.settings, err
	}
	c.settings = next
	c.dirty = true
	return next, nil
}

// Save marks the settings saved and returns when the notice expires.
func (c *Console) Save(now time.Time) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.savedUntil = now.Add(c.notice)
	c.dirty = false
	return c.savedUntil
}

// SavedAt reports whether the saved notice is visible at now.
func (c *Console) SavedAt(now time.Time) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return now.Before(c.savedUntil)
}

// Dirty reports whether settings changed since the last save.
func (c *Console) Dirty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dirty
}
