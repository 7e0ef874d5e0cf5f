// Package notify keeps the transient notifications shown by the dashboard.
package notify

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/xavierca1/leadlocal/internal/entity"
)

const DefaultTTL = 5 * time.Second

var (
	ErrNotFound = errors.New("notification not found")
	ErrClosed   = errors.New("notification center closed")
)

// Center owns the notification list. Create it at start-up and Close it on
// shutdown; Close stops every pending expiry timer.
type Center struct {
	mu     sync.Mutex
	items  []entity.Notification
	timers map[string]*time.Timer
	ttl    time.Duration
	now    func() time.Time
	closed bool
}

func NewCenter(ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{
		timers: make(map[string]*time.Timer),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Add stores a new unread notification and schedules its expiry.
func (c *Center) Add(typ entity.NotificationType, message, link string) (entity.Notification, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return entity.Notification{}, ErrClosed
	}

	n := entity.Notification{
		ID:        uuid.New().String(),
		Type:      typ,
		Message:   message,
		Link:      link,
		CreatedAt: c.now(),
	}
	c.items = append([]entity.Notification{n}, c.items...)

	id := n.ID
	c.timers[id] = time.AfterFunc(c.ttl, func() { c.expire(id) })
	return n, nil
}

func (c *Center) Warn(message string) {
	_, _ = c.Add(entity.NotificationWarning, message, "")
}

func (c *Center) Error(message string) {
	_, _ = c.Add(entity.NotificationError, message, "")
}

// List returns a snapshot, newest first.
func (c *Center) List() []entity.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]entity.Notification(nil), c.items...)
}

func (c *Center) Dismiss(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.removeLocked(id) {
		return ErrNotFound
	}
	return nil
}

func (c *Center) MarkRead(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Read = true
			return nil
		}
	}
	return ErrNotFound
}

func (c *Center) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopTimersLocked()
	c.items = nil
}

// Close drops all notifications and refuses new ones.
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopTimersLocked()
	c.items = nil
	c.closed = true
}

func (c *Center) expire(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(id)
}

func (c *Center) removeLocked(id string) bool {
	if t, ok := c.timers[id]; ok {
		t.Stop()
		delete(c.timers, id)
	}
	for i, n := range c.items {
		if n.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Center) stopTimersLocked() {
	for id, t := range c.timers {
		t.Stop()
		delete(c.timers, id)
	}
}
