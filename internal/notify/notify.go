package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/landahan-pos/console/internal/enum"
)

const (
	// Errors and warnings linger longer so the user can read them.
	shortTTL = 4 * time.Second
	longTTL  = 6 * time.Second

	// Cap on retained toasts; overlapping notifications simply stack.
	maxRetained = 50
)

// Notification is a transient toast shown in the console.
type Notification struct {
	ID        uuid.UUID `json:"id"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Sink receives every notification as it is shown. Satisfied by the
// websocket bridge; nil sinks are allowed for tests.
type Sink interface {
	Publish(n Notification)
}

// Center collects notifications for one console session.
type Center struct {
	mu    sync.Mutex
	items []Notification
	sink  Sink
	now   func() time.Time
}

func NewCenter(sink Sink) *Center {
	return &Center{sink: sink, now: time.Now}
}

// Show records a notification and pushes it to the sink. Unknown kinds are
// coerced to info, matching the icon fallback of the old console.
func (c *Center) Show(message, kind string) Notification {
	switch kind {
	case enum.NotifyInfo, enum.NotifySuccess, enum.NotifyError, enum.NotifyWarning:
	default:
		kind = enum.NotifyInfo
	}

	ttl := shortTTL
	if kind == enum.NotifyError || kind == enum.NotifyWarning {
		ttl = longTTL
	}

	now := c.now()
	n := Notification{
		ID:        uuid.New(),
		Kind:      kind,
		Message:   message,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	c.mu.Lock()
	c.items = append(c.items, n)
	if len(c.items) > maxRetained {
		c.items = c.items[len(c.items)-maxRetained:]
	}
	c.mu.Unlock()

	if c.sink != nil {
		c.sink.Publish(n)
	}
	return n
}

func (c *Center) Info(message string) Notification    { return c.Show(message, enum.NotifyInfo) }
func (c *Center) Success(message string) Notification { return c.Show(message, enum.NotifySuccess) }
func (c *Center) Error(message string) Notification   { return c.Show(message, enum.NotifyError) }
func (c *Center) Warning(message string) Notification { return c.Show(message, enum.NotifyWarning) }

// Active returns the notifications that have not auto-dismissed yet, oldest
// first, and drops the expired ones.
func (c *Center) Active() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	live := c.items[:0]
	for _, n := range c.items {
		if n.ExpiresAt.After(now) {
			live = append(live, n)
		}
	}
	c.items = live

	out := make([]Notification, len(live))
	copy(out, live)
	return out
}
