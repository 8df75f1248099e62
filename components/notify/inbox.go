package notify

import "sync"

const defaultInboxLimit = 20

// Inbox queues notices until the next page render drains them.
type Inbox struct {
	mu    sync.RWMutex
	items []Notice
	limit int
}

// NewInbox creates an inbox that keeps at most limit notices, dropping the
// oldest first. A non-positive limit uses the default.
func NewInbox(limit int) *Inbox {
	if limit <= 0 {
		limit = defaultInboxLimit
	}
	return &Inbox{limit: limit}
}

// Push appends a notice. It has the subscriber signature expected by Bus.
func (i *Inbox) Push(n Notice) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.items = append(i.items, n)
	if over := len(i.items) - i.limit; over > 0 {
		i.items = append([]Notice(nil), i.items[over:]...)
	}
}

// Drain returns queued notices oldest first and empties the inbox.
func (i *Inbox) Drain() []Notice {
	i.mu.Lock()
	defer i.mu.Unlock()
	out := i.items
	i.items = nil
	return out
}

// Peek returns queued notices without consuming them.
func (i *Inbox) Peek() []Notice {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return append([]Notice(nil), i.items...)
}

func (i *Inbox) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.items)
}
