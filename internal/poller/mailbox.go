package poller

import "sync"

// Mailbox is a one-place slot between the poller and its reader. A publish
// never blocks and replaces any unread outcome.
type Mailbox struct {
	mu     sync.Mutex
	slot   Outcome
	full   bool
	notify chan struct{}
}

func NewMailbox() *Mailbox {
	return &Mailbox{notify: make(chan struct{}, 1)}
}

// Publish stores o and reports whether an unread outcome was discarded.
func (m *Mailbox) Publish(o Outcome) bool {
	m.mu.Lock()
	superseded := m.full
	m.slot = o
	m.full = true
	m.mu.Unlock()

	select {
	case m.notify <- struct{}{}:
	default:
	}
	return superseded
}

// TryTake returns the unread outcome, if any, and empties the slot.
func (m *Mailbox) TryTake() (Outcome, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.full {
		return Outcome{}, false
	}
	o := m.slot
	m.slot = Outcome{}
	m.full = false
	return o, true
}

// Notify receives a value after publishes. Wakeups coalesce, so a receive
// means "check TryTake", not "exactly one new outcome".
func (m *Mailbox) Notify() <-chan struct{} {
	return m.notify
}
