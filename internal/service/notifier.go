package service

import "sync"

// Notifier broadcasts "the assignment set changed" to any number of
// subscribers. Services publish after every committed mutation; read-path
// caches (the derived index) subscribe and rebuild.
//
// Notifications carry no payload — subscribers re-read authoritative state —
// and are coalesced: a subscriber that has not drained its channel yet will
// see many publishes as one. Version exposes a monotonic counter for callers
// that prefer polling.
type Notifier struct {
	mu      sync.Mutex
	version uint64
	nextID  int
	subs    map[int]chan struct{}
}

// NewNotifier returns a Notifier with no subscribers.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]chan struct{})}
}

// Publish records a change and pokes every subscriber without blocking.
func (n *Notifier) Publish() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.version++
	for _, ch := range n.subs {
		select {
		case ch <- struct{}{}:
		default: // subscriber already has a pending notification
		}
	}
}

// Subscribe registers a new subscriber and returns its notification channel
// and a cancel function. The channel has a one-slot buffer; a pending
// notification means "something changed since you last looked".
func (n *Notifier) Subscribe() (<-chan struct{}, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	ch := make(chan struct{}, 1)
	n.subs[id] = ch

	cancel := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
	return ch, cancel
}

// Version returns the number of publishes so far.
func (n *Notifier) Version() uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.version
}
