// Package notify fans out theme change signals to registered observers.
package notify

import (
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/overtone-dev/overtone/internal/logging"
)

// Observer receives change signals. No payload is delivered; observers
// re-query the resolved values they care about.
type Observer interface {
	ThemeChanged()
}

// Subscription is the handle returned by Subscribe. An observer's owner
// cancels the handle when the observer goes away; delivery skips canceled
// handles, so a dangling observer is never invoked.
type Subscription struct {
	id       uint64
	observer Observer
	active   atomic.Bool
	b        *Broadcaster
}

// Cancel detaches the subscription. Safe to call more than once, and safe
// to call from inside a ThemeChanged handler.
func (s *Subscription) Cancel() {
	if s == nil || !s.active.CompareAndSwap(true, false) {
		return
	}
	s.b.drop(s)
}

// Active reports whether the subscription still receives signals.
func (s *Subscription) Active() bool {
	return s != nil && s.active.Load()
}

// Broadcaster maintains the observer registry and performs synchronous
// fan-out on the caller's goroutine. Delivery order is unspecified.
type Broadcaster struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[uint64]*Subscription
	byObs  map[Observer]*Subscription
	logger zerolog.Logger
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subs:   make(map[uint64]*Subscription),
		byObs:  make(map[Observer]*Subscription),
		logger: logging.Component("notify"),
	}
}

// Subscribe registers o and returns its handle. Subscribing the same
// observer again returns the existing handle; an observer is never
// delivered to twice per signal.
func (b *Broadcaster) Subscribe(o Observer) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	if existing, ok := b.byObs[o]; ok && existing.Active() {
		return existing
	}

	b.nextID++
	sub := &Subscription{id: b.nextID, observer: o, b: b}
	sub.active.Store(true)
	b.subs[sub.id] = sub
	b.byObs[o] = sub
	return sub
}

// Unsubscribe detaches o. Always safe, even if o was never subscribed or
// its handle was already canceled.
func (b *Broadcaster) Unsubscribe(o Observer) {
	b.mu.Lock()
	sub := b.byObs[o]
	b.mu.Unlock()
	sub.Cancel()
}

func (b *Broadcaster) drop(s *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs, s.id)
	if cur, ok := b.byObs[s.observer]; ok && cur == s {
		delete(b.byObs, s.observer)
	}
}

// Len returns the number of live subscriptions.
func (b *Broadcaster) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// NotifyAll delivers one change signal to every live observer. The registry
// is snapshotted first and handlers run outside the lock, so an observer
// may cancel itself or others mid-delivery without affecting the rest.
func (b *Broadcaster) NotifyAll() {
	b.mu.Lock()
	snapshot := make([]*Subscription, 0, len(b.subs))
	for _, sub := range b.subs {
		snapshot = append(snapshot, sub)
	}
	b.mu.Unlock()

	b.logger.Trace().Int("observers", len(snapshot)).Msg("broadcasting theme change")

	for _, sub := range snapshot {
		if !sub.Active() {
			continue
		}
		sub.observer.ThemeChanged()
	}
}
