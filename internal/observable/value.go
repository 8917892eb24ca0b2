// Package observable provides a single-writer, multi-reader snapshot holder.
// Subscribers get the latest snapshot on subscribe and every later one.
package observable

import "sync"

// Source is the read-only side of a Value.
type Source[T any] interface {
	// Get returns the latest snapshot and whether anything was published yet.
	Get() (T, bool)
	// Subscribe registers a new subscriber. Call Close on the subscription
	// when done with it.
	Subscribe() *Subscription[T]
}

// Value stores the last published snapshot and fans it out to subscribers.
// Snapshots are shared between readers and must be treated as immutable.
type Value[T any] struct {
	mu        sync.RWMutex
	val       T
	published bool
	version   uint64
	subs      map[*Subscription[T]]struct{}
}

// New creates a Value with nothing published.
func New[T any]() *Value[T] {
	return &Value[T]{subs: make(map[*Subscription[T]]struct{})}
}

// Get returns the latest snapshot.
func (v *Value[T]) Get() (T, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.val, v.published
}

// Version counts publishes. Zero means nothing was published.
func (v *Value[T]) Version() uint64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.version
}

// Publish replaces the snapshot and notifies every subscriber.
// Subscribers that have not consumed the previous snapshot only see the
// newest one; Publish never blocks on a slow reader.
func (v *Value[T]) Publish(val T) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.val = val
	v.published = true
	v.version++

	for sub := range v.subs {
		sub.offer(val)
	}
}

// Subscribe registers a subscriber. If a snapshot was already published it
// is immediately available on the subscription channel.
func (v *Value[T]) Subscribe() *Subscription[T] {
	sub := &Subscription[T]{c: make(chan T, 1), owner: v}

	v.mu.Lock()
	defer v.mu.Unlock()

	v.subs[sub] = struct{}{}
	if v.published {
		sub.c <- v.val
	}
	return sub
}

func (v *Value[T]) remove(sub *Subscription[T]) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, ok := v.subs[sub]; ok {
		delete(v.subs, sub)
		close(sub.c)
	}
}

// Subscription delivers snapshots of a Value.
type Subscription[T any] struct {
	c     chan T
	owner *Value[T]
	once  sync.Once
}

// C returns the delivery channel. It is closed by Close.
func (s *Subscription[T]) C() <-chan T {
	return s.c
}

// Close unregisters the subscription. Safe to call more than once.
func (s *Subscription[T]) Close() {
	s.once.Do(func() { s.owner.remove(s) })
}

// offer must be called with the owner's write lock held: the publisher is
// the only sender, so after draining there is room in the buffer.
func (s *Subscription[T]) offer(val T) {
	select {
	case s.c <- val:
	default:
		select {
		case <-s.c:
		default:
		}
		s.c <- val
	}
}
