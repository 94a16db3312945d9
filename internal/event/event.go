// Package event holds typed listener registries. Registering a handler
// returns a Subscription that removes it again, so a page or window can be
// torn down without leaving stale callbacks behind.
package event

import "sync"

// Subscription detaches one registered handler.
type Subscription struct {
	once   sync.Once
	cancel func()
}

func newSubscription(cancel func()) *Subscription {
	return &Subscription{cancel: cancel}
}

// Unsubscribe removes the handler. Calling it more than once is a no-op.
func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}
	s.once.Do(s.cancel)
}

type entry[T any] struct {
	id uint64
	fn func(T)
}

// Registry fans a value out to every subscribed handler in registration order.
type Registry[T any] struct {
	mu       sync.Mutex
	next     uint64
	handlers []entry[T]
}

// Subscribe adds fn and returns the subscription that removes it.
// A nil fn is ignored and yields an inert subscription.
func (r *Registry[T]) Subscribe(fn func(T)) *Subscription {
	if fn == nil {
		return newSubscription(func() {})
	}
	r.mu.Lock()
	r.next++
	id := r.next
	r.handlers = append(r.handlers, entry[T]{id: id, fn: fn})
	r.mu.Unlock()

	return newSubscription(func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, e := range r.handlers {
			if e.id == id {
				r.handlers = append(r.handlers[:i:i], r.handlers[i+1:]...)
				return
			}
		}
	})
}

// Emit calls every handler with v. Handlers run outside the lock on a
// snapshot, so a handler may subscribe or unsubscribe without deadlocking.
func (r *Registry[T]) Emit(v T) {
	r.mu.Lock()
	snapshot := make([]entry[T], len(r.handlers))
	copy(snapshot, r.handlers)
	r.mu.Unlock()

	for _, e := range snapshot {
		e.fn(v)
	}
}

// Len reports how many handlers are subscribed.
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handlers)
}
