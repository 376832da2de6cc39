package wp

import "sync"

type Subscriber[T any] func(value T)

// Observable holds a value and notifies its subscribers, in subscription order,
// whenever a different value is published.
type Observable[T comparable] struct {
	publishing sync.Mutex

	mu          sync.Mutex
	value       T
	next        uint64
	subscribers []subscription[T]
}

type subscription[T any] struct {
	id uint64
	fn Subscriber[T]
}

func NewObservable[T comparable](initial T) *Observable[T] {
	return &Observable[T]{value: initial}
}

func (o *Observable[T]) Value() T {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.value
}

// Subscribe registers fn and returns the handle that removes it again. Calling
// the handle more than once is harmless.
func (o *Observable[T]) Subscribe(fn Subscriber[T]) (unsubscribe func()) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.next++
	id := o.next
	o.subscribers = append(o.subscribers, subscription[T]{id: id, fn: fn})

	return func() {
		o.unsubscribe(id)
	}
}

func (o *Observable[T]) unsubscribe(id uint64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	for i, s := range o.subscribers {
		if s.id == id {
			// copy so a publish iterating an older slice is unaffected
			remaining := make([]subscription[T], 0, len(o.subscribers)-1)
			remaining = append(remaining, o.subscribers[:i]...)
			o.subscribers = append(remaining, o.subscribers[i+1:]...)
			return
		}
	}
}

// Publish stores value and synchronously invokes every subscriber. Publishing
// the current value is a no-op. It reports whether subscribers were notified.
// Subscribers must not publish to the same observable.
func (o *Observable[T]) Publish(value T) bool {
	o.publishing.Lock()
	defer o.publishing.Unlock()

	o.mu.Lock()
	if o.value == value {
		o.mu.Unlock()
		return false
	}
	o.value = value
	subscribers := o.subscribers
	o.mu.Unlock()

	for _, s := range subscribers {
		s.fn(value)
	}

	return true
}
