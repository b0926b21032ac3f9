package pubsub

import "context"

// Listener wraps a broker subscription with a pull-style Next.
type Listener[T any] struct {
	ctx context.Context
	ch  <-chan Event[T]
}

// NewListener subscribes to broker for the lifetime of ctx.
func NewListener[T any](ctx context.Context, broker *Broker[T]) *Listener[T] {
	return &Listener[T]{
		ctx: ctx,
		ch:  broker.Subscribe(ctx),
	}
}

// Next blocks until the next event arrives.
// Returns false when the listener context ends or the broker closes.
func (l *Listener[T]) Next() (Event[T], bool) {
	select {
	case <-l.ctx.Done():
		return Event[T]{}, false
	case ev, ok := <-l.ch:
		return ev, ok
	}
}

// C exposes the raw subscription channel for select loops.
func (l *Listener[T]) C() <-chan Event[T] {
	return l.ch
}
