// Package queue provides Queue, a FIFO that bridges synchronous producers
// (input callbacks) and blocking consumers (application loops).
//
// Producers call [Queue.Enqueue], which never blocks. Consumers call
// [Queue.Dequeue], which returns the oldest buffered item or waits for the
// next one. Concurrent consumers are served first-come-first-served: the
// first caller to start waiting receives the first item produced after it
// started waiting. A queue is meant to feed a single logical consumer role;
// several goroutines may wait on it, but they share one ordered stream.
package queue

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by Dequeue once the queue has been closed and every
// buffered item has been consumed.
var ErrClosed = errors.New("queue: closed")

// waiter is a single pending Dequeue. The channel has capacity 1 so that
// delivery never blocks the producer.
type waiter[T any] struct {
	ch chan T
}

// Queue is a FIFO with a FIFO wait list. The zero value is not usable; call New.
//
// Invariant: buffered and waiters are never both non-empty. An item is never
// buffered while a consumer waits, and a consumer never waits while an item
// is buffered.
type Queue[T any] struct {
	mu       sync.Mutex
	buffered []T
	waiters  []*waiter[T]
	closed   bool
	done     chan struct{}
}

// New returns an empty queue.
func New[T any]() *Queue[T] {
	return &Queue[T]{done: make(chan struct{})}
}

// Enqueue adds an item. If a consumer is waiting, the oldest waiter receives
// the item directly and it is never buffered. Enqueue on a closed queue drops
// the item.
func (q *Queue[T]) Enqueue(item T) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	if len(q.waiters) > 0 {
		w := q.waiters[0]
		q.waiters[0] = nil
		q.waiters = q.waiters[1:]
		w.ch <- item
		return
	}
	q.buffered = append(q.buffered, item)
}

// Dequeue returns the oldest buffered item, or blocks until one is enqueued.
//
// If ctx ends first the waiter is withdrawn, leaving the order of the other
// waiters untouched, and ctx.Err() is returned. An item already handed to
// this waiter is returned rather than lost. Once the queue is closed and
// drained, Dequeue returns ErrClosed.
func (q *Queue[T]) Dequeue(ctx context.Context) (T, error) {
	q.mu.Lock()
	if item, ok := q.popLocked(); ok {
		q.mu.Unlock()
		return item, nil
	}
	if q.closed {
		q.mu.Unlock()
		var zero T
		return zero, ErrClosed
	}
	w := &waiter[T]{ch: make(chan T, 1)}
	q.waiters = append(q.waiters, w)
	q.mu.Unlock()

	select {
	case item := <-w.ch:
		return item, nil
	case <-q.done:
		return w.settle()
	case <-ctx.Done():
		q.mu.Lock()
		removed := q.removeWaiterLocked(w)
		q.mu.Unlock()
		if !removed {
			// resolved or closed concurrently with cancellation
			return w.settle()
		}
		var zero T
		return zero, ctx.Err()
	}
}

// settle is called once the waiter has left the wait list, either because an
// item was delivered or because the queue was closed. Delivery happens under
// the queue lock, so a delivered item is always visible here.
func (w *waiter[T]) settle() (T, error) {
	select {
	case item := <-w.ch:
		return item, nil
	default:
		var zero T
		return zero, ErrClosed
	}
}

// TryDequeue returns the oldest buffered item without blocking.
func (q *Queue[T]) TryDequeue() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.popLocked()
}

// Len reports the number of buffered items.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.buffered)
}

// Waiting reports the number of blocked Dequeue calls.
func (q *Queue[T]) Waiting() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.waiters)
}

// Close wakes every waiter with ErrClosed and causes further Enqueue calls
// to be dropped. Items already buffered can still be dequeued. Close is
// idempotent.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	q.waiters = nil
	close(q.done)
}

// Closed reports whether Close has been called.
func (q *Queue[T]) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

func (q *Queue[T]) popLocked() (T, bool) {
	if len(q.buffered) == 0 {
		var zero T
		return zero, false
	}
	item := q.buffered[0]
	var zero T
	q.buffered[0] = zero
	q.buffered = q.buffered[1:]
	if len(q.buffered) == 0 {
		q.buffered = nil
	}
	return item, true
}

func (q *Queue[T]) removeWaiterLocked(w *waiter[T]) bool {
	for i, other := range q.waiters {
		if other == w {
			copy(q.waiters[i:], q.waiters[i+1:])
			q.waiters[len(q.waiters)-1] = nil
			q.waiters = q.waiters[:len(q.waiters)-1]
			return true
		}
	}
	return false
}
