// Package bus provides the unbounded FIFO that carries actions from any
// goroutine to the single UI consumer.
package bus

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by Recv once the queue is closed and drained.
var ErrClosed = errors.New("bus: closed")

// Queue is an unbounded many-producer, single-consumer FIFO. Send never
// blocks. Items from one producer are received in the order sent.
type Queue[T any] struct {
	mu     sync.Mutex
	items  []T
	closed bool
	notify chan struct{}
}

// New returns an empty, open queue.
func New[T any]() *Queue[T] {
	return &Queue[T]{notify: make(chan struct{}, 1)}
}

// Send appends item. It reports false, dropping the item, once the queue is
// closed.
func (q *Queue[T]) Send(item T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	q.items = append(q.items, item)
	select {
	case q.notify <- struct{}{}:
	default:
	}
	return true
}

// Recv blocks until an item is available, the queue is closed and empty, or
// ctx is done.
func (q *Queue[T]) Recv(ctx context.Context) (T, error) {
	for {
		if item, ok, closed := q.pop(); ok {
			return item, nil
		} else if closed {
			var zero T
			return zero, ErrClosed
		}
		select {
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		case <-q.notify:
		}
	}
}

// TryRecv returns the next item without blocking.
func (q *Queue[T]) TryRecv() (T, bool) {
	item, ok, _ := q.pop()
	return item, ok
}

// Len reports the number of pending items.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Close stops accepting new items. Pending items remain receivable.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	select {
	case q.notify <- struct{}{}:
	default:
	}
}

func (q *Queue[T]) pop() (item T, ok bool, closed bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return item, false, q.closed
	}
	item = q.items[0]
	var zero T
	q.items[0] = zero
	q.items = q.items[1:]
	if len(q.items) == 0 {
		q.items = nil
	}
	if len(q.items) > 0 {
		select {
		case q.notify <- struct{}{}:
		default:
		}
	}
	return item, true, q.closed
}
