// Package future provides a single-resolution value used to wrap one-shot callbacks.
//
// A Future is created pending, then completed exactly once by either Resolve or
// Reject. Later completion attempts report false and leave the first outcome intact.
package future

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrCancelled is the outcome of a future cancelled before resolution.
var ErrCancelled = errors.New("future: cancelled")

// Future is a typed pending value.
type Future[T any] struct {
	ID    string
	once  sync.Once
	done  chan struct{}
	value T
	err   error
}

// New creates a pending future with a generated id.
func New[T any]() *Future[T] {
	return &Future[T]{ID: uuid.NewString(), done: make(chan struct{})}
}

// Resolve completes the future with value.
func (f *Future[T]) Resolve(value T) bool {
	return f.complete(value, nil)
}

// Reject completes the future with err.
func (f *Future[T]) Reject(err error) bool {
	var zero T
	return f.complete(zero, err)
}

// Cancel rejects the future with ErrCancelled.
func (f *Future[T]) Cancel() bool {
	return f.Reject(ErrCancelled)
}

func (f *Future[T]) complete(value T, err error) bool {
	completed := false
	f.once.Do(func() {
		f.value = value
		f.err = err
		completed = true
		close(f.done)
	})
	return completed
}

// Done returns a channel closed on completion.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until completion or ctx ends.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
