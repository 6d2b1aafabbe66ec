package future

import (
	"context"
	"sync"
)

// Future is a value that is resolved exactly once. Any number of goroutines
// may Await it; all of them observe the same value.
type Future[T any] struct {
	once  sync.Once
	done  chan struct{}
	value T
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Resolved returns a Future that already holds v.
func Resolved[T any](v T) *Future[T] {
	f := newFuture[T]()
	f.resolve(v)
	return f
}

// resolve sets the value. It reports false when the Future was already
// resolved, in which case v is discarded.
func (f *Future[T]) resolve(v T) bool {
	resolved := false
	f.once.Do(func() {
		f.value = v
		close(f.done)
		resolved = true
	})
	return resolved
}

// Done is closed once the Future is resolved.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the Future resolves or ctx is done. The only error it
// returns is ctx.Err().
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	// Prefer an available value over a concurrently cancelled ctx.
	select {
	case <-f.done:
		return f.value, nil
	default:
	}

	select {
	case <-f.done:
		return f.value, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
