package future

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestResolved_AwaitReturnsValue(t *testing.T) {
	f := Resolved(42)

	select {
	case <-f.Done():
	default:
		t.Fatal("expected Done to be closed on a resolved future")
	}

	got, err := f.Await(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}

func TestResolve_OnlyFirstWins(t *testing.T) {
	f := Resolved("first")

	if f.resolve("second") {
		t.Fatal("expected a second resolve to report false")
	}

	got, _ := f.Await(context.Background())
	if got != "first" {
		t.Fatalf("expected %q, got %q", "first", got)
	}
}

// TestAwait_ContextCancelled verifies Await returns ctx.Err() when the
// Future never resolves.
func TestAwait_ContextCancelled(t *testing.T) {
	f := newFuture[int]()
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() {
		_, err := f.Await(ctx)
		errCh <- err
	}()

	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Await did not return after context cancellation")
	}
}

// TestAwait_ResolvedBeatsCancelledContext verifies a resolved value is
// returned even when the caller's context is already done.
func TestAwait_ResolvedBeatsCancelledContext(t *testing.T) {
	f := Resolved("ok")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := f.Await(ctx)
	if err != nil || got != "ok" {
		t.Fatalf("expected (ok, nil), got (%q, %v)", got, err)
	}
}

func TestResolve_ConcurrentAwaiters(t *testing.T) {
	f := newFuture[int]()

	const awaiters = 20
	results := make(chan int, awaiters)

	var wg sync.WaitGroup
	for i := 0; i < awaiters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := f.Await(context.Background())
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			results <- v
		}()
	}

	var resolvers sync.WaitGroup
	wins := make(chan bool, 5)
	for i := 0; i < 5; i++ {
		resolvers.Add(1)
		go func(v int) {
			defer resolvers.Done()
			wins <- f.resolve(v)
		}(i)
	}
	resolvers.Wait()
	wg.Wait()
	close(results)
	close(wins)

	winners := 0
	for w := range wins {
		if w {
			winners++
		}
	}
	if winners != 1 {
		t.Fatalf("expected exactly one successful resolve, got %d", winners)
	}

	first := -1
	for v := range results {
		if first == -1 {
			first = v
			continue
		}
		if v != first {
			t.Fatalf("awaiters observed different values: %d and %d", first, v)
		}
	}
}
