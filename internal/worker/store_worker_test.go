package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStoreWorkerSerializesOperations(t *testing.T) {
	w := NewStoreWorker()
	defer w.Stop()

	var (
		mu      sync.Mutex
		active  int
		overlap bool
		order   []int
	)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := w.Do(context.Background(), func(ctx context.Context) (any, error) {
				mu.Lock()
				active++
				if active > 1 {
					overlap = true
				}
				order = append(order, n)
				mu.Unlock()

				time.Sleep(2 * time.Millisecond)

				mu.Lock()
				active--
				mu.Unlock()
				return n, nil
			})
			if err != nil {
				t.Errorf("Do() error = %v", err)
			}
		}(i)
	}
	wg.Wait()

	if overlap {
		t.Fatal("store operations ran concurrently")
	}
	if len(order) != 8 {
		t.Fatalf("ran %d operations, want 8", len(order))
	}
}

func TestStoreWorkerReturnsResult(t *testing.T) {
	w := NewStoreWorker()
	defer w.Stop()

	got, err := Do(context.Background(), w, func(ctx context.Context) (int, error) {
		return 42, nil
	})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if got != 42 {
		t.Fatalf("Do() = %d, want 42", got)
	}

	wantErr := errors.New("store broke")
	_, err = Do(context.Background(), w, func(ctx context.Context) (int, error) {
		return 0, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("Do() error = %v, want %v", err, wantErr)
	}
}

func TestStoreWorkerDroppedCallerDoesNotCrash(t *testing.T) {
	w := NewStoreWorker()
	defer w.Stop()

	started := make(chan struct{})
	release := make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		_, err := w.Do(ctx, func(ctx context.Context) (any, error) {
			close(started)
			<-release
			return "late", nil
		})
		errc <- err
	}()

	<-started
	cancel()

	err := <-errc
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Do() error = %v, want context.Canceled", err)
	}

	// let the in-flight operation finish; its result is dropped silently
	close(release)

	// the worker must still accept new work
	got, err := Do(context.Background(), w, func(ctx context.Context) (string, error) {
		return "next", nil
	})
	if err != nil || got != "next" {
		t.Fatalf("Do() after dropped result = %q, %v", got, err)
	}
}

func TestStoreWorkerCancelledBeforeSubmit(t *testing.T) {
	w := NewStoreWorker()
	defer w.Stop()

	// Warm the worker so its goroutine is parked on the task channel; an idle
	// receiver must not make a cancelled submission racy.
	if _, err := w.Do(context.Background(), func(ctx context.Context) (any, error) {
		return nil, nil
	}); err != nil {
		t.Fatalf("warm-up Do() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran atomic.Int32
	for i := 0; i < 200; i++ {
		_, err := w.Do(ctx, func(ctx context.Context) (any, error) {
			ran.Add(1)
			return nil, nil
		})
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Do() error = %v, want context.Canceled", err)
		}
	}
	if n := ran.Load(); n != 0 {
		t.Fatalf("operation ran %d times despite cancelled context", n)
	}
}

func TestStoreWorkerStop(t *testing.T) {
	w := NewStoreWorker()
	w.Stop()
	w.Stop() // idempotent

	_, err := w.Do(context.Background(), func(ctx context.Context) (any, error) {
		return nil, nil
	})
	if !errors.Is(err, ErrStopped) {
		t.Fatalf("Do() after Stop error = %v, want ErrStopped", err)
	}
}
