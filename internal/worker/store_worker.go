// Package worker serializes ledger store access behind a single goroutine so
// interactive callers never interleave store operations or block each other's
// threads on I/O.
package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// ErrStopped is returned by Do after the worker has been stopped.
var ErrStopped = errors.New("worker: store worker stopped")

type task struct {
	ctx   context.Context
	fn    func(ctx context.Context) (any, error)
	reply chan result
}

type result struct {
	value any
	err   error
}

// StoreWorker owns a single goroutine that runs submitted store operations
// one at a time, in submission order. An operation that has started always
// runs to completion; if its caller has gone away by then, the result is
// dropped.
type StoreWorker struct {
	tasks    chan task
	quit     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func NewStoreWorker() *StoreWorker {
	w := &StoreWorker{
		tasks: make(chan task),
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *StoreWorker) run() {
	defer close(w.done)
	for {
		select {
		case <-w.quit:
			return
		case t := <-w.tasks:
			// The store call outlives caller cancellation once started.
			value, err := t.fn(context.WithoutCancel(t.ctx))

			select {
			case t.reply <- result{value: value, err: err}:
			case <-t.ctx.Done():
				// caller is gone; drop the result
				slog.Debug("Dropping store result for departed caller", "error", t.ctx.Err())
			}
		}
	}
}

// Do submits fn and blocks until its result arrives or ctx ends. A context
// that is already done never submits; once submitted, fn may still run after
// cancellation and its result is discarded.
func (w *StoreWorker) Do(ctx context.Context, fn func(ctx context.Context) (any, error)) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t := task{
		ctx:   ctx,
		fn:    fn,
		reply: make(chan result),
	}

	select {
	case w.tasks <- t:
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-w.quit:
		return nil, ErrStopped
	}

	select {
	case res := <-t.reply:
		return res.value, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Stop shuts the worker down. An operation already running finishes first.
// Further Do calls fail with ErrStopped.
func (w *StoreWorker) Stop() {
	w.stopOnce.Do(func() { close(w.quit) })
	<-w.done
}

// Do runs fn on the worker and converts the untyped result back to T.
func Do[T any](ctx context.Context, w *StoreWorker, fn func(ctx context.Context) (T, error)) (T, error) {
	value, err := w.Do(ctx, func(ctx context.Context) (any, error) {
		return fn(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return value.(T), nil
}
