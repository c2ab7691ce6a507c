package deferred

import (
	"context"
	"errors"
	"sync"
)

// ErrNilError is used when a Deferred is rejected with a nil error.
// Rejection always carries a non-nil error so consumers can rely on
// err != nil meaning "rejected".
var ErrNilError = errors.New("deferred: rejected with nil error")

// Deferred is a single-settlement pending value. It is the handle handed to
// consumers for results whose computation had not finished when the handle
// was created: a loader field still being fetched, a route module still
// loading, or a wire value decoded back from its deferred form.
//
// A Deferred settles exactly once, either resolved with a value or rejected
// with an error. Settlement is observable any number of times and from any
// goroutine.
type Deferred struct {
	done chan struct{}

	mu    sync.Mutex
	value any
	err   error
}

// New creates an unsettled Deferred along with its resolve and reject
// functions. Calls after the first settlement are no-ops.
func New() (d *Deferred, resolve func(any), reject func(error)) {
	d = &Deferred{done: make(chan struct{})}
	return d, d.resolve, d.reject
}

// Go runs fn on its own goroutine and returns a Deferred that settles with
// fn's result.
func Go(fn func() (any, error)) *Deferred {
	d := &Deferred{done: make(chan struct{})}
	go func() {
		v, err := fn()
		if err != nil {
			d.reject(err)
			return
		}
		d.resolve(v)
	}()
	return d
}

// Resolved returns a Deferred that is already resolved with v.
// The handle is still promise-shaped: consumers observe it through Await.
func Resolved(v any) *Deferred {
	d := &Deferred{done: make(chan struct{})}
	d.resolve(v)
	return d
}

// Rejected returns a Deferred that is already rejected with err.
func Rejected(err error) *Deferred {
	d := &Deferred{done: make(chan struct{})}
	d.reject(err)
	return d
}

func (d *Deferred) resolve(v any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	select {
	case <-d.done:
		return // already settled
	default:
	}
	d.value = v
	close(d.done)
}

func (d *Deferred) reject(err error) {
	if err == nil {
		err = ErrNilError
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	select {
	case <-d.done:
		return
	default:
	}
	d.err = err
	close(d.done)
}

// Await blocks until the Deferred settles or ctx is done. Cancellation does
// not consume or discard the settlement; a later Await still observes it.
func (d *Deferred) Await(ctx context.Context) (any, error) {
	select {
	case <-d.done:
		return d.result()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Done returns a channel closed when the Deferred settles.
func (d *Deferred) Done() <-chan struct{} {
	return d.done
}

// Settled reports whether the Deferred has settled.
func (d *Deferred) Settled() bool {
	select {
	case <-d.done:
		return true
	default:
		return false
	}
}

// Result returns the settlement without blocking. ok is false while the
// Deferred is still pending.
func (d *Deferred) Result() (v any, err error, ok bool) {
	select {
	case <-d.done:
		v, err = d.result()
		return v, err, true
	default:
		return nil, nil, false
	}
}

func (d *Deferred) result() (any, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.value, d.err
}
