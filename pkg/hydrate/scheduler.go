package hydrate

import "time"

// Scheduler defers the final UI commit so hydration does not block the
// event loop. Implementations should be best-effort idle scheduling; the
// scheduled function is treated as an interruptible background update, not
// part of the bootstrap call.
type Scheduler interface {
	Schedule(fn func())
}

// timerScheduler is the fallback where real idle scheduling is unavailable:
// an immediate-as-possible timer that still yields to in-flight work first.
type timerScheduler struct {
	delay time.Duration
}

func (s timerScheduler) Schedule(fn func()) {
	time.AfterFunc(s.delay, fn)
}

// DefaultScheduler defers the commit to a zero-delay timer.
var DefaultScheduler Scheduler = timerScheduler{}

// SyncScheduler runs the commit inline. For tests and synchronous callers.
type SyncScheduler struct{}

// Schedule implements Scheduler.
func (SyncScheduler) Schedule(fn func()) { fn() }
