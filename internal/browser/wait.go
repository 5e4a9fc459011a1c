// internal/browser/wait.go
package browser

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// DefaultPollInterval is used when no poll interval is configured.
const DefaultPollInterval = 500 * time.Millisecond

// WaitStatus classifies the outcome of a bounded wait.
type WaitStatus int

const (
	// StatusFound means the element appeared within the timeout.
	StatusFound WaitStatus = iota
	// StatusAbsent means the timeout elapsed without a match. This is an
	// expected outcome, not an error.
	StatusAbsent
	// StatusFaulted means the driver itself failed mid-wait.
	StatusFaulted
)

func (s WaitStatus) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusAbsent:
		return "absent"
	case StatusFaulted:
		return "faulted"
	default:
		return "unknown"
	}
}

// WaitOutcome is the result of a bounded wait. Element is set only when
// Status is StatusFound; Err only when Status is StatusFaulted.
type WaitOutcome struct {
	Status  WaitStatus
	Element Element
	Err     error
}

// Found reports whether the wait resolved an element.
func (o WaitOutcome) Found() bool { return o.Status == StatusFound }

// Waiter runs bounded polling waits against one driver.
type Waiter struct {
	drv    Driver
	poll   time.Duration
	logger *zap.Logger
}

// NewWaiter wires a waiter to a driver. A non-positive poll interval falls
// back to DefaultPollInterval.
func NewWaiter(drv Driver, poll time.Duration, logger *zap.Logger) *Waiter {
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	return &Waiter{drv: drv, poll: poll, logger: logger.Named("waiter")}
}

// Find polls the page until the locator matches an element or the timeout
// elapses. Existence and retrieval are one operation from the caller's
// perspective: the element returned was matched on the same poll that
// observed it, and a retrieval failure within a poll counts as absence for
// that poll only. Find never blocks longer than timeout plus one poll
// interval.
func (w *Waiter) Find(ctx context.Context, loc Locator, timeout time.Duration) WaitOutcome {
	deadline := time.Now().Add(timeout)
	for {
		el, err := w.drv.Query(ctx, loc)
		switch {
		case err == nil:
			return WaitOutcome{Status: StatusFound, Element: el}
		case errors.Is(err, ErrNoMatch):
			// Not there yet; keep polling until the deadline.
		default:
			w.logger.Error("Driver fault while resolving element.",
				zap.Stringer("locator", loc), zap.Error(err))
			return WaitOutcome{Status: StatusFaulted, Err: err}
		}
		if !w.sleep(ctx, deadline) {
			break
		}
	}
	w.logger.Warn("Element did not appear within timeout.",
		zap.Stringer("locator", loc), zap.Duration("timeout", timeout))
	return WaitOutcome{Status: StatusAbsent}
}

// AwaitPresence answers whether the element becomes present within the
// timeout. The driver's ambient implicit wait is suspended for the duration
// of the call so the two waiting mechanisms do not compound, and restored on
// every exit path. Driver faults are logged (inside Find) and reported as
// "not present": a presence check guards optional steps and must never abort
// the workflow.
func (w *Waiter) AwaitPresence(ctx context.Context, loc Locator, timeout time.Duration) bool {
	restore := suspendImplicitWait(w.drv)
	defer restore()

	return w.Find(ctx, loc, timeout).Found()
}

// sleep waits one poll interval, clamped to the deadline. It returns false
// once the deadline is reached or the context is done, which ends the wait.
func (w *Waiter) sleep(ctx context.Context, deadline time.Time) bool {
	remaining := time.Until(deadline)
	if remaining <= 0 {
		return false
	}
	interval := w.poll
	if remaining < interval {
		interval = remaining
	}
	timer := time.NewTimer(interval)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

// suspendImplicitWait zeroes the driver's ambient wait and returns the
// restore function. The save/restore pair is stack-scoped, so nested or
// repeated suspensions unwind correctly.
func suspendImplicitWait(drv Driver) func() {
	prev := drv.ImplicitWait()
	drv.SetImplicitWait(0)
	return func() { drv.SetImplicitWait(prev) }
}
