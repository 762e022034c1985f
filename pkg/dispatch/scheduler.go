package dispatch

import "time"

// Runs jobs off the caller's thread of control
type Scheduler interface {
	// Run 'job' once 'delay' has elapsed, without blocking the caller.
	// A non-positive delay runs it as soon as possible.
	Schedule(delay time.Duration, job func())
}

// Native backend, every job gets its own goroutine, sleeping out the delay
type goroutineScheduler struct{}

func (goroutineScheduler) Schedule(delay time.Duration, job func()) {
	go func() {
		if delay > 0 {
			time.Sleep(delay)
		}
		job()
	}()
}

// Backend for single-threaded hosts (js, wasip1), jobs are timer callbacks
// run by the host's event loop
type deferredScheduler struct{}

func (deferredScheduler) Schedule(delay time.Duration, job func()) {
	time.AfterFunc(max(delay, 0), job)
}

func NewGoroutineScheduler() Scheduler {
	return goroutineScheduler{}
}

func NewDeferredScheduler() Scheduler {
	return deferredScheduler{}
}
