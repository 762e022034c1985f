//go:build js || wasip1

package dispatch

// Scheduler of the current platform
func DefaultScheduler() Scheduler {
	return deferredScheduler{}
}
