package mcts

import (
	"context"
)

type StopReason int

const (
	StopNone      StopReason = 0
	StopInterrupt StopReason = 1 // Stopped by user, by calling .Stop() or context cancellation
	StopMovetime  StopReason = 2 // Time limit reached
	StopNodes     StopReason = 4 // Tree size limit reached
	StopCycles    StopReason = 8 // Cycle limit reached
	StopTerminal  StopReason = 16
)

func (sr StopReason) String() string {
	if sr == StopNone {
		return "None"
	}

	reasons := []struct {
		flag StopReason
		name string
	}{
		{StopInterrupt, "Interrupt"},
		{StopMovetime, "Movetime"},
		{StopNodes, "Nodes"},
		{StopCycles, "Cycles"},
		{StopTerminal, "Terminal"},
	}

	var result string
	for _, r := range reasons {
		if sr&r.flag == r.flag {
			if result != "" {
				result += "|"
			}
			result += r.name
		}
	}

	return result
}

type Limiter struct {
	limits *Limits
	clock  searchClock
	stop   bool
	reason StopReason
	ctx    context.Context
}

func NewLimiter() *Limiter {
	return &Limiter{
		limits: DefaultLimits(),
		ctx:    context.Background(),
	}
}

// Called on search setup
func (l *Limiter) Reset() {
	l.clock.restart(l.limits.Movetime)
	l.stop = false
	l.reason = StopNone
}

func (l *Limiter) SetContext(ctx context.Context) {
	l.ctx = ctx
}

func (l *Limiter) SetStop(v bool) {
	l.stop = v
}

func (l *Limiter) Stop() bool {
	select {
	case <-l.ctx.Done():
		l.stop = true
	default:
	}
	return l.stop
}

func (l *Limiter) SetLimits(limits *Limits) {
	l.limits = limits
}

func (l *Limiter) Limits() *Limits {
	return l.limits
}

// Elapsed time in ms since the last Reset
func (l *Limiter) Elapsed() uint32 {
	return uint32(l.clock.elapsedMs())
}

// Bit mask of the limits reached, see StopReason flags
func (l *Limiter) LimitMask(size, cycles uint32) StopReason {
	reason := StopNone
	if l.Stop() {
		reason |= StopInterrupt
	}

	// If infinite, only the stop signal counts
	if l.limits.Infinite {
		return reason
	}

	if l.clock.expired() {
		reason |= StopMovetime
	}
	if l.limits.Nodes <= size {
		reason |= StopNodes
	}
	if l.limits.Cycles <= cycles {
		reason |= StopCycles
	}
	return reason
}

// Whether the search should go on, called in the main search loop
func (l *Limiter) Ok(size, cycles uint32) bool {
	return l.LimitMask(size, cycles) == StopNone
}

// Store the reason the search ended, called once after the loop
func (l *Limiter) EvaluateStopReason(size, cycles uint32) {
	l.reason = l.LimitMask(size, cycles)
}

func (l *Limiter) SetStopReason(reason StopReason) {
	l.reason = reason
}

// Reason why the search was stopped, valid after search ends
func (l *Limiter) StopReason() StopReason {
	return l.reason
}
