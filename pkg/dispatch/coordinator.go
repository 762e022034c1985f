package dispatch

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Keeps at most one engine computation in flight, polled once per UI frame.
// Reset forgets the pending computation, its result is never delivered.
type Coordinator[M any] struct {
	mu         sync.Mutex
	pending    <-chan Result[M]
	generation uint64
}

func NewCoordinator[M any]() *Coordinator[M] {
	return &Coordinator[M]{}
}

// Start a computation, ignored (false) while another one is in flight
func (c *Coordinator[M]) Request(start func() <-chan Result[M]) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending != nil {
		log.Debug().Uint64("generation", c.generation).Msg("dispatch-busy")
		return false
	}

	c.generation++
	c.pending = start()
	return true
}

// Non-blocking check for the result of the current computation
func (c *Coordinator[M]) Poll() (Result[M], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending == nil {
		return Result[M]{}, false
	}

	select {
	case result, ok := <-c.pending:
		c.pending = nil
		if !ok {
			return Result[M]{}, false
		}
		return result, true
	default:
		return Result[M]{}, false
	}
}

func (c *Coordinator[M]) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending != nil
}

// Number of the last accepted request
func (c *Coordinator[M]) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// Drop the computation in flight (if any), e.g. on a game restart
func (c *Coordinator[M]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending != nil {
		log.Warn().Uint64("generation", c.generation).Msg("dispatch-discard")
	}
	c.pending = nil
}
