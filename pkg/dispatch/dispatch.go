package dispatch

import (
	"time"

	"github.com/IlikeChooros/go-tictactoe/pkg/board"
	"github.com/IlikeChooros/go-tictactoe/pkg/normal"
	"github.com/IlikeChooros/go-tictactoe/pkg/ultimate"
	"github.com/rs/zerolog/log"
)

const (
	DefaultNormalDelay   = 200 * time.Millisecond
	DefaultUltimateDelay = 750 * time.Millisecond
)

// Minimum time between a dispatch and its result, per engine
type Pacing struct {
	Normal   time.Duration
	Ultimate time.Duration
}

func DefaultPacing() Pacing {
	return Pacing{
		Normal:   DefaultNormalDelay,
		Ultimate: DefaultUltimateDelay,
	}
}

// Engine's answer, Ok is false if there was no move to make
type Result[M any] struct {
	Move M
	Ok   bool
}

// Compute the move on the scheduler and deliver it through the returned channel,
// not sooner than 'minDelay' after the call. Slow computations are never delayed further.
// The channel receives exactly one result and is closed afterwards.
// 'b' is handed over to the computation, the caller must not touch it anymore.
func Dispatch[B any, M any](sched Scheduler, b B, minDelay time.Duration, compute func(B) (M, bool)) <-chan Result[M] {
	result := make(chan Result[M], 1)
	start := time.Now()

	sched.Schedule(0, func() {
		move, ok := compute(b)
		elapsed := time.Since(start)
		remaining := minDelay - elapsed

		log.Debug().
			Dur("elapsed", elapsed).
			Dur("remaining", max(remaining, 0)).
			Bool("ok", ok).
			Msg("dispatch-computed")

		sched.Schedule(remaining, func() {
			result <- Result[M]{Move: move, Ok: ok}
			close(result)
		})
	})

	return result
}

// Minimax move on a clone of 'b'
func NormalMove(sched Scheduler, b *normal.Board, pacing Pacing) <-chan Result[board.Coord] {
	return Dispatch(sched, b.Clone(), pacing.Normal, func(b *normal.Board) (board.Coord, bool) {
		return b.GenerateAIMove()
	})
}

// MCTS move on a clone of 'b'
func UltimateMove(sched Scheduler, b *ultimate.Board, iterations uint16, pacing Pacing) <-chan Result[ultimate.GlobalCoord] {
	return Dispatch(sched, b.Clone(), pacing.Ultimate, func(b *ultimate.Board) (ultimate.GlobalCoord, bool) {
		return b.GenerateAIMove(iterations)
	})
}
