package normal

import (
	"math"
	"runtime"

	"github.com/IlikeChooros/go-tictactoe/pkg/board"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"
)

const (
	WinScore  int8 = 100
	LossScore int8 = -100
	DrawScore int8 = 0
)

// Each ply deeper is worth 90% of the one above it, so a quick win (or block)
// beats a slow one. Applied in float32 and truncated toward zero.
const decay float32 = 0.9

func decayed(score int8) int8 {
	return int8(decay * float32(score))
}

// Score of the position with 'toPlay' about to move, from the engine's point of view.
// Full-depth minimax without pruning, the root branches are evaluated in parallel.
func (b *Board) EvaluatePosition(toPlay board.Shape) int8 {
	outcome := b.Winner()
	if outcome.Decided() {
		return b.terminalScore(outcome)
	}

	scores := b.branchScores(b.EmptyCells(), toPlay)
	return b.pick(scores, toPlay)
}

func (b *Board) terminalScore(outcome board.Outcome) int8 {
	if outcome.WonBy(b.EngineShape) {
		return WinScore
	}
	if outcome.WonBy(b.EngineShape.Other()) {
		return LossScore
	}
	// draw, or multiple winners
	return DrawScore
}

// Sequential recursion below the root
func (b *Board) evaluate(toPlay board.Shape) int8 {
	outcome := b.Winner()
	if outcome.Decided() {
		return b.terminalScore(outcome)
	}

	cells := b.EmptyCells()
	scores := make([]int8, len(cells))
	for i, c := range cells {
		b.Cells.Set(c, toPlay)
		scores[i] = decayed(b.evaluate(toPlay.Other()))
		b.Cells.Set(c, board.Empty)
	}
	return b.pick(scores, toPlay)
}

// Max for the engine, min for the opponent
func (b *Board) pick(scores []int8, toPlay board.Shape) int8 {
	if len(scores) == 0 {
		panic("normal: evaluating an undecided position with no empty cells")
	}

	best := scores[0]
	for _, s := range scores[1:] {
		if toPlay == b.EngineShape {
			best = max(best, s)
		} else {
			best = min(best, s)
		}
	}
	return best
}

// Decayed score of every branch, 'toPlay' placed in each of the cells.
// Every branch works on its own copy of the board.
func (b *Board) branchScores(cells []board.Coord, toPlay board.Shape) []int8 {
	scores := make([]int8, len(cells))
	g := errgroup.Group{}
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, c := range cells {
		g.Go(func() error {
			branch := b.Clone()
			branch.Cells.Set(c, toPlay)
			scores[i] = decayed(branch.evaluate(toPlay.Other()))
			return nil
		})
	}

	_ = g.Wait()
	return scores
}

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(frand.Uint64n(math.MaxUint64)))
}

// Engine's move, false if the board is full
func (b *Board) GenerateAIMove() (board.Coord, bool) {
	return b.GenerateAIMoveRand(newRand())
}

// Same as GenerateAIMove, with the random source used for tie-breaks and corners
func (b *Board) GenerateAIMoveRand(r *rand.Rand) (board.Coord, bool) {
	cells := b.EmptyCells()
	if len(cells) == 0 {
		return board.Coord{}, false
	}

	if b.Cells.At(board.Center) == board.Empty {
		log.Debug().Str("move", board.Center.String()).Msg("normal-center")
		return board.Center, true
	}

	// Only the center is taken
	if len(cells) >= 8 {
		corners := make([]board.Coord, 0, len(board.Corners))
		for _, c := range board.Corners {
			if b.Cells.At(c) == board.Empty {
				corners = append(corners, c)
			}
		}
		move := corners[r.Intn(len(corners))]
		log.Debug().Str("move", move.String()).Msg("normal-corner")
		return move, true
	}

	// Engine plays each cell, the opponent answers
	scores := make([]int8, len(cells))
	g := errgroup.Group{}
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, c := range cells {
		g.Go(func() error {
			branch := b.Clone()
			branch.Cells.Set(c, b.EngineShape)
			scores[i] = branch.evaluate(b.EngineShape.Other())
			return nil
		})
	}
	_ = g.Wait()

	bestScore := scores[0]
	for _, s := range scores {
		bestScore = max(bestScore, s)
	}

	best := make([]board.Coord, 0, len(cells))
	for i, s := range scores {
		if s == bestScore {
			best = append(best, cells[i])
		}
	}

	move := best[r.Intn(len(best))]
	log.Debug().
		Str("move", move.String()).
		Int8("score", bestScore).
		Int("ties", len(best)).
		Msg("normal-minimax")
	return move, true
}
