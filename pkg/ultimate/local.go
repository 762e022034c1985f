package ultimate

import "github.com/IlikeChooros/go-tictactoe/pkg/board"

// One 3x3 grid of the global board. Once the grid is decided the outcome is cached
// and never recomputed, so marks placed afterwards don't change who claimed it.
type LocalBoard struct {
	Cells   board.Grid
	outcome board.Outcome
	cached  bool
}

// Outcome of this local board, computed lazily and written once
func (lb *LocalBoard) Winner() board.Outcome {
	if lb.cached {
		return lb.outcome
	}

	outcome := board.Evaluate(&lb.Cells)
	if outcome.Decided() {
		lb.outcome = outcome
		lb.cached = true
	}
	return outcome
}

// Shape claiming this board on the global grid, Empty if nobody won it
func (lb *LocalBoard) EffectiveShape() board.Shape {
	if outcome := lb.Winner(); outcome.Kind == board.Winner {
		return outcome.Shape
	}
	return board.Empty
}

// Full or won, the opponent can't be sent here
func (lb *LocalBoard) Finished() bool {
	return lb.Cells.Full() || lb.Winner().Kind == board.Winner
}

func (lb *LocalBoard) place(c board.Coord, s board.Shape) {
	lb.Cells.Set(c, s)
	// refresh the cache right away, the first line completed is the one that counts
	lb.Winner()
}
