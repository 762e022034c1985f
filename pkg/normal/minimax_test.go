package normal

import (
	"testing"

	"github.com/IlikeChooros/go-tictactoe/pkg/board"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// Engine plays O in every fixture
func mustBoard(t *testing.T, notation string) *Board {
	t.Helper()
	b, err := ParseBoard(notation, board.O)
	require.NoError(t, err)
	return b
}

func TestWinner(t *testing.T) {
	tests := []struct {
		notation string
		want     board.Outcome
	}{
		{".../.../...", board.Outcome{Kind: board.NoWinnerYet}},
		{"x../.o./...", board.Outcome{Kind: board.NoWinnerYet}},
		{"xox/.xo/.ox", board.Outcome{Kind: board.Winner, Shape: board.X, Line: board.Line{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}}}},
		{"oxo/xox/oxx", board.Outcome{Kind: board.Winner, Shape: board.O, Line: board.Line{{X: 0, Y: 2}, {X: 1, Y: 1}, {X: 2, Y: 0}}}},
		{"oxo/oox/xxx", board.Outcome{Kind: board.Winner, Shape: board.X, Line: board.Line{{X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2}}}},
		{"xoo/oxx/xxo", board.Outcome{Kind: board.BoardFullNoWinner}},
		{"xxx/ooo/...", board.Outcome{Kind: board.MultipleWinners}},
	}

	for _, tt := range tests {
		t.Run(tt.notation, func(t *testing.T) {
			b := mustBoard(t, tt.notation)
			require.Equal(t, tt.want, b.Winner())
			// not cached, same answer again
			require.Equal(t, tt.want, b.Winner())
		})
	}
}

func TestPlace(t *testing.T) {
	b := NewBoard(board.O)
	require.NoError(t, b.Place(board.Coord{X: 2, Y: 0}, board.X))
	require.Equal(t, "..x/.../...", b.String())

	require.ErrorIs(t, b.Place(board.Coord{X: 2, Y: 0}, board.O), ErrCellOccupied)
	require.ErrorIs(t, b.Place(board.Coord{X: 3, Y: 0}, board.O), ErrOutOfBounds)
	require.ErrorIs(t, b.Place(board.Coord{X: 0, Y: -1}, board.O), ErrOutOfBounds)
	require.Equal(t, "..x/.../...", b.String())
}

func TestEvaluatePosition(t *testing.T) {
	tests := []struct {
		name     string
		notation string
		toPlay   board.Shape
		want     int8
	}{
		{"opponent won, x to play", "xo./.xo/o.x", board.X, -100},
		{"opponent won, o to play", "xo./.xo/o.x", board.O, -100},
		{"engine won, x to play", "ox./.ox/x.o", board.X, 100},
		{"engine won, o to play", "ox./.ox/x.o", board.O, 100},
		{"multiple winners, x to play", "xo./xoo/xo.", board.X, 0},
		{"multiple winners, o to play", "xo./xoo/xo.", board.O, 0},
		{"opponent wins next move", "xo./.x./...", board.X, -90},
		{"draw on last cell", "xox/xxo/o.o", board.X, 0},
		{"engine wins on last cell", "xox/xxo/o.o", board.O, 90},
		{"forced draw, x to play", "xox/.xo/oxo", board.X, 0},
		{"forced draw, o to play", "xox/.xo/oxo", board.O, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustBoard(t, tt.notation)
			require.Equal(t, tt.want, b.EvaluatePosition(tt.toPlay))
			// the board is left untouched
			require.Equal(t, mustBoard(t, tt.notation), b)
		})
	}
}

func TestDecayTruncates(t *testing.T) {
	require.Equal(t, int8(90), decayed(100))
	require.Equal(t, int8(81), decayed(90))
	require.Equal(t, int8(72), decayed(81))
	require.Equal(t, int8(-72), decayed(-81))
	require.Equal(t, int8(64), decayed(72))
	require.Equal(t, int8(0), decayed(0))
}

func TestEvaluatePositionSymmetry(t *testing.T) {
	positions := []string{
		"xo./.x./...",
		"x../.o./...",
		"xox/.o./...",
		"o../.x./..x",
		"xox/xxo/o.o",
		"..x/.xo/...",
	}

	for _, notation := range positions {
		t.Run(notation, func(t *testing.T) {
			for _, toPlay := range []board.Shape{board.X, board.O} {
				b := mustBoard(t, notation)
				score := b.EvaluatePosition(toPlay)

				// same cells, engine switched sides
				swapped := b.Clone()
				swapped.EngineShape = b.EngineShape.Other()
				require.Equal(t, -score, swapped.EvaluatePosition(toPlay))

				// every mark and the engine relabeled, same game from the engine's view
				relabeled := &Board{Cells: b.Cells.Relabel(), EngineShape: b.EngineShape.Other()}
				require.Equal(t, score, relabeled.EvaluatePosition(toPlay.Other()))
			}
		})
	}
}

func TestGenerateAIMove(t *testing.T) {
	tests := []struct {
		name     string
		notation string
		want     board.Coord
		ok       bool
	}{
		{"block diagonal", "..x/.xo/...", board.Coord{X: 0, Y: 2}, true},
		{"win column", "xox/xo./...", board.Coord{X: 1, Y: 2}, true},
		{"block negative diagonal", "..o/.x./..x", board.Coord{X: 0, Y: 0}, true},
		{"win top row", "o.o/.x./x.x", board.Coord{X: 1, Y: 0}, true},
		{"win over block", "o.o/.x./.xx", board.Coord{X: 1, Y: 0}, true},
		{"full draw", "oxx/xoo/oxx", board.Coord{}, false},
		{"full with winner", "oox/oxx/oxx", board.Coord{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustBoard(t, tt.notation)
			for seed := range uint64(5) {
				move, ok := b.GenerateAIMoveRand(rand.New(rand.NewSource(seed)))
				require.Equal(t, tt.ok, ok)
				require.Equal(t, tt.want, move)
			}
		})
	}
}

func TestGenerateAIMoveEmptyBoard(t *testing.T) {
	for _, engine := range []board.Shape{board.X, board.O} {
		move, ok := NewBoard(engine).GenerateAIMove()
		require.True(t, ok)
		require.Equal(t, board.Center, move)
	}
}

func TestGenerateAIMoveCorners(t *testing.T) {
	b := mustBoard(t, ".../.x./...")
	seen := map[board.Coord]bool{}

	for seed := range uint64(64) {
		move, ok := b.GenerateAIMoveRand(rand.New(rand.NewSource(seed)))
		require.True(t, ok)
		require.Contains(t, board.Corners[:], move)
		seen[move] = true
	}

	// uniform choice, not always the first corner
	require.Greater(t, len(seen), 1)
}

func TestGenerateAIMoveTieBreak(t *testing.T) {
	// x in opposite corners, o in the center: every edge draws, every corner loses
	b := mustBoard(t, "x../.o./..x")
	seen := map[board.Coord]bool{}

	for seed := range uint64(64) {
		move, ok := b.GenerateAIMoveRand(rand.New(rand.NewSource(seed)))
		require.True(t, ok)
		seen[move] = true

		next := b.Clone()
		require.NoError(t, next.Place(move, board.O))
		require.Equal(t, int8(0), next.EvaluatePosition(board.X))
	}

	require.Greater(t, len(seen), 1)
}

func TestGenerateAIMoveNeverLoses(t *testing.T) {
	// engine against every possible opponent line, the engine moves second
	var play func(b *Board, toPlay board.Shape)
	play = func(b *Board, toPlay board.Shape) {
		outcome := b.Winner()
		if outcome.Decided() {
			require.False(t, outcome.WonBy(board.X), b.String())
			return
		}

		if toPlay == board.O {
			move, ok := b.GenerateAIMoveRand(rand.New(rand.NewSource(7)))
			require.True(t, ok)
			next := b.Clone()
			require.NoError(t, next.Place(move, board.O))
			play(next, board.X)
			return
		}

		for _, c := range b.EmptyCells() {
			next := b.Clone()
			require.NoError(t, next.Place(c, board.X))
			play(next, board.O)
		}
	}

	play(NewBoard(board.O), board.X)
}
