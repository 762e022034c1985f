package ultimate

import (
	"errors"
	"fmt"

	"github.com/IlikeChooros/go-tictactoe/pkg/board"
	"golang.org/x/exp/rand"
)

// Reason why a move was rejected, compare with errors.Is against the values below
type MoveError struct {
	reason string
}

func (e *MoveError) Error() string {
	return e.reason
}

var (
	ErrOutOfBounds     = &MoveError{"coordinate out of bounds"}
	ErrWrongLocalBoard = &MoveError{"move must be played in the next local board"}
	ErrCellAlreadyFull = &MoveError{"cell already full"}
)

var ErrInvalidNotation = errors.New("invalid notation")

// Move applied to the board, as stored in the history
type Move struct {
	Coord GlobalCoord
	Shape board.Shape
}

func (m Move) String() string {
	return fmt.Sprintf("%v%c", m.Coord, m.Shape.Rune())
}

// The global board: 3x3 local boards indexed as localBoards[x][y], the engine's shape,
// and the local board the next move is forced into (if any)
type Board struct {
	localBoards [3][3]LocalBoard
	engineShape board.Shape
	next        board.Coord
	hasNext     bool
	history     []Move
}

func NewBoard(engineShape board.Shape) *Board {
	return &Board{engineShape: engineShape}
}

func (b *Board) EngineShape() board.Shape {
	return b.engineShape
}

// The local board the next move must be played in, false if any board is allowed
func (b *Board) NextLocalBoard() (board.Coord, bool) {
	return b.next, b.hasNext
}

// Copy of the local board at 'c'
func (b *Board) Local(c board.Coord) LocalBoard {
	return b.localBoards[c.X][c.Y]
}

func (b *Board) Cell(gc GlobalCoord) board.Shape {
	return b.localBoards[gc.Board.X][gc.Board.Y].Cells.At(gc.Cell)
}

// Moves applied with MakeMove, oldest first
func (b *Board) History() []Move {
	history := make([]Move, len(b.history))
	copy(history, b.history)
	return history
}

// Validate and apply the move. Checks, first failure wins: coordinates in range,
// the forced local board, an empty target cell.
// The opponent is then sent to the local board matching the played cell,
// or anywhere if that board is finished or the game is won.
func (b *Board) MakeMove(gc GlobalCoord, s board.Shape) error {
	if err := b.place(gc, s); err != nil {
		return err
	}
	b.history = append(b.history, Move{Coord: gc, Shape: s})
	return nil
}

// Same as MakeMove, without recording the history, used by the search
func (b *Board) place(gc GlobalCoord, s board.Shape) error {
	if !gc.InBounds() {
		// raw indices, the move notation can't show them
		return fmt.Errorf("%w: board %v, cell %v", ErrOutOfBounds, gc.Board, gc.Cell)
	}
	if b.hasNext && b.next != gc.Board {
		return fmt.Errorf("%w: %v, expected board %v", ErrWrongLocalBoard, gc, b.next)
	}

	local := &b.localBoards[gc.Board.X][gc.Board.Y]
	if local.Cells.At(gc.Cell) != board.Empty {
		return fmt.Errorf("%w: %v", ErrCellAlreadyFull, gc)
	}
	local.place(gc.Cell, s)

	b.next = gc.Cell
	b.hasNext = !b.localBoards[gc.Cell.X][gc.Cell.Y].Finished()
	if b.Winner().Kind == board.Winner {
		b.hasNext = false
	}
	return nil
}

// Grid of local board winners, an empty cell for each board nobody has claimed
func (b *Board) EffectiveGrid() board.Grid {
	var grid board.Grid
	for x := range 3 {
		for y := range 3 {
			grid[x][y] = b.localBoards[x][y].EffectiveShape()
		}
	}
	return grid
}

// Outcome of the global board. BoardFullNoWinner only when all local boards are won,
// a board with no legal moves left is a draw as well.
func (b *Board) Winner() board.Outcome {
	grid := b.EffectiveGrid()
	return board.Evaluate(&grid)
}

// Empty cells of the forced local board, or of every board if there is none.
// Ordered by board x, board y, then cell x, cell y (x changes fastest).
func (b *Board) LegalMoves() []GlobalCoord {
	if b.hasNext {
		moves := make([]GlobalCoord, 0, 9)
		return b.appendLocalMoves(moves, b.next)
	}

	moves := make([]GlobalCoord, 0, 81)
	for y := range 3 {
		for x := range 3 {
			moves = b.appendLocalMoves(moves, board.Coord{X: x, Y: y})
		}
	}
	return moves
}

func (b *Board) appendLocalMoves(moves []GlobalCoord, bc board.Coord) []GlobalCoord {
	local := &b.localBoards[bc.X][bc.Y]
	for y := range 3 {
		for x := range 3 {
			if local.Cells[x][y] == board.Empty {
				moves = append(moves, GlobalCoord{Board: bc, Cell: board.Coord{X: x, Y: y}})
			}
		}
	}
	return moves
}

// Uniformly random legal move, false if there is none
func (b *Board) RandomLegalMove(r *rand.Rand) (GlobalCoord, bool) {
	moves := b.LegalMoves()
	if len(moves) == 0 {
		return GlobalCoord{}, false
	}
	return moves[r.Intn(len(moves))], true
}

// Deep copy, including the history
func (b *Board) Clone() *Board {
	clone := *b
	clone.history = b.History()
	return &clone
}

// Apply the moves in order on a fresh board
func Replay(engineShape board.Shape, moves []Move) (*Board, error) {
	b := NewBoard(engineShape)
	for i, m := range moves {
		if err := b.MakeMove(m.Coord, m.Shape); err != nil {
			return nil, fmt.Errorf("replay move %d (%v): %w", i, m, err)
		}
	}
	return b, nil
}
