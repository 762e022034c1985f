package ultimate

import (
	"fmt"
	"strings"

	"github.com/IlikeChooros/go-tictactoe/pkg/board"
)

// Address of a single cell on the global board: the local board, then the cell inside it
type GlobalCoord struct {
	Board board.Coord
	Cell  board.Coord
}

func NewGlobalCoord(boardX, boardY, cellX, cellY int) GlobalCoord {
	return GlobalCoord{
		Board: board.Coord{X: boardX, Y: boardY},
		Cell:  board.Coord{X: cellX, Y: cellY},
	}
}

func (gc GlobalCoord) InBounds() bool {
	return gc.Board.InBounds() && gc.Cell.InBounds()
}

// Get string representation of the move, will contain
// a/b/c 1/2/3 as coordinates, big board first (capital letter),
// then the cell, for example board (1, 2) and cell (2, 0) -> B1c3
//
//	    A   B   C
//	  (0,0)(1,0)(2,0)  3
//	  (0,1)(1,1)(2,1)  2
//	  (0,2)(1,2)(2,2)  1
func (gc GlobalCoord) String() string {
	if !gc.InBounds() {
		return "(none)"
	}

	builder := strings.Builder{}
	builder.WriteByte('A' + byte(gc.Board.X))
	builder.WriteByte('3' - byte(gc.Board.Y))
	builder.WriteByte('a' + byte(gc.Cell.X))
	builder.WriteByte('3' - byte(gc.Cell.Y))
	return builder.String()
}

// Parse the move notation produced by GlobalCoord.String
func ParseGlobalCoord(str string) (GlobalCoord, error) {
	if len(str) != 4 {
		return GlobalCoord{}, fmt.Errorf("%w: move %q", ErrInvalidNotation, str)
	}

	// Helper function to make sure the coordinates are within the range
	_cmp := func(i int, letter byte) bool {
		return (str[i] >= letter && str[i] <= letter+2) &&
			(str[i+1] >= '1' && str[i+1] <= '3')
	}

	if !_cmp(0, 'A') || !_cmp(2, 'a') {
		return GlobalCoord{}, fmt.Errorf("%w: move %q", ErrInvalidNotation, str)
	}

	return NewGlobalCoord(
		int(str[0]-'A'), int('3'-str[1]),
		int(str[2]-'a'), int('3'-str[3]),
	), nil
}
