package ultimate

import (
	"fmt"
	"strings"

	"github.com/IlikeChooros/go-tictactoe/pkg/board"
)

// Empty global board, anything goes
const StartingPosition = "9/9/9/9/9/9/9/9/9 -"

// String notation for the global board, much like the FEN representation of a chessboard:
//
//	L/L/L/L/L/L/L/L/L <next>
//
// where each L is one local board, listed from the top-left one (board x changes fastest).
// Inside L the cells are listed row by row, 'x' or 'o' for a mark and a digit for
// a run of empty cells. For example, the local board:
//
//	o | x | x
//	---------
//	x | o |
//	---------
//	o |   |
//
// becomes "oxxxo1o2".
//
// <next> is the local board the next move is forced into, as x + 3*y (0-8),
// or '-' if the player can move anywhere.
//
// Examples:
//
//	9/9/9/9/9/9/9/9/9 -
//	9/9/9/7x1/4xo3/8x/9/4o4/o8 0
func (b *Board) Notation() string {
	builder := strings.Builder{}

	for index := range 9 {
		bc := board.CoordFromIndex(index)
		cells := &b.localBoards[bc.X][bc.Y].Cells

		counter := 0
		for cell := range 9 {
			c := board.CoordFromIndex(cell)
			switch s := cells.At(c); s {
			case board.X, board.O:
				if counter > 0 {
					builder.WriteByte('0' + byte(counter))
					counter = 0
				}
				builder.WriteRune(s.Rune())
			default:
				counter++
			}
		}

		if counter > 0 {
			builder.WriteByte('0' + byte(counter))
		}

		if index != 8 {
			builder.WriteByte('/')
		}
	}

	builder.WriteByte(' ')
	if b.hasNext {
		builder.WriteByte('0' + byte(b.next.Index()))
	} else {
		builder.WriteByte('-')
	}

	return builder.String()
}

func (b *Board) String() string {
	return b.Notation()
}

// Create the board from given notation string, see Board.Notation.
// The history of the parsed board is empty.
func ParseBoard(notation string, engineShape board.Shape) (*Board, error) {
	if notation == "startpos" {
		notation = StartingPosition
	}

	sections := strings.Fields(notation)
	if len(sections) != 2 {
		return nil, fmt.Errorf("%w: expected 2 sections, got %d in %q", ErrInvalidNotation, len(sections), notation)
	}

	locals := strings.Split(sections[0], "/")
	if len(locals) != 9 {
		return nil, fmt.Errorf("%w: expected 9 local boards, got %d in %q", ErrInvalidNotation, len(locals), notation)
	}

	b := NewBoard(engineShape)
	for index, local := range locals {
		bc := board.CoordFromIndex(index)
		cells := &b.localBoards[bc.X][bc.Y].Cells

		cell := 0
		for _, v := range local {
			switch {
			case v == 'x' || v == 'o':
				if cell >= 9 {
					return nil, fmt.Errorf("%w: too many cells in local board %d", ErrInvalidNotation, index)
				}
				cells.Set(board.CoordFromIndex(cell), board.ShapeFromRune(v))
				cell++
			case '1' <= v && v <= '9':
				cell += int(v - '0')
			default:
				return nil, fmt.Errorf("%w: unexpected token %c in local board %d", ErrInvalidNotation, v, index)
			}
		}

		if cell != 9 {
			return nil, fmt.Errorf("%w: local board %d has %d cells", ErrInvalidNotation, index, cell)
		}
	}

	switch next := sections[1]; {
	case next == "-":
	case len(next) == 1 && '0' <= next[0] && next[0] <= '8':
		b.next = board.CoordFromIndex(int(next[0] - '0'))
		b.hasNext = true
		if b.localBoards[b.next.X][b.next.Y].Finished() {
			return nil, fmt.Errorf("%w: next local board %v is already finished", ErrInvalidNotation, b.next)
		}
	default:
		return nil, fmt.Errorf("%w: invalid next local board %q, expected a digit 0-8 or '-'", ErrInvalidNotation, next)
	}

	return b, nil
}

// Same as ParseBoard, but panics on error, used for fixtures
func MustParseBoard(notation string, engineShape board.Shape) *Board {
	b, err := ParseBoard(notation, engineShape)
	if err != nil {
		panic(err)
	}
	return b
}
