package board

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidNotation = errors.New("invalid notation")

// Row-wise notation of the grid, rows from top to bottom separated by '/',
// for example:
//
//	x . o
//	. x .   ->  "x.o/.x./..o"
//	. . o
func (g *Grid) Notation() string {
	builder := strings.Builder{}
	for y := range 3 {
		for x := range 3 {
			builder.WriteRune(g[x][y].Rune())
		}
		if y != 2 {
			builder.WriteByte('/')
		}
	}
	return builder.String()
}

// Parse the row-wise notation, a digit can replace a run of empty cells
// (e.g. "2x/3/o2"), and also '_' is accepted as an empty cell
func ParseGrid(notation string) (Grid, error) {
	var grid Grid

	rows := strings.Split(strings.TrimSpace(notation), "/")
	if len(rows) != 3 {
		return grid, fmt.Errorf("%w: expected 3 rows, got %d in %q", ErrInvalidNotation, len(rows), notation)
	}

	for y, row := range rows {
		x := 0
		for _, v := range row {
			switch {
			case v == 'x' || v == 'o' || v == 'X' || v == 'O':
				if x >= 3 {
					return grid, fmt.Errorf("%w: row %d is too long in %q", ErrInvalidNotation, y, notation)
				}
				grid[x][y] = ShapeFromRune(v)
				x++
			case v == '.' || v == '_':
				x++
			case '1' <= v && v <= '3':
				x += int(v - '0')
			case v == ' ':
			default:
				return grid, fmt.Errorf("%w: unexpected token %c in %q", ErrInvalidNotation, v, notation)
			}
		}

		if x != 3 {
			return grid, fmt.Errorf("%w: row %d has %d cells in %q", ErrInvalidNotation, y, x, notation)
		}
	}

	return grid, nil
}

// Same as ParseGrid, but panics on error, used for fixtures
func MustParseGrid(notation string) Grid {
	grid, err := ParseGrid(notation)
	if err != nil {
		panic(err)
	}
	return grid
}
