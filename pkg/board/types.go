package board

import (
	"fmt"
	"strings"
)

// Mark placed in a cell, Empty means no mark
type Shape uint8

const (
	Empty Shape = iota
	X
	O
)

// Complement of the shape, Empty stays Empty
func (s Shape) Other() Shape {
	switch s {
	case X:
		return O
	case O:
		return X
	}
	return Empty
}

func (s Shape) String() string {
	switch s {
	case X:
		return "X"
	case O:
		return "O"
	}
	return "_"
}

// Lowercase notation character, '.' for an empty cell
func (s Shape) Rune() rune {
	switch s {
	case X:
		return 'x'
	case O:
		return 'o'
	}
	return '.'
}

// Create shape from a notation rune, anything else is Empty
func ShapeFromRune(r rune) Shape {
	switch r {
	case 'x', 'X':
		return X
	case 'o', 'O':
		return O
	}
	return Empty
}

// Parse "x" or "o" (case insensitive)
func ParseShape(str string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "x":
		return X, nil
	case "o":
		return O, nil
	}
	return Empty, fmt.Errorf("invalid shape %q, expected x or o", str)
}

// Coordinate on a 3x3 grid, column-major: X is the column, Y is the row
//
//	(0,0) | (1,0) | (2,0)
//	---------------------
//	(0,1) | (1,1) | (2,1)
//	---------------------
//	(0,2) | (1,2) | (2,2)
type Coord struct {
	X, Y int
}

func (c Coord) InBounds() bool {
	return c.X >= 0 && c.X < 3 && c.Y >= 0 && c.Y < 3
}

// Row-major index 0..8, x + 3*y
func (c Coord) Index() int {
	return c.X + 3*c.Y
}

func CoordFromIndex(index int) Coord {
	return Coord{X: index % 3, Y: index / 3}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Center cell of any 3x3 grid
var Center = Coord{1, 1}

// Corner cells, in the order the engines sample them
var Corners = [4]Coord{{0, 0}, {2, 2}, {0, 2}, {2, 0}}

// 3x3 grid of cells indexed as grid[x][y]
type Grid [3][3]Shape

func (g *Grid) At(c Coord) Shape {
	return g[c.X][c.Y]
}

func (g *Grid) Set(c Coord, s Shape) {
	g[c.X][c.Y] = s
}

// Number of non-empty cells
func (g *Grid) Marks() int {
	n := 0
	for x := range 3 {
		for y := range 3 {
			if g[x][y] != Empty {
				n++
			}
		}
	}
	return n
}

func (g *Grid) Full() bool {
	return g.Marks() == 9
}

// Empty cells, x varies slowest
func (g *Grid) EmptyCells() []Coord {
	cells := make([]Coord, 0, 9)
	for x := range 3 {
		for y := range 3 {
			if g[x][y] == Empty {
				cells = append(cells, Coord{x, y})
			}
		}
	}
	return cells
}

// Swap every X with O and vice versa
func (g Grid) Relabel() Grid {
	for x := range 3 {
		for y := range 3 {
			g[x][y] = g[x][y].Other()
		}
	}
	return g
}
