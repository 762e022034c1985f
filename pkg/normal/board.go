package normal

import (
	"errors"
	"fmt"

	"github.com/IlikeChooros/go-tictactoe/pkg/board"
)

var (
	ErrOutOfBounds  = errors.New("coordinate out of bounds")
	ErrCellOccupied = errors.New("cell already occupied")
)

// Plain 3x3 board, EngineShape is the side the engine maximizes
type Board struct {
	Cells       board.Grid
	EngineShape board.Shape
}

func NewBoard(engineShape board.Shape) *Board {
	return &Board{EngineShape: engineShape}
}

// Create the board from the row-wise grid notation, see board.ParseGrid
func ParseBoard(notation string, engineShape board.Shape) (*Board, error) {
	grid, err := board.ParseGrid(notation)
	if err != nil {
		return nil, err
	}
	return &Board{Cells: grid, EngineShape: engineShape}, nil
}

// Place the mark in an empty cell, marks are never removed
func (b *Board) Place(c board.Coord, s board.Shape) error {
	if !c.InBounds() {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, c)
	}
	if b.Cells.At(c) != board.Empty {
		return fmt.Errorf("%w: %v", ErrCellOccupied, c)
	}
	b.Cells.Set(c, s)
	return nil
}

// Recomputed on every call
func (b *Board) Winner() board.Outcome {
	return board.Evaluate(&b.Cells)
}

func (b *Board) EmptyCells() []board.Coord {
	return b.Cells.EmptyCells()
}

func (b *Board) Clone() *Board {
	clone := *b
	return &clone
}

func (b *Board) String() string {
	return b.Cells.Notation()
}
