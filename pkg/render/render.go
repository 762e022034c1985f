package render

import (
	"io"
	"strings"

	"github.com/IlikeChooros/go-tictactoe/pkg/board"
	"github.com/IlikeChooros/go-tictactoe/pkg/normal"
	"github.com/IlikeChooros/go-tictactoe/pkg/ultimate"
	"github.com/muesli/termenv"
)

// Terminal board printer. Marks are colored per shape, winning lines are bold,
// the forced local board is highlighted.
type Renderer struct {
	out       *termenv.Output
	xColor    termenv.Color
	oColor    termenv.Color
	highlight termenv.Color
}

// Renderer for 'w', with the color profile detected from it
func NewRenderer(w io.Writer) *Renderer {
	return newRenderer(termenv.NewOutput(w))
}

// Renderer with a fixed color profile, termenv.Ascii prints plain text
func NewRendererWithProfile(w io.Writer, profile termenv.Profile) *Renderer {
	return newRenderer(termenv.NewOutput(w, termenv.WithProfile(profile)))
}

func newRenderer(out *termenv.Output) *Renderer {
	return &Renderer{
		out:       out,
		xColor:    out.Color("9"),
		oColor:    out.Color("12"),
		highlight: out.Color("238"),
	}
}

func (r *Renderer) cell(s board.Shape, strong, marked bool) string {
	style := r.out.String(string(s.Rune()))
	switch s {
	case board.X:
		style = style.Foreground(r.xColor)
	case board.O:
		style = style.Foreground(r.oColor)
	default:
		style = style.Faint()
	}

	if strong {
		style = style.Bold().Underline()
	}
	if marked {
		style = style.Background(r.highlight)
	}
	return style.String()
}

// Plain 3x3 board with column and row indices:
//
//	  0 1 2
//	0 x o .
//	1 . x .
//	2 . . o
func (r *Renderer) Normal(b *normal.Board) string {
	outcome := b.Winner()
	builder := strings.Builder{}
	builder.WriteString("  0 1 2\n")

	for y := range 3 {
		builder.WriteByte('0' + byte(y))
		for x := range 3 {
			c := board.Coord{X: x, Y: y}
			builder.WriteByte(' ')
			builder.WriteString(r.cell(b.Cells.At(c), outcome.Kind == board.Winner && outcome.Line.Contains(c), false))
		}
		builder.WriteByte('\n')
	}
	return builder.String()
}

// Label of a local board in the move notation, e.g. "B2" for the center
func BoardLabel(c board.Coord) string {
	return string([]byte{'A' + byte(c.X), '3' - byte(c.Y)})
}

// Global board, local boards separated by lines, big board labels
// like in the move notation, followed by the forced local board:
//
//	    A       B       C
//	  . . . | . . . | . . .
//	3 . . . | . . . | . . .
//	  . . . | . . . | . . .
//	  ------+-------+------
//	  . . . | . . . | . . .
//	2 . . . | . x . | . . .
//	  ...
//	next: B2
func (r *Renderer) Ultimate(b *ultimate.Board) string {
	global := b.Winner()
	next, hasNext := b.NextLocalBoard()

	var locals [3][3]ultimate.LocalBoard
	var outcomes [3][3]board.Outcome
	for x := range 3 {
		for y := range 3 {
			locals[x][y] = b.Local(board.Coord{X: x, Y: y})
			outcomes[x][y] = locals[x][y].Winner()
		}
	}

	builder := strings.Builder{}
	builder.WriteString("    A       B       C\n")

	for by := range 3 {
		if by != 0 {
			builder.WriteString("  ------+-------+------\n")
		}

		for cy := range 3 {
			if cy == 1 {
				builder.WriteByte('3' - byte(by))
				builder.WriteByte(' ')
			} else {
				builder.WriteString("  ")
			}

			for bx := range 3 {
				if bx != 0 {
					builder.WriteString(" | ")
				}

				bc := board.Coord{X: bx, Y: by}
				outcome := outcomes[bx][by]
				inGlobalLine := global.Kind == board.Winner && global.Line.Contains(bc)
				forced := hasNext && next == bc

				for cx := range 3 {
					if cx != 0 {
						builder.WriteByte(' ')
					}
					c := board.Coord{X: cx, Y: cy}
					strong := inGlobalLine || (outcome.Kind == board.Winner && outcome.Line.Contains(c))
					builder.WriteString(r.cell(locals[bx][by].Cells.At(c), strong, forced))
				}
			}
			builder.WriteByte('\n')
		}
	}

	builder.WriteString("next: ")
	if hasNext {
		builder.WriteString(BoardLabel(next))
	} else {
		builder.WriteString("any")
	}
	builder.WriteByte('\n')
	return builder.String()
}

// One line summary of the game state
func (r *Renderer) Status(outcome board.Outcome, toPlay board.Shape) string {
	switch outcome.Kind {
	case board.Winner:
		return r.cell(outcome.Shape, true, false) + " wins"
	case board.BoardFullNoWinner:
		return "draw"
	case board.MultipleWinners:
		return "illegal position, multiple winners"
	}
	return r.cell(toPlay, false, false) + " to play"
}
