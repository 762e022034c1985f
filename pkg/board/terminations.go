package board

import "fmt"

type OutcomeKind uint8

const (
	// Board not full, no triple
	NoWinnerYet OutcomeKind = iota
	// Board full, no triple (draw)
	BoardFullNoWinner
	// Exactly one shape completes a triple
	Winner
	// More than one shape completes a triple, cannot happen with legal play
	MultipleWinners
)

func (k OutcomeKind) String() string {
	switch k {
	case NoWinnerYet:
		return "NoWinnerYet"
	case BoardFullNoWinner:
		return "BoardFullNoWinner"
	case Winner:
		return "Winner"
	case MultipleWinners:
		return "MultipleWinners"
	}
	return fmt.Sprintf("OutcomeKind(%d)", uint8(k))
}

// One of the 8 winning triples
type Line [3]Coord

// Columns, rows, then both diagonals
var Lines = [8]Line{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
	{{0, 0}, {1, 1}, {2, 2}},
}

// Contains reports whether 'c' is one of the line's cells
func (l Line) Contains(c Coord) bool {
	return l[0] == c || l[1] == c || l[2] == c
}

// Result of the win check. Shape and Line are set only for Winner
type Outcome struct {
	Kind  OutcomeKind
	Shape Shape
	Line  Line
}

// Anything other than NoWinnerYet
func (o Outcome) Decided() bool {
	return o.Kind != NoWinnerYet
}

// Whether 's' is the single winner
func (o Outcome) WonBy(s Shape) bool {
	return o.Kind == Winner && o.Shape == s
}

func (o Outcome) String() string {
	if o.Kind == Winner {
		return fmt.Sprintf("Winner(%v, %v %v %v)", o.Shape, o.Line[0], o.Line[1], o.Line[2])
	}
	return o.Kind.String()
}

// Scan all triples of the grid. If more than one shape completes a triple
// MultipleWinners is returned, otherwise the first satisfied triple of the winner.
// Full board check only happens when no triple is satisfied.
func Evaluate(grid *Grid) Outcome {
	var (
		found   bool
		outcome Outcome
	)

	for _, line := range Lines {
		s := grid.At(line[0])
		if s == Empty || s != grid.At(line[1]) || s != grid.At(line[2]) {
			continue
		}

		if !found {
			found = true
			outcome = Outcome{Kind: Winner, Shape: s, Line: line}
		} else if outcome.Shape != s {
			return Outcome{Kind: MultipleWinners}
		}
	}

	if found {
		return outcome
	}

	if grid.Full() {
		return Outcome{Kind: BoardFullNoWinner}
	}
	return Outcome{Kind: NoWinnerYet}
}
