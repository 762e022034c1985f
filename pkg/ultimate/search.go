package ultimate

import (
	"fmt"
	"strings"

	"github.com/IlikeChooros/go-tictactoe/pkg/board"
	"github.com/IlikeChooros/go-tictactoe/pkg/mcts"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Search node state: the board (without history) and the side to move
type position struct {
	board  Board
	toPlay board.Shape
}

func newPosition(b *Board, toPlay board.Shape) position {
	pos := position{board: *b, toPlay: toPlay}
	pos.board.history = nil
	return pos
}

func (p position) LegalMoves() []GlobalCoord {
	if p.Decided() {
		return nil
	}
	return p.board.LegalMoves()
}

func (p position) Decided() bool {
	return p.board.Winner().Decided()
}

func (p position) Play(move GlobalCoord) position {
	next := position{board: p.board, toPlay: p.toPlay.Other()}
	if err := next.board.place(move, p.toPlay); err != nil {
		panic(fmt.Sprintf("ultimate: legal move %v rejected: %v", move, err))
	}
	return next
}

// Rollouts of the engine's tree, every engine owns one
type operations struct {
	random      *rand.Rand
	engineShape board.Shape
}

// Play random moves until the game is decided or no move is left,
// only the engine's win counts, a draw is a loss
func (ops *operations) Rollout(pos position) bool {
	b, toPlay := pos.board, pos.toPlay
	for {
		if outcome := b.Winner(); outcome.Decided() {
			return outcome.WonBy(ops.engineShape)
		}

		move, ok := b.RandomLegalMove(ops.random)
		if !ok {
			return false
		}
		if err := b.place(move, toPlay); err != nil {
			panic(fmt.Sprintf("ultimate: legal move %v rejected: %v", move, err))
		}
		toPlay = toPlay.Other()
	}
}

func (ops *operations) SetRand(r *rand.Rand) {
	ops.random = r
}

// Summary of the last search
type SearchResult struct {
	BestMove   GlobalCoord
	HasMove    bool
	Playouts   uint32
	Cycles     int
	Cps        uint32
	Depth      int
	Size       uint32
	Lines      []mcts.SearchLine[GlobalCoord]
	StopReason mcts.StopReason
}

func (r SearchResult) String() string {
	builder := strings.Builder{}
	fmt.Fprintf(&builder, "bestmove %v cycles %d playouts %d depth %d cps %d size %d stop %v\n",
		r.BestMove, r.Cycles, r.Playouts, r.Depth, r.Cps, r.Size, r.StopReason)
	for i, line := range r.Lines {
		fmt.Fprintf(&builder, "%d. %v %d/%d (%.1f%%)\n", i+1, line.Move, line.Wins, line.Playouts, 100*line.WinRate)
	}
	return builder.String()
}

// MCTS engine for the global board, searches for the board's engine shape
type Engine struct {
	tree *mcts.MCTS[GlobalCoord, position]
	ops  *operations
}

// Create an engine for a snapshot of 'b', later changes to 'b' are not seen by the engine
func NewEngine(b *Board) *Engine {
	ops := &operations{engineShape: b.engineShape}
	return &Engine{
		tree: mcts.NewMCTS[GlobalCoord](ops, newPosition(b, b.engineShape)),
		ops:  ops,
	}
}

// Tree of the engine, exposes listeners, limits and context
func (e *Engine) Tree() *mcts.MCTS[GlobalCoord, position] {
	return e.tree
}

// Limit the search to 'iterations' expansions, the root one included
func (e *Engine) SetIterations(iterations uint32) *Engine {
	e.tree.SetLimits(mcts.DefaultLimits().SetCycles(iterations))
	return e
}

func (e *Engine) SetLimits(limits *mcts.Limits) *Engine {
	e.tree.SetLimits(limits)
	return e
}

func (e *Engine) SetExplorationParam(c float64) *Engine {
	e.tree.SetExplorationParam(c)
	return e
}

// Search from the current root, returns the most visited root child
func (e *Engine) Search() (GlobalCoord, bool) {
	log.Debug().
		Str("limits", e.tree.Limits().String()).
		Float64("exploration", e.tree.ExplorationParam()).
		Msg("ultimate-search-start")

	e.tree.Search()
	move, ok := e.tree.RootMove()

	log.Debug().
		Stringer("move", move).
		Bool("ok", ok).
		Int("cycles", e.tree.Cycles()).
		Uint32("playouts", e.tree.Root.Playouts()).
		Uint32("size", e.tree.Size()).
		Stringer("stop", e.tree.StopReason()).
		Msg("ultimate-search-done")
	return move, ok
}

// Follow the move in the tree, keeping the subtree of the move.
// The move must be legal in the engine's position.
func (e *Engine) MakeMove(move GlobalCoord) {
	if !e.tree.MakeMove(move) {
		e.tree.Reset(e.tree.Root.Position.Play(move))
	}
}

func (e *Engine) SearchResult() SearchResult {
	move, ok := e.tree.RootMove()
	return SearchResult{
		BestMove:   move,
		HasMove:    ok,
		Playouts:   e.tree.Root.Playouts(),
		Cycles:     e.tree.Cycles(),
		Cps:        e.tree.Cps(),
		Depth:      e.tree.MaxDepth(),
		Size:       e.tree.Size(),
		Lines:      e.tree.Lines(),
		StopReason: e.tree.StopReason(),
	}
}

// A legal move winning the game for the engine right away, if there is one
func (b *Board) ImmediateWin() (GlobalCoord, bool) {
	if b.Winner().Decided() {
		return GlobalCoord{}, false
	}
	for _, move := range b.LegalMoves() {
		pos := newPosition(b, b.engineShape).Play(move)
		if pos.board.Winner().WonBy(b.engineShape) {
			return move, true
		}
	}
	return GlobalCoord{}, false
}

// Move for the engine's shape: an immediate win if there is one, otherwise
// the most visited root child after 'maxIterations' expansions (at least the root one).
// False if there is no legal move.
func (b *Board) GenerateAIMove(maxIterations uint16) (GlobalCoord, bool) {
	if move, ok := b.ImmediateWin(); ok {
		log.Debug().Stringer("move", move).Msg("ultimate-immediate-win")
		return move, true
	}

	if b.Winner().Decided() || len(b.LegalMoves()) == 0 {
		return GlobalCoord{}, false
	}

	return NewEngine(b).SetIterations(uint32(maxIterations)).Search()
}
