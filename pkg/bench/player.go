package bench

import (
	"context"
	"fmt"

	"github.com/IlikeChooros/go-tictactoe/pkg/mcts"
	"github.com/IlikeChooros/go-tictactoe/pkg/ultimate"
	"github.com/rs/zerolog/log"
)

// Engine configuration taking part in the arena
type Player struct {
	Name        string
	Iterations  uint32
	Exploration float64
	// In milliseconds, negative disables it
	Movetime int
	// Called with the final statistics of every search, on the searching goroutine
	OnSearch mcts.ListenerFunc[ultimate.GlobalCoord]
}

func NewPlayer(name string, iterations uint32) Player {
	return Player{
		Name:        name,
		Iterations:  iterations,
		Exploration: mcts.DefaultExplorationParam,
		Movetime:    -1,
	}
}

func (p Player) String() string {
	return fmt.Sprintf("%s(iterations=%d, c=%.3f)", p.Name, p.Iterations, p.Exploration)
}

func (p Player) limits() *mcts.Limits {
	limits := mcts.DefaultLimits().SetCycles(p.Iterations)
	if p.Movetime >= 0 {
		limits.SetMovetime(p.Movetime)
	}
	return limits
}

// Pick a move for the board's engine shape: an immediate win, or a fresh search.
// The search stops early when ctx is done.
func (p Player) Move(ctx context.Context, b *ultimate.Board) (ultimate.GlobalCoord, bool) {
	if move, ok := b.ImmediateWin(); ok {
		return move, true
	}

	engine := ultimate.NewEngine(b).
		SetLimits(p.limits()).
		SetExplorationParam(p.Exploration)
	engine.Tree().SetContext(ctx)
	engine.Tree().SetListener(p.listener())
	return engine.Search()
}

func (p Player) listener() mcts.StatsListener[ultimate.GlobalCoord] {
	listener := mcts.NewStatsListener[ultimate.GlobalCoord]()
	listener.OnStop(func(stats mcts.ListenerTreeStats[ultimate.GlobalCoord]) {
		log.Debug().
			Str("player", p.Name).
			Stringer("move", stats.BestMove).
			Int("cycles", stats.Cycles).
			Uint32("cps", stats.Cps).
			Int("depth", stats.Maxdepth).
			Stringer("reason", stats.StopReason).
			Msg("player-search")

		if p.OnSearch != nil {
			p.OnSearch(stats)
		}
	})
	return listener
}
