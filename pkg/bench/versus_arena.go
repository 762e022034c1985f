package bench

import (
	"context"
	"fmt"

	"github.com/IlikeChooros/go-tictactoe/pkg/board"
	"github.com/IlikeChooros/go-tictactoe/pkg/ultimate"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

/*
Arena benchmark subpackage, allows to play a series of ultimate games
between two different engine configurations.
*/

// The player moving first plays X
const firstShape = board.X

type VersusArena struct {
	VersusArenaStats
	Player1  Player
	Player2  Player
	NGames   int
	NWorkers int
	ctx      context.Context
}

func NewVersusArena(p1, p2 Player) *VersusArena {
	return &VersusArena{
		Player1:  p1,
		Player2:  p2,
		NGames:   100,
		NWorkers: 2,
		ctx:      context.Background(),
	}
}

func (va *VersusArena) WithContext(ctx context.Context) *VersusArena {
	va.ctx = ctx
	return va
}

func (va *VersusArena) Setup(nGames, nWorkers int) *VersusArena {
	va.NGames = max(0, nGames)
	va.NWorkers = max(1, nWorkers)
	return va
}

// Play all games, equally distributed between the workers, blocks until every game
// is finished or the context is done. Player 1 moves first in the even games.
func (va *VersusArena) Run(listener ListenerLike) (VersusSummaryInfo, error) {
	if listener == nil {
		listener = NewArenaListener()
	}

	log.Debug().
		Stringer("player1", va.Player1).
		Stringer("player2", va.Player2).
		Int("games", va.NGames).
		Int("workers", va.NWorkers).
		Msg("arena-start")

	group, ctx := errgroup.WithContext(va.ctx)
	nGames := va.NGames / va.NWorkers
	rest := va.NGames % va.NWorkers
	first := 0

	for id := range va.NWorkers {
		count := nGames
		if rest > 0 {
			count++
			rest--
		}

		start := first
		first += count
		group.Go(func() error {
			return va.worker(ctx, id, start, count, listener)
		})
	}

	err := group.Wait()
	summary := VersusSummaryInfo{
		TotalGames:       va.Total(),
		P1Wins:           va.P1Wins(),
		P2Wins:           va.P2Wins(),
		FirstToMoveWins:  va.FirstToMoveWins(),
		SecondToMoveWins: va.SecondToMoveWins(),
		Draws:            va.Draws(),
		Workers:          va.NWorkers,
		P1Name:           va.Player1.Name,
		P2Name:           va.Player2.Name,
	}
	listener.Summary(summary)
	return summary, err
}

// Plays games [start, start+count)
func (va *VersusArena) worker(ctx context.Context, id, start, count int, listener ListenerLike) error {
	local := VersusArenaStats{}
	info := func(moves []ultimate.GlobalCoord, result VersusMatchResult, finished int) VersusWorkerInfo {
		return VersusWorkerInfo{
			WorkerID:         id,
			NGames:           count,
			FinishedGames:    finished,
			GameMoveNum:      len(moves),
			Moves:            moves,
			Result:           result,
			P1Wins:           local.P1Wins(),
			P2Wins:           local.P2Wins(),
			Draws:            local.Draws(),
			FirstToMoveWins:  local.FirstToMoveWins(),
			SecondToMoveWins: local.SecondToMoveWins(),
			P1Name:           va.Player1.Name,
			P2Name:           va.Player2.Name,
		}
	}

	for i := range count {
		p1WentFirst := (start+i)%2 == 0
		first, second := va.Player1, va.Player2
		if !p1WentFirst {
			first, second = second, first
		}

		listener.OnGameStart(id)
		moves := make([]ultimate.GlobalCoord, 0, 81)
		outcome, err := playGame(ctx, first, second, func(move ultimate.GlobalCoord) {
			moves = append(moves, move)
			listener.OnMoveMade(info(moves, VersusDraw, i))
		})
		if err != nil {
			return err
		}

		result := toAgentResult(outcome, p1WentFirst)
		va.add(result, outcome)
		local.add(result, outcome)
		listener.OnFinishedGame(info(moves, result, i+1))
	}

	listener.OnFinishedWork(info(nil, VersusDraw, count))
	return nil
}

// Play a single game, each player keeps its own copy of the board
// with its own engine shape
func playGame(ctx context.Context, first, second Player, onMove func(ultimate.GlobalCoord)) (GameOutcome, error) {
	players := [2]Player{first, second}
	boards := [2]*ultimate.Board{
		ultimate.NewBoard(firstShape),
		ultimate.NewBoard(firstShape.Other()),
	}

	for turn := 0; !boards[0].Winner().Decided(); turn ^= 1 {
		if err := ctx.Err(); err != nil {
			return GameOutcome{}, err
		}

		move, ok := players[turn].Move(ctx, boards[turn])
		if !ok {
			// no legal moves left
			break
		}
		if err := ctx.Err(); err != nil {
			return GameOutcome{}, err
		}

		shape := boards[turn].EngineShape()
		for _, b := range boards {
			if err := b.MakeMove(move, shape); err != nil {
				return GameOutcome{}, fmt.Errorf("%s played %v: %w", players[turn].Name, move, err)
			}
		}
		onMove(move)
	}

	return computeOutcome(boards[0]), nil
}
