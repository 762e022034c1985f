package bench

import (
	"github.com/rs/zerolog/log"
)

// Arena callbacks, called concurrently from every worker
type ListenerLike interface {
	OnGameStart(workerID int)
	OnMoveMade(info VersusWorkerInfo)
	OnFinishedGame(info VersusWorkerInfo)
	OnFinishedWork(info VersusWorkerInfo)
	Summary(info VersusSummaryInfo)
}

// Logs finished games and the summary, ignores single moves
type DefaultListener struct{}

func (DefaultListener) OnGameStart(int) {}

func (DefaultListener) OnMoveMade(VersusWorkerInfo) {}

func (DefaultListener) OnFinishedGame(info VersusWorkerInfo) {
	log.Info().
		Int("worker", info.WorkerID).
		Int("game", info.FinishedGames).
		Int("of", info.NGames).
		Int("moves", info.GameMoveNum).
		Stringer("result", info.Result).
		Msgf("%s %d - %d %s (draws %d)", info.P1Name, info.P1Wins, info.P2Wins, info.P2Name, info.Draws)
}

func (DefaultListener) OnFinishedWork(info VersusWorkerInfo) {
	log.Debug().
		Int("worker", info.WorkerID).
		Int("games", info.FinishedGames).
		Msg("arena-worker-done")
}

func (DefaultListener) Summary(info VersusSummaryInfo) {
	log.Info().
		Int("games", info.TotalGames).
		Int("p1_wins", info.P1Wins).
		Int("p2_wins", info.P2Wins).
		Int("draws", info.Draws).
		Int("first_to_move_wins", info.FirstToMoveWins).
		Int("second_to_move_wins", info.SecondToMoveWins).
		Msgf("%s vs %s finished", info.P1Name, info.P2Name)
}
