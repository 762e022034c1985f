package mcts

import "golang.org/x/exp/rand"

// Game state stored in a node, every node owns its own copy
type PositionLike[T MoveLike, P any] interface {
	// Moves that can be played, empty when the game cannot continue
	LegalMoves() []T
	// Whether the game has a result (win, draw, or an illegal double win)
	Decided() bool
	// Successor position with the move applied by the side to play,
	// the receiver must stay untouched
	Play(move T) P
}

type GameOperations[T MoveLike, P PositionLike[T, P]] interface {
	// Play random moves from 'pos' until the game is decided or no move is left,
	// returns true only if the engine has won. On a decided position simply
	// reports the result.
	Rollout(pos P) bool
	// Sets the random generator used by the rollouts
	SetRand(*rand.Rand)
}
