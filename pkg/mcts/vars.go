package mcts

import (
	"math"

	"lukechampine.com/frand"
)

// Exploration parameter used in UCT formula, higher values increase exploration
// while lower values increase exploitation. Close to sqrt(2).
const DefaultExplorationParam float64 = 1.414

var SeedGeneratorFn SeedGeneratorFnType = func() uint64 {
	return frand.Uint64n(math.MaxUint64)
}

// Set custom seed generator function for random number generators in MCTS,
// by default uses a cryptographically random seed
func SetSeedGeneratorFn(f SeedGeneratorFnType) {
	if f != nil {
		SeedGeneratorFn = f
	}
}

const (
	// When choosing the best child, choose the one with most playouts,
	// this is the go-to method for MCTS
	BestChildMostVisits BestChildPolicy = iota

	// Choose the child with the best win rate, among children with
	// at least a tenth of the most visited child's playouts
	BestChildWinRate
)
