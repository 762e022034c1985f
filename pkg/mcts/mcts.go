package mcts

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/exp/rand"
)

type TreeStats struct {
	maxdepth int
	cps      uint32
	cycles   uint32
}

// Single-threaded Monte Carlo tree, the whole search runs on the calling goroutine.
// Wins are counted from the engine's perspective at every node.
type MCTS[T MoveLike, P PositionLike[T, P]] struct {
	TreeStats
	Limiter          *Limiter
	Root             *NodeBase[T, P]
	listener         StatsListener[T]
	ops              GameOperations[T, P]
	selectionPolicy  SelectionPolicy[T, P]
	explorationParam float64
	size             uint32
}

// Create new tree from the given root position, the root is not expanded
// until the search starts
func NewMCTS[T MoveLike, P PositionLike[T, P]](ops GameOperations[T, P], position P) *MCTS[T, P] {
	mcts := &MCTS[T, P]{
		Limiter:          NewLimiter(),
		Root:             newRootNode[T](position),
		listener:         NewStatsListener[T](),
		ops:              ops,
		selectionPolicy:  UCB1[T, P],
		explorationParam: DefaultExplorationParam,
		size:             1,
	}

	ops.SetRand(rand.New(rand.NewSource(SeedGeneratorFn())))
	return mcts
}

func (mcts *MCTS[T, P]) invokeListener(f ListenerFunc[T]) {
	if f != nil {
		f(toListenerStats(mcts))
	}
}

func (mcts *MCTS[T, P]) ResetListener() {
	mcts.listener = NewStatsListener[T]()
}

func (mcts *MCTS[T, P]) StatsListener() *StatsListener[T] {
	return &mcts.listener
}

func (mcts *MCTS[T, P]) SetListener(listener StatsListener[T]) {
	mcts.listener = listener
}

// Adds custom context to the limiter, enabling cancellation through it
//
// Example:
//
//	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
//	defer cancel()
//
//	tree.SetContext(ctx)
//	tree.Search()
func (mcts *MCTS[T, P]) SetContext(ctx context.Context) {
	mcts.Limiter.SetContext(ctx)
}

func (mcts *MCTS[T, P]) SetExplorationParam(c float64) {
	mcts.explorationParam = max(0, c)
}

func (mcts *MCTS[T, P]) ExplorationParam() float64 {
	return mcts.explorationParam
}

func (mcts *MCTS[T, P]) SetSelectionPolicy(policy SelectionPolicy[T, P]) {
	if policy != nil {
		mcts.selectionPolicy = policy
	}
}

// Stop the search, after the current iteration
func (mcts *MCTS[T, P]) Stop() {
	mcts.Limiter.SetStop(true)
}

// Maxiumum depth reached during the search
func (mcts *MCTS[T, P]) MaxDepth() int {
	return mcts.maxdepth
}

// Total number of iterations of the last search
func (mcts *MCTS[T, P]) Cycles() int {
	return int(mcts.cycles)
}

// Get cycles per second statistic
func (mcts *MCTS[T, P]) Cps() uint32 {
	return mcts.cps
}

// Get the reason why the search was stopped, valid after search ends
func (mcts *MCTS[T, P]) StopReason() StopReason {
	return mcts.Limiter.StopReason()
}

func (mcts *MCTS[T, P]) SetLimits(limits *Limits) {
	mcts.Limiter.SetLimits(limits)
}

func (mcts *MCTS[T, P]) Limits() *Limits {
	return mcts.Limiter.Limits()
}

// Get the size of the tree
func (mcts *MCTS[T, P]) Size() uint32 {
	return mcts.size
}

// Get the size of the tree (by counting)
func (mcts *MCTS[T, P]) Count() uint32 {
	return countTreeNodes(mcts.Root)
}

func (mcts *MCTS[T, P]) String() string {
	return fmt.Sprintf("MCTS={Size=%d, Stats:{maxdepth=%d, cps=%d, cycles=%d}, Root=%v}",
		mcts.Size(), mcts.MaxDepth(), mcts.Cps(), mcts.Cycles(), mcts.Root)
}

// Drop the tree and start over from the given position
func (mcts *MCTS[T, P]) Reset(position P) {
	mcts.Root = newRootNode[T](position)
	mcts.size = 1
	mcts.TreeStats = TreeStats{}
}

// Make the child with given 'move' the new root, keeping its subtree.
// Returns false if the root has no such child.
func (mcts *MCTS[T, P]) MakeMove(move T) bool {
	child := mcts.Root.Child(move)
	if child == nil {
		return false
	}

	// Copy the child out of the old root's children array,
	// so the siblings can be collected
	newRoot := new(NodeBase[T, P])
	*newRoot = *child
	newRoot.Parent = nil
	for i := range newRoot.Children {
		newRoot.Children[i].Parent = newRoot
	}

	mcts.Root.Children = nil
	mcts.Root = newRoot
	mcts.size = countTreeNodes(newRoot)
	mcts.maxdepth = max(0, mcts.maxdepth-1)
	return true
}

// 'the best move' in the position, false if the root has no children
func (mcts *MCTS[T, P]) RootMove() (T, bool) {
	return mcts.RootMoveBy(BestChildMostVisits)
}

func (mcts *MCTS[T, P]) RootMoveBy(policy BestChildPolicy) (T, bool) {
	var move T
	if bestChild := mcts.BestChild(mcts.Root, policy); bestChild != nil {
		return bestChild.Move, true
	}
	return move, false
}

// Engine's win rate in the best child
func (mcts *MCTS[T, P]) RootScore() float64 {
	if bestChild := mcts.BestChild(mcts.Root, BestChildMostVisits); bestChild != nil {
		return bestChild.WinRate()
	}
	return 0
}

// Return best child, based on the policy, nil if the node has no children
func (mcts *MCTS[T, P]) BestChild(node *NodeBase[T, P], policy BestChildPolicy) *NodeBase[T, P] {
	var bestChild *NodeBase[T, P]
	maxPlayouts := uint32(0)

	switch policy {
	case BestChildMostVisits:
		for i := range node.Children {
			child := &node.Children[i]
			if bestChild == nil || child.playouts > maxPlayouts {
				maxPlayouts = child.playouts
				bestChild = child
			}
		}
	case BestChildWinRate:
		for i := range node.Children {
			maxPlayouts = max(node.Children[i].playouts, maxPlayouts)
		}

		bestWinRate := -1.0
		for i := range node.Children {
			child := &node.Children[i]
			if child.playouts*10 >= maxPlayouts && child.WinRate() > bestWinRate {
				bestWinRate = child.WinRate()
				bestChild = child
			}
		}
	}

	return bestChild
}

// Root children statistics, most playouts first
func (mcts *MCTS[T, P]) Lines() []SearchLine[T] {
	lines := make([]SearchLine[T], len(mcts.Root.Children))
	for i := range mcts.Root.Children {
		child := &mcts.Root.Children[i]
		lines[i] = SearchLine[T]{
			Move:     child.Move,
			Wins:     child.wins,
			Playouts: child.playouts,
			WinRate:  child.WinRate(),
			Terminal: child.Terminal(),
		}
	}

	slices.SortStableFunc(lines, func(a, b SearchLine[T]) int {
		if a.Playouts > b.Playouts {
			return -1
		} else if a.Playouts < b.Playouts {
			return 1
		}
		return 0
	})
	return lines
}
