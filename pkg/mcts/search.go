package mcts

// This function only sets the limits and resets the counters,
// doesn't actually start the search
func (mcts *MCTS[T, P]) setupSearch() {
	mcts.Limiter.Reset()
	mcts.cps = 0
	mcts.cycles = 0
	mcts.maxdepth = 0
}

// Run the search on the calling goroutine, every iteration:
//
// 1. selection - descend from the root to the most promising leaf (UCT)
//
// 2. expansion - add a child per legal move, each child gets one random playout
// backpropagated right away
//
// A selected terminal leaf is not expanded, its known result is backpropagated instead.
// An unexpanded root is expanded first, which counts as the first iteration,
// so the tree always has its root children after the search.
func (mcts *MCTS[T, P]) Search() {
	mcts.setupSearch()

	if !mcts.Root.Expanded() && !mcts.Root.Terminal() {
		mcts.Expand(mcts.Root)
		mcts.cycles = 1
	}

	if mcts.Root.Terminal() {
		mcts.Limiter.SetStopReason(StopTerminal)
		mcts.invokeListener(mcts.listener.onStop)
		return
	}

	for mcts.Limiter.Ok(mcts.size, mcts.cycles) {
		node := mcts.Selection()
		if mcts.Expand(node) == 0 {
			mcts.Backpropagate(node, mcts.ops.Rollout(node.Position))
		}

		mcts.cycles++
		mcts.cps = mcts.cycles * 1000 / mcts.Limiter.Elapsed()

		// Invoke the 'onCycle' listener
		if mcts.listener.onCycle != nil && int(mcts.cycles)%max(1, mcts.listener.nCycles) == 0 {
			mcts.listener.onCycle(toListenerStats(mcts))
		}
	}

	mcts.cps = mcts.cycles * 1000 / mcts.Limiter.Elapsed()
	mcts.Limiter.EvaluateStopReason(mcts.size, mcts.cycles)
	mcts.invokeListener(mcts.listener.onStop)
}

// Descend from the root with the selection policy until a node without children is reached.
// The root itself is never scored, it is only returned when it has no children.
func (mcts *MCTS[T, P]) Selection() *NodeBase[T, P] {
	node := mcts.Root
	depth := 0
	for !node.Leaf() {
		node = mcts.selectionPolicy(node, mcts.explorationParam)
		depth++
	}

	// Set the 'max depth'
	if depth > mcts.maxdepth {
		mcts.maxdepth = depth
		mcts.invokeListener(mcts.listener.onDepth)
	}

	return node
}

// Add a child per legal move, then playout and backpropagate each of them.
// Returns the number of children created, 0 for terminal or already expanded nodes.
func (mcts *MCTS[T, P]) Expand(node *NodeBase[T, P]) uint32 {
	if node.Terminal() || node.Expanded() {
		return 0
	}

	moves := node.Position.LegalMoves()
	if len(moves) == 0 {
		node.Flags |= TerminalMask
		return 0
	}

	node.Children = make([]NodeBase[T, P], len(moves))
	for i, m := range moves {
		node.Children[i] = NewBaseNode(node, m, node.Position.Play(m))
	}
	node.Flags |= ExpandedMask
	mcts.size += uint32(len(moves))

	for i := range node.Children {
		child := &node.Children[i]
		mcts.Backpropagate(child, mcts.ops.Rollout(child.Position))
	}

	return uint32(len(moves))
}

// Count the playout at every node from 'node' up to the root,
// wins only if the engine won
func (mcts *MCTS[T, P]) Backpropagate(node *NodeBase[T, P], won bool) {
	for node != nil {
		node.AddPlayout(won)
		node = node.Parent
	}
}
