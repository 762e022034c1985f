package mcts

// Default selection policy, descends into the child with the highest UCT,
// a child without playouts always goes first
func UCB1[T MoveLike, P PositionLike[T, P]](parent *NodeBase[T, P], explorationParam float64) *NodeBase[T, P] {
	max := -1.0
	index := 0

	for i := range parent.Children {
		child := &parent.Children[i]

		// Pick the unvisited one
		if child.playouts == 0 {
			return child
		}

		if uct := child.UCT(explorationParam); uct > max {
			max = uct
			index = i
		}
	}

	return &parent.Children[index]
}
