package mcts

// Other types, which didn't fit to MCTS or Node files

type MoveLike comparable
type BestChildPolicy int

// Picks the child of 'parent' to descend into, parent always has children
type SelectionPolicy[T MoveLike, P PositionLike[T, P]] func(parent *NodeBase[T, P], explorationParam float64) *NodeBase[T, P]
type SeedGeneratorFnType func() uint64
