package mcts

import (
	"fmt"
	"math"
)

const (
	ExpandedMask uint32 = 1
	TerminalMask uint32 = 2
)

// Node of the game tree. Children are owned by the node (one allocation per expansion,
// never resized, so pointers into it stay valid), Parent is only a back reference
// used for backpropagation and the UCT formula.
type NodeBase[T MoveLike, P PositionLike[T, P]] struct {
	NodeStats
	Move     T
	Position P
	Children []NodeBase[T, P]
	Parent   *NodeBase[T, P]
	Flags    uint32
}

func newRootNode[T MoveLike, P PositionLike[T, P]](position P) *NodeBase[T, P] {
	return &NodeBase[T, P]{
		Position: position,
		Flags:    TerminalFlag(position.Decided()),
	}
}

func NewBaseNode[T MoveLike, P PositionLike[T, P]](parent *NodeBase[T, P], move T, position P) NodeBase[T, P] {
	return NodeBase[T, P]{
		Move:     move,
		Position: position,
		Parent:   parent,
		Flags:    TerminalFlag(position.Decided()),
	}
}

func TerminalFlag(terminal bool) uint32 {
	if terminal {
		return TerminalMask
	}
	return 0
}

// Decided position, or one without legal moves (known after expansion)
func (node *NodeBase[T, P]) Terminal() bool {
	return node.Flags&TerminalMask == TerminalMask
}

func (node *NodeBase[T, P]) Expanded() bool {
	return node.Flags&ExpandedMask == ExpandedMask
}

// Node without children
func (node *NodeBase[T, P]) Leaf() bool {
	return len(node.Children) == 0
}

func (node *NodeBase[T, P]) IsRoot() bool {
	return node.Parent == nil
}

// Upper Confidence bound of the node:
//
//	wins/playouts + c * sqrt(ln(parent playouts) / playouts)
//
// The root has no UCT, calling this on it is a bug.
func (node *NodeBase[T, P]) UCT(explorationParam float64) float64 {
	if node.Parent == nil {
		panic("mcts: the root node has no UCT")
	}

	playouts := float64(node.playouts)
	return float64(node.wins)/playouts +
		explorationParam*math.Sqrt(math.Log(float64(node.Parent.playouts))/playouts)
}

// Find the child with given move
func (node *NodeBase[T, P]) Child(move T) *NodeBase[T, P] {
	for i := range node.Children {
		if node.Children[i].Move == move {
			return &node.Children[i]
		}
	}
	return nil
}

func (node *NodeBase[T, P]) String() string {
	return fmt.Sprintf("Node{Move=%v, Stats=%v, Children=%d, Terminal=%v}",
		node.Move, node.NodeStats, len(node.Children), node.Terminal())
}

// Helper function to count tree nodes
func countTreeNodes[T MoveLike, P PositionLike[T, P]](node *NodeBase[T, P]) uint32 {
	nodes := uint32(1)
	for i := range node.Children {
		nodes += countTreeNodes(&node.Children[i])
	}
	return nodes
}
