package mcts

import "fmt"

// Win/playout counters of the node. Wins are always the engine's wins,
// no matter which side is to move in the node.
type NodeStats struct {
	wins     uint32
	playouts uint32
}

func (stats *NodeStats) Wins() uint32 {
	return stats.wins
}

func (stats *NodeStats) Playouts() uint32 {
	return stats.playouts
}

// Engine's win rate in this node, 0 without playouts
func (stats *NodeStats) WinRate() float64 {
	if stats.playouts == 0 {
		return 0
	}
	return float64(stats.wins) / float64(stats.playouts)
}

// Count a single playout
func (stats *NodeStats) AddPlayout(won bool) {
	stats.playouts++
	if won {
		stats.wins++
	}
}

func (stats NodeStats) String() string {
	return fmt.Sprintf("%d/%d", stats.wins, stats.playouts)
}
