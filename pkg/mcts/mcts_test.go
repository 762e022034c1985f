package mcts

import (
	"context"
	"fmt"
	"math"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// A dummy game for testing: players take 1 or 2 from the pile,
// whoever takes the last one wins

type Move int

type DummyPos struct {
	pile         int
	engineToMove bool
	lastByEngine bool
}

func NewDummyPos(pile int) DummyPos {
	return DummyPos{pile: pile, engineToMove: true}
}

func (p DummyPos) LegalMoves() []Move {
	moves := make([]Move, 0, 2)
	for m := 1; m <= min(2, p.pile); m++ {
		moves = append(moves, Move(m))
	}
	return moves
}

func (p DummyPos) Decided() bool {
	return p.pile == 0
}

func (p DummyPos) Play(m Move) DummyPos {
	return DummyPos{
		pile:         p.pile - int(m),
		engineToMove: !p.engineToMove,
		lastByEngine: p.engineToMove,
	}
}

type DummyOps struct {
	rand     *rand.Rand
	rollouts int
}

func (d *DummyOps) Rollout(pos DummyPos) bool {
	d.rollouts++
	for !pos.Decided() {
		moves := pos.LegalMoves()
		pos = pos.Play(moves[d.rand.Intn(len(moves))])
	}
	return pos.lastByEngine
}

func (d *DummyOps) SetRand(r *rand.Rand) {
	d.rand = r
}

func NewDummyMCTS(pile int) (*MCTS[Move, DummyPos], *DummyOps) {
	ops := &DummyOps{}
	return NewMCTS[Move](ops, NewDummyPos(pile)), ops
}

func TestMain(m *testing.M) {
	SetSeedGeneratorFn(func() uint64 {
		return 42
	})
	fmt.Printf("Using seed %d\n", SeedGeneratorFn())

	os.Exit(m.Run())
}

// Every playout of an expanded node went through exactly one of its children,
// apart from the one it got when it was created
func checkTree(t *testing.T, node *NodeBase[Move, DummyPos], own uint32) {
	t.Helper()
	if node.Leaf() {
		return
	}

	sum := own
	for i := range node.Children {
		child := &node.Children[i]
		require.Same(t, node, child.Parent)
		require.LessOrEqual(t, child.Wins(), child.Playouts())
		require.GreaterOrEqual(t, child.Playouts(), uint32(1))
		sum += child.Playouts()
		checkTree(t, child, 1)
	}
	require.Equal(t, node.Playouts(), sum)
}

func TestExpand(t *testing.T) {
	tree, ops := NewDummyMCTS(5)

	require.Equal(t, uint32(2), tree.Expand(tree.Root))
	require.True(t, tree.Root.Expanded())
	require.Len(t, tree.Root.Children, 2)
	require.Equal(t, 2, ops.rollouts)

	for i := range tree.Root.Children {
		child := &tree.Root.Children[i]
		require.Same(t, tree.Root, child.Parent)
		require.Equal(t, Move(i+1), child.Move)
		require.Equal(t, uint32(1), child.Playouts())
		require.LessOrEqual(t, child.Wins(), uint32(1))
		require.False(t, child.Terminal())
	}

	require.Equal(t, uint32(2), tree.Root.Playouts())
	require.Equal(t, uint32(3), tree.Size())

	// expanded once
	require.Zero(t, tree.Expand(tree.Root))
	require.Equal(t, uint32(3), tree.Size())
}

func TestSearchCycles(t *testing.T) {
	for _, cycles := range []uint32{0, 1, 2, 50, 500} {
		t.Run(fmt.Sprintf("Cycles-%d", cycles), func(t *testing.T) {
			tree, _ := NewDummyMCTS(9)
			tree.SetLimits(DefaultLimits().SetCycles(cycles))
			tree.Search()

			require.Equal(t, int(max(1, cycles)), tree.Cycles())
			require.Equal(t, StopCycles, tree.StopReason())
			require.Len(t, tree.Root.Children, 2)
			require.Equal(t, tree.Count(), tree.Size())
			checkTree(t, tree.Root, 0)

			_, ok := tree.RootMove()
			require.True(t, ok)
		})
	}
}

func TestSearchImmediateWin(t *testing.T) {
	// taking both wins right away, taking one loses
	tree, _ := NewDummyMCTS(2)
	tree.SetLimits(DefaultLimits().SetCycles(200))
	tree.Search()

	move, ok := tree.RootMove()
	require.True(t, ok)
	require.Equal(t, Move(2), move)
	require.InDelta(t, 1.0, tree.RootScore(), 1e-9)

	win := tree.Root.Child(2)
	require.True(t, win.Terminal())
	require.Equal(t, win.Playouts(), win.Wins())
}

func TestSearchTerminalLeaf(t *testing.T) {
	tree, _ := NewDummyMCTS(1)
	tree.SetLimits(DefaultLimits().SetCycles(10))
	tree.Search()

	// the only child is decided, every iteration backpropagates its result
	require.Len(t, tree.Root.Children, 1)
	child := &tree.Root.Children[0]
	require.True(t, child.Terminal())
	require.True(t, child.Leaf())
	require.Equal(t, uint32(10), child.Playouts())
	require.Equal(t, uint32(10), child.Wins())
	require.Equal(t, uint32(10), tree.Root.Playouts())
}

func TestSearchTerminalRoot(t *testing.T) {
	tree, ops := NewDummyMCTS(0)
	tree.SetLimits(DefaultLimits().SetCycles(10))
	tree.Search()

	require.True(t, tree.Root.Terminal())
	require.Empty(t, tree.Root.Children)
	require.Zero(t, ops.rollouts)
	require.Equal(t, StopTerminal, tree.StopReason())

	_, ok := tree.RootMove()
	require.False(t, ok)
}

func TestSearchWithListener(t *testing.T) {
	tree, _ := NewDummyMCTS(12)
	tree.SetLimits(DefaultLimits().SetCycles(100))

	depthCalls, cycleCalls, stopCalls := 0, 0, 0
	listener := NewStatsListener[Move]()
	listener.
		OnDepth(func(stats ListenerTreeStats[Move]) {
			depthCalls++
			require.Equal(t, depthCalls, stats.Maxdepth)
		}).
		OnCycle(func(stats ListenerTreeStats[Move]) {
			cycleCalls++
			require.Zero(t, stats.Cycles%10)
			require.NotEmpty(t, stats.Lines)
			t.Logf("cycle %d depth %d cps %d best %v", stats.Cycles, stats.Maxdepth, stats.Cps, stats.BestMove)
		}).
		SetCycleInterval(10).
		OnStop(func(stats ListenerTreeStats[Move]) {
			stopCalls++
			require.Equal(t, StopCycles, stats.StopReason)
			require.Equal(t, 100, stats.Cycles)
			require.Equal(t, stats.Lines[0].Move, stats.BestMove)
		})

	tree.SetListener(listener)
	tree.Search()

	require.Greater(t, depthCalls, 0)
	require.Equal(t, 10, cycleCalls)
	require.Equal(t, 1, stopCalls)
}

func TestSearchMovetime(t *testing.T) {
	tree, _ := NewDummyMCTS(1000)
	tree.SetLimits(DefaultLimits().SetMovetime(20))
	tree.Search()

	require.NotZero(t, tree.StopReason()&StopMovetime)
	require.Greater(t, tree.Cycles(), 1)
}

func TestSearchContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tree, _ := NewDummyMCTS(9)
	tree.SetContext(ctx)
	tree.SetLimits(DefaultLimits())
	tree.Search()

	// only the root expansion
	require.Equal(t, 1, tree.Cycles())
	require.Equal(t, StopInterrupt, tree.StopReason())
	require.Len(t, tree.Root.Children, 2)
}

func TestMakeMove(t *testing.T) {
	tree, _ := NewDummyMCTS(9)
	tree.SetLimits(DefaultLimits().SetCycles(500))
	tree.Search()

	size := tree.Size()
	move, ok := tree.RootMove()
	require.True(t, ok)
	require.False(t, tree.MakeMove(Move(3)))

	oldRoot := tree.Root
	oldChild := tree.Root.Child(move)
	playouts := oldChild.Playouts()
	require.True(t, tree.MakeMove(move))
	require.Nil(t, tree.Root.Parent)
	require.Nil(t, oldRoot.Children)

	// the new root lives outside of the old children array
	require.NotSame(t, oldChild, tree.Root)
	require.Equal(t, playouts, tree.Root.Playouts())
	for i := range tree.Root.Children {
		require.Same(t, tree.Root, tree.Root.Children[i].Parent)
	}
	require.Less(t, tree.Size(), size)
	require.Equal(t, tree.Count(), tree.Size())
	require.Equal(t, 9-int(move), tree.Root.Position.pile)

	// continue from the new root
	tree.SetLimits(DefaultLimits().SetCycles(100))
	tree.Search()
	require.Equal(t, 100, tree.Cycles())
	checkTree(t, tree.Root, 1)

	tree.Reset(NewDummyPos(4))
	require.Equal(t, uint32(1), tree.Size())
	require.Empty(t, tree.Root.Children)
}

func TestUCB1(t *testing.T) {
	root := newRootNode[Move](NewDummyPos(5))
	root.Children = []NodeBase[Move, DummyPos]{
		NewBaseNode(root, 1, root.Position.Play(1)),
		NewBaseNode(root, 2, root.Position.Play(2)),
	}

	root.playouts = 10
	root.Children[0].NodeStats = NodeStats{wins: 3, playouts: 5}
	root.Children[1].NodeStats = NodeStats{wins: 1, playouts: 5}
	require.Same(t, &root.Children[0], UCB1(root, DefaultExplorationParam))

	// better win rate and less explored
	root.Children[1].NodeStats = NodeStats{wins: 3, playouts: 4}
	root.Children[0].NodeStats = NodeStats{wins: 4, playouts: 6}
	require.Greater(t, root.Children[1].UCT(DefaultExplorationParam), root.Children[0].UCT(DefaultExplorationParam))
	require.Same(t, &root.Children[1], UCB1(root, DefaultExplorationParam))

	// unvisited first
	root.Children[1].NodeStats = NodeStats{}
	require.Same(t, &root.Children[1], UCB1(root, DefaultExplorationParam))

	require.InDelta(t, 4.0/6.0+1.414*math.Sqrt(math.Log(10)/6), root.Children[0].UCT(1.414), 1e-9)
	require.Panics(t, func() { root.UCT(DefaultExplorationParam) })
}

func TestBestChild(t *testing.T) {
	tree, _ := NewDummyMCTS(5)
	tree.Expand(tree.Root)

	tree.Root.Children[0].NodeStats = NodeStats{wins: 10, playouts: 40}
	tree.Root.Children[1].NodeStats = NodeStats{wins: 9, playouts: 10}

	// robust child, not the best win rate
	require.Same(t, &tree.Root.Children[0], tree.BestChild(tree.Root, BestChildMostVisits))
	require.Same(t, &tree.Root.Children[1], tree.BestChild(tree.Root, BestChildWinRate))

	move, ok := tree.RootMoveBy(BestChildWinRate)
	require.True(t, ok)
	require.Equal(t, Move(2), move)

	lines := tree.Lines()
	require.Equal(t, Move(1), lines[0].Move)
	require.Equal(t, uint32(40), lines[0].Playouts)
	require.InDelta(t, 0.9, lines[1].WinRate, 1e-9)
}
