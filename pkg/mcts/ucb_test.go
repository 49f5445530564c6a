package mcts

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/IlikeChooros/go-uct-ttt/pkg/ttt"
)

func TestUCB1(t *testing.T) {
	crossMoved, err := ttt.NewGameState().ApplyMove(5)
	require.NoError(t, err)
	circleMoved, err := crossMoved.ApplyMove(1)
	require.NoError(t, err)

	cases := []struct {
		name     string
		state    ttt.GameState
		stats    NodeStats
		c        float64
		expected float64
	}{
		{"reference mover exploit", crossMoved, NodeStats{visits: 4, scoreSum: 2}, 0, 0.5},
		{"opponent mover exploit", circleMoved, NodeStats{visits: 4, scoreSum: 2}, 0, -0.5},
		{"opponent mover losing", circleMoved, NodeStats{visits: 5, scoreSum: -5}, 0, 1},
		{"reference mover explore", crossMoved, NodeStats{visits: 4, scoreSum: 2}, 2, 0.5 + 2*math.Sqrt(math.Log(10)/4)},
		{"opponent mover explore", circleMoved, NodeStats{visits: 10, scoreSum: 0}, 2, 2 * math.Sqrt(math.Log(10)/10)},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			node := newSearchNode(c.state, rootIndex, 1)
			node.NodeStats = c.stats
			require.InDelta(t, c.expected, UCB1(10, &node, c.c), 1e-12)
		})
	}
}

func TestUCB1Unvisited(t *testing.T) {
	node := newSearchNode(ttt.NewGameState(), rootIndex, 1)
	require.True(t, math.IsInf(UCB1(10, &node, ExplorationParam), 1))
	require.True(t, math.IsInf(UCB1(10, &node, ExploitationParam), 1))
}

// Root with every child expanded, stats assigned by the caller
func expandedTree(t *testing.T, state ttt.GameState, stats ...NodeStats) *Tree {
	t.Helper()
	tree := NewTree(state)
	require.Len(t, stats, state.EmptyCount())

	root := NodeStats{}
	for _, s := range stats {
		child := tree.expand(rootIndex)
		tree.Node(child).NodeStats = s
		root.visits += s.visits
		root.scoreSum += s.scoreSum
	}
	tree.Root().NodeStats = root
	require.True(t, tree.Root().FullyExpanded())
	return tree
}

func TestBestChildExploitation(t *testing.T) {
	// X to move, children are X's moves: higher score sum is better for X
	state := mustParse(t, "xo1/xo1/o1x x")
	tree := expandedTree(t, state,
		NodeStats{visits: 10, scoreSum: 2},
		NodeStats{visits: 3, scoreSum: 3},
		NodeStats{visits: 20, scoreSum: -5},
	)

	r := rand.New(rand.NewSource(1))
	best := tree.bestChild(rootIndex, ExploitationParam, r)
	require.Equal(t, tree.Root().Children()[1], best)

	// O to move, the sign flips: the lowest mean is the best for O
	state = mustParse(t, "xo1/x2/ox1 o")
	tree = expandedTree(t, state,
		NodeStats{visits: 10, scoreSum: 2},
		NodeStats{visits: 3, scoreSum: 3},
		NodeStats{visits: 20, scoreSum: -5},
		NodeStats{visits: 10, scoreSum: 0},
	)
	best = tree.bestChild(rootIndex, ExploitationParam, r)
	require.Equal(t, tree.Root().Children()[2], best)
}

func TestBestChildExplorationPrefersRarelyVisited(t *testing.T) {
	state := mustParse(t, "xo1/xo1/o1x x")
	tree := expandedTree(t, state,
		NodeStats{visits: 500, scoreSum: 100},
		NodeStats{visits: 1, scoreSum: 0},
		NodeStats{visits: 500, scoreSum: 50},
	)

	r := rand.New(rand.NewSource(1))
	require.Equal(t, tree.Root().Children()[0], tree.bestChild(rootIndex, ExploitationParam, r))
	require.Equal(t, tree.Root().Children()[1], tree.bestChild(rootIndex, ExplorationParam, r))
}

func TestBestChildTieBreakIsUniform(t *testing.T) {
	state := mustParse(t, "xo1/xo1/o1x x")
	tree := expandedTree(t, state,
		NodeStats{visits: 4, scoreSum: 2},
		NodeStats{visits: 4, scoreSum: 2},
		NodeStats{visits: 8, scoreSum: -8},
	)

	r := rand.New(rand.NewSource(3))
	picks := map[NodeIndex]int{}
	const trials = 3000
	for i := 0; i < trials; i++ {
		picks[tree.bestChild(rootIndex, ExploitationParam, r)]++
	}

	children := tree.Root().Children()
	require.Len(t, picks, 2)
	require.Zero(t, picks[children[2]])
	require.InDelta(t, trials/2, picks[children[0]], trials/10)
	require.InDelta(t, trials/2, picks[children[1]], trials/10)
}

func TestBestChildWithoutChildren(t *testing.T) {
	tree := NewTree(ttt.NewGameState())
	require.Equal(t, noParent, tree.bestChild(rootIndex, ExploitationParam, rand.New(rand.NewSource(1))))
}
