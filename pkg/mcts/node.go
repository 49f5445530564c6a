package mcts

import (
	"fmt"

	"github.com/IlikeChooros/go-uct-ttt/pkg/ttt"
)

// Arena index of a node, parents are referenced by index only, so the tree
// has a single ownership path: Tree.nodes
type NodeIndex int32

const (
	rootIndex NodeIndex = 0
	noParent  NodeIndex = -1
)

// Node of the search tree, wraps one game state and its statistics
type SearchNode struct {
	NodeStats
	state         ttt.GameState
	parent        NodeIndex
	depth         int32
	terminal      bool
	fullyExpanded bool

	// successor key -> child index, plus the insertion order of the children,
	// so that the child scan does not depend on map iteration order
	children map[uint32]NodeIndex
	order    []NodeIndex
}

func newSearchNode(state ttt.GameState, parent NodeIndex, depth int32) SearchNode {
	terminal := state.IsTerminal()
	return SearchNode{
		state:    state,
		parent:   parent,
		depth:    depth,
		terminal: terminal,
		// a terminal node has no successors to expand
		fullyExpanded: terminal,
	}
}

func (node *SearchNode) State() ttt.GameState {
	return node.state
}

func (node *SearchNode) Parent() NodeIndex {
	return node.parent
}

func (node *SearchNode) Depth() int {
	return int(node.depth)
}

func (node *SearchNode) Terminal() bool {
	return node.terminal
}

func (node *SearchNode) FullyExpanded() bool {
	return node.fullyExpanded
}

// Children in the order they were expanded
func (node *SearchNode) Children() []NodeIndex {
	return node.order
}

// Child backed by the successor state with given key
func (node *SearchNode) Child(key uint32) (NodeIndex, bool) {
	idx, ok := node.children[key]
	return idx, ok
}

func (node *SearchNode) addChild(key uint32, idx NodeIndex) {
	if node.children == nil {
		node.children = make(map[uint32]NodeIndex, node.state.EmptyCount())
	}
	if _, ok := node.children[key]; ok {
		panic(fmt.Sprintf("[MCTS] addChild: key %d already has a child", key))
	}
	node.children[key] = idx
	node.order = append(node.order, idx)
}

func (node *SearchNode) String() string {
	return fmt.Sprintf("{%s visits=%d score=%d terminal=%v expanded=%v children=%d}",
		node.state.Notation(), node.Visits(), node.ScoreSum(), node.terminal, node.fullyExpanded, len(node.order))
}
