package mcts

import (
	"fmt"

	"github.com/IlikeChooros/go-uct-ttt/pkg/ttt"
)

// Search tree, owned by a single search call. Nodes live in one arena slice,
// so pointers to nodes are only valid until the next expansion.
type Tree struct {
	nodes    []SearchNode
	maxdepth int32
}

// Create new tree with a single root node wrapping 'state'
func NewTree(state ttt.GameState) *Tree {
	tree := &Tree{
		nodes: make([]SearchNode, 0, 2*ttt.NumCells),
	}
	tree.nodes = append(tree.nodes, newSearchNode(state, noParent, 0))
	return tree
}

func (tree *Tree) Root() *SearchNode {
	return &tree.nodes[rootIndex]
}

func (tree *Tree) Node(idx NodeIndex) *SearchNode {
	if idx < 0 || int(idx) >= len(tree.nodes) {
		panic(fmt.Sprintf("[MCTS] node index %d out of range [0, %d)", idx, len(tree.nodes)))
	}
	return &tree.nodes[idx]
}

// Number of nodes in the tree
func (tree *Tree) Size() int {
	return len(tree.nodes)
}

// Maximum depth reached during the search
func (tree *Tree) MaxDepth() int {
	return int(tree.maxdepth)
}

// Attach the first successor of node 'idx' that has no backing child yet,
// returns the new child. Calling it when every successor is already
// represented means the fully-expanded flag was stale, which is a bug.
func (tree *Tree) expand(idx NodeIndex) NodeIndex {
	successors := tree.Node(idx).state.LegalSuccessors()

	for _, next := range successors {
		key := next.Key()
		if _, ok := tree.Node(idx).Child(key); ok {
			continue
		}

		depth := tree.Node(idx).depth + 1
		child := NodeIndex(len(tree.nodes))
		tree.nodes = append(tree.nodes, newSearchNode(next, idx, depth))
		tree.maxdepth = max(tree.maxdepth, depth)

		// the append may have moved the arena, take the parent again
		parent := tree.Node(idx)
		parent.addChild(key, child)
		if len(parent.order) == len(successors) {
			parent.fullyExpanded = true
		}
		return child
	}

	panic(fmt.Sprintf("[MCTS] expand: every successor of %v already has a child, the fully-expanded flag is stale",
		tree.Node(idx)))
}

// Walk from 'idx' up to the root, adding the raw result to every node on the path
func (tree *Tree) backpropagate(idx NodeIndex, result Result) {
	for idx != noParent {
		node := tree.Node(idx)
		node.add(result)
		idx = node.parent
	}
}

// Child of 'idx' with most visits, ties go to the first expanded one
func (tree *Tree) mostVisited(idx NodeIndex) NodeIndex {
	best := noParent
	maxVisits := int32(0)
	for _, child := range tree.Node(idx).order {
		if v := tree.Node(child).Visits(); v > maxVisits {
			maxVisits = v
			best = child
		}
	}
	return best
}

// Get the principal variation (most visited line) from the root,
// as the sequence of board positions played
func (tree *Tree) Pv() []int {
	pv := make([]int, 0, tree.MaxDepth())
	idx := rootIndex
	for {
		next := tree.mostVisited(idx)
		if next == noParent {
			break
		}
		pv = append(pv, tree.Node(idx).state.MoveTo(tree.Node(next).state))
		idx = next
	}
	return pv
}

func (tree *Tree) String() string {
	return fmt.Sprintf("Tree={Size=%d, MaxDepth=%d, Root=%v}", tree.Size(), tree.MaxDepth(), tree.Root())
}
