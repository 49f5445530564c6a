package mcts

import (
	"math"
	"math/rand"
)

// UCB1 score of 'child', seen from the parent's side:
//
//	sign * scoreSum/visits + c * sqrt(ln(parentVisits)/visits)
//
// sign is +1 when the child's last mover is the reference mark, -1 otherwise.
// Unvisited children score +Inf, so they are always tried first.
func UCB1(parentVisits int32, child *SearchNode, c float64) float64 {
	visits := child.Visits()
	if visits == 0 {
		return math.Inf(1)
	}

	sign := -1.0
	if child.state.LastMover() == ReferenceMark {
		sign = 1.0
	}

	exploitation := sign * float64(child.ScoreSum()) / float64(visits)
	if c == 0 {
		return exploitation
	}
	return exploitation + c*math.Sqrt(math.Log(float64(parentVisits))/float64(visits))
}

// Child of 'idx' maximizing UCB1 with coefficient 'c', ties broken uniformly
// at random. Used both for the descent (c = ExplorationParam) and for the
// final recommendation (c = ExploitationParam). Returns noParent when the
// node has no children.
func (tree *Tree) bestChild(idx NodeIndex, c float64, r *rand.Rand) NodeIndex {
	parent := tree.Node(idx)
	children := parent.order
	if len(children) == 0 {
		return noParent
	}

	best := make([]NodeIndex, 0, len(children))
	bestScore := math.Inf(-1)
	for _, child := range children {
		score := UCB1(parent.Visits(), tree.Node(child), c)
		if score > bestScore {
			bestScore = score
			best = append(best[:0], child)
		} else if score == bestScore {
			best = append(best, child)
		}
	}

	if len(best) == 1 {
		return best[0]
	}
	return best[r.Intn(len(best))]
}
