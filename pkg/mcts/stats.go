package mcts

// visit count and raw score sum of the node,
// only ever grown by backpropagation
type NodeStats struct {
	visits   int32
	scoreSum int64
}

// Get number of visits to this node
func (stats *NodeStats) Visits() int32 {
	return stats.visits
}

// Cumulated rollout results, not adjusted to any perspective
func (stats *NodeStats) ScoreSum() int64 {
	return stats.scoreSum
}

// Average result for this node, 0 when never visited
func (stats *NodeStats) AvgScore() float64 {
	if stats.visits == 0 {
		return 0
	}
	return float64(stats.scoreSum) / float64(stats.visits)
}

// Add new outcome to this node
func (stats *NodeStats) add(result Result) {
	stats.visits++
	stats.scoreSum += int64(result)
}
