package mcts

type ListenerTreeStats struct {
	Maxdepth   int
	Cycles     int
	TimeMs     int
	Cps        uint64
	Size       int
	Pv         []int
	Eval       float64
	StopReason StopReason
}

// Iterations per second, in 64 bits so long infinite searches do not wrap
func cyclesPerSecond(cycles, elapsedMs uint32) uint64 {
	return uint64(cycles) * 1000 / uint64(max(1, elapsedMs))
}

// Convert tree statistics to 'ListenerTreeStats' struct
func toListenerStats(e *Engine, tree *Tree, cycles uint32) ListenerTreeStats {
	stats := ListenerTreeStats{
		Maxdepth:   tree.MaxDepth(),
		Cycles:     int(cycles),
		TimeMs:     int(e.Limiter.Elapsed()),
		Cps:        cyclesPerSecond(cycles, e.Limiter.Elapsed()),
		Size:       tree.Size(),
		Pv:         tree.Pv(),
		StopReason: e.Limiter.StopReason(),
	}

	if best := tree.mostVisited(rootIndex); best != noParent {
		stats.Eval = UCB1(tree.Root().Visits(), tree.Node(best), ExploitationParam)
	}
	return stats
}

// Listener function callback, will receive current tree statistics, like
// max depth of tree, number of iterations so far
type ListenerFunc func(ListenerTreeStats)

type StatsListener struct {
	// called every N full iterations
	onCycle ListenerFunc
	nCycles int // call 'onCycle' every N cycles

	// called when the search stops
	onStop ListenerFunc
}

func NewStatsListener() StatsListener {
	return StatsListener{nCycles: 1}
}

// Attach new on iteration callback, computing the pv on every call
// slows down the search, use a large interval
func (listener *StatsListener) OnCycle(onCycle ListenerFunc) *StatsListener {
	listener.onCycle = onCycle
	return listener
}

func (listener *StatsListener) SetCycleInterval(n int) *StatsListener {
	if n < 1 {
		n = 1
	}
	listener.nCycles = n
	return listener
}

// Attach 'on search end' callback, makes 'StopReason' available in the stats
func (listener *StatsListener) OnStop(onStop ListenerFunc) *StatsListener {
	listener.onStop = onStop
	return listener
}

func (listener *StatsListener) invokeCycle(e *Engine, tree *Tree, cycles uint32) {
	if listener.onCycle != nil && int(cycles)%max(1, listener.nCycles) == 0 {
		listener.onCycle(toListenerStats(e, tree, cycles))
	}
}

func (listener *StatsListener) invokeStop(e *Engine, tree *Tree, cycles uint32) {
	if listener.onStop != nil {
		listener.onStop(toListenerStats(e, tree, cycles))
	}
}
